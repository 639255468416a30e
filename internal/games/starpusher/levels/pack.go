package levels

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/starpusher/internal/games/starpusher/core"
)

//go:embed packs/*.txt
var packFS embed.FS

// Pack is an ordered list of levels read from one file.
type Pack struct {
	ID       string
	Title    string
	Levels   []*core.Level
	FilePath string // empty for embedded packs
}

// Len returns the number of levels in the pack.
func (p *Pack) Len() int {
	return len(p.Levels)
}

// Level returns the level at index i (0-based), or nil.
func (p *Pack) Level(i int) *core.Level {
	if i < 0 || i >= len(p.Levels) {
		return nil
	}
	return p.Levels[i]
}

func newPack(id, filePath string, data []byte) (*Pack, error) {
	source := filePath
	if source == "" {
		source = id
	}
	p, err := parse(source, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	title := p.title
	if title == "" {
		title = id
	}
	return &Pack{
		ID:       id,
		Title:    title,
		Levels:   p.levels,
		FilePath: filePath,
	}, nil
}

// packID derives a pack id from a file name: "My Levels.txt" -> "my-levels".
func packID(name string) string {
	base := strings.TrimSuffix(name, path.Ext(name))
	base = strings.ToLower(strings.TrimSpace(base))
	return strings.Join(strings.Fields(base), "-")
}

// LoadFile loads a level file from disk.
func LoadFile(filePath string) (*Pack, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("levels: reading file %s: %w", filePath, err)
	}
	return newPack(packID(filepath.Base(filePath)), filePath, data)
}

// LoadDir loads every *.txt level file under root.
// Invalid files are skipped and reported in the returned error slice.
// Packs are sorted by ID for deterministic ordering.
func LoadDir(root string) ([]*Pack, []error, error) {
	var packs []*Pack
	var bad []error

	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.ToLower(filepath.Ext(p)) != ".txt" {
			return nil
		}
		pack, err := LoadFile(p)
		if err != nil {
			bad = append(bad, err)
			return nil
		}
		packs = append(packs, pack)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("levels: walking directory %s: %w", root, err)
	}

	sort.Slice(packs, func(i, j int) bool {
		return packs[i].ID < packs[j].ID
	})
	return packs, bad, nil
}

var (
	embeddedOnce  sync.Once
	embeddedPacks []*Pack
)

// Embedded returns the packs bundled with the binary, in display order.
// The embedded files are validated by tests, so a parse failure here is a
// build defect and panics.
func Embedded() []*Pack {
	embeddedOnce.Do(func() {
		for _, name := range embeddedOrder {
			data, err := packFS.ReadFile("packs/" + name + ".txt")
			if err != nil {
				panic(fmt.Sprintf("levels: missing embedded pack %s: %v", name, err))
			}
			p, err := newPack(name, "", data)
			if err != nil {
				panic(err)
			}
			embeddedPacks = append(embeddedPacks, p)
		}
	})
	return embeddedPacks
}

// embeddedOrder lists embedded pack ids in the order menus show them.
var embeddedOrder = []string{"classic", "switches"}

// EmbeddedPack returns an embedded pack by id.
func EmbeddedPack(id string) (*Pack, bool) {
	for _, p := range Embedded() {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}
