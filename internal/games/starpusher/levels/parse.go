// Package levels reads Star Pusher level files.
// This package depends on core but core does not depend on levels.
//
// A level file holds one or more maps separated by blank lines. Everything
// after ';' on a line is a comment. A line that is only a comment counts as
// blank. The last comment line before a map names it, falling back to a
// comment trailing one of its rows. "; Title: ..." names the whole file.
package levels

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vovakirdan/starpusher/internal/games/starpusher/core"
)

const titleDirective = "title:"

// block is the raw text of one map before validation.
type block struct {
	rows  []string
	line  int
	title string
}

// parsed is a whole level file.
type parsed struct {
	title  string
	levels []*core.Level
}

// Parse reads every level in r. source is used in error messages only.
// The first invalid level aborts parsing.
func Parse(source string, r io.Reader) ([]*core.Level, error) {
	p, err := parse(source, r)
	if err != nil {
		return nil, err
	}
	return p.levels, nil
}

func parse(source string, r io.Reader) (*parsed, error) {
	out := &parsed{}
	var blocks []block
	var cur block
	pendingTitle := ""

	flush := func() {
		if len(cur.rows) > 0 {
			blocks = append(blocks, cur)
		}
		cur = block{}
	}

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r\n")

		if i := strings.IndexByte(line, ';'); i >= 0 {
			comment := strings.TrimSpace(line[i+1:])
			line = line[:i]
			if strings.HasPrefix(strings.ToLower(comment), titleDirective) {
				if out.title == "" {
					out.title = strings.TrimSpace(comment[len(titleDirective):])
				}
			} else if comment != "" {
				if strings.TrimSpace(line) == "" {
					pendingTitle = comment
				} else if cur.title == "" && pendingTitle == "" {
					cur.title = comment
				}
			}
		}

		if line == "" {
			flush()
			continue
		}
		if len(cur.rows) == 0 {
			cur.line = lineNo
			if cur.title == "" {
				cur.title = pendingTitle
			}
			pendingTitle = ""
		}
		cur.rows = append(cur.rows, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("levels: reading %s: %w", source, err)
	}
	flush()

	if len(blocks) == 0 {
		return nil, &LoadError{Source: source, Err: ErrEmptyLevel}
	}

	for i, b := range blocks {
		lvl, err := buildLevel(b, i+1)
		if err != nil {
			err.Source = source
			return nil, err
		}
		out.levels = append(out.levels, lvl)
	}
	return out, nil
}

// buildLevel converts one map block into a validated level template.
func buildLevel(b block, num int) (*core.Level, *LoadError) {
	width := 0
	for _, row := range b.rows {
		width = max(width, len(row))
	}

	grid := core.NewGrid(width, len(b.rows))
	start := core.State{Facing: core.DirDown}
	var goals []core.Coord
	players := 0

	for y, row := range b.rows {
		for x := 0; x < len(row); x++ {
			c := core.C(x, y)
			switch row[x] {
			case '#', 'x':
				grid.Set(c, core.TileWall)
			case 'o':
				grid.Set(c, core.TileFloorInside)
			case ' ':
			case '@':
				start.Player = c
				players++
			case '+':
				start.Player = c
				goals = append(goals, c)
				players++
			case 'p':
				start.Player = c
				start.Buttons = append(start.Buttons, c)
				players++
			case '.':
				goals = append(goals, c)
			case '$':
				start.Boxes = append(start.Boxes, c)
			case '*':
				start.Boxes = append(start.Boxes, c)
				goals = append(goals, c)
			case 's':
				start.Boxes = append(start.Boxes, c)
				start.Buttons = append(start.Buttons, c)
			case 'b':
				start.Buttons = append(start.Buttons, c)
			case 'd':
				start.Doors = append(start.Doors, c)
			default:
				return nil, &LoadError{
					Level:  num,
					Line:   b.line + y,
					Detail: fmt.Sprintf("%q at column %d", row[x], x+1),
					Err:    ErrUnknownSymbol,
				}
			}
		}
	}

	fail := func(err error, detail string) *LoadError {
		return &LoadError{Level: num, Line: b.line, Detail: detail, Err: err}
	}
	switch {
	case players == 0:
		return nil, fail(ErrNoPlayer, "")
	case players > 1:
		return nil, fail(ErrMultiplePlayers, fmt.Sprintf("found %d", players))
	case len(goals) == 0:
		return nil, fail(ErrNoGoals, "")
	case len(start.Boxes) < len(goals):
		return nil, fail(ErrNotEnoughBoxes, fmt.Sprintf("%d stars for %d goals", len(start.Boxes), len(goals)))
	}

	name := b.title
	if name == "" {
		name = fmt.Sprintf("Level %d", num)
	}
	return core.NewLevel(name, grid, goals, start), nil
}
