package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/starpusher/internal/core"
	"github.com/vovakirdan/starpusher/internal/registry"
	"github.com/vovakirdan/starpusher/internal/storage"
)

// LevelSelection holds the user's choice from the level picker.
type LevelSelection struct {
	Level int // 0 = start from beginning, 1-N = specific level
}

// LevelMenuModel is the level picker for one pack.
type LevelMenuModel struct {
	title        string
	levelNames   []string
	best         map[int]storage.LevelBest
	cursor       int
	scrollOffset int
	width        int
	height       int
	keyMapper    *KeyMapper
	theme        Theme
	selection    LevelSelection
	choosing     bool
	quitting     bool
	back         bool
}

// NewLevelMenuModel creates a level picker for the given pack. bests may be nil.
func NewLevelMenuModel(title string, names []string, bests []storage.LevelBest, width, height int) LevelMenuModel {
	best := make(map[int]storage.LevelBest, len(bests))
	for _, lb := range bests {
		best[lb.Level] = lb
	}
	return LevelMenuModel{
		title:      title,
		levelNames: names,
		best:       best,
		width:      width,
		height:     height,
		keyMapper:  NewKeyMapper(),
		theme:      GetTheme(),
		choosing:   true,
	}
}

// levelNames lists the level names of a game, numbering unnamed levels.
func levelNames(g registry.Game) []string {
	lc, ok := g.(registry.LevelCounter)
	if !ok {
		return nil
	}
	ln, _ := g.(levelNamer)
	names := make([]string, lc.LevelCount())
	for i := range names {
		if ln != nil {
			names[i] = ln.LevelName(i)
		}
		if names[i] == "" {
			names[i] = fmt.Sprintf("Level %d", i+1)
		}
	}
	return names
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.levelNames) {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = LevelSelection{Level: m.cursor}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// visibleItems is the number of level rows that fit between header and footer.
func (m LevelMenuModel) visibleItems() int {
	return max(m.height-10, 3)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *LevelMenuModel) updateScroll() {
	// Cursor 0 is the "Start from Beginning" row, levels start at 1.
	if m.cursor == 0 {
		m.scrollOffset = 0
		return
	}
	row := m.cursor - 1
	visible := m.visibleItems()
	if row < m.scrollOffset {
		m.scrollOffset = row
	} else if row >= m.scrollOffset+visible {
		m.scrollOffset = row - visible + 1
	}
}

// View renders the level selection.
func (m LevelMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render(strings.ToUpper(m.title)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Select a level:"), m.width))
	b.WriteString("\n\n")

	if m.scrollOffset == 0 {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if m.cursor == 0 {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		b.WriteString(centerText(style.Render(fmt.Sprintf("%-34s", cursor+"Start from Beginning")), m.width))
		b.WriteString("\n")
	}

	startIdx := m.scrollOffset
	endIdx := min(startIdx+m.visibleItems(), len(m.levelNames))

	for i := startIdx; i < endIdx; i++ {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i+1 == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}

		line := style.Render(fmt.Sprintf("%s%2d. %-24s", cursor, i+1, truncate(m.levelNames[i], 24)))
		if lb, ok := m.best[i]; ok {
			line += m.theme.MenuItemSolved.Render(fmt.Sprintf(" best %d", lb.Steps))
		} else {
			line += m.theme.MenuDescription.Render(" -")
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	if endIdx < len(m.levelNames) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := m.theme.MenuControls.Render("Up/Down: Navigate  |  Enter: Select  |  Esc: Back  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Selected returns the selection, or nil if still choosing.
func (m LevelMenuModel) Selected() *LevelSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelMenuModel) WantsBack() bool {
	return m.back
}

// newLevelMenuForPack builds the picker for a registered pack.
func newLevelMenuForPack(store *storage.Store, packID string, width, height int) (LevelMenuModel, error) {
	g, err := registry.Create(packID)
	if err != nil {
		return LevelMenuModel{}, err
	}
	var bests []storage.LevelBest
	if store != nil {
		if bests, err = store.PackBests(packID); err != nil {
			return LevelMenuModel{}, err
		}
	}
	return NewLevelMenuModel(g.Title(), levelNames(g), bests, width, height), nil
}

// RunLevelSelector runs the level picker for a pack. A nil selection means
// the user went back or quit; quit is reported separately.
func RunLevelSelector(store *storage.Store, packID string, cfg core.RuntimeConfig) (sel *LevelSelection, quit bool, err error) {
	model, err := newLevelMenuForPack(store, packID, cfg.ScreenW, cfg.ScreenH)
	if err != nil {
		return nil, false, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, false, err
	}

	m, ok := finalModel.(LevelMenuModel)
	if !ok {
		return nil, true, nil
	}
	if m.IsQuitting() {
		return nil, true, nil
	}
	if m.WantsBack() {
		return nil, false, nil
	}
	return m.Selected(), false, nil
}
