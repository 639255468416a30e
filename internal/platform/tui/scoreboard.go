package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/starpusher/internal/registry"
	"github.com/vovakirdan/starpusher/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show pack list sidebar
	sidebarWidth       = 20 // Width of pack list sidebar
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Select   key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextPack key.Binding
	PrevPack key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPack, k.PrevPack, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPack, k.PrevPack},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev pack"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next pack"),
		),
		NextPack: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pack"),
		),
		PrevPack: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev pack"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	packs       []registry.GameInfo // List of available packs
	packCursor  int                 // Currently selected pack index
	store       *storage.Store      // Solve storage
	bests       []storage.LevelBest
	stats       map[string]*storage.PackStats // Per-pack progress for the sidebar
	err         error                         // Last load error, shown instead of the table
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show pack list sidebar
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	keys := DefaultScoreboardKeyMap()
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		packs:       registry.List(),
		store:       store,
		keys:        keys,
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	// Initialize table
	m.table = m.createTable()

	if store != nil {
		if stats, err := store.GetAllPackStats(); err == nil {
			m.stats = stats
		}
	}
	if len(m.packs) > 0 {
		m.loadBests(m.packs[0].ID)
	}

	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Level", Width: 12},
		{Title: "Best", Width: 6},
		{Title: "By", Width: 10},
		{Title: "Solves", Width: 6},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}

	// Give spare width to the level name
	if spare := tableWidth - 48; spare > 0 {
		columns[1].Width += min(spare, 16)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadBests loads the per-level records of the given pack.
func (m *ScoreboardModel) loadBests(packID string) {
	m.bests, m.err = nil, nil
	if m.store != nil {
		m.bests, m.err = m.store.PackBests(packID)
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current records.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.bests))
	for i, lb := range m.bests {
		name := lb.LevelName
		if name == "" {
			name = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", lb.Level+1),
			name,
			fmt.Sprintf("%d", lb.Steps),
			lb.Player,
			fmt.Sprintf("%d", lb.Solves),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextPack), key.Matches(msg, m.keys.Right):
			if len(m.packs) > 0 {
				m.packCursor = (m.packCursor + 1) % len(m.packs)
				m.loadBests(m.packs[m.packCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevPack), key.Matches(msg, m.keys.Left):
			if len(m.packs) > 0 {
				m.packCursor = (m.packCursor - 1 + len(m.packs)) % len(m.packs)
				m.loadBests(m.packs[m.packCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	theme := GetTheme()
	title := "BEST SOLUTIONS"
	if p, ok := m.currentPack(); ok {
		title = "BEST SOLUTIONS - " + p.Title
	}

	var b strings.Builder
	b.WriteString(theme.MenuTitle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	body := m.boxStyle().Render(m.renderTableContent() + "\n" + m.renderSummary())
	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", body))
	} else {
		b.WriteString(centerText(m.renderPackSwitcher(), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(body, m.width))
	}

	b.WriteString("\n")
	b.WriteString(theme.MenuControls.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) currentPack() (registry.GameInfo, bool) {
	if len(m.packs) == 0 {
		return registry.GameInfo{}, false
	}
	return m.packs[m.packCursor], true
}

func (m ScoreboardModel) boxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
}

// packProgress returns solved/total for a pack, e.g. "3/5".
func (m ScoreboardModel) packProgress(p registry.GameInfo) (string, bool) {
	solved := 0
	if st := m.stats[p.ID]; st != nil {
		solved = st.LevelsSolved
	}
	return fmt.Sprintf("%d/%d", solved, p.Levels), p.Levels > 0 && solved >= p.Levels
}

// renderSidebar lists every pack with its progress.
func (m ScoreboardModel) renderSidebar() string {
	theme := GetTheme()
	var sb strings.Builder
	sb.WriteString("Packs\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, p := range m.packs {
		progress, complete := m.packProgress(p)
		name := truncate(p.Title, sidebarWidth-8-len(progress))
		line := fmt.Sprintf("%-*s %s", sidebarWidth-6-len(progress), name, progress)

		style := theme.MenuItemNormal
		if complete {
			style = theme.MenuItemSolved
		}
		cursor := "  "
		if i == m.packCursor {
			cursor = "> "
			style = theme.MenuItemActive
		}
		sb.WriteString(style.Render(cursor + line))
		sb.WriteString("\n")
	}

	return m.boxStyle().Width(sidebarWidth).Render(sb.String())
}

// renderPackSwitcher shows the current pack between arrows on narrow screens.
func (m ScoreboardModel) renderPackSwitcher() string {
	p, ok := m.currentPack()
	if !ok {
		return ""
	}
	progress, _ := m.packProgress(p)
	label := fmt.Sprintf("< %s (%s) >", p.Title, progress)
	if len(m.packs) > 1 {
		label += fmt.Sprintf("  pack %d of %d", m.packCursor+1, len(m.packs))
	}
	return GetTheme().MenuItemActive.Render(label)
}

// renderSummary is the one-line total under the table.
func (m ScoreboardModel) renderSummary() string {
	p, ok := m.currentPack()
	if !ok || len(m.bests) == 0 {
		return ""
	}
	total := 0
	for _, lb := range m.bests {
		total += lb.Steps
	}
	line := fmt.Sprintf("%d of %d levels solved, %d steps in total", len(m.bests), p.Levels, total)
	if st := m.stats[p.ID]; st != nil && !st.LastPlayed.IsZero() {
		line += ", last solve " + st.LastPlayed.Format("2006-01-02")
	}
	return GetTheme().MenuDescription.Render(line)
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := GetTheme().MenuDescription.
		Italic(true).
		Padding(2, 4)
	if m.err != nil {
		return emptyStyle.Render("Could not load solves:\n" + m.err.Error())
	}
	if len(m.bests) == 0 {
		return emptyStyle.Render("No levels solved yet.\nPush every star onto a goal to set a record!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
