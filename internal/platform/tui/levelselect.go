package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

// Level select layout constants
const (
	minWidthForPreview = 90 // Minimum width to show the map preview panel
	nameMinWidth       = 12
	nameMaxWidth       = 28
)

// LevelSelectKeyMap defines the key bindings for the level list.
type LevelSelectKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LevelSelectKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k LevelSelectKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Back, k.Quit},
	}
}

// DefaultLevelSelectKeyMap returns default key bindings.
func DefaultLevelSelectKeyMap() LevelSelectKeyMap {
	return LevelSelectKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
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

// LevelSelectModel lists the levels with par values and best stars.
type LevelSelectModel struct {
	levels   []core.Level
	best     map[int]int // level ID -> best stars
	table    table.Model
	help     help.Model
	keys     LevelSelectKeyMap
	width    int
	height   int
	selected int  // row of the chosen level
	chosen   bool // a level was picked
	back     bool
	quitting bool
}

// NewLevelSelectModel creates the level list with the cursor on currentID.
func NewLevelSelectModel(lvls []core.Level, best map[int]int, currentID, width, height int) LevelSelectModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := LevelSelectModel{
		levels: lvls,
		best:   best,
		help:   h,
		keys:   DefaultLevelSelectKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.updateTableRows()
	for i, lvl := range lvls {
		if lvl.ID == currentID {
			m.table.SetCursor(i)
			break
		}
	}
	return m
}

// createTable creates the table sized for the current window.
func (m *LevelSelectModel) createTable() table.Model {
	nameW := nameMinWidth
	for _, lvl := range m.levels {
		nameW = max(nameW, len(lvl.Name))
	}
	nameW = min(nameW, nameMaxWidth)

	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Name", Width: nameW},
		{Title: "Size", Width: 7},
		{Title: "Par", Width: 9},
		{Title: "Best", Width: 6},
		{Title: "Demo", Width: 5},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)), // Leave room for title, help and borders
	)

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

// updateTableRows fills the table from the level list.
func (m *LevelSelectModel) updateTableRows() {
	rows := make([]table.Row, len(m.levels))
	for i, lvl := range m.levels {
		best := "-"
		if stars := m.best[lvl.ID]; stars > 0 {
			best = sokoban.StarString(stars)
		}
		demo := ""
		if lvl.HasDemo() {
			demo = "yes"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", lvl.ID),
			lvl.Name,
			levelSize(lvl),
			fmt.Sprintf("%d/%d", lvl.ParMoves, lvl.ParPushes),
			best,
			demo,
		}
	}
	m.table.SetRows(rows)
}

// levelSize returns the map dimensions as "WxH".
func levelSize(lvl core.Level) string {
	w := 0
	for _, row := range lvl.Map {
		w = max(w, len(row))
	}
	return fmt.Sprintf("%dx%d", w, len(lvl.Map))
}

// Init initializes the level select model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the level list.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if i := m.table.Cursor(); i >= 0 && i < len(m.levels) {
				m.selected = i
				m.chosen = true
			}
			return m, nil

		case key.Matches(msg, m.keys.Up):
			m.table.MoveUp(1)
			return m, nil

		case key.Matches(msg, m.keys.Down):
			m.table.MoveDown(1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		cursor := m.table.Cursor()
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the level list.
func (m LevelSelectModel) View() string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("SELECT LEVEL"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(m.summary()))
	b.WriteString("\n\n")

	list := theme.Panel.Render(m.table.View())
	if m.width >= minWidthForPreview {
		list = lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", m.renderPreview())
	}
	b.WriteString(list)

	b.WriteString("\n")
	b.WriteString(theme.Help.Render(m.help.View(m.keys)))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, b.String())
}

// summary returns the solved count and star total.
func (m LevelSelectModel) summary() string {
	solved, stars := 0, 0
	for _, lvl := range m.levels {
		if s := m.best[lvl.ID]; s > 0 {
			solved++
			stars += s
		}
	}
	return fmt.Sprintf("%d/%d solved • %d/%d stars", solved, len(m.levels), stars, len(m.levels)*3)
}

// renderPreview draws the map of the highlighted level.
func (m LevelSelectModel) renderPreview() string {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.levels) {
		return ""
	}
	lvl := m.levels[i]

	var b strings.Builder
	b.WriteString(theme.Heading.Render(lvl.Name))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(lvl.Map, "\n"))
	return theme.Panel.Render(b.String())
}

// Selected returns the position of the chosen level in the list.
// ok is false while the list is still open.
func (m LevelSelectModel) Selected() (index int, ok bool) {
	return m.selected, m.chosen
}

// IsGoingBack returns true if user wants to go back to menu.
func (m LevelSelectModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit entirely.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}
