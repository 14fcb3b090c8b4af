package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MenuChoice identifies a main menu entry.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceSelectLevel
	ChoiceInstructions
	ChoiceQuit
)

// MenuItem is one selectable entry of the main menu.
type MenuItem struct {
	Choice      MenuChoice
	Title       string
	Description string
}

var menuItems = []MenuItem{
	{ChoicePlay, "Play", "Continue from the current level"},
	{ChoiceSelectLevel, "Select Level", "Pick any level and see your stars"},
	{ChoiceInstructions, "Instructions", "Rules, controls and scoring"},
	{ChoiceQuit, "Quit", "Leave the warehouse"},
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	subtitle  string
	keyMapper *KeyMapper
	selected  MenuChoice
}

// NewMenuModel creates a new menu model. subtitle is shown under the title,
// typically the current level.
func NewMenuModel(width, height int, subtitle string) MenuModel {
	return MenuModel{
		items:     menuItems,
		width:     width,
		height:    height,
		subtitle:  subtitle,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.selected = ChoiceQuit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		m.selected = m.items[m.cursor].Choice
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Render("S O K O B A N"))
	b.WriteString("\n")
	if m.subtitle != "" {
		b.WriteString(theme.Subtitle.Render(m.subtitle))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range m.items {
		if i == m.cursor {
			b.WriteString(theme.ItemActive.Render("> " + item.Title))
			b.WriteString("\n")
			b.WriteString(theme.Description.Render("  " + item.Description))
		} else {
			b.WriteString(theme.ItemNormal.Render("  " + item.Title))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Help.Render("↑/↓ navigate • enter select • q quit"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

// Selected returns the chosen entry, or ChoiceNone while the menu is open.
func (m MenuModel) Selected() MenuChoice {
	return m.selected
}
