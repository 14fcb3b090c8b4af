package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var instructionSections = []struct {
	heading string
	lines   []string
}{
	{"Goal", []string{
		"Push every box onto a storage spot.",
		"A level is solved when no box is left off a spot.",
	}},
	{"Rules", []string{
		"You walk one square at a time and cannot pass walls.",
		"Walking into a box pushes it if the square behind it is free.",
		"Boxes cannot be pulled, and you can push only one at a time.",
	}},
	{"Legend", []string{
		"██ wall   ·· spot   [] box   <> you",
		"A box on a spot turns green.",
	}},
	{"Scoring", []string{
		"★★★  moves and pushes both within par +20%",
		"★★☆  moves or pushes within par +60%",
		"★☆☆  any other solution",
		"Only your best result per level is kept.",
	}},
}

// InstructionsModel shows the rules and controls.
type InstructionsModel struct {
	width  int
	height int
	help   help.Model
	keys   GameKeyMap
	done   bool
	quit   bool
}

// NewInstructionsModel creates the instructions screen.
func NewInstructionsModel(width, height int) InstructionsModel {
	h := help.New()
	h.ShowAll = true
	return InstructionsModel{
		width:  width,
		height: height,
		help:   h,
		keys:   DefaultGameKeyMap(),
	}
}

// Init initializes the instructions model.
func (m InstructionsModel) Init() tea.Cmd {
	return nil
}

// Update closes the screen on any menu key.
func (m InstructionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quit = true
		case "esc", "b", "enter", " ":
			m.done = true
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the instructions.
func (m InstructionsModel) View() string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("HOW TO PLAY"))
	b.WriteString("\n\n")

	for _, sec := range instructionSections {
		b.WriteString(theme.Heading.Render(sec.heading))
		b.WriteString("\n")
		for _, l := range sec.lines {
			b.WriteString("  " + l + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(theme.Heading.Render("Controls"))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\n")
	b.WriteString(theme.Help.Render("esc/enter back • q quit"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Panel.Render(b.String()))
}

// IsDone returns true when the user closed the screen.
func (m InstructionsModel) IsDone() bool {
	return m.done
}

// IsQuitting returns true if user wants to quit entirely.
func (m InstructionsModel) IsQuitting() bool {
	return m.quit
}
