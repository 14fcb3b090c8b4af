package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	platformcore "github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

// Progress stores solved levels for one player.
type Progress interface {
	sokoban.ProgressRecorder
	StarsByLevel() (map[int]int, error)
}

// Settings holds the session options taken from configuration.
type Settings struct {
	Interval  time.Duration // delay between auto-solve steps
	ShowHints bool
	StartID   int // level to start on, 0 for the first
}

type screen int

const (
	screenMenu screen = iota
	screenSelect
	screenInstructions
	screenGame
)

// SessionModel manages the full session flow: menu -> level select or
// instructions -> game -> menu. It is the top-level model for both local
// and SSH play.
type SessionModel struct {
	levels   []core.Level
	progress Progress
	settings Settings
	config   platformcore.RuntimeConfig

	game         *sokoban.Game
	current      screen
	menu         MenuModel
	levelSelect  LevelSelectModel
	instructions InstructionsModel
	gameModel    *GameModel
	quitting     bool

	// playbackGen carries the auto-solve run id from one game screen to the
	// next so ticks of an earlier run never match a later one.
	playbackGen int
}

// NewSessionModel creates a new session model. progress may be nil.
func NewSessionModel(lvls []core.Level, progress Progress, settings Settings, cfg platformcore.RuntimeConfig) SessionModel {
	opts := []sokoban.Option{
		sokoban.WithHints(settings.ShowHints),
		sokoban.WithStartLevel(settings.StartID),
	}
	if progress != nil {
		opts = append(opts, sokoban.WithProgress(progress))
	}

	m := SessionModel{
		levels:   lvls,
		progress: progress,
		settings: settings,
		config:   cfg,
		game:     sokoban.New(lvls, opts...),
	}
	m.levels = m.game.Levels()
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	lvl := m.game.Level()
	subtitle := fmt.Sprintf("Level %d: %s", lvl.ID, lvl.Name)
	return NewMenuModel(m.config.ScreenW, m.config.ScreenH, subtitle)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenSelect:
		return m.updateSelect(msg)
	case screenInstructions:
		return m.updateInstructions(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch m.menu.Selected() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoicePlay:
		return m.startGame()

	case ChoiceSelectLevel:
		m.levelSelect = NewLevelSelectModel(m.levels, m.bestStars(), m.game.Level().ID,
			m.config.ScreenW, m.config.ScreenH)
		m.current = screenSelect
		return m, m.levelSelect.Init()

	case ChoiceInstructions:
		m.instructions = NewInstructionsModel(m.config.ScreenW, m.config.ScreenH)
		m.current = screenInstructions
		return m, m.instructions.Init()
	}

	return m, cmd
}

// updateSelect handles updates on the level list.
func (m SessionModel) updateSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.levelSelect.Update(msg)
	if ls, ok := newModel.(LevelSelectModel); ok {
		m.levelSelect = ls
	}

	switch {
	case m.levelSelect.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.levelSelect.IsGoingBack():
		return m.backToMenu()
	}

	// The list shows m.levels, the game's own level list, so rows and
	// game indices match.
	if i, ok := m.levelSelect.Selected(); ok {
		if m.levels[i].ID != m.game.Level().ID {
			m.game.SelectIndex(i)
		}
		return m.startGame()
	}

	return m, cmd
}

// updateInstructions handles updates on the instructions screen.
func (m SessionModel) updateInstructions(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.instructions.Update(msg)
	if im, ok := newModel.(InstructionsModel); ok {
		m.instructions = im
	}

	switch {
	case m.instructions.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.instructions.IsDone():
		return m.backToMenu()
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	// Check if user quit entirely
	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// Check if user left the game (back to menu)
	if m.gameModel.BackToMenu() {
		m.playbackGen = m.gameModel.playbackGen
		m.gameModel = nil
		return m.backToMenu()
	}

	return m, cmd
}

// startGame switches to the game screen on the current level.
func (m SessionModel) startGame() (tea.Model, tea.Cmd) {
	gm := NewGameModel(m.game, m.config, m.settings.Interval)
	gm.playbackGen = m.playbackGen
	m.gameModel = &gm
	m.current = screenGame
	return m, m.gameModel.Init()
}

// backToMenu returns to a fresh main menu.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.current = screenMenu
	m.menu = m.newMenu()
	return m, m.menu.Init()
}

// bestStars returns the stored stars per level, or nil without storage.
func (m SessionModel) bestStars() map[int]int {
	if m.progress == nil {
		return nil
	}
	best, err := m.progress.StarsByLevel()
	if err != nil {
		return nil
	}
	return best
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.gameModel.View()
	case screenSelect:
		return m.levelSelect.View()
	case screenInstructions:
		return m.instructions.View()
	}
	return m.menu.View()
}

// Game returns the game driven by this session.
func (m SessionModel) Game() *sokoban.Game {
	return m.game
}

// RunSession runs the interactive menu and game flow until the user quits.
func RunSession(lvls []core.Level, progress Progress, settings Settings, cfg platformcore.RuntimeConfig) error {
	model := NewSessionModel(lvls, progress, settings, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
