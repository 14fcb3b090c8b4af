package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sokoban/internal/core"
)

// Game is what the UI loop needs from a game.
// Games contain pure logic with no Bubble Tea dependency; the platform
// handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset adapts the game to the given screen size.
	Reset(cfg core.RuntimeConfig)

	// Step handles the actions of one input frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Autoplayer is implemented by games that can play a recorded solution.
type Autoplayer interface {
	// Autoplaying reports whether a recording is being played.
	Autoplaying() bool

	// StepAutoplay applies one recorded move and reports whether more follow.
	StepAutoplay() bool
}

// GameModel is the Bubble Tea model for running the game.
type GameModel struct {
	game      Game
	screen    *core.Screen
	config    core.RuntimeConfig
	interval  time.Duration // delay between auto-solve steps
	keyMapper *KeyMapper
	gameState core.GameState

	// playbackGen identifies the current auto-solve run. It changes whenever
	// a run starts or stops so pending PlaybackMsg ticks become stale.
	playbackGen int

	standalone bool // esc quits instead of returning to a menu
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a new game model.
func NewGameModel(game Game, cfg core.RuntimeConfig, interval time.Duration) GameModel {
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	return GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		interval:  interval,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Reset(m.config)
		return m, nil

	case TickMsg:
		m.gameState = m.game.State()
		return m, tickCmd(m.config.TickRate)

	case PlaybackMsg:
		return m.handlePlayback(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var frame core.InputFrame
	if m.keyMapper.MapKeyToFrame(msg, &frame) {
		m.quitting = true
		return m, tea.Quit
	}
	if frame.Empty() {
		return m, nil
	}

	wasPlaying := m.autoplaying()
	if frame.Has(core.ActionBack) && !wasPlaying {
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	result := m.game.Step(frame)
	m.gameState = result.State

	if !m.autoplaying() {
		if wasPlaying {
			m.playbackGen++
		}
		return m, nil
	}

	// A new run started, either fresh or replacing a running one.
	if !wasPlaying || frame.Has(core.ActionAutoSolve) {
		m.playbackGen++
		return m, playbackCmd(m.interval, m.playbackGen)
	}
	return m, nil
}

// handlePlayback applies one auto-solve step if msg belongs to the current run.
func (m GameModel) handlePlayback(msg PlaybackMsg) (tea.Model, tea.Cmd) {
	ap, ok := m.game.(Autoplayer)
	if !ok || msg.Gen != m.playbackGen || !ap.Autoplaying() {
		return m, nil
	}

	running := ap.StepAutoplay()
	m.gameState = m.game.State()
	if !running {
		m.playbackGen++
		return m, nil
	}
	return m, playbackCmd(m.interval, m.playbackGen)
}

func (m GameModel) autoplaying() bool {
	ap, ok := m.game.(Autoplayer)
	return ok && ap.Autoplaying()
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// GameState returns the game state seen at the last update.
func (m GameModel) GameState() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game until the user quits.
func Run(game Game, cfg core.RuntimeConfig, interval time.Duration) error {
	model := NewGameModel(game, cfg, interval)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
