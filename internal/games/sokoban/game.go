// Package sokoban provides the Sokoban puzzle game for the terminal platform.
//
// Game owns the level list, the current core.State and the session extras
// around it (retries, hint toggle, auto-solve). All board rules live in the
// core subpackage; this package only decides which operation to call.
package sokoban

import (
	"fmt"

	platformcore "github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/replay"
)

// ProgressRecorder receives the result of every solved level.
type ProgressRecorder interface {
	RecordCompletion(levelID, stars int) error
}

// Option configures a Game.
type Option func(*Game)

// WithProgress reports solved levels to p.
func WithProgress(p ProgressRecorder) Option {
	return func(g *Game) { g.progress = p }
}

// WithHints shows the hint text from the start.
func WithHints(show bool) Option {
	return func(g *Game) { g.showHint = show }
}

// WithStartLevel starts at the level with the given ID if it exists.
func WithStartLevel(id int) Option {
	return func(g *Game) {
		if i := levels.Index(g.levels, id); i >= 0 {
			g.index = i
		}
	}
}

// Game implements the Sokoban puzzle game.
type Game struct {
	levels []core.Level
	index  int
	state  core.State

	retries  int
	showHint bool
	playback *replay.Playback
	progress ProgressRecorder
	recorded bool
	err      error // last level load or progress error, shown in the HUD

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool

	tick uint64
}

// New creates a game over the given levels. If lvls is empty the built-in
// catalog is used.
func New(lvls []core.Level, opts ...Option) *Game {
	if len(lvls) == 0 {
		lvls = levels.Builtin()
	}
	g := &Game{levels: lvls}
	for _, opt := range opts {
		opt(g)
	}
	g.loadLevel()
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "sokoban"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Sokoban"
}

// Reset adapts the game to the screen. The current level and its progress
// are kept; use Restart to start the level over.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.checkScreenSize()
}

// loadLevel builds a fresh state for the current level.
func (g *Game) loadLevel() {
	g.stopAutoplay()
	g.recorded = false
	g.err = nil

	s, err := core.NewState(g.Level())
	if err != nil {
		g.state = core.State{}
		g.err = err
		return
	}
	g.state = s
	g.checkScreenSize()
}

// checkScreenSize checks if the screen can hold the board, HUD and footer.
func (g *Game) checkScreenSize() {
	if g.screenW == 0 && g.screenH == 0 {
		return
	}
	minW, minH := minScreenW, minScreenH
	if b := g.state.Board; b != nil {
		minW = platformcore.Max(minW, b.W()*cellW+2)
		minH = platformcore.Max(minH, b.H()+hudHeight+footerHeight)
	}
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step handles the actions of one input frame.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	switch {
	case in.Has(platformcore.ActionBack) && g.Autoplaying():
		g.stopAutoplay()
	case in.Has(platformcore.ActionRestart):
		g.Restart()
	case in.Has(platformcore.ActionNext):
		g.NextLevel()
	case in.Has(platformcore.ActionPrev):
		g.PrevLevel()
	case in.Has(platformcore.ActionAutoSolve):
		g.StartAutoplay()
	}

	if in.Has(platformcore.ActionHint) {
		g.showHint = !g.showHint
	}

	if g.tooSmall || g.Autoplaying() {
		return platformcore.StepResult{State: g.State()}
	}

	if d, ok := moveDir(in); ok {
		g.Move(d)
	}

	return platformcore.StepResult{State: g.State()}
}

// moveDir returns the first directional action in the frame.
func moveDir(in platformcore.InputFrame) (core.Dir, bool) {
	switch {
	case in.Has(platformcore.ActionUp):
		return core.DirUp, true
	case in.Has(platformcore.ActionDown):
		return core.DirDown, true
	case in.Has(platformcore.ActionLeft):
		return core.DirLeft, true
	case in.Has(platformcore.ActionRight):
		return core.DirRight, true
	}
	return 0, false
}

// Move applies one player move and reports whether it was accepted.
func (g *Game) Move(d core.Dir) bool {
	next := core.Move(g.state, d, g.Level())
	if !next.Accepted(g.state) {
		return false
	}
	g.state = next
	g.afterMove()
	return true
}

// afterMove records a completed level once.
func (g *Game) afterMove() {
	if !g.state.Complete || g.recorded {
		return
	}
	g.recorded = true
	if g.progress == nil {
		return
	}
	if err := g.progress.RecordCompletion(g.Level().ID, g.state.Stars); err != nil {
		g.err = fmt.Errorf("saving progress: %w", err)
	}
}

// Restart resets the current level and counts a retry.
func (g *Game) Restart() {
	g.retries++
	g.loadLevel()
}

// NextLevel moves to the following level. It reports false on the last one.
func (g *Game) NextLevel() bool {
	if !g.HasNext() {
		return false
	}
	return g.SelectIndex(g.index + 1)
}

// PrevLevel moves to the preceding level. It reports false on the first one.
func (g *Game) PrevLevel() bool {
	if g.index == 0 {
		return false
	}
	return g.SelectIndex(g.index - 1)
}

// SelectIndex loads the level at position i and clears the retry counter.
func (g *Game) SelectIndex(i int) bool {
	if i < 0 || i >= len(g.levels) {
		return false
	}
	g.index = i
	g.retries = 0
	g.loadLevel()
	return true
}

// SelectLevel loads the level with the given ID.
func (g *Game) SelectLevel(id int) error {
	i := levels.Index(g.levels, id)
	if i < 0 {
		return fmt.Errorf("sokoban: unknown level %d", id)
	}
	g.SelectIndex(i)
	return nil
}

// HasNext reports whether a level follows the current one.
func (g *Game) HasNext() bool {
	return g.index < len(g.levels)-1
}

// StartAutoplay resets the level and starts playing its demo.
// It reports false when the level has no demo.
func (g *Game) StartAutoplay() bool {
	if !g.Level().HasDemo() {
		return false
	}
	g.loadLevel()
	if g.err != nil {
		return false
	}
	g.playback = replay.NewPlayback(g.Level().Demo)
	return true
}

// StepAutoplay applies the next demo step. It reports whether playback is
// still running afterwards.
func (g *Game) StepAutoplay() bool {
	if g.playback == nil {
		return false
	}
	next, reason := g.playback.Next(g.state, g.Level())
	if next.Accepted(g.state) {
		g.state = next
		g.afterMove()
	}
	if reason != replay.Running {
		g.playback = nil
		return false
	}
	return true
}

// stopAutoplay cancels a running demo.
func (g *Game) stopAutoplay() {
	if g.playback != nil {
		g.playback.Stop()
		g.playback = nil
	}
}

// Autoplaying reports whether a demo is being played.
func (g *Game) Autoplaying() bool {
	return g.playback != nil
}

// Level returns the current level descriptor.
func (g *Game) Level() core.Level {
	if len(g.levels) == 0 {
		return core.Level{}
	}
	return g.levels[g.index]
}

// Levels returns the level list.
func (g *Game) Levels() []core.Level {
	return g.levels
}

// Current returns the current game state.
func (g *Game) Current() core.State {
	return g.state
}

// Retries returns how often the current level was restarted.
func (g *Game) Retries() int {
	return g.retries
}

// Err returns the last level load or progress error.
func (g *Game) Err() error {
	return g.err
}

// State returns the platform view of the game.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    g.state.Stars,
		GameOver: g.state.Complete,
		Paused:   g.tooSmall || g.Autoplaying(),
	}
}
