package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // UI ticks per second (default 30)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState represents the current status of a game session.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Stars earned on the current level, 0 until it is solved
	GameOver bool // Whether the current level is complete
	Paused   bool // Whether player input is suspended (auto-solve running)
}

// StepResult is returned by Game.Step() after each tick.
type StepResult struct {
	State GameState
}
