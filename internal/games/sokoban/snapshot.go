package sokoban

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAutoplay    GameStateType = "autoplay"
	StateComplete    GameStateType = "complete"
	StateUnplayable  GameStateType = "unplayable"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for testing and replay checks.
type Snapshot struct {
	Tick    uint64
	LevelID int
	Index   int // 0-based position in the level list
	Name    string
	Moves   int
	Pushes  int
	Stars   int
	Retries int
	Hint    bool
	Board   string
	State   GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.state.Board == nil:
		state = StateUnplayable
	case g.Autoplaying():
		state = StateAutoplay
	case g.state.Complete:
		state = StateComplete
	}

	var board string
	if g.state.Board != nil {
		board = g.state.Board.String()
	}

	lvl := g.Level()
	return Snapshot{
		Tick:    g.tick,
		LevelID: lvl.ID,
		Index:   g.index,
		Name:    lvl.Name,
		Moves:   g.state.Moves,
		Pushes:  g.state.Pushes,
		Stars:   g.state.Stars,
		Retries: g.retries,
		Hint:    g.showHint,
		Board:   board,
		State:   state,
	}
}
