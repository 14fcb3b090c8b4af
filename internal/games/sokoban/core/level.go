package core

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidLevelFormat is returned when a level map cannot produce a playable board.
var ErrInvalidLevelFormat = errors.New("invalid level format")

// Level is a static level descriptor.
type Level struct {
	ID        int
	Name      string
	Map       []string // Rows of the level map; rows may differ in length
	ParMoves  int
	ParPushes int
	Hint      string // Optional solution hint
	Demo      string // Optional prerecorded moves (u/d/l/r) for auto-solve
}

// HasDemo reports whether the level carries a prerecorded solution.
func (l Level) HasDemo() bool {
	return l.Demo != ""
}

// State is the game state for one attempt at a level.
// States are values: Move never modifies its input, and a rejected move
// returns a State equal (==) to the one passed in.
type State struct {
	Board    *Board
	Moves    int
	Pushes   int
	Complete bool
	Stars    int // 0 until Complete
}

// Accepted reports whether s was produced by a move that changed prev.
func (s State) Accepted(prev State) bool {
	return s != prev
}

// NewState parses a level map into a fresh state.
//
// Legend: '#' wall, ' ' floor, '.' spot, '$' box, '@' player, '*' box on spot,
// '+' player on spot. Any other character is floor. The map must contain
// exactly one player.
func NewState(level Level) (State, error) {
	board, err := parseMap(level.Map)
	if err != nil {
		return State{}, fmt.Errorf("level %d: %w", level.ID, err)
	}
	return State{Board: board}, nil
}

// MustState is like NewState but panics on error.
func MustState(level Level) State {
	s, err := NewState(level)
	if err != nil {
		panic(err)
	}
	return s
}

func parseMap(rows []string) (*Board, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty map", ErrInvalidLevelFormat)
	}

	w := 0
	rowLens := make([]int, len(rows))
	for y, row := range rows {
		rowLens[y] = utf8.RuneCountInString(row)
		if rowLens[y] > w {
			w = rowLens[y]
		}
	}
	if w == 0 {
		return nil, fmt.Errorf("%w: empty map", ErrInvalidLevelFormat)
	}

	b := &Board{
		w:       w,
		h:       len(rows),
		cells:   make([]Tile, w*len(rows)),
		rowLens: rowLens,
	}

	players := 0
	for y, row := range rows {
		x := 0
		for _, r := range row {
			t := TileFromRune(r)
			if t.IsPlayer() {
				players++
				b.player = C(x, y)
			}
			b.cells[y*w+x] = t
			x++
		}
	}

	switch {
	case players == 0:
		return nil, fmt.Errorf("%w: no player", ErrInvalidLevelFormat)
	case players > 1:
		return nil, fmt.Errorf("%w: %d players", ErrInvalidLevelFormat, players)
	}

	return b, nil
}
