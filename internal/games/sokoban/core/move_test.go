package core_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

var allDirs = []core.Dir{core.DirUp, core.DirDown, core.DirLeft, core.DirRight}

func level(parMoves, parPushes int, rows ...string) core.Level {
	return core.Level{ID: 99, Name: "test", Map: rows, ParMoves: parMoves, ParPushes: parPushes}
}

func mustState(t *testing.T, lvl core.Level) core.State {
	t.Helper()
	s, err := core.NewState(lvl)
	if err != nil {
		t.Fatalf("NewState failed: %v", err)
	}
	return s
}

// A small solvable level with room to walk around.
var roomLevel = level(10, 2,
	"#######",
	"#     #",
	"# $ . #",
	"#  @  #",
	"# $.  #",
	"#     #",
	"#######",
)

func TestNewStateInitialValues(t *testing.T) {
	s := mustState(t, roomLevel)

	if s.Moves != 0 || s.Pushes != 0 {
		t.Errorf("counters = %d/%d, want 0/0", s.Moves, s.Pushes)
	}
	if s.Complete {
		t.Error("new state should not be complete")
	}
	if s.Stars != 0 {
		t.Errorf("Stars = %d, want 0", s.Stars)
	}
	if got := s.Board.Player(); got != core.C(3, 3) {
		t.Errorf("Player() = %v, want (3,3)", got)
	}
	if got := s.Board.At(s.Board.Player()); got != core.Player {
		t.Errorf("tile at player = %v, want Player", got)
	}
	if s.Board.W() != 7 || s.Board.H() != 7 {
		t.Errorf("size = %dx%d, want 7x7", s.Board.W(), s.Board.H())
	}
}

func TestNewStateMirrorsMap(t *testing.T) {
	lvl := level(1, 1, "#+*$. #x")
	s := mustState(t, lvl)

	want := []core.Tile{core.Wall, core.PlayerOnSpot, core.BoxOnSpot, core.Box, core.Spot, core.Floor, core.Wall, core.Floor}
	for x, tile := range want {
		if got := s.Board.At(core.C(x, 0)); got != tile {
			t.Errorf("At(%d,0) = %v, want %v", x, got, tile)
		}
	}
}

func TestNewStateRaggedRows(t *testing.T) {
	rows := []string{
		"  ####",
		"###  ####",
		"#@ $ . #",
		"########",
	}
	s := mustState(t, level(5, 1, rows...))

	if s.Board.W() != 9 {
		t.Errorf("W() = %d, want 9 (longest row)", s.Board.W())
	}
	got := s.Board.Rows()
	for i := range rows {
		if got[i] != rows[i] {
			t.Errorf("Rows()[%d] = %q, want %q", i, got[i], rows[i])
		}
	}
	if tile := s.Board.At(core.C(8, 2)); tile != core.Void {
		t.Errorf("padding tile = %v, want Void", tile)
	}
}

func TestNewStateInvalid(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"nil map", nil},
		{"empty rows", []string{"", ""}},
		{"no player", []string{"#$.#"}},
		{"two players", []string{"#@$.@#"}},
		{"player and player on spot", []string{"#@$+#"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := core.NewState(level(1, 1, tc.rows...))
			if !errors.Is(err, core.ErrInvalidLevelFormat) {
				t.Errorf("NewState error = %v, want ErrInvalidLevelFormat", err)
			}
		})
	}
}

func TestMustStatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustState should panic on an invalid map")
		}
	}()
	core.MustState(level(1, 1, "#$.#"))
}

// Scenario A: one push solves the level.
func TestMovePushOntoSpotCompletes(t *testing.T) {
	lvl := level(1, 1, "#@$.#")
	s := mustState(t, lvl)

	next := core.Move(s, core.DirRight, lvl)

	if !next.Accepted(s) {
		t.Fatal("push should be accepted")
	}
	if got := next.Board.At(core.C(1, 0)); got != core.Floor {
		t.Errorf("origin = %v, want Floor", got)
	}
	if got := next.Board.At(core.C(2, 0)); got != core.Player {
		t.Errorf("player cell = %v, want Player", got)
	}
	if got := next.Board.At(core.C(3, 0)); got != core.BoxOnSpot {
		t.Errorf("box cell = %v, want BoxOnSpot", got)
	}
	if next.Board.Player() != core.C(2, 0) {
		t.Errorf("Player() = %v, want (2,0)", next.Board.Player())
	}
	if next.Moves != 1 || next.Pushes != 1 {
		t.Errorf("counters = %d/%d, want 1/1", next.Moves, next.Pushes)
	}
	if !next.Complete {
		t.Error("level should be complete")
	}
	if next.Stars != 3 {
		t.Errorf("Stars = %d, want 3", next.Stars)
	}

	// Input state must be untouched.
	if got := s.Board.At(core.C(2, 0)); got != core.Box {
		t.Errorf("input board mutated: (2,0) = %v", got)
	}
}

// Scenario B: walking into the left wall.
func TestMoveIntoWall(t *testing.T) {
	lvl := level(1, 1, "#@$.#")
	s := mustState(t, lvl)

	next := core.Move(s, core.DirLeft, lvl)

	if next != s {
		t.Error("wall move should return the input state")
	}
	if next.Moves != 0 {
		t.Errorf("Moves = %d, want 0", next.Moves)
	}
}

// Scenario C: two boxes in a row cannot be pushed.
func TestMovePushTwoBoxesRejected(t *testing.T) {
	lvl := level(1, 1, "#@$$.#")
	s := mustState(t, lvl)

	if next := core.Move(s, core.DirRight, lvl); next != s {
		t.Error("pushing two boxes should be rejected")
	}
}

func TestMovePushBlocked(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		dir  core.Dir
	}{
		{"box against wall", []string{"#@$#."}, core.DirRight},
		{"box against placed box", []string{"#@$*#"}, core.DirRight},
		{"box at right edge", []string{"@$"}, core.DirRight},
		{"box at top edge", []string{"$.", "@ "}, core.DirUp},
		{"box against padding", []string{"@$", "   ."}, core.DirRight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lvl := level(1, 1, tc.rows...)
			s := mustState(t, lvl)
			if next := core.Move(s, tc.dir, lvl); next != s {
				t.Errorf("Move(%v) should be rejected", tc.dir)
			}
		})
	}
}

func TestMoveOutOfBounds(t *testing.T) {
	lvl := level(1, 1, "@ $.")
	s := mustState(t, lvl)

	for _, d := range []core.Dir{core.DirUp, core.DirDown, core.DirLeft} {
		if next := core.Move(s, d, lvl); next != s {
			t.Errorf("Move(%v) off the grid should be rejected", d)
		}
	}
}

func TestMoveWalkCounters(t *testing.T) {
	s := mustState(t, roomLevel)

	next := core.Move(s, core.DirRight, roomLevel)

	if next.Moves != 1 || next.Pushes != 0 {
		t.Errorf("counters = %d/%d, want 1/0", next.Moves, next.Pushes)
	}
	if got := next.Board.At(core.C(3, 3)); got != core.Floor {
		t.Errorf("origin = %v, want Floor", got)
	}
	if got := next.Board.At(core.C(4, 3)); got != core.Player {
		t.Errorf("destination = %v, want Player", got)
	}
}

func TestMoveOntoAndOffSpot(t *testing.T) {
	lvl := level(1, 1, "#@.  $.#")
	s := mustState(t, lvl)

	s = core.Move(s, core.DirRight, lvl)
	if got := s.Board.At(core.C(2, 0)); got != core.PlayerOnSpot {
		t.Fatalf("on spot = %v, want PlayerOnSpot", got)
	}

	s = core.Move(s, core.DirRight, lvl)
	if got := s.Board.At(core.C(2, 0)); got != core.Spot {
		t.Errorf("left spot = %v, want Spot", got)
	}
	if got := s.Board.At(core.C(3, 0)); got != core.Player {
		t.Errorf("destination = %v, want Player", got)
	}
}

func TestPushOffSpot(t *testing.T) {
	lvl := level(1, 1, "#@* $.#")
	s := mustState(t, lvl)

	next := core.Move(s, core.DirRight, lvl)

	if got := next.Board.At(core.C(2, 0)); got != core.PlayerOnSpot {
		t.Errorf("player cell = %v, want PlayerOnSpot", got)
	}
	if got := next.Board.At(core.C(3, 0)); got != core.Box {
		t.Errorf("box cell = %v, want Box", got)
	}
	if next.Complete {
		t.Error("level with two loose boxes is not complete")
	}
	if next.Stars != 0 {
		t.Errorf("Stars = %d, want 0 before completion", next.Stars)
	}
}

func TestMoveCompletedIsIdempotent(t *testing.T) {
	lvl := level(1, 1, "#@$.  #")
	s := core.Move(mustState(t, lvl), core.DirRight, lvl)
	if !s.Complete {
		t.Fatal("setup: level should be complete")
	}

	for _, d := range allDirs {
		if next := core.Move(s, d, lvl); next != s {
			t.Errorf("Move(%v) on a completed level changed the state", d)
		}
	}
}

func TestMoveZeroState(t *testing.T) {
	var s core.State
	if next := core.Move(s, core.DirUp, roomLevel); next != s {
		t.Error("Move on a zero state should be a no-op")
	}
}

func TestRaggedRowWidth(t *testing.T) {
	// Row 0 is narrower than row 1.
	lvl := level(10, 2, "@", " $.")
	s := mustState(t, lvl)

	if next := core.Move(s, core.DirRight, lvl); next != s {
		t.Error("moving into row padding should be rejected")
	}

	s = core.Move(s, core.DirDown, lvl)
	s = core.Move(s, core.DirRight, lvl)

	if !s.Complete {
		t.Errorf("push along the wider row should complete the level, board:\n%s", s.Board)
	}
	if s.Moves != 2 || s.Pushes != 1 {
		t.Errorf("counters = %d/%d, want 2/1", s.Moves, s.Pushes)
	}
}

func TestWinOnlyWhenNoLooseBoxes(t *testing.T) {
	lvl := level(10, 2, "#@$.$.#")
	s := mustState(t, lvl)

	s = core.Move(s, core.DirRight, lvl)
	if s.Complete {
		t.Error("one loose box left, should not be complete")
	}
	if s.Board.LooseBoxes() != 1 {
		t.Errorf("LooseBoxes() = %d, want 1", s.Board.LooseBoxes())
	}
}

func TestLevelWithoutBoxesCompletesOnFirstMove(t *testing.T) {
	lvl := level(1, 0, "#@ #")
	s := core.Move(mustState(t, lvl), core.DirRight, lvl)

	if !s.Complete {
		t.Error("a level with no loose boxes completes on the first accepted move")
	}
}

func TestApply(t *testing.T) {
	s := core.Apply(mustState(t, roomLevel), roomLevel, core.DirUp, core.DirRight, core.DirRight)

	if s.Moves != 3 {
		t.Errorf("Moves = %d, want 3", s.Moves)
	}
	if s.Board.Player() != core.C(5, 2) {
		t.Errorf("Player() = %v, want (5,2)", s.Board.Player())
	}
	if got := s.Board.At(core.C(4, 2)); got != core.Spot {
		t.Errorf("spot walked over = %v, want Spot", got)
	}
}

// Random walks must keep the box count, a single player and the counter rules.
func TestMoveInvariantsRandomWalk(t *testing.T) {
	levels := []core.Level{
		roomLevel,
		level(20, 6,
			"  ##### ",
			"###   # ",
			"#.@$  # ",
			"### $.# ",
			"#.##$ # ",
			"# # . ##",
			"#$ *$$.#",
			"#   .  #",
			"########",
		),
		level(40, 12,
			"#####",
			"#@  #",
			"# $$#",
			"##  #",
			"## .#",
			"## .#",
			"#####",
		),
	}

	rng := rand.New(rand.NewSource(42))

	for _, lvl := range levels {
		s := mustState(t, lvl)
		boxes := s.Board.BoxCount()

		for i := 0; i < 500; i++ {
			d := allDirs[rng.Intn(len(allDirs))]
			next := core.Move(s, d, lvl)

			if got := next.Board.BoxCount(); got != boxes {
				t.Fatalf("step %d: box count = %d, want %d", i, got, boxes)
			}
			if !next.Board.At(next.Board.Player()).IsPlayer() {
				t.Fatalf("step %d: no player tile at %v", i, next.Board.Player())
			}
			if countPlayers(next.Board) != 1 {
				t.Fatalf("step %d: %d player tiles", i, countPlayers(next.Board))
			}

			switch {
			case next == s:
			case next.Pushes == s.Pushes:
				if next.Moves != s.Moves+1 {
					t.Fatalf("step %d: walk moved counter %d -> %d", i, s.Moves, next.Moves)
				}
			default:
				if next.Moves != s.Moves+1 || next.Pushes != s.Pushes+1 {
					t.Fatalf("step %d: push counters %d/%d -> %d/%d", i, s.Moves, s.Pushes, next.Moves, next.Pushes)
				}
			}

			if next.Complete != (next.Board.LooseBoxes() == 0) && next != s {
				t.Fatalf("step %d: Complete = %v with %d loose boxes", i, next.Complete, next.Board.LooseBoxes())
			}

			s = next
			if s.Complete {
				break
			}
		}
	}
}

func countPlayers(b *core.Board) int {
	n := 0
	for y := 0; y < b.H(); y++ {
		for x := 0; x < b.W(); x++ {
			if b.At(core.C(x, y)).IsPlayer() {
				n++
			}
		}
	}
	return n
}

// Scenario D: scoring thresholds.
func TestStars(t *testing.T) {
	tests := []struct {
		name                string
		moves, pushes       int
		parMoves, parPushes int
		want                int
	}{
		{"within 1.2x par", 11, 3, 10, 3, 3},
		{"exactly 1.2x par", 12, 3, 10, 3, 3},
		{"pushes over 1.2x", 11, 4, 10, 3, 2},
		{"moves over 1.6x but pushes within", 17, 3, 10, 3, 2},
		{"exactly 1.6x moves", 16, 10, 10, 3, 2},
		{"far over par", 30, 10, 10, 3, 1},
		{"at par", 10, 3, 10, 3, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := core.Stars(tc.moves, tc.pushes, tc.parMoves, tc.parPushes)
			if got != tc.want {
				t.Errorf("Stars(%d, %d, %d, %d) = %d, want %d",
					tc.moves, tc.pushes, tc.parMoves, tc.parPushes, got, tc.want)
			}
		})
	}
}

func TestStarsOnCompletion(t *testing.T) {
	// Corridor: 4 walks then 1 push.
	lvl := level(1, 1, "#@    $.#")
	s := mustState(t, lvl)
	s = core.Apply(s, lvl, core.DirRight, core.DirRight, core.DirRight, core.DirRight, core.DirRight)

	if !s.Complete {
		t.Fatalf("level should be complete, board:\n%s", s.Board)
	}
	// 5 moves > 1.6, pushes 1 <= 1.6
	if s.Stars != 2 {
		t.Errorf("Stars = %d, want 2", s.Stars)
	}
}
