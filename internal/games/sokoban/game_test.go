package sokoban

import (
	"errors"
	"strings"
	"testing"

	platformcore "github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

type recordedCompletion struct {
	levelID, stars int
}

type fakeProgress struct {
	calls []recordedCompletion
	err   error
}

func (f *fakeProgress) RecordCompletion(levelID, stars int) error {
	f.calls = append(f.calls, recordedCompletion{levelID, stars})
	return f.err
}

func testLevels() []core.Level {
	return []core.Level{
		{
			ID:        1,
			Name:      "Corridor",
			Map:       []string{"#######", "#@$  .#", "#######"},
			ParMoves:  3,
			ParPushes: 3,
			Hint:      "Push right.",
			Demo:      "rrr",
		},
		{
			ID:   2,
			Name: "Square",
			Map:  []string{"#####", "#@  #", "# $ #", "# . #", "#####"},
		},
		{
			ID:   3,
			Name: "Crowded",
			Map:  []string{"#@@#"},
		},
	}
}

func newTestGame(opts ...Option) *Game {
	g := New(testLevels(), opts...)
	g.Reset(platformcore.DefaultConfig())
	return g
}

func step(g *Game, actions ...platformcore.Action) platformcore.StepResult {
	return g.Step(platformcore.FrameOf(actions...))
}

func TestNewDefaultsToBuiltin(t *testing.T) {
	g := New(nil)
	if len(g.Levels()) != 5 {
		t.Errorf("expected 5 built-in levels, got %d", len(g.Levels()))
	}
	if g.Level().ID != 1 {
		t.Errorf("expected level 1, got %d", g.Level().ID)
	}
	if g.Current().Board == nil {
		t.Fatal("expected a playable board")
	}
}

func TestWithStartLevel(t *testing.T) {
	g := newTestGame(WithStartLevel(2))
	if g.Level().ID != 2 {
		t.Errorf("Level().ID = %d, want 2", g.Level().ID)
	}

	g = newTestGame(WithStartLevel(42))
	if g.Level().ID != 1 {
		t.Errorf("unknown start level should fall back to the first, got %d", g.Level().ID)
	}
}

func TestStepMoves(t *testing.T) {
	g := newTestGame()

	step(g, platformcore.ActionUp)
	if g.Current().Moves != 0 {
		t.Errorf("moving into a wall should not count, got %d moves", g.Current().Moves)
	}

	step(g, platformcore.ActionRight)
	snap := g.Snapshot()
	if snap.Moves != 1 || snap.Pushes != 1 {
		t.Errorf("got %d moves %d pushes, want 1/1", snap.Moves, snap.Pushes)
	}
	if snap.Board != "#######\n# @$ .#\n#######" {
		t.Errorf("Board = %q", snap.Board)
	}
}

func TestCompletionRecordsOnce(t *testing.T) {
	p := &fakeProgress{}
	g := newTestGame(WithProgress(p))

	for i := 0; i < 3; i++ {
		step(g, platformcore.ActionRight)
	}
	res := step(g, platformcore.ActionLeft)

	if !res.State.GameOver || res.State.Score != 3 {
		t.Errorf("State = %+v, want game over with 3 stars", res.State)
	}
	if len(p.calls) != 1 {
		t.Fatalf("expected 1 completion record, got %d", len(p.calls))
	}
	if p.calls[0] != (recordedCompletion{1, 3}) {
		t.Errorf("recorded %+v, want level 1 with 3 stars", p.calls[0])
	}
	if g.Snapshot().State != StateComplete {
		t.Errorf("State = %q, want %q", g.Snapshot().State, StateComplete)
	}
}

func TestProgressErrorIsKept(t *testing.T) {
	p := &fakeProgress{err: errors.New("disk full")}
	g := newTestGame(WithProgress(p))

	g.Move(core.DirRight)
	g.Move(core.DirRight)
	g.Move(core.DirRight)

	if g.Err() == nil || !strings.Contains(g.Err().Error(), "disk full") {
		t.Errorf("Err() = %v, want wrapped progress error", g.Err())
	}
}

func TestRestartCountsRetries(t *testing.T) {
	g := newTestGame()

	step(g, platformcore.ActionRight)
	step(g, platformcore.ActionRestart)
	step(g, platformcore.ActionRestart)

	snap := g.Snapshot()
	if snap.Retries != 2 {
		t.Errorf("Retries = %d, want 2", snap.Retries)
	}
	if snap.Moves != 0 || snap.Pushes != 0 {
		t.Errorf("restart should reset counters, got %d/%d", snap.Moves, snap.Pushes)
	}

	step(g, platformcore.ActionNext)
	if g.Retries() != 0 {
		t.Errorf("changing level should reset retries, got %d", g.Retries())
	}
}

func TestLevelNavigation(t *testing.T) {
	g := newTestGame()

	if g.PrevLevel() {
		t.Error("PrevLevel on the first level should fail")
	}
	step(g, platformcore.ActionNext)
	if g.Level().ID != 2 {
		t.Errorf("Level().ID = %d, want 2", g.Level().ID)
	}
	step(g, platformcore.ActionPrev)
	if g.Level().ID != 1 {
		t.Errorf("Level().ID = %d, want 1", g.Level().ID)
	}

	if err := g.SelectLevel(3); err != nil {
		t.Fatalf("SelectLevel(3) failed: %v", err)
	}
	if g.HasNext() || g.NextLevel() {
		t.Error("NextLevel on the last level should fail")
	}
	if err := g.SelectLevel(9); err == nil {
		t.Error("SelectLevel(9) should fail")
	}
}

func TestUnplayableLevel(t *testing.T) {
	g := newTestGame(WithStartLevel(3))

	if !errors.Is(g.Err(), core.ErrInvalidLevelFormat) {
		t.Errorf("Err() = %v, want ErrInvalidLevelFormat", g.Err())
	}
	if g.Snapshot().State != StateUnplayable {
		t.Errorf("State = %q, want %q", g.Snapshot().State, StateUnplayable)
	}

	step(g, platformcore.ActionLeft)
	if g.Current().Moves != 0 {
		t.Error("moves on an unplayable level should be ignored")
	}

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "invalid level format") {
		t.Error("expected the load error on screen")
	}

	step(g, platformcore.ActionPrev)
	if g.Err() != nil {
		t.Errorf("loading a valid level should clear the error, got %v", g.Err())
	}
}

func TestHintToggle(t *testing.T) {
	g := newTestGame()
	if g.Snapshot().Hint {
		t.Error("hints should start hidden")
	}
	step(g, platformcore.ActionHint)
	if !g.Snapshot().Hint {
		t.Error("hint should be visible after toggle")
	}

	g = newTestGame(WithHints(true))
	if !g.Snapshot().Hint {
		t.Error("WithHints(true) should show hints")
	}
}

func TestAutoplay(t *testing.T) {
	p := &fakeProgress{}
	g := newTestGame(WithProgress(p))

	step(g, platformcore.ActionDown)
	step(g, platformcore.ActionAutoSolve)
	if !g.Autoplaying() {
		t.Fatal("expected autoplay to start")
	}
	if g.Retries() != 0 {
		t.Error("auto-solve should not count as a retry")
	}

	res := step(g, platformcore.ActionRight)
	if !res.State.Paused || g.Current().Moves != 0 {
		t.Error("keyboard moves should be ignored during autoplay")
	}

	steps := 0
	for g.StepAutoplay() {
		steps++
	}
	if g.Autoplaying() {
		t.Error("autoplay should stop on completion")
	}
	if !g.Current().Complete || g.Current().Moves != 3 {
		t.Errorf("state = %+v, want complete after 3 moves", g.Current())
	}
	if steps != 2 {
		t.Errorf("StepAutoplay reported running %d times, want 2", steps)
	}
	if len(p.calls) != 1 {
		t.Errorf("expected autoplay completion to be recorded once, got %d", len(p.calls))
	}
}

func TestAutoplayCancel(t *testing.T) {
	g := newTestGame()

	g.StartAutoplay()
	g.StepAutoplay()
	step(g, platformcore.ActionBack)

	if g.Autoplaying() {
		t.Error("esc should stop autoplay")
	}
	if g.Current().Moves != 1 {
		t.Errorf("Moves = %d, want 1", g.Current().Moves)
	}
	if g.StepAutoplay() {
		t.Error("StepAutoplay after cancel should do nothing")
	}
}

func TestAutoplayRestartCancels(t *testing.T) {
	g := newTestGame()

	g.StartAutoplay()
	step(g, platformcore.ActionRestart)

	if g.Autoplaying() {
		t.Error("restart should cancel autoplay")
	}
}

func TestAutoplayWithoutDemo(t *testing.T) {
	g := newTestGame(WithStartLevel(2))

	if g.StartAutoplay() {
		t.Error("StartAutoplay should fail without a demo")
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := New(testLevels())
	g.Reset(platformcore.RuntimeConfig{ScreenW: 20, ScreenH: 5})

	res := step(g, platformcore.ActionRight)
	if !res.State.Paused {
		t.Error("small screen should pause the game")
	}
	if g.Current().Moves != 0 {
		t.Error("moves should be ignored on a small screen")
	}
	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("State = %q, want %q", g.Snapshot().State, StatePausedSmall)
	}

	screen := platformcore.NewScreen(20, 5)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected the too-small message")
	}
}

func TestRenderBoard(t *testing.T) {
	g := newTestGame()
	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"S O K O B A N", "Level 1/3: Corridor", "Moves: 0 (par 3)", "██<>[]"} {
		if !strings.Contains(out, want) {
			t.Errorf("screen missing %q", want)
		}
	}

	boardX := (80 - 7*cellW) / 2
	cell := screen.GetCell(boardX+1*cellW, hudHeight+1)
	if cell.Rune != '<' || cell.Color != platformcore.ColorBrightCyan {
		t.Errorf("player cell = %+v", cell)
	}
	cell = screen.GetCell(boardX+5*cellW, hudHeight+1)
	if cell.Rune != '·' || cell.Color != platformcore.ColorRed {
		t.Errorf("spot cell = %+v", cell)
	}
}

func TestRenderHintAndWin(t *testing.T) {
	g := newTestGame()
	step(g, platformcore.ActionHint)
	for i := 0; i < 3; i++ {
		g.Move(core.DirRight)
	}

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Push right.", "LEVEL COMPLETE!", "★★★", "n: next level"} {
		if !strings.Contains(out, want) {
			t.Errorf("screen missing %q", want)
		}
	}
}

func TestStarString(t *testing.T) {
	tests := []struct {
		stars int
		want  string
	}{
		{0, "☆☆☆"},
		{1, "★☆☆"},
		{3, "★★★"},
		{7, "★★★"},
	}

	for _, tc := range tests {
		if got := StarString(tc.stars); got != tc.want {
			t.Errorf("StarString(%d) = %q, want %q", tc.stars, got, tc.want)
		}
	}
}

func TestRenderOverlayLayout(t *testing.T) {
	g := newTestGame()
	for i := 0; i < 3; i++ {
		g.Move(core.DirRight)
	}

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	// Four lines in a box of height 6, centered on 24 rows.
	box := platformcore.Centered(80, 24, 0, 6)
	if row := screen.Row(box.Y); !strings.Contains(row, "┌") {
		t.Errorf("row %d = %q, want the top border", box.Y, row)
	}
	if row := screen.Row(box.Y + 1); !strings.Contains(row, "LEVEL COMPLETE!") {
		t.Errorf("row %d = %q, want the title inside the border", box.Y+1, row)
	}
	if row := screen.Row(box.Y + 4); !strings.Contains(row, "n: next level") {
		t.Errorf("row %d = %q, want the last overlay line", box.Y+4, row)
	}
}
