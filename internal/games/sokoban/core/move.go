package core

// Star thresholds relative to par.
const (
	threeStarRatio = 1.2
	twoStarRatio   = 1.6
)

// Move resolves one step of the player in direction d.
//
// Blocked moves (wall, void, grid edge, a box that cannot be pushed) and any
// move on a completed level return s unchanged. Otherwise a new State with
// a new Board is returned; s is never modified.
func Move(s State, d Dir, level Level) State {
	if s.Complete || s.Board == nil {
		return s
	}

	b := s.Board
	from := b.Player()
	to := from.Step(d)
	target := b.At(to)

	if target.Blocks() {
		return s
	}

	next := State{
		Moves:  s.Moves + 1,
		Pushes: s.Pushes,
	}

	if !target.IsBox() {
		nb := b.clone()
		nb.set(from, b.At(from).Base())
		nb.set(to, target.With(OccupantPlayer))
		nb.player = to
		next.Board = nb
	} else {
		boxTo := to.Step(d)
		boxTarget := b.At(boxTo)
		if boxTarget.Blocks() || boxTarget.IsBox() {
			return s
		}

		nb := b.clone()
		nb.set(from, b.At(from).Base())
		nb.set(to, target.With(OccupantPlayer))
		nb.set(boxTo, boxTarget.With(OccupantBox))
		nb.player = to
		next.Board = nb
		next.Pushes++
	}

	if next.Board.Solved() {
		next.Complete = true
		next.Stars = Stars(next.Moves, next.Pushes, level.ParMoves, level.ParPushes)
	}

	return next
}

// Stars rates a finished level against its par counts.
//
//	3: moves <= par*1.2 and pushes <= parPushes*1.2
//	2: moves <= par*1.6 or  pushes <= parPushes*1.6
//	1: otherwise
func Stars(moves, pushes, parMoves, parPushes int) int {
	m, p := float64(moves), float64(pushes)
	pm, pp := float64(parMoves), float64(parPushes)

	if m <= pm*threeStarRatio && p <= pp*threeStarRatio {
		return 3
	}
	if m <= pm*twoStarRatio || p <= pp*twoStarRatio {
		return 2
	}
	return 1
}

// Apply replays a sequence of directions from s and returns the final state.
func Apply(s State, level Level, dirs ...Dir) State {
	for _, d := range dirs {
		s = Move(s, d, level)
	}
	return s
}
