package core

import "strings"

// Board is an immutable snapshot of the level grid.
// Cells are stored in row-major order: index = y*W + x.
// Rows shorter than W are padded with Void.
type Board struct {
	w       int
	h       int
	cells   []Tile
	rowLens []int // original length of each row, shared between snapshots
	player  Coord
}

// W returns the board width (the longest row).
func (b *Board) W() int {
	return b.w
}

// H returns the number of rows.
func (b *Board) H() int {
	return b.h
}

// Player returns the player's position.
func (b *Board) Player() Coord {
	return b.player
}

// RowLen returns the original length of row y.
func (b *Board) RowLen(y int) int {
	if y < 0 || y >= b.h {
		return 0
	}
	return b.rowLens[y]
}

func (b *Board) index(c Coord) int {
	return c.Y*b.w + c.X
}

// InBounds returns true if the coordinate is inside the padded grid.
func (b *Board) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < b.w && c.Y >= 0 && c.Y < b.h
}

// At returns the tile at c, or Void when c is out of bounds.
func (b *Board) At(c Coord) Tile {
	if !b.InBounds(c) {
		return Void
	}
	return b.cells[b.index(c)]
}

// clone returns a copy with its own cell buffer.
func (b *Board) clone() *Board {
	cells := make([]Tile, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		w:       b.w,
		h:       b.h,
		cells:   cells,
		rowLens: b.rowLens,
		player:  b.player,
	}
}

// set is only valid on a freshly cloned board.
func (b *Board) set(c Coord, t Tile) {
	b.cells[b.index(c)] = t
}

// LooseBoxes counts boxes that are not on a spot.
func (b *Board) LooseBoxes() int {
	n := 0
	for _, t := range b.cells {
		if t == Box {
			n++
		}
	}
	return n
}

// BoxCount counts all boxes, placed or not.
func (b *Board) BoxCount() int {
	n := 0
	for _, t := range b.cells {
		if t.IsBox() {
			n++
		}
	}
	return n
}

// Solved reports whether no loose box remains.
func (b *Board) Solved() bool {
	return b.LooseBoxes() == 0
}

// Rows returns the grid as level-map strings at their original lengths.
func (b *Board) Rows() []string {
	rows := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		for x := 0; x < b.rowLens[y]; x++ {
			sb.WriteRune(b.cells[y*b.w+x].Rune())
		}
		rows[y] = sb.String()
	}
	return rows
}

// String returns the grid as newline-separated level-map rows.
func (b *Board) String() string {
	return strings.Join(b.Rows(), "\n")
}
