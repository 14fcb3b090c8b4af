// Package core provides the move-resolution and level-state engine for Sokoban.
// This package is UI-agnostic, deterministic and has no external dependencies.
package core

import "fmt"

// Tile is the content of a single board cell.
// Terrain (floor/spot) and occupant (player/box) are merged into one value.
type Tile uint8

const (
	Void Tile = iota // Outside the level; padding for ragged rows
	Wall
	Floor
	Spot
	Box
	BoxOnSpot
	Player
	PlayerOnSpot
)

// String returns the name of the tile.
func (t Tile) String() string {
	switch t {
	case Void:
		return "Void"
	case Wall:
		return "Wall"
	case Floor:
		return "Floor"
	case Spot:
		return "Spot"
	case Box:
		return "Box"
	case BoxOnSpot:
		return "BoxOnSpot"
	case Player:
		return "Player"
	case PlayerOnSpot:
		return "PlayerOnSpot"
	default:
		return fmt.Sprintf("Tile(%d)", uint8(t))
	}
}

// Rune returns the level-map character for the tile.
// Void has no map character and is rendered as a space.
func (t Tile) Rune() rune {
	switch t {
	case Wall:
		return '#'
	case Spot:
		return '.'
	case Box:
		return '$'
	case BoxOnSpot:
		return '*'
	case Player:
		return '@'
	case PlayerOnSpot:
		return '+'
	default:
		return ' '
	}
}

// TileFromRune maps a level-map character to a tile.
// Unknown characters are treated as floor.
func TileFromRune(r rune) Tile {
	switch r {
	case '#':
		return Wall
	case '.':
		return Spot
	case '$':
		return Box
	case '*':
		return BoxOnSpot
	case '@':
		return Player
	case '+':
		return PlayerOnSpot
	default:
		return Floor
	}
}

// IsBox reports whether the tile holds a box, placed or not.
func (t Tile) IsBox() bool {
	return t == Box || t == BoxOnSpot
}

// IsPlayer reports whether the tile holds the player.
func (t Tile) IsPlayer() bool {
	return t == Player || t == PlayerOnSpot
}

// IsWall reports whether the tile is a wall.
func (t Tile) IsWall() bool {
	return t == Wall
}

// Blocks reports whether nothing can ever enter the tile.
func (t Tile) Blocks() bool {
	return t == Wall || t == Void
}

// Base returns the terrain under any occupant: Spot or Floor.
func (t Tile) Base() Tile {
	switch t {
	case Spot, BoxOnSpot, PlayerOnSpot:
		return Spot
	default:
		return Floor
	}
}

// Occupant is something that can stand on a floor or spot.
type Occupant uint8

const (
	OccupantPlayer Occupant = iota
	OccupantBox
)

// With returns the tile produced when the occupant moves onto this tile's base terrain.
func (t Tile) With(o Occupant) Tile {
	if t.Base() == Spot {
		if o == OccupantPlayer {
			return PlayerOnSpot
		}
		return BoxOnSpot
	}
	if o == OccupantPlayer {
		return Player
	}
	return Box
}

// Dir is one of the four movement directions.
type Dir uint8

const (
	DirUp Dir = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Rune returns the demo-string letter for the direction.
func (d Dir) Rune() rune {
	switch d {
	case DirUp:
		return 'u'
	case DirDown:
		return 'd'
	case DirLeft:
		return 'l'
	default:
		return 'r'
	}
}

// ParseDir decodes a demo-string letter (u, d, l, r; any case).
func ParseDir(r rune) (Dir, bool) {
	switch r {
	case 'u', 'U':
		return DirUp, true
	case 'd', 'D':
		return DirDown, true
	case 'l', 'L':
		return DirLeft, true
	case 'r', 'R':
		return DirRight, true
	default:
		return 0, false
	}
}

// Coord is a cell position. X is the column, Y is the row.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Step returns the neighbouring coordinate in the given direction.
func (c Coord) Step(d Dir) Coord {
	dx, dy := d.Delta()
	return Coord{X: c.X + dx, Y: c.Y + dy}
}
