// Package world holds the level map model: the fixed 80x21 grid of cells,
// the terrain catalog, and the room and door tables that generation fills in.
package world

// Room numbers stored in Cell.RoomNo.
const (
	NoRoom     = 0
	SharedRoom = 1
	RoomOffset = 3
)

// Wall property bits stored in Cell.WallInfo.
const (
	WallNonDiggable = 1 << iota
	WallNonPassWall
)

// Cell is one map location.
type Cell struct {
	Typ Terrain
	// Flags holds terrain-specific state (altar alignment, stair direction,
	// fountain and sink flags).
	Flags int
	Lit   bool

	RoomNo     int
	Edge       bool
	Horizontal bool

	DoorMask DoorMask
	WallInfo int

	// Seen is a bitmask of the directions from which the cell was seen. It is
	// left at zero by generation.
	Seen int

	// MapFragment is set when a map directive wrote the cell.
	MapFragment bool
}

// Reset returns the cell to solid, unlit stone with no room.
func (c *Cell) Reset() {
	*c = Cell{}
}

// Coord is a map position; X is the column and Y the row.
type Coord struct {
	X, Y int
}

// Add returns c moved by (dx,dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{c.X + dx, c.Y + dy}
}
