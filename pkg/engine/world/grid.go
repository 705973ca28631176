package world

import "fmt"

// Map dimensions. Column 0 is never part of the playable map.
const (
	ColNo = 80
	RowNo = 21
)

// MaxDoors bounds the door table.
const MaxDoors = 120

// Grid is the mutable level model owned by one generation pass.
type Grid struct {
	cells [ColNo][RowNo]Cell

	Rooms    []*Room
	Subrooms []*Room
	Doors    []Door

	Stairs   []Stairway
	Traps    []Trap
	Objects  []Object
	Monsters []Monster

	// Map region used for coordinates relative to the last map fragment.
	XStart, YStart int
	XSize, YSize   int

	// Upper bounds used by maze carving.
	XMazeMax, YMazeMax int
}

// NewGrid returns a grid of unlit stone with the default map region.
func NewGrid() *Grid {
	g := &Grid{}
	g.ResetRegion()
	g.XMazeMax = (ColNo - 1) &^ 1
	g.YMazeMax = (RowNo - 1) &^ 1
	return g
}

// ResetRegion makes relative coordinates cover the whole map again.
func (g *Grid) ResetRegion() {
	g.XStart, g.YStart = 1, 0
	g.XSize, g.YSize = ColNo-1, RowNo
}

// InBounds reports whether (x,y) addresses a stored cell.
func InBounds(x, y int) bool {
	return x >= 0 && x < ColNo && y >= 0 && y < RowNo
}

// IsOK reports whether (x,y) is on the playable map.
func IsOK(x, y int) bool {
	return x >= 1 && x <= ColNo-1 && y >= 0 && y <= RowNo-1
}

// At returns the cell at (x,y), or nil when out of bounds.
func (g *Grid) At(x, y int) *Cell {
	if !InBounds(x, y) {
		return nil
	}
	return &g.cells[x][y]
}

// Typ returns the terrain at (x,y). Out-of-bounds locations read as stone.
func (g *Grid) Typ(x, y int) Terrain {
	if !InBounds(x, y) {
		return Stone
	}
	return g.cells[x][y].Typ
}

// Set changes the terrain at (x,y). Stairs and ladders are never replaced;
// the call reports false and leaves the cell alone, as it does out of bounds.
func (g *Grid) Set(x, y int, t Terrain) bool {
	if !InBounds(x, y) || !t.Valid() {
		return false
	}
	c := &g.cells[x][y]
	if c.Typ.IsStairs() {
		return false
	}
	c.Typ = t
	return true
}

// ForEach calls fn for every cell in column-major order, the order every
// generation pass scans the map in.
func (g *Grid) ForEach(fn func(x, y int, c *Cell)) {
	for x := 0; x < ColNo; x++ {
		for y := 0; y < RowNo; y++ {
			fn(x, y, &g.cells[x][y])
		}
	}
}

// Snapshot returns a copy of the terrain layer.
func (g *Grid) Snapshot() [ColNo][RowNo]Terrain {
	var out [ColNo][RowNo]Terrain
	for x := 0; x < ColNo; x++ {
		for y := 0; y < RowNo; y++ {
			out[x][y] = g.cells[x][y].Typ
		}
	}
	return out
}

// RoomByNo returns the room or subroom numbered n, or nil.
func (g *Grid) RoomByNo(n int) *Room {
	switch {
	case n >= RoomOffset && n-RoomOffset < len(g.Rooms):
		return g.Rooms[n-RoomOffset]
	case n >= RoomOffset+MaxRooms+1 && n-RoomOffset-MaxRooms-1 < len(g.Subrooms):
		return g.Subrooms[n-RoomOffset-MaxRooms-1]
	}
	return nil
}

// AddDoor records a door for room r. The room's doors stay contiguous: the
// new entry is inserted at the room's first slot and later rooms shift up.
func (g *Grid) AddDoor(x, y int, r *Room) error {
	for i := 0; i < r.DoorCount; i++ {
		d := g.Doors[r.FirstDoor+i]
		if d.X == x && d.Y == y {
			return nil
		}
	}
	if len(g.Doors) >= MaxDoors {
		return fmt.Errorf("door table full at (%d,%d)", x, y)
	}
	if r.DoorCount == 0 {
		r.FirstDoor = len(g.Doors)
	}
	r.DoorCount++

	for _, list := range [][]*Room{g.Rooms, g.Subrooms} {
		for _, o := range list {
			if o != r && o.DoorCount > 0 && o.FirstDoor >= r.FirstDoor {
				o.FirstDoor++
			}
		}
	}

	g.Doors = append(g.Doors, Door{})
	copy(g.Doors[r.FirstDoor+1:], g.Doors[r.FirstDoor:len(g.Doors)-1])
	g.Doors[r.FirstDoor] = Door{X: x, Y: y, State: g.DoorState(x, y), Wall: DoorWall(x, y, r)}
	return nil
}

// DoorState reads the door state of (x,y) from the map.
func (g *Grid) DoorState(x, y int) DoorMask {
	c := g.At(x, y)
	if c == nil {
		return NoDoor
	}
	m := c.DoorMask
	if c.Typ == SDoor {
		m |= Secret
	}
	return m
}

// RefreshDoors re-reads every door table entry's state from the map, for
// doors whose cell changed after they were recorded.
func (g *Grid) RefreshDoors() {
	for i := range g.Doors {
		g.Doors[i].State = g.DoorState(g.Doors[i].X, g.Doors[i].Y)
	}
}

// RoomDoors returns the door table slice that belongs to r.
func (g *Grid) RoomDoors(r *Room) []Door {
	if r.DoorCount == 0 {
		return nil
	}
	return g.Doors[r.FirstDoor : r.FirstDoor+r.DoorCount]
}

// ByDoor reports whether an orthogonal neighbour of (x,y) is a door or
// secret door.
func (g *Grid) ByDoor(x, y int) bool {
	for _, w := range AllWalls() {
		dx, dy := w.Delta()
		if t := g.Typ(x+dx, y+dy); t == Doorway || t == SDoor {
			return true
		}
	}
	return false
}

// StairsAt returns the stairway at (x,y), or nil.
func (g *Grid) StairsAt(x, y int) *Stairway {
	for i := range g.Stairs {
		if g.Stairs[i].X == x && g.Stairs[i].Y == y {
			return &g.Stairs[i]
		}
	}
	return nil
}

// Validate reports the first broken table invariant, or "" when consistent.
func (g *Grid) Validate() string {
	for _, r := range g.Rooms {
		if r.DoorCount > 0 && r.FirstDoor+r.DoorCount > len(g.Doors) {
			return fmt.Sprintf("room %d door range past end of door table", r.Index)
		}
	}
	for _, s := range g.Stairs {
		if !g.Typ(s.X, s.Y).IsStairs() {
			return fmt.Sprintf("stairway at (%d,%d) is %s", s.X, s.Y, g.Typ(s.X, s.Y))
		}
	}
	return ""
}
