package state

import (
	"splev/pkg/engine/world"
	"splev/pkg/game/generator"
)

// RoomInfo is a finalized room. Doors are indices into Level.Doors.
type RoomInfo struct {
	Index          int
	LX, LY, HX, HY int
	Type           world.RoomType
	Lit            bool
	Irregular      bool
	NeedJoining    bool
	Doors          []int
	// Parent is the index of the enclosing room, or -1.
	Parent   int
	Subrooms []int
	RoomNo   int
	Subroom  bool
	NeedFill bool
}

// Center returns the middle of the room's floor.
func (r RoomInfo) Center() world.Coord {
	return world.Coord{X: (r.LX + r.HX) / 2, Y: (r.LY + r.HY) / 2}
}

// Contains reports whether (x,y) is on the room's floor.
func (r RoomInfo) Contains(x, y int) bool {
	return x >= r.LX && x <= r.HX && y >= r.LY && y <= r.HY
}

// Level is a finalized level. Nothing modifies it after it is built; the
// accessors return copies.
type Level struct {
	name  string
	seed  uint64
	depth int
	flags generator.Flags

	cells    [world.ColNo][world.RowNo]world.Cell
	rooms    []RoomInfo
	subrooms []RoomInfo
	doors    []world.Door
	stairs   []world.Stairway
	traps    []world.Trap
	objects  []world.Object
	monsters []world.Monster
}

// NewLevel freezes the generation context c into a level artifact.
func NewLevel(name string, seed uint64, c *generator.Context) *Level {
	g := c.Grid
	l := &Level{
		name:  name,
		seed:  seed,
		depth: c.Depth,
		flags: c.Flags,
	}
	g.ForEach(func(x, y int, cell *world.Cell) {
		l.cells[x][y] = *cell
	})
	index := map[*world.Room]int{}
	for i, r := range g.Rooms {
		index[r] = i
	}
	for i, r := range g.Subrooms {
		index[r] = i
	}
	info := func(r *world.Room) RoomInfo {
		ri := RoomInfo{
			Index:       r.Index,
			LX:          r.LX,
			LY:          r.LY,
			HX:          r.HX,
			HY:          r.HY,
			Type:        r.Type,
			Lit:         r.Lit,
			Irregular:   r.Irregular,
			NeedJoining: r.NeedJoining,
			Parent:      -1,
			RoomNo:      r.RoomNo(),
			Subroom:     r.Parent != nil,
			NeedFill:    r.NeedFill,
		}
		for i := 0; i < r.DoorCount; i++ {
			ri.Doors = append(ri.Doors, r.FirstDoor+i)
		}
		if r.Parent != nil {
			ri.Parent = index[r.Parent]
		}
		for _, sub := range r.Subrooms {
			ri.Subrooms = append(ri.Subrooms, index[sub])
		}
		return ri
	}
	for _, r := range g.Rooms {
		l.rooms = append(l.rooms, info(r))
	}
	for _, r := range g.Subrooms {
		l.subrooms = append(l.subrooms, info(r))
	}
	g.RefreshDoors()
	l.doors = append([]world.Door(nil), g.Doors...)
	l.stairs = append([]world.Stairway(nil), g.Stairs...)
	l.traps = append([]world.Trap(nil), g.Traps...)
	l.objects = append([]world.Object(nil), g.Objects...)
	l.monsters = append([]world.Monster(nil), g.Monsters...)
	return l
}

// Name returns the name of the script that built the level.
func (l *Level) Name() string { return l.name }

// Seed returns the seed of the session the level came from.
func (l *Level) Seed() uint64 { return l.seed }

// Depth returns the dungeon depth of the level.
func (l *Level) Depth() int { return l.depth }

// Flags returns the level flags in effect when it was finalized.
func (l *Level) Flags() generator.Flags { return l.flags }

// At returns a copy of the cell at (x,y). Out-of-bounds reads return stone.
func (l *Level) At(x, y int) world.Cell {
	if !world.InBounds(x, y) {
		return world.Cell{}
	}
	return l.cells[x][y]
}

// Typ returns the terrain at (x,y).
func (l *Level) Typ(x, y int) world.Terrain {
	return l.At(x, y).Typ
}

// Terrain returns the whole terrain layer.
func (l *Level) Terrain() [world.ColNo][world.RowNo]world.Terrain {
	var out [world.ColNo][world.RowNo]world.Terrain
	for x := range l.cells {
		for y := range l.cells[x] {
			out[x][y] = l.cells[x][y].Typ
		}
	}
	return out
}

// Rooms returns the top-level rooms in creation order.
func (l *Level) Rooms() []RoomInfo { return copyRooms(l.rooms) }

// Subrooms returns the nested rooms in creation order.
func (l *Level) Subrooms() []RoomInfo { return copyRooms(l.subrooms) }

// Doors returns the door table.
func (l *Level) Doors() []world.Door { return append([]world.Door(nil), l.doors...) }

// Stairs returns the stairways.
func (l *Level) Stairs() []world.Stairway { return append([]world.Stairway(nil), l.stairs...) }

// Traps returns the traps in placement order.
func (l *Level) Traps() []world.Trap { return append([]world.Trap(nil), l.traps...) }

// Objects returns the object records in placement order.
func (l *Level) Objects() []world.Object { return append([]world.Object(nil), l.objects...) }

// Monsters returns the monster records in placement order.
func (l *Level) Monsters() []world.Monster { return append([]world.Monster(nil), l.monsters...) }

// Stair returns the stairway going up or down, if the level has one.
func (l *Level) Stair(up bool) (world.Stairway, bool) {
	for _, s := range l.stairs {
		if s.Up == up {
			return s, true
		}
	}
	return world.Stairway{}, false
}

func copyRooms(rs []RoomInfo) []RoomInfo {
	out := make([]RoomInfo, len(rs))
	for i, r := range rs {
		r.Doors = append([]int(nil), r.Doors...)
		r.Subrooms = append([]int(nil), r.Subrooms...)
		out[i] = r
	}
	return out
}
