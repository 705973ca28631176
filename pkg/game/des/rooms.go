package des

import (
	"fmt"

	"splev/pkg/engine/world"
	"splev/pkg/game/generator"
)

// RoomScope is the handle a room's Contents function receives. Coordinates
// passed to it are relative to the room's floor. It is only valid while the
// Contents function runs.
type RoomScope struct {
	b      *Builder
	room   *world.Room
	closed bool
}

// orRandom maps the zero value of an optional script field to -1.
func orRandom(v int) int {
	if v == 0 {
		return -1
	}
	return v
}

// Room creates a room. A room that cannot be placed is skipped along with its
// contents, unless it is Required.
func (b *Builder) Room(spec RoomSpec) error {
	return b.do("room", func() error {
		return b.room(spec, nil)
	})
}

// WithRoom is Room with the contents given separately, for scripts that build
// one RoomSpec and fill rooms in different ways.
func (b *Builder) WithRoom(spec RoomSpec, contents func(*RoomScope) error) error {
	spec.Contents = contents
	return b.Room(spec)
}

func (b *Builder) room(spec RoomSpec, parent *world.Room) error {
	c := b.ctx
	rtype := spec.Type
	if spec.Chance != ChanceAlways {
		chance := spec.Chance
		if chance <= 0 || chance > 100 {
			chance = 100
		}
		if c.RNG.Rn2(100) >= chance {
			rtype = world.OrdinaryRoom
		}
	}
	lit := spec.Lit.state(generator.LitRandom)

	var r *world.Room
	var err error
	if parent != nil {
		r, err = c.CreateSubroom(parent, generator.SubroomRequest{
			X: orRandom(spec.X), Y: orRandom(spec.Y),
			W: orRandom(spec.W), H: orRandom(spec.H),
			Type: rtype, Lit: lit,
		})
	} else {
		xal, yal := spec.XAlign, spec.YAlign
		if xal == 0 {
			xal = generator.AlignRandom
		}
		if yal == 0 {
			yal = generator.AlignRandom
		}
		r, err = c.CreateRoom(generator.RoomRequest{
			X: orRandom(spec.X), Y: orRandom(spec.Y),
			W: orRandom(spec.W), H: orRandom(spec.H),
			XAlign: xal, YAlign: yal,
			Type: rtype, Lit: lit,
		})
	}
	if err != nil {
		if spec.Required {
			return &generator.StructuralError{Element: "room", Reason: fmt.Sprintf("%v room", rtype), Err: err}
		}
		c.Log.Printf("room: skipping %v room: %v", rtype, err)
		return nil
	}
	r.NeedJoining = !spec.NoJoin
	r.NeedFill = !spec.Unfilled
	c.Topologize(r)
	return b.fillRoom(r, spec.Contents)
}

// fillRoom runs a contents function against r and closes the scope when it
// returns.
func (b *Builder) fillRoom(r *world.Room, contents func(*RoomScope) error) error {
	if contents == nil {
		return nil
	}
	s := &RoomScope{b: b, room: r}
	defer func() { s.closed = true }()
	return contents(s)
}

// Region relights an area and, for special, irregular or prefilled regions,
// registers it as a room.
func (b *Builder) Region(spec RegionSpec) error {
	return b.do("region", func() error {
		c := b.ctx
		g := c.Grid
		if spec.X1 > spec.X2 || spec.Y1 > spec.Y2 {
			return invalidf("region corners (%d,%d) (%d,%d) are reversed", spec.X1, spec.Y1, spec.X2, spec.Y2)
		}
		x1, y1 := b.abs(spec.X1, spec.Y1)
		x2, y2 := b.abs(spec.X2, spec.Y2)
		if !world.IsOK(x1, y1) || !world.IsOK(x2, y2) {
			return invalidf("region (%d,%d)-(%d,%d) is off the map", x1, y1, x2, y2)
		}
		lit := c.ResolveLit(spec.Lit.state(generator.LitRandom))

		notNeeded := spec.Type == world.OrdinaryRoom && !spec.Irregular && !spec.Prefilled
		if notNeeded || len(g.Rooms) >= world.MaxRooms {
			if !notNeeded {
				c.Log.Printf("region: room table full, only lighting (%d,%d)-(%d,%d)", x1, y1, x2, y2)
			}
			b.lightRegion(x1, y1, x2, y2, lit)
			return nil
		}

		var r *world.Room
		var err error
		if spec.Irregular {
			area := c.FloodFillRoom(x1, y1, len(g.Rooms)+world.RoomOffset, lit, true)
			r, err = c.AddRoom(area.LX, area.LY, area.HX, area.HY, false, spec.Type, true)
			if err != nil {
				return err
			}
			r.Lit = lit
			r.Irregular = true
		} else {
			r, err = c.AddRoom(x1, y1, x2, y2, lit, spec.Type, true)
			if err != nil {
				return err
			}
			c.Topologize(r)
		}
		r.NeedJoining = !spec.NoJoin
		r.NeedFill = spec.Prefilled || spec.Type != world.OrdinaryRoom
		return b.fillRoom(r, spec.Contents)
	})
}

// lightRegion sets lighting over an area. A lit area also lights the ring
// around it so its walls show. Lava keeps its own light.
func (b *Builder) lightRegion(x1, y1, x2, y2 int, lit bool) {
	if lit {
		x1, y1 = max(x1-1, 1), max(y1-1, 0)
		x2, y2 = min(x2+1, world.ColNo-1), min(y2+1, world.RowNo-1)
	}
	g := b.ctx.Grid
	for x := x1; x <= x2; x++ {
		for y := y1; y <= y2; y++ {
			cell := g.At(x, y)
			if cell.Typ == world.LavaPool && !lit {
				continue
			}
			cell.Lit = lit
		}
	}
}

// call runs one script call made through the scope.
func (s *RoomScope) call(name string, fn func() error) error {
	if s.closed {
		return s.b.do(name, func() error { return errScopeClosed })
	}
	return s.b.do(name, fn)
}

// Bounds returns the room's floor rectangle in map coordinates.
func (s *RoomScope) Bounds() (lx, ly, hx, hy int) {
	return s.room.LX, s.room.LY, s.room.HX, s.room.HY
}

// Type returns the room's type after its chance roll.
func (s *RoomScope) Type() world.RoomType {
	return s.room.Type
}

// Room creates a subroom. X and Y are offsets into this room's floor; offsets
// 0 and 1 place it against the wall, so 0 can mean random.
func (s *RoomScope) Room(spec RoomSpec) error {
	return s.call("room", func() error {
		return s.b.room(spec, s.room)
	})
}

// Door adds a door to one of the room's walls.
func (s *RoomScope) Door(d RoomDoor) error {
	return s.call("door", func() error {
		req := generator.DoorRequest{Wall: d.Wall, Pos: -1}
		if d.Pos != nil {
			req.Pos = *d.Pos
		}
		switch d.State {
		case DoorRandom:
			req.Secret, req.Mask = -1, generator.RandomDoorMask
		case DoorSecret:
			req.Secret, req.Mask = 1, generator.RandomDoorMask
		default:
			req.Secret, req.Mask = 0, doorMasks[d.State]
		}
		s.b.ctx.CreateDoor(req, s.room)
		return nil
	})
}

// Stair places a staircase in the room.
func (s *RoomScope) Stair(up bool, at Pos) error {
	return s.call("stair", func() error {
		return s.b.stair(up, false, at, s.room)
	})
}

// Ladder places a ladder in the room.
func (s *RoomScope) Ladder(up bool, at Pos) error {
	return s.call("ladder", func() error {
		return s.b.stair(up, true, at, s.room)
	})
}

// Altar places an altar in the room.
func (s *RoomScope) Altar(a AltarSpec) error {
	return s.call("altar", func() error {
		return s.b.altar(a, s.room)
	})
}

// Feature places a fountain, sink, throne, tree, grave, pool or ice in the
// room.
func (s *RoomScope) Feature(kind world.Terrain, at Pos) error {
	return s.call("feature", func() error {
		return s.b.feature(kind, at, s.room)
	})
}

// Trap places a trap on the room's floor.
func (s *RoomScope) Trap(t TrapSpec) error {
	return s.call("trap", func() error {
		return s.b.trap(t, s.room)
	})
}

// Object queues an object for the room. It is placed after the next corridor
// pass, or when the level is finalized.
func (s *RoomScope) Object(o ObjectSpec) error {
	return s.call("object", func() error {
		r := s.room
		s.b.deferred = append(s.b.deferred, func() { s.b.object(o, r) })
		return nil
	})
}

// Monster queues a monster for the room, like Object.
func (s *RoomScope) Monster(m MonsterSpec) error {
	return s.call("monster", func() error {
		r := s.room
		s.b.deferred = append(s.b.deferred, func() { s.b.monster(m, r) })
		return nil
	})
}
