package des

import (
	"splev/pkg/engine/world"
	"splev/pkg/game/generator"
	"splev/pkg/game/levelgen"
)

// Door writes a door straight onto the map at a fixed position.
func (b *Builder) Door(d DoorSpec) error {
	return b.do("door", func() error {
		if !d.At.Fixed() {
			return invalidf("map door needs a position")
		}
		x, y := b.abs(d.At.X, d.At.Y)
		if !world.IsOK(x, y) {
			return invalidf("door at (%d,%d) is off the map", x, y)
		}
		var mask world.DoorMask
		if d.State == DoorRandom {
			mask = b.ctx.RandomDoorState()
		} else {
			mask = doorMasks[d.State]
		}
		b.ctx.MapDoor(x, y, mask)
		return nil
	})
}

// Stair places a staircase relative to the last map fragment.
func (b *Builder) Stair(up bool, at Pos) error {
	return b.do("stair", func() error {
		return b.stair(up, false, at, nil)
	})
}

// Ladder places a ladder relative to the last map fragment.
func (b *Builder) Ladder(up bool, at Pos) error {
	return b.do("ladder", func() error {
		return b.stair(up, true, at, nil)
	})
}

// Altar places an altar relative to the last map fragment.
func (b *Builder) Altar(a AltarSpec) error {
	return b.do("altar", func() error {
		return b.altar(a, nil)
	})
}

// Feature places a fountain, sink, throne, tree, grave, pool or ice.
func (b *Builder) Feature(kind world.Terrain, at Pos) error {
	return b.do("feature", func() error {
		return b.feature(kind, at, nil)
	})
}

// Trap places a trap.
func (b *Builder) Trap(t TrapSpec) error {
	return b.do("trap", func() error {
		return b.trap(t, nil)
	})
}

// Object records an object at once.
func (b *Builder) Object(o ObjectSpec) error {
	return b.do("object", func() error {
		b.object(o, nil)
		return nil
	})
}

// Monster records a monster at once.
func (b *Builder) Monster(m MonsterSpec) error {
	return b.do("monster", func() error {
		b.monster(m, nil)
		return nil
	})
}

// Corridor digs a corridor between two room doors, then places any room
// contents still waiting.
func (b *Builder) Corridor(src, dst CorridorEnd) error {
	return b.do("corridor", func() error {
		for _, e := range []CorridorEnd{src, dst} {
			if e.Wall != world.North && e.Wall != world.South && e.Wall != world.East && e.Wall != world.West {
				return invalidf("corridor end needs a single wall, got %v", e.Wall)
			}
		}
		err := b.ctx.CreateCorridor(
			generator.CorridorEnd{Room: src.Room, Wall: src.Wall, Door: src.Door},
			generator.CorridorEnd{Room: dst.Room, Wall: dst.Wall, Door: dst.Door},
		)
		if err != nil {
			return invalidf("%v", err)
		}
		b.flush()
		return nil
	})
}

// Corridors joins every room that wants joining, then places any room
// contents still waiting.
func (b *Builder) Corridors() error {
	return b.do("corridor", func() error {
		b.ctx.MakeCorridors()
		b.flush()
		return nil
	})
}

func (b *Builder) stair(up, ladder bool, at Pos, croom *world.Room) error {
	x, y := at.coords()
	if ladder {
		return b.place.Ladder(x, y, up, croom)
	}
	return b.place.Stairs(x, y, up, croom)
}

func (b *Builder) altar(a AltarSpec, croom *world.Room) error {
	align := levelgen.AlignRandom
	switch a.Align {
	case 0:
	case levelgen.AlignChaotic, levelgen.AlignNeutral, levelgen.AlignLawful:
		align = a.Align
	default:
		return invalidf("unknown altar alignment %d", a.Align)
	}
	x, y := a.At.coords()
	return b.place.Altar(x, y, align, a.Shrine.int(), croom)
}

func (b *Builder) feature(kind world.Terrain, at Pos, croom *world.Room) error {
	x, y := at.coords()
	if err := b.place.Feature(kind, x, y, croom); err != nil {
		return invalidf("%v", err)
	}
	return nil
}

func (b *Builder) trap(t TrapSpec, croom *world.Room) error {
	if t.Kind < world.NoTrap || t.Kind >= world.TrapNum {
		return invalidf("unknown trap kind %d", t.Kind)
	}
	x, y := t.At.coords()
	return b.place.Trap(t.Kind, x, y, croom)
}

func (b *Builder) object(o ObjectSpec, croom *world.Room) {
	x, y := o.At.coords()
	b.place.Object(levelgen.ObjectSpec{Class: o.Class, ID: o.ID, Buried: o.Buried}, x, y, croom)
}

func (b *Builder) monster(m MonsterSpec, croom *world.Room) {
	x, y := m.At.coords()
	b.place.Monster(levelgen.MonsterSpec{
		Class: m.Class, ID: m.ID,
		Peaceful: m.Peaceful.int(), Asleep: m.Asleep.int(),
	}, x, y, croom)
}
