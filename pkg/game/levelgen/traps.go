package levelgen

import (
	"splev/pkg/engine/world"
)

// RandomTrapType rolls a trap kind suitable for the level's depth, rerolling
// kinds that are never random or too dangerous this shallow.
func (p *Placer) RandomTrapType() world.TrapType {
	c := p.ctx
	lvl := c.Difficulty
	for {
		kind := world.TrapType(c.RNG.Rnd(int(world.TrapNum) - 1))
		switch kind {
		case world.MagicPortal, world.VibratingSquare, world.FireTrap:
			continue
		case world.RollingBoulderTrap, world.SleepingGasTrap:
			if lvl < 2 {
				continue
			}
		case world.LevelTeleporter:
			if lvl < 5 || c.Flags.NoTeleport {
				continue
			}
		case world.SpikedPit:
			if lvl < 5 {
				continue
			}
		case world.LandMine:
			if lvl < 6 {
				continue
			}
		case world.Web:
			if lvl < 7 {
				continue
			}
		case world.StatueTrap, world.PolyTrap:
			if lvl < 8 {
				continue
			}
		case world.TeleportTrap:
			if c.Flags.NoTeleport {
				continue
			}
		case world.Hole:
			if c.RNG.Rn2(7) != 0 {
				continue
			}
		}
		return kind
	}
}

// Trap places a trap. Inside a room it goes on plain floor. NoTrap picks a
// random kind; holes and trap doors become rock traps on a hard floor.
func (p *Placer) Trap(kind world.TrapType, x, y int, croom *world.Room) error {
	c := p.ctx
	var pos world.Coord
	var err error
	if croom != nil {
		pos, err = p.FreeRoomLocation(x, y, croom)
	} else {
		pos, err = p.Location(x, y, Dry, croom)
	}
	if err != nil {
		c.Log.Printf("trap: %v", err)
		return nil
	}

	if kind == world.NoTrap {
		kind = p.RandomTrapType()
	}
	if (kind == world.Hole || kind == world.TrapDoor) && c.Flags.HardFloor {
		kind = world.RockTrap
	}
	p.makeTrap(pos, kind)
	return nil
}

// makeTrap records a trap at pos, replacing any trap already there unless it
// is a portal or vibrating square. Pits and holes flatten furniture to floor.
func (p *Placer) makeTrap(pos world.Coord, kind world.TrapType) {
	g := p.ctx.Grid
	if p.traps.Has(pos) {
		for i := range g.Traps {
			t := &g.Traps[i]
			if t.X != pos.X || t.Y != pos.Y {
				continue
			}
			if t.Type == world.MagicPortal || t.Type == world.VibratingSquare {
				return
			}
			t.Type = kind
			p.flatten(pos, kind)
			return
		}
	}
	g.Traps = append(g.Traps, world.Trap{X: pos.X, Y: pos.Y, Type: kind})
	p.traps.Put(pos)
	p.flatten(pos, kind)
}

func (p *Placer) flatten(pos world.Coord, kind world.TrapType) {
	switch kind {
	case world.Pit, world.SpikedPit, world.Hole, world.TrapDoor:
	default:
		return
	}
	g := p.ctx.Grid
	cell := g.At(pos.X, pos.Y)
	cell.DoorMask = world.NoDoor
	cell.Flags = 0
	if cell.Typ.IsRoom() {
		g.Set(pos.X, pos.Y, world.Floor)
	}
}

// removeTrap deletes the trap at (x,y), if any.
func (p *Placer) removeTrap(x, y int) {
	pos := world.Coord{X: x, Y: y}
	if !p.traps.Has(pos) {
		return
	}
	g := p.ctx.Grid
	for i, t := range g.Traps {
		if t.X == x && t.Y == y {
			g.Traps = append(g.Traps[:i], g.Traps[i+1:]...)
			break
		}
	}
	p.traps.Remove(pos)
}
