package levelgen

import (
	"splev/pkg/engine/world"
)

// ObjectSpec describes an object to place. Class 0 is any class; an empty ID
// is a random object of the class.
type ObjectSpec struct {
	Class  rune
	ID     string
	Buried bool
}

// Object records an object placement and returns where it went.
func (p *Placer) Object(o ObjectSpec, x, y int, croom *world.Room) (world.Coord, error) {
	c := p.ctx
	pos, err := p.Location(x, y, Dry, croom)
	if err != nil {
		c.Log.Printf("object: %v", err)
		return pos, nil
	}
	c.Grid.Objects = append(c.Grid.Objects, world.Object{X: pos.X, Y: pos.Y, Class: o.Class, ID: o.ID, Buried: o.Buried})
	if o.ID == "boulder" {
		p.boulders.Put(pos)
	}
	return pos, nil
}

// MonsterSpec describes a monster to place. Peaceful and Asleep are -1 for
// "decided by the game".
type MonsterSpec struct {
	Class    rune
	ID       string
	Peaceful int
	Asleep   int
}

// Monster records a monster placement. When the spot is taken the monster
// moves to a random free location in the nearest ring around it that has one.
func (p *Placer) Monster(m MonsterSpec, x, y int, croom *world.Room) (world.Coord, error) {
	c := p.ctx
	var pos world.Coord
	var err error
	if croom != nil && x == Random {
		var ok bool
		if pos, ok = c.SomeXY(croom); !ok {
			err = ErrNoLocation
		}
	} else {
		pos, err = p.Location(x, y, Dry, croom)
	}
	if err != nil {
		c.Log.Printf("monster: %v", err)
		return pos, nil
	}
	if p.MonsterAt(pos.X, pos.Y) {
		near, ok := p.enexto(pos)
		if !ok {
			c.Log.Printf("monster: no room for %s near (%d,%d)", m.ID, pos.X, pos.Y)
			return pos, nil
		}
		pos = near
	}
	c.Grid.Monsters = append(c.Grid.Monsters, world.Monster{
		X: pos.X, Y: pos.Y, Class: m.Class, ID: m.ID, Peaceful: m.Peaceful, Asleep: m.Asleep,
	})
	p.monsters.Put(pos)
	return pos, nil
}

// enexto searches rings of growing radius around pos and picks one of the
// free standing spots in the first ring that has any.
func (p *Placer) enexto(pos world.Coord) (world.Coord, bool) {
	g := p.ctx.Grid
	for r := 1; r < world.ColNo; r++ {
		var ring []world.Coord
		for x := pos.X - r; x <= pos.X+r; x++ {
			for y := pos.Y - r; y <= pos.Y+r; y++ {
				if abs(x-pos.X) != r && abs(y-pos.Y) != r {
					continue
				}
				if !world.IsOK(x, y) || !g.Typ(x, y).SpacePos() || p.MonsterAt(x, y) {
					continue
				}
				ring = append(ring, world.Coord{X: x, Y: y})
			}
		}
		if len(ring) > 0 {
			return ring[p.ctx.RNG.Rn2(len(ring))], true
		}
	}
	return world.Coord{}, false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
