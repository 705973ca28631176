// Package levelgen places stairs, furniture, traps, objects and monsters on a
// level that the generator has already shaped.
package levelgen

import (
	"errors"

	"github.com/zyedidia/generic/mapset"

	"splev/pkg/engine/world"
	"splev/pkg/game/generator"
)

// Humidity is a mask of the kinds of location a placement accepts.
type Humidity int

const (
	// Dry accepts any location something can stand on, unless a boulder is
	// already there.
	Dry Humidity = 1 << iota
	Wet
	Hot
	Solid
	AnyLoc
	// SpaceLoc is Dry without the boulder check.
	SpaceLoc
)

// Random marks a coordinate that should be chosen by the placer.
const Random = -1

// ErrNoLocation is returned when no acceptable location exists.
var ErrNoLocation = errors.New("no acceptable location")

// Placer resolves placement locations on one level and keeps track of what
// has been put where.
type Placer struct {
	ctx *generator.Context

	traps    mapset.Set[world.Coord]
	monsters mapset.Set[world.Coord]
	boulders mapset.Set[world.Coord]

	// okLocation further restricts random locations while set.
	okLocation func(x, y int) bool
}

// NewPlacer returns a placer over c's grid. Anything already recorded on the
// grid counts as occupied.
func NewPlacer(c *generator.Context) *Placer {
	p := &Placer{
		ctx:      c,
		traps:    mapset.New[world.Coord](),
		monsters: mapset.New[world.Coord](),
		boulders: mapset.New[world.Coord](),
	}
	for _, t := range c.Grid.Traps {
		p.traps.Put(world.Coord{X: t.X, Y: t.Y})
	}
	for _, m := range c.Grid.Monsters {
		p.monsters.Put(world.Coord{X: m.X, Y: m.Y})
	}
	for _, o := range c.Grid.Objects {
		if o.ID == "boulder" {
			p.boulders.Put(world.Coord{X: o.X, Y: o.Y})
		}
	}
	return p
}

// Context returns the generator context the placer works on.
func (p *Placer) Context() *generator.Context {
	return p.ctx
}

// TrapAt reports whether a trap was placed at (x,y).
func (p *Placer) TrapAt(x, y int) bool {
	return p.traps.Has(world.Coord{X: x, Y: y})
}

// MonsterAt reports whether a monster was placed at (x,y).
func (p *Placer) MonsterAt(x, y int) bool {
	return p.monsters.Has(world.Coord{X: x, Y: y})
}

// BoulderAt reports whether a boulder lies at (x,y).
func (p *Placer) BoulderAt(x, y int) bool {
	return p.boulders.Has(world.Coord{X: x, Y: y})
}

// OKLocation reports whether (x,y) has terrain of a kind h accepts.
func (p *Placer) OKLocation(x, y int, h Humidity) bool {
	if p.okLocation != nil && !p.okLocation(x, y) {
		return false
	}
	if h&AnyLoc != 0 {
		return true
	}
	typ := p.ctx.Grid.Typ(x, y)
	if h&Solid != 0 && typ.IsObstructed() {
		return true
	}
	if h&(Dry|SpaceLoc) != 0 && typ.SpacePos() {
		if h&Dry == 0 || !p.BoulderAt(x, y) {
			return true
		}
	}
	if h&Wet != 0 && typ.IsPool() {
		return true
	}
	if h&Hot != 0 && typ.IsLava() {
		return true
	}
	return false
}

// Location turns a script coordinate into a map location. Coordinates are
// relative to croom's floor, or to the last map fragment when croom is nil.
// A Random x picks up to a hundred random candidates and then scans the area
// in order for the first acceptable one.
func (p *Placer) Location(x, y int, h Humidity, croom *world.Room) (world.Coord, error) {
	c := p.ctx
	g := c.Grid
	var mx, my, sx, sy int
	if croom != nil {
		mx, my = croom.LX, croom.LY
		sx, sy = croom.HX-mx+1, croom.HY-my+1
	} else {
		mx, my = g.XStart, g.YStart
		sx, sy = g.XSize, g.YSize
	}

	if x >= 0 {
		pos := world.Coord{X: x + mx, Y: y + my}
		if h&AnyLoc == 0 && !world.IsOK(pos.X, pos.Y) {
			return pos, &generator.StructuralError{Element: "location", Reason: "out of bounds"}
		}
		return pos, nil
	}

	for cpt := 0; cpt < 100; cpt++ {
		var pos world.Coord
		if croom != nil {
			var ok bool
			if pos, ok = c.SomeXY(croom); !ok {
				continue
			}
		} else {
			pos.X = mx + c.RNG.Rn2(sx)
			pos.Y = my + c.RNG.Rn2(sy)
		}
		if world.IsOK(pos.X, pos.Y) && p.OKLocation(pos.X, pos.Y, h) {
			return pos, nil
		}
	}
	for xx := 0; xx < sx; xx++ {
		for yy := 0; yy < sy; yy++ {
			if world.IsOK(xx+mx, yy+my) && p.OKLocation(xx+mx, yy+my, h) {
				return world.Coord{X: xx + mx, Y: yy + my}, nil
			}
		}
	}
	return world.Coord{X: -1, Y: -1}, ErrNoLocation
}

// FreeRoomLocation finds a room-floor location in croom. A requested spot
// that is not plain floor is replaced with random tries.
func (p *Placer) FreeRoomLocation(x, y int, croom *world.Room) (world.Coord, error) {
	g := p.ctx.Grid
	pos, err := p.Location(x, y, Dry, croom)
	if err == nil && g.Typ(pos.X, pos.Y) == world.Floor {
		return pos, nil
	}
	for trycnt := 0; trycnt <= 100; trycnt++ {
		pos, err = p.Location(x, y, Dry, croom)
		if err == nil && g.Typ(pos.X, pos.Y) == world.Floor {
			return pos, nil
		}
	}
	return pos, ErrNoLocation
}

// withFilter runs fn with random locations further limited to ok.
func (p *Placer) withFilter(ok func(x, y int) bool, fn func()) {
	prev := p.okLocation
	p.okLocation = ok
	defer func() { p.okLocation = prev }()
	fn()
}
