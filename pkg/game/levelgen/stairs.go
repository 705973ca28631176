package levelgen

import (
	"fmt"

	"splev/pkg/engine/world"
	"splev/pkg/game/generator"
)

// goodStairLocation accepts plain floor, corridors and ice.
func (p *Placer) goodStairLocation(x, y int) bool {
	switch p.ctx.Grid.Typ(x, y) {
	case world.Floor, world.Corr, world.Ice:
		return true
	}
	return false
}

// Stairs places an up or down staircase. Random locations are limited to
// floor, corridor and ice. A trap already on the spot is removed. There is no
// way up from the first level, so an up staircase there is skipped.
func (p *Placer) Stairs(x, y int, up bool, croom *world.Room) error {
	var pos world.Coord
	var err error
	if x == Random {
		p.withFilter(p.goodStairLocation, func() {
			pos, err = p.Location(x, y, Dry, croom)
		})
	} else {
		pos, err = p.Location(x, y, Dry, croom)
	}
	if err != nil {
		return &generator.StructuralError{Element: stairName(up, false), Reason: "no location", Err: err}
	}
	p.removeTrap(pos.X, pos.Y)
	if up && p.ctx.Depth == 1 {
		return nil
	}
	return p.addStairway(pos, up, false)
}

// Ladder places a ladder. Ladders are allowed on any level.
func (p *Placer) Ladder(x, y int, up bool, croom *world.Room) error {
	pos, err := p.Location(x, y, Dry, croom)
	if err != nil {
		return &generator.StructuralError{Element: stairName(up, true), Reason: "no location", Err: err}
	}
	return p.addStairway(pos, up, true)
}

func (p *Placer) addStairway(pos world.Coord, up, ladder bool) error {
	g := p.ctx.Grid
	for _, s := range g.Stairs {
		if s.Up == up {
			return &generator.StructuralError{
				Element: stairName(up, ladder),
				Reason:  fmt.Sprintf("level already has one at (%d,%d)", s.X, s.Y),
			}
		}
	}
	typ := world.Stairs
	if ladder {
		typ = world.Ladder
	}
	if !g.Set(pos.X, pos.Y, typ) {
		return &generator.StructuralError{
			Element: stairName(up, ladder),
			Reason:  fmt.Sprintf("(%d,%d) is already a stairway", pos.X, pos.Y),
		}
	}
	cell := g.At(pos.X, pos.Y)
	cell.Flags = 0
	if up {
		cell.Flags = StairUp
	}
	g.Stairs = append(g.Stairs, world.Stairway{X: pos.X, Y: pos.Y, Up: up, Ladder: ladder})
	return nil
}

// StairUp is the cell flag of an up stairway.
const StairUp = 1

func stairName(up, ladder bool) string {
	dir := "down"
	if up {
		dir = "up"
	}
	if ladder {
		return dir + " ladder"
	}
	return dir + " stairs"
}
