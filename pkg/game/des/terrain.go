package des

import (
	"splev/pkg/engine/selection"
	"splev/pkg/engine/world"
	"splev/pkg/game/generator"
)

// Terrain writes typ over every location of area. Lighting is left alone
// unless lit asks otherwise; random lighting is rolled per location.
func (b *Builder) Terrain(area selection.Selection, typ world.Terrain, lit Light) error {
	return b.do("terrain", func() error {
		if !typ.Valid() {
			return invalidf("unknown terrain %d", typ)
		}
		state := lit.state(generator.LitKeep)
		area.Each(func(x, y int) {
			b.ctx.SetTypLit(x, y, typ, state)
		})
		return nil
	})
}

// ReplaceTerrain changes locations of one terrain to another. With a chance
// below 100 each matching location is kept or dropped with a rn2(100) roll.
func (b *Builder) ReplaceTerrain(r ReplaceSpec) error {
	return b.do("replace_terrain", func() error {
		if !r.From.Valid() || !r.To.Valid() {
			return invalidf("unknown terrain in replacement %d -> %d", r.From, r.To)
		}
		area := selection.All()
		if r.Area != nil {
			area = *r.Area
		}
		area = area.FilterTerrain(b.ctx.Grid, r.From)
		if r.Chance > 0 && r.Chance < 100 {
			area = area.Percentage(b.ctx.RNG, r.Chance)
		}
		state := r.Lit.state(generator.LitKeep)
		area.Each(func(x, y int) {
			b.ctx.SetTypLit(x, y, r.To, state)
		})
		return nil
	})
}

// MazeWalk carves a maze from a fixed position relative to the last map
// fragment, first stepping toward dir. A zero dir is random.
func (b *Builder) MazeWalk(at Pos, dir world.Wall) error {
	return b.do("mazewalk", func() error {
		if !at.Fixed() {
			return invalidf("mazewalk needs a position")
		}
		x, y := b.abs(at.X, at.Y)
		if !world.IsOK(x, y) {
			return invalidf("mazewalk from (%d,%d) is off the map", x, y)
		}
		switch dir {
		case 0, world.North, world.South, world.East, world.West:
		default:
			return invalidf("mazewalk needs a single direction, got %v", dir)
		}
		b.ctx.MazeWalk(x, y, dir)
		return nil
	})
}
