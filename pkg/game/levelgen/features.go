package levelgen

import (
	"fmt"

	"splev/pkg/engine/world"
)

// Alignment bits stored in an altar cell's Flags.
const (
	AlignChaotic = 1
	AlignNeutral = 2
	AlignLawful  = 4
	AlignShrine  = 8
)

// AlignRandom asks Altar to roll the alignment.
const AlignRandom = -1

// randomAligns is indexed by rn2(3).
var randomAligns = [3]int{AlignChaotic, AlignNeutral, AlignLawful}

// Altar places an altar. Altars are never put on stairs. shrine -1 is a coin
// flip; a shrine is only recorded when the altar stands in a temple.
func (p *Placer) Altar(x, y, align, shrine int, croom *world.Room) error {
	c := p.ctx
	g := c.Grid
	pos, err := p.Location(x, y, Dry, croom)
	if err != nil {
		c.Log.Printf("altar: %v", err)
		return nil
	}
	temple := false
	if r := c.RoomAt(pos.X, pos.Y); r != nil && r.Type == world.Temple {
		temple = true
	} else if shrine > 0 {
		shrine = 0
	}
	if g.Typ(pos.X, pos.Y).IsStairs() {
		return nil
	}
	if align == AlignRandom {
		align = randomAligns[c.RNG.Rn2(3)]
	}
	g.Set(pos.X, pos.Y, world.Altar)
	cell := g.At(pos.X, pos.Y)
	cell.Flags = align
	if shrine < 0 {
		shrine = c.RNG.Rn2(2)
	}
	if temple && shrine != 0 {
		cell.Flags |= AlignShrine
	}
	return nil
}

// featureKinds are the terrains Feature can place.
var featureKinds = map[world.Terrain]bool{
	world.Fountain: true,
	world.Sink:     true,
	world.Throne:   true,
	world.Tree:     true,
	world.Grave:    true,
	world.Pool:     true,
	world.Ice:      true,
}

// Feature places a single piece of terrain furniture: a fountain, sink,
// throne, tree, grave, pool or ice. Stairs and ladders are left alone.
func (p *Placer) Feature(typ world.Terrain, x, y int, croom *world.Room) error {
	if !featureKinds[typ] {
		return fmt.Errorf("feature: %v is not a feature", typ)
	}
	c := p.ctx
	pos, err := p.Location(x, y, Dry, croom)
	if err != nil {
		c.Log.Printf("feature: no place for %v: %v", typ, err)
		return nil
	}
	if c.Grid.Typ(pos.X, pos.Y).IsStairs() {
		return nil
	}
	c.Grid.Set(pos.X, pos.Y, typ)
	c.Grid.At(pos.X, pos.Y).Flags = 0
	return nil
}
