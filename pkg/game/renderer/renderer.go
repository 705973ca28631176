// Package renderer draws finalized levels as ASCII maps, optionally colored
// for a terminal.
package renderer

import (
	"bufio"
	"io"

	"github.com/gookit/color"

	"splev/pkg/engine/world"
	"splev/pkg/game/levelgen"
	"splev/pkg/game/state"
)

// Glyphs for things that are not terrain.
const (
	GlyphTrap    = '^'
	GlyphObject  = ')'
	GlyphMonster = 'm'
	GlyphUp      = '<'
	GlyphDown    = '>'
)

var (
	ColorWall    color.Style
	ColorFloor   color.Style
	ColorLitRoom color.Style
	ColorCorr    color.Style
	ColorDoor    color.Style
	ColorWater   color.Style
	ColorLava    color.Style
	ColorTree    color.Style
	ColorFeature color.Style
	ColorStairs  color.Style
	ColorTrap    color.Style
	ColorObject  color.Style
	ColorMonster color.Style
	ColorSecret  color.Style
)

func init() {
	InitColors()
}

// InitColors initializes the color styles
func InitColors() {
	ColorWall = color.Style{color.FgGray}
	ColorFloor = color.Style{color.FgGray}
	ColorLitRoom = color.Style{color.FgWhite}
	ColorCorr = color.Style{color.FgGray, color.OpBold}
	ColorDoor = color.Style{color.FgYellow}
	ColorWater = color.Style{color.FgBlue, color.OpBold}
	ColorLava = color.Style{color.FgRed, color.OpBold}
	ColorTree = color.Style{color.FgGreen}
	ColorFeature = color.Style{color.FgCyan, color.OpBold}
	ColorStairs = color.Style{color.FgWhite, color.OpBold}
	ColorTrap = color.Style{color.FgMagenta, color.OpBold}
	ColorObject = color.Style{color.FgCyan}
	ColorMonster = color.Style{color.FgRed}
	ColorSecret = color.Style{color.FgMagenta}
}

// Glyph returns the map character of a cell's terrain. Where a map-fragment
// character exists for the terrain it is used, so a dump reads like a map.
func Glyph(c world.Cell) rune {
	switch c.Typ {
	case world.Stone:
		return ' '
	case world.VWall, world.TLWall, world.TRWall:
		return '|'
	case world.HWall, world.TLCorner, world.TRCorner, world.BLCorner, world.BRCorner,
		world.CrossWall, world.TUWall, world.TDWall:
		return '-'
	case world.DBWall, world.DrawbridgeUp:
		return '#'
	case world.Tree:
		return 'T'
	case world.SDoor:
		return 'S'
	case world.SCorr:
		return 'H'
	case world.Pool:
		return 'P'
	case world.Moat:
		return '}'
	case world.Water:
		return 'W'
	case world.LavaPool:
		return 'L'
	case world.LavaWall:
		return 'Z'
	case world.IronBars:
		return 'F'
	case world.Doorway:
		switch {
		case c.DoorMask&world.Open != 0:
			if c.Horizontal {
				return '|'
			}
			return '-'
		case c.DoorMask&(world.Closed|world.Locked) != 0:
			return '+'
		}
		return '.'
	case world.Corr:
		return '#'
	case world.Floor, world.DrawbridgeDown:
		return '.'
	case world.Stairs, world.Ladder:
		if c.Flags&levelgen.StairUp != 0 {
			return GlyphUp
		}
		return GlyphDown
	case world.Fountain:
		return '{'
	case world.Throne:
		return '\\'
	case world.Sink:
		return 'K'
	case world.Grave:
		return '|'
	case world.Altar:
		return '_'
	case world.Ice:
		return 'I'
	case world.Air:
		return 'A'
	case world.Cloud:
		return 'C'
	}
	return '?'
}

// style picks the color of a cell's terrain.
func style(c world.Cell) color.Style {
	t := c.Typ
	switch {
	case t == world.SDoor || t == world.SCorr:
		return ColorSecret
	case t.IsWall():
		return ColorWall
	case t == world.Tree:
		return ColorTree
	case t == world.Doorway:
		return ColorDoor
	case t.IsLava():
		return ColorLava
	case t.IsPool() || t == world.Ice:
		return ColorWater
	case t.IsStairs():
		return ColorStairs
	case t.IsFurniture():
		return ColorFeature
	case t == world.Corr:
		return ColorCorr
	case t == world.Floor && c.Lit:
		return ColorLitRoom
	}
	return ColorFloor
}

// Options controls Render.
type Options struct {
	// Color emits ANSI colors.
	Color bool
	// Contents draws traps, objects and monsters over the terrain.
	Contents bool
}

type overlay struct {
	glyph rune
	style color.Style
}

// contents returns what stands on each location, monsters over objects over
// traps.
func contents(lvl *state.Level) map[world.Coord]overlay {
	out := map[world.Coord]overlay{}
	for _, t := range lvl.Traps() {
		out[world.Coord{X: t.X, Y: t.Y}] = overlay{GlyphTrap, ColorTrap}
	}
	for _, o := range lvl.Objects() {
		g := o.Class
		if g == 0 {
			g = GlyphObject
		}
		out[world.Coord{X: o.X, Y: o.Y}] = overlay{g, ColorObject}
	}
	for _, m := range lvl.Monsters() {
		g := m.Class
		if g == 0 {
			g = GlyphMonster
		}
		out[world.Coord{X: m.X, Y: m.Y}] = overlay{g, ColorMonster}
	}
	return out
}

// Render writes the level as world.RowNo lines of world.ColNo-1 characters.
// Column 0 is not part of the map and is left out.
func Render(w io.Writer, lvl *state.Level, opts Options) error {
	var over map[world.Coord]overlay
	if opts.Contents {
		over = contents(lvl)
	}
	bw := bufio.NewWriter(w)
	for y := 0; y < world.RowNo; y++ {
		for x := 1; x < world.ColNo; x++ {
			cell := lvl.At(x, y)
			g, st := Glyph(cell), style(cell)
			if o, ok := over[world.Coord{X: x, Y: y}]; ok {
				g, st = o.glyph, o.style
			}
			if opts.Color && g != ' ' {
				bw.WriteString(st.Sprint(string(g)))
			} else {
				bw.WriteRune(g)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Lines returns the uncolored terrain map, one string per row.
func Lines(lvl *state.Level) []string {
	lines := make([]string, world.RowNo)
	for y := range lines {
		row := make([]rune, 0, world.ColNo-1)
		for x := 1; x < world.ColNo; x++ {
			row = append(row, Glyph(lvl.At(x, y)))
		}
		lines[y] = string(row)
	}
	return lines
}
