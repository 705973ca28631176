package des

import (
	"strings"

	"splev/pkg/engine/world"
)

// parseMap splits a fragment into rows of terrain. One leading and one
// trailing newline are dropped so fragments can be written as raw string
// literals. Short rows are padded with stone.
func parseMap(s string) ([][]world.Terrain, error) {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil, invalidf("empty map")
	}
	lines := strings.Split(s, "\n")
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	rows := make([][]world.Terrain, len(lines))
	for y, l := range lines {
		row := make([]world.Terrain, width)
		for x, ch := range []rune(l) {
			t, ok := world.TerrainFromChar(ch)
			if !ok {
				return nil, invalidf("unknown map character %q at (%d,%d)", ch, x, y)
			}
			row[x] = t
		}
		rows[y] = row
	}
	return rows, nil
}

// mapOrigin works out where a fragment of the given size goes.
func (b *Builder) mapOrigin(m MapSpec, xsize, ysize int) (int, int, error) {
	g := b.ctx.Grid
	if xsize > world.ColNo-1 || ysize > world.RowNo {
		return 0, 0, invalidf("map is %dx%d, larger than the level", xsize, ysize)
	}
	if m.At.Fixed() {
		xstart, ystart := m.At.X, m.At.Y
		if !world.IsOK(xstart, ystart) || !world.IsOK(xstart+xsize-1, ystart+ysize-1) {
			return 0, 0, invalidf("map at (%d,%d) does not fit", xstart, ystart)
		}
		return xstart, ystart, nil
	}

	var xstart, ystart int
	switch m.HAlign {
	case HLeft:
		xstart = 3
		if b.initPresent {
			xstart = 1
		}
	case HHalfLeft:
		xstart = 2 + (g.XMazeMax-2-xsize)/4
	case HHalfRight:
		xstart = 2 + (g.XMazeMax-2-xsize)*3/4
	case HRight:
		xstart = g.XMazeMax - xsize - 1
	default:
		xstart = 2 + (g.XMazeMax-2-xsize)/2
	}
	switch m.VAlign {
	case VTop:
		ystart = 3
	case VBottom:
		ystart = g.YMazeMax - ysize - 1
	default:
		ystart = 2 + (g.YMazeMax-2-ysize)/2
	}
	if xstart%2 == 0 {
		xstart++
	}
	if ystart%2 == 0 {
		ystart++
	}
	if ystart < 0 || ystart+ysize > world.RowNo {
		if ystart > 0 {
			ystart -= 2
		} else {
			ystart += 2
		}
		if ysize == world.RowNo {
			ystart = 0
		}
		if ystart < 0 || ystart+ysize > world.RowNo {
			return 0, 0, invalidf("map is %d rows, too tall to place", ysize)
		}
	}
	xstart = max(xstart, 1)
	if xstart+xsize > world.ColNo {
		return 0, 0, invalidf("map is %d columns, too wide to place", xsize)
	}
	return xstart, ystart, nil
}

// Map writes an ASCII fragment onto the level. Later relative coordinates
// are measured from the fragment's top left corner.
func (b *Builder) Map(m MapSpec) error {
	return b.do("map", func() error {
		rows, err := parseMap(m.Map)
		if err != nil {
			return err
		}
		ysize, xsize := len(rows), len(rows[0])
		xstart, ystart, err := b.mapOrigin(m, xsize, ysize)
		if err != nil {
			return err
		}
		g := b.ctx.Grid
		g.XStart, g.YStart = xstart, ystart
		g.XSize, g.YSize = xsize, ysize

		for y := ystart; y < ystart+ysize; y++ {
			for x := xstart; x < xstart+xsize; x++ {
				typ := rows[y-ystart][x-xstart]
				if typ == world.MaxTerrain {
					continue
				}
				if !g.Set(x, y, typ) {
					continue
				}
				cell := g.At(x, y)
				cell.Lit = false
				cell.Flags = 0
				cell.Horizontal = false
				cell.RoomNo = world.NoRoom
				cell.Edge = false
				cell.DoorMask = world.NoDoor
				cell.MapFragment = true
				switch {
				case typ == world.HWall || typ == world.IronBars:
					cell.Horizontal = true
				case typ == world.Doorway || typ == world.SDoor:
					if typ == world.SDoor {
						cell.DoorMask = world.Closed
					}
					if x != xstart {
						left := g.At(x-1, y)
						if left.Typ.IsWall() || left.Horizontal {
							cell.Horizontal = true
						}
					}
				case typ == world.LavaPool:
					cell.Lit = true
				}
			}
		}
		return nil
	})
}
