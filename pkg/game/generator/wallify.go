package generator

import "splev/pkg/engine/world"

// WallifyMap turns every stone cell next to floor in the area into a wall:
// horizontal when the floor is above or below, vertical otherwise.
func (c *Context) WallifyMap(x1, y1, x2, y2 int) {
	g := c.Grid
	x1 = max(x1, 1)
	y1 = max(y1, 0)
	x2 = min(x2, world.ColNo-1)
	y2 = min(y2, world.RowNo-1)

	for y := y1; y <= y2; y++ {
		lo := max(y-1, 0)
		hi := min(y+1, y2)
		for x := x1; x <= x2; x++ {
			if g.Typ(x, y) != world.Stone {
				continue
			}
		scan:
			for yy := lo; yy <= hi; yy++ {
				for xx := max(x-1, 1); xx <= min(x+1, x2); xx++ {
					if t := g.Typ(xx, yy); t.IsRoom() || t == world.CrossWall {
						if yy != y {
							g.Set(x, y, world.HWall)
						} else {
							g.Set(x, y, world.VWall)
						}
						break scan
					}
				}
			}
		}
	}
}

// Wallification removes walls buried in rock and then picks the right wall
// piece for every remaining wall in the area.
func (c *Context) Wallification(x1, y1, x2, y2 int) {
	c.wallCleanup(x1, y1, x2, y2)
	c.fixWallSpines(x1, y1, x2, y2)
}

// solid is true for locations a wall cannot be seen from.
func (c *Context) solid(x, y int) bool {
	return !world.IsOK(x, y) || c.Grid.Typ(x, y).IsStWall()
}

// wallCleanup turns walls surrounded by rock on all eight sides into stone.
func (c *Context) wallCleanup(x1, y1, x2, y2 int) {
	g := c.Grid
	for x := x1; x <= x2; x++ {
		for y := y1; y <= y2; y++ {
			if !world.IsOK(x, y) {
				continue
			}
			t := g.Typ(x, y)
			if !t.IsWall() || t == world.DBWall {
				continue
			}
			if c.solid(x-1, y-1) && c.solid(x-1, y) && c.solid(x-1, y+1) &&
				c.solid(x, y-1) && c.solid(x, y+1) &&
				c.solid(x+1, y-1) && c.solid(x+1, y) && c.solid(x+1, y+1) {
				g.Set(x, y, world.Stone)
			}
		}
	}
}

// spines maps the four "wall continues this way" bits (N, S, E, W from the
// high bit down) to a wall piece.
var spines = [16]world.Terrain{
	world.VWall,     // 0: unused, the wall keeps its piece
	world.HWall,     // W
	world.HWall,     // E
	world.HWall,     // E W
	world.VWall,     // S
	world.TRCorner,  // S W
	world.TLCorner,  // S E
	world.TDWall,    // S E W
	world.VWall,     // N
	world.BRCorner,  // N W
	world.BLCorner,  // N E
	world.TUWall,    // N E W
	world.VWall,     // N S
	world.TLWall,    // N S W
	world.TRWall,    // N S E
	world.CrossWall, // N S E W
}

func (c *Context) isWallish(x, y int) bool {
	if !world.IsOK(x, y) {
		return false
	}
	t := c.Grid.Typ(x, y)
	return t.IsWall() || t == world.Doorway || t == world.LavaWall || t == world.SDoor || t == world.IronBars
}

func (c *Context) isWallOrStone(x, y int) bool {
	if !world.IsOK(x, y) {
		return true
	}
	return c.Grid.Typ(x, y) == world.Stone || c.isWallish(x, y)
}

// extendSpine decides whether the wall continues toward (dx,dy). A wall in
// that direction does not count when both sides of it are solid, since the
// joint would only be seen from inside rock.
func extendSpine(locale *[3][3]bool, wallThere bool, dx, dy int) int {
	if !wallThere {
		return 0
	}
	nx, ny := 1+dx, 1+dy
	if dx != 0 {
		if locale[1][0] && locale[1][2] && locale[nx][0] && locale[nx][2] {
			return 0
		}
		return 1
	}
	if locale[0][1] && locale[2][1] && locale[0][ny] && locale[2][ny] {
		return 0
	}
	return 1
}

// fixWallSpines replaces every wall in the area with the piece that matches
// its neighbouring walls.
func (c *Context) fixWallSpines(x1, y1, x2, y2 int) {
	g := c.Grid
	for x := x1; x <= x2; x++ {
		for y := y1; y <= y2; y++ {
			if !world.IsOK(x, y) {
				continue
			}
			t := g.Typ(x, y)
			if !t.IsWall() || t == world.DBWall {
				continue
			}
			var locale [3][3]bool
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					locale[i][j] = c.isWallOrStone(x+i-1, y+j-1)
				}
			}
			bits := extendSpine(&locale, c.isWallish(x, y-1), 0, -1)<<3 |
				extendSpine(&locale, c.isWallish(x, y+1), 0, 1)<<2 |
				extendSpine(&locale, c.isWallish(x+1, y), 1, 0)<<1 |
				extendSpine(&locale, c.isWallish(x-1, y), -1, 0)
			// A wall with no visible neighbours keeps its piece.
			if bits == 0 {
				continue
			}
			g.Set(x, y, spines[bits])
		}
	}
}

// SetWallProperty sets WallInfo bits on walls, stone and trees in the area.
func (c *Context) SetWallProperty(x1, y1, x2, y2 int, prop int) {
	g := c.Grid
	x1 = max(x1, 1)
	y1 = max(y1, 0)
	x2 = min(x2, world.ColNo-1)
	y2 = min(y2, world.RowNo-1)
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if t := g.Typ(x, y); t.IsStWall() || t == world.Tree {
				g.At(x, y).WallInfo |= prop
			}
		}
	}
}
