package generator

import "splev/pkg/engine/world"

// Maze directions, in the order random picks index them.
const (
	dirNorth = iota
	dirEast
	dirSouth
	dirWest
)

func mazeMove(x, y, dir int) (int, int) {
	switch dir {
	case dirNorth:
		return x, y - 1
	case dirEast:
		return x + 1, y
	case dirSouth:
		return x, y + 1
	case dirWest:
		return x - 1, y
	}
	panic("maze: bad direction")
}

// mazeFloor is the terrain carved maze passages use.
func (c *Context) mazeFloor() world.Terrain {
	if c.Flags.CorrMaze {
		return world.Corr
	}
	return world.Floor
}

// MazeGrid lays out the maze lattice over the maze bounds: stone on the odd
// lattice points and the top two rows, filling everywhere else. Corridor
// mazes start as solid stone.
func (c *Context) MazeGrid(filling world.Terrain) {
	g := c.Grid
	for x := 2; x <= g.XMazeMax; x++ {
		for y := 0; y <= g.YMazeMax; y++ {
			switch {
			case c.Flags.CorrMaze:
				g.Set(x, y, world.Stone)
			case y < 2 || (x%2 != 0 && y%2 != 0):
				g.Set(x, y, world.Stone)
			default:
				g.Set(x, y, filling)
			}
		}
	}
}

func (c *Context) mazeOK(x, y, dir int) bool {
	x, y = mazeMove(x, y, dir)
	x, y = mazeMove(x, y, dir)
	g := c.Grid
	if x < 3 || y < 3 || x > g.XMazeMax || y > g.YMazeMax || g.Typ(x, y) != world.Stone {
		return false
	}
	return true
}

func (c *Context) mazeAccessible(x, y int) bool {
	return world.IsOK(x, y) && c.Grid.Typ(x, y).IsAccessible()
}

func (c *Context) mazeInBounds(x, y int) bool {
	g := c.Grid
	return x >= 2 && y >= 2 && x < g.XMazeMax && y < g.YMazeMax && world.IsOK(x, y)
}

// WalkFrom carves a perfect maze from (x,y) with a depth-first walk over the
// odd lattice. typ Stone means the level's default maze floor.
func (c *Context) WalkFrom(x, y int, typ world.Terrain) {
	if typ == world.Stone {
		typ = c.mazeFloor()
	}
	g := c.Grid
	enter := func(x, y int) {
		if !g.Typ(x, y).IsDoor() {
			g.Set(x, y, typ)
			g.At(x, y).Flags = 0
		}
	}
	enter(x, y)

	// Each walker keeps stepping from where its last child started, so a
	// walker that has branched once never comes back to its own cell.
	type walker struct{ x, y int }
	stack := []walker{{x, y}}
	for len(stack) > 0 {
		top := len(stack) - 1
		w := stack[top]
		var dirs [4]int
		q := 0
		for a := 0; a < 4; a++ {
			if c.mazeOK(w.x, w.y, a) {
				dirs[q] = a
				q++
			}
		}
		if q == 0 {
			stack = stack[:top]
			continue
		}
		dir := dirs[c.RNG.Rn2(q)]
		nx, ny := mazeMove(w.x, w.y, dir)
		g.Set(nx, ny, typ)
		nx, ny = mazeMove(nx, ny, dir)
		stack[top] = walker{nx, ny}
		enter(nx, ny)
		stack = append(stack, walker{nx, ny})
	}
}

// Maze0XY picks a random odd lattice point inside the maze bounds.
func (c *Context) Maze0XY() world.Coord {
	g := c.Grid
	x := 3 + 2*c.RNG.Rn2((g.XMazeMax>>1)-1)
	y := 3 + 2*c.RNG.Rn2((g.YMazeMax>>1)-1)
	return world.Coord{X: x, Y: y}
}

// removeDeadEnds opens one extra wall at every dead end of the maze.
func (c *Context) removeDeadEnds(typ world.Terrain) {
	g := c.Grid
	for x := 2; x < g.XMazeMax; x++ {
		for y := 2; y < g.YMazeMax; y++ {
			if !c.mazeAccessible(x, y) || x%2 == 0 || y%2 == 0 {
				continue
			}
			var dirok [4]int
			idx, idx2 := 0, 0
			for dir := 0; dir < 4; dir++ {
				dx, dy := mazeMove(x, y, dir)
				if !c.mazeInBounds(dx, dy) {
					idx2++
					continue
				}
				dx2, dy2 := mazeMove(dx, dy, dir)
				if !c.mazeInBounds(dx2, dy2) {
					idx2++
					continue
				}
				if !c.mazeAccessible(dx, dy) && c.mazeAccessible(dx2, dy2) {
					dirok[idx] = dir
					idx++
					idx2++
				}
			}
			if idx2 >= 3 && idx > 0 {
				dir := dirok[c.RNG.Rn2(idx)]
				dx, dy := mazeMove(x, y, dir)
				g.Set(dx, dy, typ)
			}
		}
	}
}

// MazeParams configures CreateMaze. A corridor width of -1 is rnd(4); a wall
// thickness of -1 is rnd(4) less the corridor width. Results are clamped to
// 1..5.
type MazeParams struct {
	CorridorWidth  int
	WallThickness  int
	RemoveDeadEnds bool
}

// CreateMaze carves a maze over the whole maze area. Corridor widths and wall
// thicknesses above one are produced by carving a small maze and scaling it
// up.
func (c *Context) CreateMaze(p MazeParams) {
	g := c.Grid
	corrwid, wallthick := p.CorridorWidth, p.WallThickness
	if corrwid == -1 {
		corrwid = c.RNG.Rnd(4)
	}
	if wallthick == -1 {
		wallthick = c.RNG.Rnd(4) - corrwid
	}
	wallthick = clamp(wallthick, 1, 5)
	corrwid = clamp(corrwid, 1, 5)
	scale := corrwid + wallthick
	rdx := g.XMazeMax / scale
	rdy := g.YMazeMax / scale

	if c.Flags.CorrMaze {
		for x := 2; x < rdx*2; x++ {
			for y := 2; y < rdy*2; y++ {
				g.Set(x, y, world.Stone)
			}
		}
	} else {
		for x := 2; x <= rdx*2; x++ {
			for y := 2; y <= rdy*2; y++ {
				if x%2 != 0 && y%2 != 0 {
					g.Set(x, y, world.Stone)
				} else {
					g.Set(x, y, world.HWall)
				}
			}
		}
	}

	xmax, ymax := g.XMazeMax, g.YMazeMax
	g.XMazeMax, g.YMazeMax = rdx*2, rdy*2

	start := c.Maze0XY()
	c.WalkFrom(start.X, start.Y, world.Stone)
	if p.RemoveDeadEnds {
		c.removeDeadEnds(c.mazeFloor())
	}

	g.XMazeMax, g.YMazeMax = xmax, ymax

	if scale <= 2 {
		return
	}

	tmp := g.Snapshot()
	for x, rx := 2, 2; rx < g.XMazeMax; x++ {
		mx := cellSpan(x, rdx, corrwid, wallthick)
		for y, ry := 2, 2; ry < g.YMazeMax; y++ {
			my := cellSpan(y, rdy, corrwid, wallthick)
			for dx := 0; dx < mx; dx++ {
				for dy := 0; dy < my; dy++ {
					if rx+dx >= g.XMazeMax || ry+dy >= g.YMazeMax {
						break
					}
					g.Set(rx+dx, ry+dy, tmp[x][y])
				}
			}
			ry += my
		}
		rx += mx
	}
}

// cellSpan is how many map cells one lattice index covers after scaling.
func cellSpan(i, rd, corrwid, wallthick int) int {
	switch {
	case i%2 != 0:
		return corrwid
	case i == 2 || i == rd*2:
		return 1
	default:
		return wallthick
	}
}

// MazeWalk carves a maze starting next to (x,y), stepping once toward dir
// and then onto the odd lattice. A zero dir is chosen at random.
func (c *Context) MazeWalk(x, y int, dir world.Wall) {
	if dir == 0 {
		dir = world.AllWalls()[c.RNG.Rn2(4)]
	}
	g := c.Grid
	typ := c.mazeFloor()
	dx, dy := dir.Delta()
	x, y = x+dx, y+dy
	if !world.IsOK(x, y) {
		return
	}
	if !g.Typ(x, y).IsDoor() {
		g.Set(x, y, typ)
		g.At(x, y).Flags = 0
	}
	if x%2 == 0 {
		if dir == world.East {
			x++
		} else {
			x--
		}
		g.Set(x, y, typ)
		g.At(x, y).Flags = 0
	}
	if y%2 == 0 {
		if dir == world.South {
			y++
		} else {
			y--
		}
	}
	c.WalkFrom(x, y, typ)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
