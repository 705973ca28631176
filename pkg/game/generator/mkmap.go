package generator

import (
	"github.com/zyedidia/generic/queue"

	"splev/pkg/engine/world"
)

// Extent of the cave automaton.
const (
	mapWidth  = world.ColNo - 2
	mapHeight = world.RowNo - 1
)

// MapParams configures MkMap, the cave generator used by mine levels.
type MapParams struct {
	Fg, Bg    world.Terrain
	Smoothed  bool
	Joined    bool
	Lit       LitState
	Walled    bool
	IcedPools bool
}

var neighbours = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1}, {0, -1},
	{0, 1}, {1, -1}, {1, 0}, {1, 1},
}

// MkMap fills the map with a random cave: a noisy fill smoothed by a
// cellular automaton, optionally joined into one region and walled.
func (c *Context) MkMap(p MapParams) {
	lit := c.ResolveLit(p.Lit)

	c.initMap(p.Bg)
	c.initFill(p.Bg, p.Fg)

	c.cavePass(p.Bg, p.Fg, func(count int, cur world.Terrain) world.Terrain {
		switch {
		case count <= 2:
			return p.Bg
		case count >= 5:
			return p.Fg
		}
		return cur
	})
	c.cavePass(p.Bg, p.Fg, func(count int, cur world.Terrain) world.Terrain {
		if count == 5 {
			return p.Bg
		}
		return cur
	})
	if p.Smoothed {
		for i := 0; i < 2; i++ {
			c.cavePass(p.Bg, p.Fg, func(count int, cur world.Terrain) world.Terrain {
				if count < 3 {
					return p.Bg
				}
				return cur
			})
		}
	}

	if p.Joined {
		c.joinMap(p.Bg, p.Fg)
	}
	c.finishMap(p.Fg, p.Bg, lit, p.Walled)
	if p.Walled && p.Joined {
		c.Flags.MazeLevel = false
		c.Flags.Cavernous = true
	}
}

func (c *Context) initMap(bg world.Terrain) {
	for x := 1; x < world.ColNo; x++ {
		for y := 0; y < world.RowNo; y++ {
			cell := c.Grid.At(x, y)
			cell.RoomNo = world.NoRoom
			c.Grid.Set(x, y, bg)
			cell.Lit = false
		}
	}
}

func (c *Context) initFill(bg, fg world.Terrain) {
	limit := mapWidth * mapHeight * 2 / 5
	for count := 0; count < limit; {
		x := c.RNG.Rn1(mapWidth-1, 2)
		y := c.RNG.Rnd(mapHeight - 1)
		if c.Grid.Typ(x, y) == bg {
			c.Grid.Set(x, y, fg)
			count++
		}
	}
}

func (c *Context) caveAt(x, y int, bg world.Terrain) world.Terrain {
	if x <= 0 || y < 0 || x > mapWidth || y >= mapHeight {
		return bg
	}
	return c.Grid.Typ(x, y)
}

// cavePass runs one automaton generation. Every cell's neighbour count is
// taken from the map as it was before the pass.
func (c *Context) cavePass(bg, fg world.Terrain, rule func(count int, cur world.Terrain) world.Terrain) {
	var next [mapWidth + 1][mapHeight]world.Terrain
	for x := 2; x <= mapWidth; x++ {
		for y := 1; y < mapHeight; y++ {
			count := 0
			for _, d := range neighbours {
				if c.caveAt(x+d[0], y+d[1], bg) == fg {
					count++
				}
			}
			next[x][y] = rule(count, c.caveAt(x, y, bg))
		}
	}
	for x := 2; x <= mapWidth; x++ {
		for y := 1; y < mapHeight; y++ {
			c.Grid.Set(x, y, next[x][y])
		}
	}
}

// Region is the result of FloodFillRoom: the bounding box and cell count of
// the filled area.
type Region struct {
	LX, LY, HX, HY int
	Count          int
}

// FloodFillRoom stamps room number rmno onto the 8-connected area around
// (sx,sy) that has the same terrain, or any floor terrain when anyroom is
// set. With anyroom the walls and doors touching the area become room edges.
func (c *Context) FloodFillRoom(sx, sy, rmno int, lit, anyroom bool) Region {
	g := c.Grid
	fg := g.Typ(sx, sy)
	match := func(x, y int) bool {
		if x < 1 || x > mapWidth || y < 0 || y >= world.RowNo {
			return false
		}
		cell := g.At(x, y)
		if cell.RoomNo == rmno {
			return false
		}
		if anyroom {
			return cell.Typ.IsRoom()
		}
		return cell.Typ == fg
	}

	reg := Region{LX: sx, LY: sy, HX: sx, HY: sy}
	if !match(sx, sy) {
		return reg
	}
	fill := func(x, y int) {
		cell := g.At(x, y)
		cell.RoomNo = rmno
		cell.Lit = lit
		reg.Count++
		reg.LX = min(reg.LX, x)
		reg.LY = min(reg.LY, y)
		reg.HX = max(reg.HX, x)
		reg.HY = max(reg.HY, y)
		if !anyroom {
			return
		}
		for xx := x - 1; xx <= x+1; xx++ {
			for yy := y - 1; yy <= y+1; yy++ {
				if !world.IsOK(xx, yy) {
					continue
				}
				n := g.At(xx, yy)
				if !n.Typ.IsWall() && n.Typ != world.Doorway && n.Typ != world.SDoor {
					continue
				}
				n.Edge = true
				if lit {
					n.Lit = true
				}
				if n.RoomNo != rmno {
					n.RoomNo = world.SharedRoom
				}
			}
		}
	}

	q := queue.New[world.Coord]()
	fill(sx, sy)
	q.Enqueue(world.Coord{X: sx, Y: sy})
	for !q.Empty() {
		p := q.Dequeue()
		for _, d := range neighbours {
			nx, ny := p.X+d[0], p.Y+d[1]
			if match(nx, ny) {
				fill(nx, ny)
				q.Enqueue(world.Coord{X: nx, Y: ny})
			}
		}
	}
	return reg
}

// joinMap turns every foreground area of more than three cells into an
// irregular room, erases the smaller ones, and digs corridors between the
// rooms in order.
func (c *Context) joinMap(bg, fg world.Terrain) {
	g := c.Grid
scan:
	for x := 2; x <= mapWidth; x++ {
		for y := 1; y < mapHeight; y++ {
			cell := g.At(x, y)
			if cell.Typ != fg || cell.RoomNo != world.NoRoom {
				continue
			}
			rmno := len(g.Rooms) + world.RoomOffset
			reg := c.FloodFillRoom(x, y, rmno, false, false)
			if reg.Count > 3 {
				r, err := c.addRoom(world.MaxMapRegions, reg.LX, reg.LY, reg.HX, reg.HY, false, world.OrdinaryRoom, true)
				if err != nil {
					c.Log.Printf("mkmap: %v", err)
					break scan
				}
				r.Irregular = true
				if len(g.Rooms) >= world.MaxMapRegions {
					break scan
				}
				continue
			}
			for sx := reg.LX; sx <= reg.HX; sx++ {
				for sy := reg.LY; sy <= reg.HY; sy++ {
					if n := g.At(sx, sy); n.RoomNo == rmno {
						g.Set(sx, sy, bg)
						n.RoomNo = world.NoRoom
					}
				}
			}
		}
	}

	if len(g.Rooms) < 2 {
		return
	}
	croom := g.Rooms[0]
	for _, croom2 := range g.Rooms[1:] {
		sm, ok1 := c.SomeXY(croom)
		var em world.Coord
		ok2 := false
		if ok1 {
			em, ok2 = c.SomeXY(croom2)
		}
		if !ok1 || !ok2 {
			c.Log.Printf("mkmap: no start or end location joining rooms %d and %d", croom.Index, croom2.Index)
			sm = croom.Center()
			em = croom2.Center()
		}
		c.DigCorridor(sm, em, false, fg, bg)

		if croom2.LX > croom.HX ||
			((croom2.LY > croom.HY || croom2.HY < croom.LY) && c.RNG.Rn2(3) != 0) {
			croom = croom2
		}
	}
}

func (c *Context) finishMap(fg, bg world.Terrain, lit, walled bool) {
	g := c.Grid
	if walled {
		c.WallifyMap(1, 0, world.ColNo-1, world.RowNo-1)
	}
	if lit {
		for x := 1; x < world.ColNo; x++ {
			for y := 0; y < world.RowNo; y++ {
				t := g.Typ(x, y)
				if (!fg.IsRock() && t == fg) ||
					(!bg.IsRock() && t == bg) ||
					(bg == world.Tree && t == bg) ||
					(walled && t.IsWall()) {
					g.At(x, y).Lit = true
				}
			}
		}
		for _, r := range g.Rooms {
			r.Lit = true
		}
	}
	for x := 1; x < world.ColNo; x++ {
		for y := 0; y < world.RowNo; y++ {
			if g.Typ(x, y) == world.LavaPool {
				g.At(x, y).Lit = true
			}
		}
	}
}
