package generator

import (
	"fmt"
	"sort"

	"splev/pkg/engine/world"
)

// LitKeep leaves a cell's lighting as it is when passed to SetTypLit.
const LitKeep LitState = -2

// InitParams are the level-init settings. Styles read the fields they need.
type InitParams struct {
	// Filling is the terrain solidfill and mazegrid write; Fg and Bg are the
	// two terrains of mines and swamp levels.
	Filling world.Terrain
	Fg, Bg  world.Terrain
	Lit     LitState

	Smoothed  bool
	Joined    bool
	Walled    bool
	IcedPools bool

	CorridorWidth  int
	WallThickness  int
	RemoveDeadEnds bool
}

// InitStyle is a way of preparing the whole map before a level script
// places anything.
type InitStyle interface {
	Init(c *Context, p InitParams) error
	Name() string
}

// Available styles
var (
	NoInit    = &noneStyle{}
	SolidFill = &solidFillStyle{}
	MazeGrid  = &mazeGridStyle{}
	Maze      = &mazeStyle{}
	Mines     = &minesStyle{}
	SwampFill = &swampStyle{}
)

var styles = map[string]InitStyle{}

func init() {
	for _, s := range []InitStyle{NoInit, SolidFill, MazeGrid, Maze, Mines, SwampFill} {
		Register(s)
	}
}

// Register makes a style available under its name.
func Register(s InitStyle) {
	styles[s.Name()] = s
}

// StyleByName looks up a registered style.
func StyleByName(name string) (InitStyle, error) {
	s, ok := styles[name]
	if !ok {
		return nil, fmt.Errorf("unknown init style %q", name)
	}
	return s, nil
}

// StyleNames lists the registered styles alphabetically.
func StyleNames() []string {
	names := make([]string, 0, len(styles))
	for n := range styles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// FillSolid writes filling over the maze area.
func (c *Context) FillSolid(filling world.Terrain, lit LitState) {
	g := c.Grid
	for x := 2; x <= g.XMazeMax; x++ {
		for y := 0; y <= g.YMazeMax; y++ {
			c.SetTypLit(x, y, filling, lit)
		}
	}
}

// resolveCoin turns a random lighting request into rn2(2).
func (c *Context) resolveCoin(l LitState) LitState {
	if l == LitRandom {
		return LitState(c.RNG.Rn2(2))
	}
	return l
}

type noneStyle struct{}

func (s *noneStyle) Name() string                         { return "none" }
func (s *noneStyle) Init(c *Context, p InitParams) error { return nil }

type solidFillStyle struct{}

func (s *solidFillStyle) Name() string { return "solidfill" }

func (s *solidFillStyle) Init(c *Context, p InitParams) error {
	c.FillSolid(p.Filling, c.resolveCoin(p.Lit))
	return nil
}

type mazeGridStyle struct{}

func (s *mazeGridStyle) Name() string { return "mazegrid" }

func (s *mazeGridStyle) Init(c *Context, p InitParams) error {
	c.MazeGrid(p.Filling)
	return nil
}

type mazeStyle struct{}

func (s *mazeStyle) Name() string { return "maze" }

func (s *mazeStyle) Init(c *Context, p InitParams) error {
	c.MazeGrid(p.Filling)
	c.CreateMaze(MazeParams{
		CorridorWidth:  p.CorridorWidth,
		WallThickness:  p.WallThickness,
		RemoveDeadEnds: p.RemoveDeadEnds,
	})
	return nil
}

type minesStyle struct{}

func (s *minesStyle) Name() string { return "mines" }

func (s *minesStyle) Init(c *Context, p InitParams) error {
	lit := c.resolveCoin(p.Lit)
	if p.Filling < world.MaxTerrain {
		c.FillSolid(p.Filling, Unlit)
	}
	c.Flags.IcedPools = p.IcedPools
	c.MkMap(MapParams{
		Fg:        p.Fg,
		Bg:        p.Bg,
		Smoothed:  p.Smoothed,
		Joined:    p.Joined,
		Lit:       lit,
		Walled:    p.Walled,
		IcedPools: p.IcedPools,
	})
	return nil
}

type swampStyle struct{}

func (s *swampStyle) Name() string { return "swamp" }

// Init lays pools out as a relaxed blockwise maze: every even lattice point
// becomes fg, and a 2x2 block that would otherwise be all bg gets one more
// fg cell.
func (s *swampStyle) Init(c *Context, p InitParams) error {
	lit := c.resolveCoin(p.Lit)
	c.FillSolid(p.Bg, lit)
	g := c.Grid
	for x := 2; x <= min(g.XMazeMax, world.ColNo-2); x += 2 {
		for y := 0; y <= min(g.YMazeMax, world.RowNo-2); y += 2 {
			c.SetTypLit(x, y, p.Fg, lit)
			n := 0
			for _, d := range [][2]int{{1, 0}, {0, 1}, {1, 1}} {
				if g.Typ(x+d[0], y+d[1]) == p.Bg {
					n++
				}
			}
			if n == 3 {
				switch c.RNG.Rn2(3) {
				case 0:
					c.SetTypLit(x+1, y, p.Fg, lit)
				case 1:
					c.SetTypLit(x, y+1, p.Fg, lit)
				case 2:
					c.SetTypLit(x+1, y+1, p.Fg, lit)
				}
			}
		}
	}
	return nil
}
