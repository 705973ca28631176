package generator

import (
	"errors"
	"fmt"
	"io"
	"log"

	"splev/pkg/engine/world"
)

// Random is the draw interface generation consumes. *rng.RNG implements it.
type Random interface {
	Rn2(x int) int
	Rnd(x int) int
	Rn1(x, y int) int
}

// LitState is a tri-state lighting request.
type LitState int

const (
	LitRandom LitState = -1
	Unlit     LitState = 0
	Lit       LitState = 1
)

// Flags are the per-level switches that change how generation behaves.
type Flags struct {
	// CorrMaze carves mazes out of corridors instead of room floor and skips
	// the final wallification.
	CorrMaze bool
	// Arboreal digs corridors as floor and treats trees as walls.
	Arboreal   bool
	NoTeleport bool
	HardFloor  bool
	MazeLevel  bool
	Cavernous  bool
	IcedPools  bool
	// Solidify marks stone and walls outside map fragments as undiggable.
	Solidify bool
	// CheckInaccessibles makes finalization fail when a non-vault room is
	// unreachable.
	CheckInaccessibles bool
}

// ErrNoRect is returned when the rectangle pool has nothing left to place an
// automatically positioned room in.
var ErrNoRect = errors.New("no free rectangle")

// StructuralError reports a mandatory element that could not be placed.
type StructuralError struct {
	Element string
	Reason  string
	Err     error
}

func (e *StructuralError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot place %s: %s: %v", e.Element, e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot place %s: %s", e.Element, e.Reason)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// Context carries everything one level generation mutates. It is owned by a
// single generation pass and must not be shared.
type Context struct {
	Grid  *world.Grid
	RNG   Random
	Rects *RectPool
	Log   *log.Logger
	Flags Flags

	// Depth is the absolute dungeon depth; Difficulty feeds door traps.
	Depth      int
	Difficulty int

	// smeq tracks which rooms corridors have already connected.
	smeq []int
}

// NewContext returns a context over a fresh grid.
func NewContext(r Random, depth int, logger *log.Logger) *Context {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Context{
		Grid:       world.NewGrid(),
		RNG:        r,
		Rects:      NewRectPool(),
		Log:        logger,
		Depth:      depth,
		Difficulty: depth,
	}
}

// ResolveLit turns a lighting request into a concrete state. Random lighting
// favours lit rooms near the surface.
func (c *Context) ResolveLit(l LitState) bool {
	if l < 0 {
		return c.RNG.Rnd(1+abs(c.Depth)) < 11 && c.RNG.Rn2(77) != 0
	}
	return l != Unlit
}

// SetTypLit writes terrain and lighting. Lava is always lit; LitRandom draws
// rn2(2) per cell and a negative value below that leaves lighting untouched.
func (c *Context) SetTypLit(x, y int, typ world.Terrain, lit LitState) {
	if !world.IsOK(x, y) {
		return
	}
	cell := c.Grid.At(x, y)
	if typ < world.MaxTerrain {
		c.Grid.Set(x, y, typ)
	}
	switch {
	case typ == world.LavaPool:
		cell.Lit = true
	case lit == LitRandom:
		cell.Lit = c.RNG.Rn2(2) != 0
	case lit >= 0:
		cell.Lit = lit != Unlit
	}
}

// NRooms returns the number of top-level rooms.
func (c *Context) NRooms() int {
	return len(c.Grid.Rooms)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
