// Package selection implements immutable sets of map locations. Every
// operation returns a new Selection; a value is never changed in place, so
// selections can be stored, compared with == and reused freely.
//
// Locations are kept column-major, which is also the order used when a
// selection is iterated or sampled.
package selection

import (
	"github.com/zyedidia/generic/queue"

	"splev/pkg/engine/world"
)

const (
	cells = world.ColNo * world.RowNo
	words = (cells + 63) / 64
)

// Source is the random stream selections sample from.
type Source interface {
	Rn2(n int) int
}

// Selection is a set of map locations.
type Selection struct {
	bits [words]uint64
}

func index(x, y int) int {
	return x*world.RowNo + y
}

// New returns an empty selection.
func New() Selection {
	return Selection{}
}

// All returns the selection of every location.
func All() Selection {
	return New().Negate()
}

// Of returns a selection holding the given points. Out-of-map points are
// dropped.
func Of(points ...world.Coord) Selection {
	var s Selection
	for _, p := range points {
		s.put(p.X, p.Y)
	}
	return s
}

func (s *Selection) put(x, y int) {
	if !world.InBounds(x, y) {
		return
	}
	i := index(x, y)
	s.bits[i/64] |= 1 << (i % 64)
}

func (s *Selection) del(x, y int) {
	if !world.InBounds(x, y) {
		return
	}
	i := index(x, y)
	s.bits[i/64] &^= 1 << (i % 64)
}

// Has reports whether (x,y) is selected.
func (s Selection) Has(x, y int) bool {
	if !world.InBounds(x, y) {
		return false
	}
	i := index(x, y)
	return s.bits[i/64]&(1<<(i%64)) != 0
}

// With returns s plus (x,y).
func (s Selection) With(x, y int) Selection {
	s.put(x, y)
	return s
}

// Without returns s minus (x,y).
func (s Selection) Without(x, y int) Selection {
	s.del(x, y)
	return s
}

// Union returns the locations in s or o.
func (s Selection) Union(o Selection) Selection {
	for i := range s.bits {
		s.bits[i] |= o.bits[i]
	}
	return s
}

// Intersect returns the locations in both s and o.
func (s Selection) Intersect(o Selection) Selection {
	for i := range s.bits {
		s.bits[i] &= o.bits[i]
	}
	return s
}

// Subtract returns the locations in s that are not in o.
func (s Selection) Subtract(o Selection) Selection {
	for i := range s.bits {
		s.bits[i] &^= o.bits[i]
	}
	return s
}

// Xor returns the locations in exactly one of s and o.
func (s Selection) Xor(o Selection) Selection {
	for i := range s.bits {
		s.bits[i] ^= o.bits[i]
	}
	return s
}

// Negate returns every location not in s.
func (s Selection) Negate() Selection {
	for i := range s.bits {
		s.bits[i] = ^s.bits[i]
	}
	if extra := words*64 - cells; extra > 0 {
		s.bits[words-1] &= (1 << (64 - extra)) - 1
	}
	return s
}

// Count returns the number of selected locations.
func (s Selection) Count() int {
	n := 0
	s.Each(func(int, int) { n++ })
	return n
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool {
	return s == Selection{}
}

// Each calls fn for every selected location in column-major order.
func (s Selection) Each(fn func(x, y int)) {
	for x := 0; x < world.ColNo; x++ {
		for y := 0; y < world.RowNo; y++ {
			if s.Has(x, y) {
				fn(x, y)
			}
		}
	}
}

// Coords returns the selected locations in column-major order.
func (s Selection) Coords() []world.Coord {
	var out []world.Coord
	s.Each(func(x, y int) {
		out = append(out, world.Coord{X: x, Y: y})
	})
	return out
}

// Bounds returns the bounding box of the selection. ok is false when empty.
func (s Selection) Bounds() (lx, ly, hx, hy int, ok bool) {
	lx, ly = world.ColNo, world.RowNo
	hx, hy = -1, -1
	s.Each(func(x, y int) {
		lx = min(lx, x)
		ly = min(ly, y)
		hx = max(hx, x)
		hy = max(hy, y)
	})
	return lx, ly, hx, hy, hx >= 0
}

// Grow returns s dilated by one location toward the given sides. A pair of
// adjacent sides also grows across the diagonal between them, so AnyWall
// grows in all eight directions.
func (s Selection) Grow(dir world.Wall) Selection {
	out := s
	for x := 1; x < world.ColNo; x++ {
		for y := 0; y < world.RowNo; y++ {
			if s.grows(x, y, dir) {
				out.put(x, y)
			}
		}
	}
	return out
}

func (s Selection) grows(x, y int, dir world.Wall) bool {
	has := func(w world.Wall) bool { return dir&w == w }
	return (has(world.West) && s.Has(x+1, y)) ||
		(has(world.West|world.North) && s.Has(x+1, y+1)) ||
		(has(world.North) && s.Has(x, y+1)) ||
		(has(world.North|world.East) && s.Has(x-1, y+1)) ||
		(has(world.East) && s.Has(x-1, y)) ||
		(has(world.East|world.South) && s.Has(x-1, y-1)) ||
		(has(world.South) && s.Has(x, y-1)) ||
		(has(world.South|world.West) && s.Has(x+1, y-1))
}

// GrowRandom grows toward one side chosen with rn2(4).
func (s Selection) GrowRandom(r Source) Selection {
	return s.Grow(world.AllWalls()[r.Rn2(4)])
}

// Percentage keeps each location with probability percent/100, drawing
// rn2(100) once per selected location in column-major order.
func (s Selection) Percentage(r Source, percent int) Selection {
	out := s
	s.Each(func(x, y int) {
		if r.Rn2(100) >= percent {
			out.del(x, y)
		}
	})
	return out
}

// RndCoord picks one location uniformly with a single rn2(count) draw and
// returns it together with the selection minus that location. ok is false,
// and nothing is drawn, when the selection is empty.
func (s Selection) RndCoord(r Source) (c world.Coord, rest Selection, ok bool) {
	n := s.Count()
	if n == 0 {
		return world.Coord{X: -1, Y: -1}, s, false
	}
	pick := r.Rn2(n)
	found := world.Coord{X: -1, Y: -1}
	s.Each(func(x, y int) {
		if pick == 0 {
			found = world.Coord{X: x, Y: y}
		}
		pick--
	})
	return found, s.Without(found.X, found.Y), true
}

// RndCoords draws up to n distinct locations, each removed before the next
// draw.
func (s Selection) RndCoords(r Source, n int) []world.Coord {
	var out []world.Coord
	for i := 0; i < n; i++ {
		c, rest, ok := s.RndCoord(r)
		if !ok {
			break
		}
		out = append(out, c)
		s = rest
	}
	return out
}

// FilterTerrain keeps the locations of g whose terrain is typ.
func (s Selection) FilterTerrain(g *world.Grid, typ world.Terrain) Selection {
	out := s
	s.Each(func(x, y int) {
		if g.Typ(x, y) != typ {
			out.del(x, y)
		}
	})
	return out
}

// FilterLit keeps the locations whose lit state equals lit.
func (s Selection) FilterLit(g *world.Grid, lit bool) Selection {
	out := s
	s.Each(func(x, y int) {
		if c := g.At(x, y); c == nil || c.Lit != lit {
			out.del(x, y)
		}
	})
	return out
}

// FloodFill selects the region of terrain matching (x,y) that is connected
// to it, orthogonally or also diagonally.
func FloodFill(g *world.Grid, x, y int, diagonals bool) Selection {
	var s Selection
	if !world.IsOK(x, y) {
		return s
	}
	typ := g.Typ(x, y)
	steps := [][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	if diagonals {
		steps = append(steps, [2]int{-1, -1}, [2]int{1, -1}, [2]int{-1, 1}, [2]int{1, 1})
	}

	q := queue.New[world.Coord]()
	s.put(x, y)
	q.Enqueue(world.Coord{X: x, Y: y})
	for !q.Empty() {
		c := q.Dequeue()
		for _, st := range steps {
			nx, ny := c.X+st[0], c.Y+st[1]
			if !world.IsOK(nx, ny) || s.Has(nx, ny) || g.Typ(nx, ny) != typ {
				continue
			}
			s.put(nx, ny)
			q.Enqueue(world.Coord{X: nx, Y: ny})
		}
	}
	return s
}

// Match returns the locations of g whose terrain is typ.
func Match(g *world.Grid, typ world.Terrain) Selection {
	return All().FilterTerrain(g, typ)
}
