package selection

import (
	"testing"

	"splev/pkg/engine/rng"
	"splev/pkg/engine/world"
)

func sample() Selection {
	return FillRect(10, 5, 14, 8).Union(Line(30, 2, 40, 12)).With(0, 0).With(79, 20)
}

func TestNegate_Laws(t *testing.T) {
	a := sample()
	if got := a.Union(a.Negate()); got != All() {
		t.Errorf("A | ~A covers %d cells, want %d", got.Count(), world.ColNo*world.RowNo)
	}
	if got := a.Intersect(a.Negate()); !got.Empty() {
		t.Errorf("A & ~A has %d cells, want 0", got.Count())
	}
	if got := a.Negate().Negate(); got != a {
		t.Error("~~A != A")
	}
	if All().Count() != world.ColNo*world.RowNo {
		t.Errorf("All().Count() = %d, want %d", All().Count(), world.ColNo*world.RowNo)
	}
}

func TestOperations_DoNotMutate(t *testing.T) {
	a := sample()
	before := a
	_ = a.With(50, 10)
	_ = a.Grow(world.AnyWall)
	_ = a.Negate()
	_ = a.Percentage(rng.New(1), 50)
	if a != before {
		t.Error("selection changed after value operations")
	}
}

func TestGrow_Superset(t *testing.T) {
	a := sample()
	pairs := [][2]world.Wall{
		{world.North, world.South},
		{world.East, world.West},
		{world.AnyWall, world.AnyWall},
	}
	for _, p := range pairs {
		g := a.Grow(p[0]).Grow(p[1])
		if g.Intersect(a) != a {
			t.Errorf("Grow(%v).Grow(%v) is not a superset of A", p[0], p[1])
		}
	}
}

func TestGrow_SinglePoint(t *testing.T) {
	p := New().With(20, 10)
	if got := p.Grow(world.AnyWall).Count(); got != 9 {
		t.Errorf("point grown in all directions has %d cells, want 9", got)
	}
	if got := p.Grow(world.North).Count(); got != 2 {
		t.Errorf("point grown north has %d cells, want 2", got)
	}
	if !p.Grow(world.North).Has(20, 9) {
		t.Error("grow north did not add the cell above")
	}
	nw := p.Grow(world.North | world.West)
	if !nw.Has(19, 9) || nw.Count() != 4 {
		t.Errorf("grow north|west = %v, want the point, N, W and NW", nw.Coords())
	}
}

func TestGrow_NeverReachesColumnZero(t *testing.T) {
	p := New().With(1, 10)
	g := p.Grow(world.AnyWall)
	for y := 9; y <= 11; y++ {
		if g.Has(0, y) {
			t.Errorf("grow added (0,%d)", y)
		}
	}
	if !g.Has(2, 10) || g.Count() != 6 {
		t.Errorf("grow from column 1 = %v, want 6 cells east of column 0", g.Coords())
	}
}

func TestPercentage_Bounds(t *testing.T) {
	a := sample()
	if got := a.Percentage(rng.New(3), 100); got != a {
		t.Errorf("Percentage(100) has %d cells, want %d", got.Count(), a.Count())
	}
	if got := a.Percentage(rng.New(3), 0); !got.Empty() {
		t.Errorf("Percentage(0) has %d cells, want 0", got.Count())
	}
	half := a.Percentage(rng.New(3), 50)
	if half.Intersect(a) != half {
		t.Error("Percentage(50) added cells outside A")
	}
}

func TestPercentage_DrawsOncePerCell(t *testing.T) {
	a := sample()
	r := rng.New(4)
	a.Percentage(r, 30)
	if r.Draws() != a.Count() {
		t.Errorf("Percentage made %d draws, want %d", r.Draws(), a.Count())
	}
}

func TestRndCoord(t *testing.T) {
	a := FillRect(3, 3, 5, 5)
	r := rng.New(9)
	c, rest, ok := a.RndCoord(r)
	if !ok {
		t.Fatal("RndCoord on non-empty selection returned ok=false")
	}
	if !a.Has(c.X, c.Y) {
		t.Errorf("RndCoord returned %v outside the selection", c)
	}
	if rest.Has(c.X, c.Y) || rest.Count() != a.Count()-1 {
		t.Errorf("rest has %d cells, want %d without %v", rest.Count(), a.Count()-1, c)
	}

	if _, _, ok := New().RndCoord(r); ok {
		t.Error("RndCoord on empty selection returned ok=true")
	}

	all := a.RndCoords(rng.New(10), 20)
	if len(all) != 9 {
		t.Errorf("RndCoords drew %d distinct cells, want 9", len(all))
	}
}

func TestRect_Outline(t *testing.T) {
	r := Rect(2, 2, 6, 5)
	if r.Count() != 14 {
		t.Errorf("Rect outline has %d cells, want 14", r.Count())
	}
	if r.Has(4, 3) {
		t.Error("Rect outline includes an interior cell")
	}
	if FillRect(2, 2, 6, 5).Count() != 20 {
		t.Errorf("FillRect has %d cells, want 20", FillRect(2, 2, 6, 5).Count())
	}
}

func TestLine_Endpoints(t *testing.T) {
	l := Line(5, 5, 15, 9)
	if !l.Has(5, 5) || !l.Has(15, 9) {
		t.Error("Line is missing an endpoint")
	}
	if l.Count() != 11 {
		t.Errorf("Line has %d cells, want 11", l.Count())
	}
}

func TestRandLine_ConnectsEndpoints(t *testing.T) {
	l := RandLine(rng.New(5), 5, 5, 60, 15, 10)
	if !l.Has(5, 5) || !l.Has(60, 15) {
		t.Error("RandLine is missing an endpoint")
	}
}

func TestEllipse(t *testing.T) {
	filled := Ellipse(40, 10, 6, 3, true)
	if !filled.Has(40, 10) {
		t.Error("filled ellipse is missing its center")
	}
	outline := Ellipse(40, 10, 6, 3, false)
	if outline.Has(40, 10) {
		t.Error("ellipse outline includes its center")
	}
	if !outline.Has(46, 10) || !outline.Has(34, 10) || !outline.Has(40, 7) || !outline.Has(40, 13) {
		t.Errorf("ellipse outline is missing an extreme point: %v", outline.Coords())
	}
	if filled.Count() <= outline.Count() {
		t.Errorf("filled ellipse has %d cells, outline %d", filled.Count(), outline.Count())
	}
}

func TestFloodFill(t *testing.T) {
	g := world.NewGrid()
	for x := 10; x <= 12; x++ {
		for y := 5; y <= 6; y++ {
			g.Set(x, y, world.Floor)
		}
	}
	g.Set(13, 7, world.Floor)

	orth := FloodFill(g, 10, 5, false)
	if orth.Count() != 6 {
		t.Errorf("orthogonal flood has %d cells, want 6", orth.Count())
	}
	diag := FloodFill(g, 10, 5, true)
	if diag.Count() != 7 {
		t.Errorf("diagonal flood has %d cells, want 7", diag.Count())
	}
	if got := Match(g, world.Floor); got != diag {
		t.Errorf("Match(room) has %d cells, want 7", got.Count())
	}
}

func TestBounds(t *testing.T) {
	lx, ly, hx, hy, ok := FillRect(4, 6, 9, 12).Bounds()
	if !ok || lx != 4 || ly != 6 || hx != 9 || hy != 12 {
		t.Errorf("Bounds = (%d,%d,%d,%d,%v), want (4,6,9,12,true)", lx, ly, hx, hy, ok)
	}
	if _, _, _, _, ok := New().Bounds(); ok {
		t.Error("Bounds of empty selection ok = true")
	}
}
