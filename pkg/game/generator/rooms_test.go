package generator

import (
	"errors"
	"testing"

	"splev/pkg/engine/rng"
	"splev/pkg/engine/world"
)

// checkWalls fails the test if r is not a floor rectangle with straight walls
// and corners around it.
func checkWalls(t *testing.T, g *world.Grid, r *world.Room) {
	t.Helper()
	for x := r.LX; x <= r.HX; x++ {
		for y := r.LY; y <= r.HY; y++ {
			if g.Typ(x, y) != world.Floor {
				t.Errorf("floor (%d,%d) = %v, want room", x, y, g.Typ(x, y))
			}
		}
	}
	corners := map[world.Coord]world.Terrain{
		{X: r.LX - 1, Y: r.LY - 1}: world.TLCorner,
		{X: r.HX + 1, Y: r.LY - 1}: world.TRCorner,
		{X: r.LX - 1, Y: r.HY + 1}: world.BLCorner,
		{X: r.HX + 1, Y: r.HY + 1}: world.BRCorner,
	}
	for p, want := range corners {
		if got := g.Typ(p.X, p.Y); got != want {
			t.Errorf("corner %v = %v, want %v", p, got, want)
		}
	}
	for x := r.LX; x <= r.HX; x++ {
		if g.Typ(x, r.LY-1) != world.HWall || g.Typ(x, r.HY+1) != world.HWall {
			t.Errorf("column %d is missing a horizontal wall", x)
		}
	}
	for y := r.LY; y <= r.HY; y++ {
		if g.Typ(r.LX-1, y) != world.VWall || g.Typ(r.HX+1, y) != world.VWall {
			t.Errorf("row %d is missing a vertical wall", y)
		}
	}
}

func TestCreateRoom_RetriesRedrawRandomSize(t *testing.T) {
	c := newTestContext(42)
	c.Rects.Remove(Rect{0, 0, world.ColNo - 1, world.RowNo - 1})
	_, err := c.CreateRoom(RoomRequest{X: 3, Y: 3, W: -1, H: -1, XAlign: AlignLeft, YAlign: AlignTop, Lit: Lit})
	if !errors.Is(err, ErrNoRect) {
		t.Fatalf("CreateRoom on a full map = %v, want ErrNoRect", err)
	}
	// Every one of the 100 attempts draws a fresh width and height.
	if got := c.RNG.(*rng.RNG).Draws(); got != 200 {
		t.Errorf("draws = %d, want 200", got)
	}
}

func TestCreateRoom_BlockedChoiceIsRetried(t *testing.T) {
	retried := 0
	for seed := uint64(1); seed <= 20; seed++ {
		c := newTestContext(seed)
		// Leave room only in the top-left placement cell.
		c.Rects.Remove(Rect{0, 0, world.ColNo - 1, world.RowNo - 1})
		c.Rects.Add(Rect{0, 0, 20, 6})
		r, err := c.CreateRoom(RoomRequest{X: -1, Y: -1, W: 3, H: 2, XAlign: AlignLeft, YAlign: AlignTop, Lit: Lit})
		if errors.Is(err, ErrNoRect) {
			continue
		}
		if err != nil {
			t.Fatalf("seed %d: CreateRoom = %v", seed, err)
		}
		if r.LX != 2 || r.LY != 2 {
			t.Errorf("seed %d: room at (%d,%d), want (2,2)", seed, r.LX, r.LY)
		}
		if c.RNG.(*rng.RNG).Draws() > 2 {
			retried++
		}
	}
	if retried == 0 {
		t.Error("no room was placed after its first cell was blocked")
	}
}

func TestCreateRoom_ExplicitPlacementDrawsNothing(t *testing.T) {
	c := newTestContext(42)
	r, err := c.CreateRoom(RoomRequest{X: 1, Y: 1, W: 5, H: 3, XAlign: AlignLeft, YAlign: AlignTop, Lit: Lit})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if r.LX != 2 || r.LY != 2 || r.HX != 6 || r.HY != 4 {
		t.Errorf("room = (%d,%d)-(%d,%d), want (2,2)-(6,4)", r.LX, r.LY, r.HX, r.HY)
	}
	if got := c.RNG.(*rng.RNG).Draws(); got != 0 {
		t.Errorf("explicit room made %d draws, want 0", got)
	}
	if !r.Lit || !c.Grid.At(r.LX-1, r.LY-1).Lit {
		t.Error("lit room or its walls are not lit")
	}
	checkWalls(t, c.Grid, r)
}

func TestCreateRoom_Random(t *testing.T) {
	c := newTestContext(7)
	r, err := c.CreateRoom(RandomRoom())
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if r.LX < 3 || r.LY < 2 || r.HX > world.ColNo-3 || r.HY > world.RowNo-3 {
		t.Errorf("room (%d,%d)-(%d,%d) is outside the placement area", r.LX, r.LY, r.HX, r.HY)
	}
	checkWalls(t, c.Grid, r)
	if c.Rects.Len() == 0 {
		t.Error("rectangle pool is empty after one room")
	}
}

func TestCreateRoom_RandomRoomsDoNotOverlap(t *testing.T) {
	c := newTestContext(99)
	for i := 0; i < 12; i++ {
		if _, err := c.CreateRoom(RandomRoom()); err != nil {
			if !errors.Is(err, ErrNoRect) {
				t.Fatalf("CreateRoom: %v", err)
			}
			break
		}
	}
	if len(c.Grid.Rooms) < 2 {
		t.Fatalf("only %d rooms created", len(c.Grid.Rooms))
	}
	for i, a := range c.Grid.Rooms {
		for j, b := range c.Grid.Rooms {
			if i == j {
				continue
			}
			for x := a.LX - 1; x <= a.HX+1; x++ {
				for y := a.LY - 1; y <= a.HY+1; y++ {
					if x >= b.LX && x <= b.HX && y >= b.LY && y <= b.HY {
						t.Fatalf("room %d overlaps the floor of room %d at (%d,%d)", i, j, x, y)
					}
				}
			}
		}
	}
}

func TestCreateRoom_VaultIsTwoByTwo(t *testing.T) {
	c := newTestContext(5)
	r, err := c.CreateRoom(RoomRequest{X: -1, Y: -1, W: -1, H: -1, XAlign: -1, YAlign: -1, Type: world.Vault, Lit: LitRandom})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if r.Width() != 2 || r.Height() != 2 || !r.Lit {
		t.Errorf("vault = %dx%d lit=%v, want 2x2 lit", r.Width(), r.Height(), r.Lit)
	}
}

func TestCreateSubroom(t *testing.T) {
	c := newTestContext(3)
	parent, err := c.AddRoom(10, 5, 19, 10, false, world.OrdinaryRoom, false)
	if err != nil {
		t.Fatal(err)
	}
	sub, err := c.CreateSubroom(parent, SubroomRequest{X: 2, Y: 2, W: 3, H: 2, Lit: Unlit})
	if err != nil {
		t.Fatalf("CreateSubroom: %v", err)
	}
	if sub.LX != 12 || sub.LY != 7 || sub.HX != 14 || sub.HY != 8 {
		t.Errorf("subroom = (%d,%d)-(%d,%d), want (12,7)-(14,8)", sub.LX, sub.LY, sub.HX, sub.HY)
	}
	if sub.Parent != parent || len(parent.Subrooms) != 1 {
		t.Error("subroom is not linked to its parent")
	}
	if got := c.Grid.Typ(11, 6); got != world.TLCorner {
		t.Errorf("subroom top-left corner = %v, want tlcorner", got)
	}
	if got := c.Grid.Typ(13, 6); got != world.HWall {
		t.Errorf("subroom top wall = %v, want hwall", got)
	}

	c.Topologize(parent)
	if got := c.Grid.At(13, 7).RoomNo; got != sub.RoomNo() {
		t.Errorf("subroom floor roomno = %d, want %d", got, sub.RoomNo())
	}
	if got := c.Grid.At(10, 5).RoomNo; got != parent.RoomNo() {
		t.Errorf("parent floor roomno = %d, want %d", got, parent.RoomNo())
	}
	if !c.Grid.At(9, 5).Edge {
		t.Error("parent wall is not marked as an edge")
	}

	for i := 0; i < 50; i++ {
		p, ok := c.SomeXY(parent)
		if !ok {
			continue
		}
		if sub.Inside(p.X, p.Y) {
			t.Fatalf("SomeXY returned %v inside the subroom", p)
		}
	}
}

func TestCreateSubroom_ParentTooSmall(t *testing.T) {
	c := newTestContext(3)
	parent, _ := c.AddRoom(10, 5, 12, 10, false, world.OrdinaryRoom, false)
	_, err := c.CreateSubroom(parent, SubroomRequest{X: -1, Y: -1, W: -1, H: -1})
	var se *StructuralError
	if !errors.As(err, &se) {
		t.Errorf("CreateSubroom in a 3-wide room = %v, want a StructuralError", err)
	}
}

func TestSomeXY_InsideFloor(t *testing.T) {
	c := newTestContext(11)
	r, _ := c.AddRoom(30, 4, 36, 9, false, world.OrdinaryRoom, false)
	for i := 0; i < 100; i++ {
		p, ok := c.SomeXY(r)
		if !ok {
			t.Fatal("SomeXY failed on a plain room")
		}
		if p.X < r.LX || p.X > r.HX || p.Y < r.LY || p.Y > r.HY {
			t.Fatalf("SomeXY = %v, outside the floor", p)
		}
	}
}

func TestResolveLit_RandomDraws(t *testing.T) {
	c := newTestContext(1)
	c.ResolveLit(LitRandom)
	if c.RNG.(*rng.RNG).Draws() == 0 {
		t.Error("random lighting made no draws")
	}
	before := c.RNG.(*rng.RNG).Draws()
	if !c.ResolveLit(Lit) || c.ResolveLit(Unlit) {
		t.Error("explicit lighting not honoured")
	}
	if c.RNG.(*rng.RNG).Draws() != before {
		t.Error("explicit lighting drew from the stream")
	}
}
