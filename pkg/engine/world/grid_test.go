package world

import "testing"

func TestNewGrid_AllStone(t *testing.T) {
	g := NewGrid()
	count := 0
	g.ForEach(func(x, y int, c *Cell) {
		if c.Typ != Stone || c.Lit || c.RoomNo != NoRoom {
			t.Errorf("cell (%d,%d) = %+v, want unlit stone", x, y, *c)
		}
		count++
	})
	if count != ColNo*RowNo {
		t.Errorf("ForEach visited %d cells, want %d", count, ColNo*RowNo)
	}
	if g.XMazeMax != 78 || g.YMazeMax != 20 {
		t.Errorf("maze bounds = (%d,%d), want (78,20)", g.XMazeMax, g.YMazeMax)
	}
}

func TestAt_OutOfBounds(t *testing.T) {
	g := NewGrid()
	for _, p := range []Coord{{-1, 0}, {0, -1}, {ColNo, 0}, {0, RowNo}} {
		if c := g.At(p.X, p.Y); c != nil {
			t.Errorf("At(%d,%d) = %v, want nil", p.X, p.Y, c)
		}
		if g.Set(p.X, p.Y, Floor) {
			t.Errorf("Set(%d,%d) = true, want false", p.X, p.Y)
		}
		if typ := g.Typ(p.X, p.Y); typ != Stone {
			t.Errorf("Typ(%d,%d) = %v, want stone", p.X, p.Y, typ)
		}
	}
}

func TestSet_StairsAreProtected(t *testing.T) {
	g := NewGrid()
	g.Set(10, 5, Stairs)
	g.Set(11, 5, Ladder)

	if g.Set(10, 5, Pool) {
		t.Error("Set over stairs = true, want false")
	}
	if g.Set(11, 5, Floor) {
		t.Error("Set over ladder = true, want false")
	}
	if g.Typ(10, 5) != Stairs || g.Typ(11, 5) != Ladder {
		t.Errorf("protected cells changed to %v and %v", g.Typ(10, 5), g.Typ(11, 5))
	}
	if !g.Set(12, 5, Fountain) {
		t.Error("Set on ordinary cell = false, want true")
	}
}

func TestIsOK_ExcludesColumnZero(t *testing.T) {
	if IsOK(0, 5) {
		t.Error("IsOK(0,5) = true, want false")
	}
	if !IsOK(1, 0) || !IsOK(79, 20) {
		t.Error("IsOK rejects a map corner")
	}
}

func TestTerrainPredicates(t *testing.T) {
	tests := []struct {
		typ                                Terrain
		wall, door, access, pool, lava, rk bool
	}{
		{Stone, false, false, false, false, false, true},
		{HWall, true, false, false, false, false, true},
		{CrossWall, true, false, false, false, false, true},
		{SDoor, false, false, false, false, false, true},
		{Doorway, false, true, true, false, false, false},
		{Corr, false, false, true, false, false, false},
		{Floor, false, false, true, false, false, false},
		{Moat, false, false, false, true, false, false},
		{LavaPool, false, false, false, false, true, false},
		{Altar, false, false, true, false, false, false},
	}
	for _, tt := range tests {
		if got := tt.typ.IsWall(); got != tt.wall {
			t.Errorf("%v.IsWall() = %v, want %v", tt.typ, got, tt.wall)
		}
		if got := tt.typ.IsDoor(); got != tt.door {
			t.Errorf("%v.IsDoor() = %v, want %v", tt.typ, got, tt.door)
		}
		if got := tt.typ.IsAccessible(); got != tt.access {
			t.Errorf("%v.IsAccessible() = %v, want %v", tt.typ, got, tt.access)
		}
		if got := tt.typ.IsPool(); got != tt.pool {
			t.Errorf("%v.IsPool() = %v, want %v", tt.typ, got, tt.pool)
		}
		if got := tt.typ.IsLava(); got != tt.lava {
			t.Errorf("%v.IsLava() = %v, want %v", tt.typ, got, tt.lava)
		}
		if got := tt.typ.IsRock(); got != tt.rk {
			t.Errorf("%v.IsRock() = %v, want %v", tt.typ, got, tt.rk)
		}
	}
	if !Fountain.IsFurniture() || Floor.IsFurniture() {
		t.Error("IsFurniture misclassifies fountain or room")
	}
}

func TestAddDoor_KeepsRoomDoorsContiguous(t *testing.T) {
	g := NewGrid()
	a := &Room{Index: 0}
	b := &Room{Index: 1}
	g.Rooms = []*Room{a, b}

	g.AddDoor(1, 1, a)
	g.AddDoor(2, 2, b)
	g.AddDoor(3, 3, a)
	g.AddDoor(4, 4, b)

	if len(g.Doors) != 4 {
		t.Fatalf("len(Doors) = %d, want 4", len(g.Doors))
	}
	for _, r := range []*Room{a, b} {
		doors := g.RoomDoors(r)
		if len(doors) != 2 {
			t.Fatalf("room %d has %d doors, want 2", r.Index, len(doors))
		}
	}
	da := g.RoomDoors(a)
	if da[0].X != 3 || da[1].X != 1 {
		t.Errorf("room a doors = %v, want (3,3) then (1,1)", da)
	}
	db := g.RoomDoors(b)
	if db[0].X != 4 || db[1].X != 2 {
		t.Errorf("room b doors = %v, want (4,4) then (2,2)", db)
	}
}

func TestAddDoor_RecordsStateAndWall(t *testing.T) {
	g := NewGrid()
	r := &Room{LX: 10, LY: 5, HX: 14, HY: 8}
	g.Rooms = []*Room{r}
	g.Set(12, 4, Doorway)
	g.At(12, 4).DoorMask = Locked
	g.Set(15, 6, SDoor)
	g.At(15, 6).DoorMask = Closed
	g.AddDoor(12, 4, r)
	g.AddDoor(15, 6, r)

	want := []Door{
		{X: 15, Y: 6, State: Closed | Secret, Wall: East},
		{X: 12, Y: 4, State: Locked, Wall: North},
	}
	for i, d := range g.RoomDoors(r) {
		if d != want[i] {
			t.Errorf("door %d = %+v, want %+v", i, d, want[i])
		}
	}

	g.At(12, 4).DoorMask = Open
	g.RefreshDoors()
	if got := g.Doors[1].State; got != Open {
		t.Errorf("refreshed state = %v, want open", got)
	}
}

func TestDoorWall(t *testing.T) {
	r := &Room{LX: 10, LY: 5, HX: 14, HY: 8}
	tests := []struct {
		x, y int
		want Wall
	}{
		{12, 4, North},
		{12, 9, South},
		{9, 6, West},
		{15, 6, East},
		{9, 4, 0},
		{12, 6, 0},
	}
	for _, tt := range tests {
		if got := DoorWall(tt.x, tt.y, r); got != tt.want {
			t.Errorf("DoorWall(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestAddDoor_IgnoresDuplicates(t *testing.T) {
	g := NewGrid()
	a := &Room{}
	g.Rooms = []*Room{a}
	g.AddDoor(5, 5, a)
	g.AddDoor(5, 5, a)
	if a.DoorCount != 1 || len(g.Doors) != 1 {
		t.Errorf("DoorCount = %d, len(Doors) = %d, want 1 and 1", a.DoorCount, len(g.Doors))
	}
}

func TestRoomByNo(t *testing.T) {
	g := NewGrid()
	r := &Room{Index: 0}
	sub := &Room{Index: 0, Parent: r}
	g.Rooms = []*Room{r}
	g.Subrooms = []*Room{sub}
	if got := g.RoomByNo(r.RoomNo()); got != r {
		t.Errorf("RoomByNo(%d) = %v, want top room", r.RoomNo(), got)
	}
	if got := g.RoomByNo(sub.RoomNo()); got != sub {
		t.Errorf("RoomByNo(%d) = %v, want subroom", sub.RoomNo(), got)
	}
	if got := g.RoomByNo(NoRoom); got != nil {
		t.Errorf("RoomByNo(NoRoom) = %v, want nil", got)
	}
}

func TestTerrainFromChar(t *testing.T) {
	if typ, ok := TerrainFromChar('.'); !ok || typ != Floor {
		t.Errorf("TerrainFromChar('.') = %v,%v", typ, ok)
	}
	if typ, ok := TerrainFromChar('x'); !ok || typ != MaxTerrain {
		t.Errorf("TerrainFromChar('x') = %v,%v, want transparent", typ, ok)
	}
	if _, ok := TerrainFromChar('?'); ok {
		t.Error("TerrainFromChar('?') ok = true, want false")
	}
}
