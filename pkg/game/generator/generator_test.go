package generator

import (
	"reflect"
	"testing"

	"splev/pkg/engine/world"
)

func TestStyleNames(t *testing.T) {
	want := []string{"maze", "mazegrid", "mines", "none", "solidfill", "swamp"}
	if got := StyleNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("StyleNames() = %v, want %v", got, want)
	}
}

func TestStyleByName(t *testing.T) {
	s, err := StyleByName("mines")
	if err != nil {
		t.Fatalf("StyleByName(mines): %v", err)
	}
	if s != Mines {
		t.Error("StyleByName(mines) did not return the mines style")
	}
	if _, err := StyleByName("caverns"); err == nil {
		t.Error("StyleByName accepted an unknown style")
	}
}

func TestSolidFill(t *testing.T) {
	c := newTestContext(1)
	if err := SolidFill.Init(c, InitParams{Filling: world.HWall, Lit: Lit}); err != nil {
		t.Fatal(err)
	}
	g := c.Grid
	for _, p := range []world.Coord{{X: 2, Y: 0}, {X: 40, Y: 10}, {X: 78, Y: 20}} {
		if cell := g.At(p.X, p.Y); cell.Typ != world.HWall || !cell.Lit {
			t.Errorf("%v = %v lit=%v, want lit hwall", p, cell.Typ, cell.Lit)
		}
	}
	if g.Typ(1, 5) != world.Stone || g.Typ(79, 5) != world.Stone {
		t.Error("fill went outside the maze area")
	}
}

func TestNoInit_LeavesMapAlone(t *testing.T) {
	c := newTestContext(1)
	before := c.Grid.Snapshot()
	if err := NoInit.Init(c, InitParams{}); err != nil {
		t.Fatal(err)
	}
	if c.Grid.Snapshot() != before {
		t.Error("none style changed the map")
	}
}

func TestSwampFill_OneExtraPoolPerBlock(t *testing.T) {
	c := newTestContext(12)
	err := SwampFill.Init(c, InitParams{Fg: world.Pool, Bg: world.Floor, Lit: Unlit})
	if err != nil {
		t.Fatal(err)
	}
	g := c.Grid
	for x := 2; x <= 76; x += 2 {
		for y := 0; y <= 18; y += 2 {
			if g.Typ(x, y) != world.Pool {
				t.Fatalf("lattice point (%d,%d) = %v, want pool", x, y, g.Typ(x, y))
			}
			n := 0
			for _, d := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
				if g.Typ(x+d[0], y+d[1]) == world.Pool {
					n++
				}
			}
			if n != 2 {
				t.Errorf("block at (%d,%d) has %d pools, want 2", x, y, n)
			}
		}
	}
}

func TestMazeStyle_CarvesFloor(t *testing.T) {
	c := newTestContext(8)
	err := Maze.Init(c, InitParams{Filling: world.HWall, CorridorWidth: 1, WallThickness: 1})
	if err != nil {
		t.Fatal(err)
	}
	if countTerrain(c.Grid, world.Floor) == 0 {
		t.Error("maze style carved no floor")
	}
}

func TestMinesStyle_SetsCavernous(t *testing.T) {
	c := newTestContext(8)
	err := Mines.Init(c, InitParams{
		Filling: world.MaxTerrain, Fg: world.Floor, Bg: world.Stone,
		Smoothed: true, Joined: true, Walled: true, Lit: LitRandom,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !c.Flags.Cavernous {
		t.Error("mines style did not mark the level cavernous")
	}
}
