// Package levelgen tests location resolution and feature placement.
package levelgen

import (
	"errors"
	"testing"

	"splev/pkg/engine/rng"
	"splev/pkg/engine/world"
	"splev/pkg/game/generator"
)

// roomLevel returns a placer over a level with one carved room with floor
// (10,5)-(19,9).
func roomLevel(t *testing.T, seed uint64, depth int) (*Placer, *world.Room) {
	t.Helper()
	c := generator.NewContext(rng.New(seed), depth, nil)
	r, err := c.AddRoom(10, 5, 19, 9, true, world.OrdinaryRoom, false)
	if err != nil {
		t.Fatal(err)
	}
	c.Topologize(r)
	return NewPlacer(c), r
}

func TestLocation_RelativeToRoom(t *testing.T) {
	p, r := roomLevel(t, 1, 1)
	pos, err := p.Location(2, 3, Dry, r)
	if err != nil {
		t.Fatal(err)
	}
	if pos != (world.Coord{X: 12, Y: 8}) {
		t.Errorf("Location = %v, want (12,8)", pos)
	}
}

func TestLocation_RelativeToMap(t *testing.T) {
	p, _ := roomLevel(t, 1, 1)
	g := p.Context().Grid
	g.XStart, g.YStart = 20, 4
	pos, err := p.Location(3, 2, Dry, nil)
	if err != nil {
		t.Fatal(err)
	}
	if pos != (world.Coord{X: 23, Y: 6}) {
		t.Errorf("Location = %v, want (23,6)", pos)
	}
}

func TestLocation_RandomInRoom(t *testing.T) {
	p, r := roomLevel(t, 2, 1)
	for i := 0; i < 50; i++ {
		pos, err := p.Location(Random, Random, Dry, r)
		if err != nil {
			t.Fatal(err)
		}
		if pos.X < r.LX || pos.X > r.HX || pos.Y < r.LY || pos.Y > r.HY {
			t.Fatalf("Location = %v, outside the room", pos)
		}
	}
}

func TestLocation_ScanFindsOnlyMatch(t *testing.T) {
	c := generator.NewContext(rng.New(3), 1, nil)
	c.Grid.Set(40, 12, world.Pool)
	p := NewPlacer(c)
	pos, err := p.Location(Random, Random, Wet, nil)
	if err != nil {
		t.Fatal(err)
	}
	if pos != (world.Coord{X: 40, Y: 12}) {
		t.Errorf("Location = %v, want the only pool at (40,12)", pos)
	}
}

func TestLocation_NothingAcceptable(t *testing.T) {
	c := generator.NewContext(rng.New(3), 1, nil)
	p := NewPlacer(c)
	if _, err := p.Location(Random, Random, Dry, nil); !errors.Is(err, ErrNoLocation) {
		t.Errorf("Location on solid rock = %v, want ErrNoLocation", err)
	}
	if got := c.RNG.(*rng.RNG).Draws(); got != 200 {
		t.Errorf("made %d draws, want 200", got)
	}
}

func TestLocation_DryAvoidsBoulders(t *testing.T) {
	c := generator.NewContext(rng.New(3), 1, nil)
	c.Grid.Set(30, 10, world.Floor)
	c.Grid.Set(31, 10, world.Floor)
	p := NewPlacer(c)
	// Map-relative coordinates start at column 1.
	if _, err := p.Object(ObjectSpec{Class: '`', ID: "boulder"}, 29, 10, nil); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		pos, err := p.Location(Random, Random, Dry, nil)
		if err != nil {
			t.Fatal(err)
		}
		if pos != (world.Coord{X: 31, Y: 10}) {
			t.Fatalf("Location = %v, want (31,10)", pos)
		}
	}
	if !p.OKLocation(30, 10, SpaceLoc) {
		t.Error("SpaceLoc rejected a boulder location")
	}
}

func TestStairs_DownAndUp(t *testing.T) {
	p, r := roomLevel(t, 4, 3)
	if err := p.Stairs(Random, Random, false, r); err != nil {
		t.Fatalf("down stairs: %v", err)
	}
	if err := p.Stairs(Random, Random, true, r); err != nil {
		t.Fatalf("up stairs: %v", err)
	}
	g := p.Context().Grid
	if len(g.Stairs) != 2 {
		t.Fatalf("%d stairways, want 2", len(g.Stairs))
	}
	for _, s := range g.Stairs {
		if g.Typ(s.X, s.Y) != world.Stairs {
			t.Errorf("stairway (%d,%d) is %v", s.X, s.Y, g.Typ(s.X, s.Y))
		}
	}
	if err := p.Stairs(Random, Random, false, r); err == nil {
		t.Error("second down staircase accepted")
	}
}

func TestStairs_NoUpOnFirstLevel(t *testing.T) {
	p, r := roomLevel(t, 4, 1)
	if err := p.Stairs(Random, Random, true, r); err != nil {
		t.Fatal(err)
	}
	if n := len(p.Context().Grid.Stairs); n != 0 {
		t.Errorf("%d stairways on level 1 after an up staircase, want 0", n)
	}
}

func TestStairs_NotOverwritten(t *testing.T) {
	p, r := roomLevel(t, 5, 2)
	if err := p.Stairs(1, 1, false, r); err != nil {
		t.Fatal(err)
	}
	if err := p.Feature(world.Fountain, 1, 1, r); err != nil {
		t.Fatal(err)
	}
	if got := p.Context().Grid.Typ(11, 6); got != world.Stairs {
		t.Errorf("stairs became %v", got)
	}
	if err := p.Ladder(1, 1, true, r); err == nil {
		t.Error("ladder accepted on top of stairs")
	}
}

func TestStairs_RemovesTrap(t *testing.T) {
	p, r := roomLevel(t, 5, 2)
	if err := p.Trap(world.ArrowTrap, 2, 2, r); err != nil {
		t.Fatal(err)
	}
	if !p.TrapAt(12, 7) {
		t.Fatal("trap not placed")
	}
	if err := p.Stairs(2, 2, false, r); err != nil {
		t.Fatal(err)
	}
	if p.TrapAt(12, 7) || len(p.Context().Grid.Traps) != 0 {
		t.Error("trap under stairs was kept")
	}
}

func TestAltar_ShrineOnlyInTemple(t *testing.T) {
	p, r := roomLevel(t, 6, 1)
	if err := p.Altar(1, 1, AlignLawful, 1, r); err != nil {
		t.Fatal(err)
	}
	g := p.Context().Grid
	if cell := g.At(11, 6); cell.Typ != world.Altar || cell.Flags != AlignLawful {
		t.Errorf("altar = %v flags %d, want altar %d", cell.Typ, cell.Flags, AlignLawful)
	}

	r.Type = world.Temple
	if err := p.Altar(3, 1, AlignChaotic, 1, r); err != nil {
		t.Fatal(err)
	}
	if got := g.At(13, 6).Flags; got != AlignChaotic|AlignShrine {
		t.Errorf("temple altar flags = %d, want %d", got, AlignChaotic|AlignShrine)
	}
}

func TestAltar_RandomAlignment(t *testing.T) {
	p, r := roomLevel(t, 7, 1)
	if err := p.Altar(Random, Random, AlignRandom, 0, r); err != nil {
		t.Fatal(err)
	}
	found := false
	p.Context().Grid.ForEach(func(x, y int, cell *world.Cell) {
		if cell.Typ != world.Altar {
			return
		}
		found = true
		switch cell.Flags {
		case AlignChaotic, AlignNeutral, AlignLawful:
		default:
			t.Errorf("altar flags = %d, want a single alignment", cell.Flags)
		}
	})
	if !found {
		t.Error("no altar placed")
	}
}

func TestFeature_RejectsNonFeatures(t *testing.T) {
	p, r := roomLevel(t, 1, 1)
	if err := p.Feature(world.HWall, 1, 1, r); err == nil {
		t.Error("Feature accepted a wall")
	}
}

func TestRandomTrapType_ShallowLevel(t *testing.T) {
	p, _ := roomLevel(t, 8, 1)
	banned := map[world.TrapType]bool{
		world.MagicPortal: true, world.VibratingSquare: true, world.FireTrap: true,
		world.RollingBoulderTrap: true, world.SleepingGasTrap: true, world.LevelTeleporter: true,
		world.SpikedPit: true, world.LandMine: true, world.Web: true,
		world.StatueTrap: true, world.PolyTrap: true,
	}
	for i := 0; i < 300; i++ {
		k := p.RandomTrapType()
		if k <= world.NoTrap || k >= world.TrapNum {
			t.Fatalf("RandomTrapType = %d, out of range", k)
		}
		if banned[k] {
			t.Fatalf("RandomTrapType = %v on level 1", k)
		}
	}
}

func TestRandomTrapType_NoTeleport(t *testing.T) {
	p, _ := roomLevel(t, 9, 12)
	p.Context().Flags.NoTeleport = true
	for i := 0; i < 300; i++ {
		if k := p.RandomTrapType(); k == world.TeleportTrap || k == world.LevelTeleporter {
			t.Fatalf("RandomTrapType = %v on a no-teleport level", k)
		}
	}
}

func TestTrap_HardFloorTurnsHoleToRock(t *testing.T) {
	p, r := roomLevel(t, 10, 5)
	p.Context().Flags.HardFloor = true
	if err := p.Trap(world.TrapDoor, 1, 1, r); err != nil {
		t.Fatal(err)
	}
	if got := p.Context().Grid.Traps[0].Type; got != world.RockTrap {
		t.Errorf("trap = %v, want falling rock", got)
	}
}

func TestTrap_PitFlattensFurniture(t *testing.T) {
	p, _ := roomLevel(t, 10, 5)
	g := p.Context().Grid
	g.Set(15, 7, world.Fountain)
	if err := p.Trap(world.Pit, 14, 7, nil); err != nil {
		t.Fatal(err)
	}
	if got := g.Typ(15, 7); got != world.Floor {
		t.Errorf("fountain under pit = %v, want room", got)
	}
}

func TestTrap_ReplacesExisting(t *testing.T) {
	p, r := roomLevel(t, 10, 5)
	_ = p.Trap(world.ArrowTrap, 1, 1, r)
	_ = p.Trap(world.BearTrap, 1, 1, r)
	traps := p.Context().Grid.Traps
	if len(traps) != 1 || traps[0].Type != world.BearTrap {
		t.Errorf("traps = %v, want one bear trap", traps)
	}
}

func TestMonster_MovesOffOccupiedSpot(t *testing.T) {
	p, r := roomLevel(t, 11, 1)
	a, _ := p.Monster(MonsterSpec{Class: 'G', ID: "gnome"}, 4, 2, r)
	b, _ := p.Monster(MonsterSpec{Class: 'G', ID: "gnome lord"}, 4, 2, r)
	if a == b {
		t.Fatalf("two monsters at %v", a)
	}
	if abs(a.X-b.X) > 1 || abs(a.Y-b.Y) > 1 {
		t.Errorf("displaced monster at %v is not next to %v", b, a)
	}
	if len(p.Context().Grid.Monsters) != 2 {
		t.Errorf("%d monsters recorded, want 2", len(p.Context().Grid.Monsters))
	}
}
