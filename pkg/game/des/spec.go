package des

import (
	"splev/pkg/engine/selection"
	"splev/pkg/engine/world"
	"splev/pkg/game/generator"
	"splev/pkg/game/levelgen"
	"splev/pkg/game/verify"
)

// Pos is a script coordinate, relative to the enclosing room's floor or to
// the last map fragment. The zero Pos asks for a random location.
type Pos struct {
	X, Y int
	set  bool
}

// At returns a fixed position.
func At(x, y int) Pos {
	return Pos{X: x, Y: y, set: true}
}

// Anywhere is a random position.
var Anywhere = Pos{}

// Fixed reports whether p names a particular location.
func (p Pos) Fixed() bool {
	return p.set
}

func (p Pos) coords() (int, int) {
	if !p.set {
		return levelgen.Random, levelgen.Random
	}
	return p.X, p.Y
}

// Light is a lighting request. The zero value uses the default of the call
// it is passed to.
type Light int

const (
	LightDefault Light = iota
	LightOn
	LightOff
	LightRandom
)

func (l Light) state(def generator.LitState) generator.LitState {
	switch l {
	case LightOn:
		return generator.Lit
	case LightOff:
		return generator.Unlit
	case LightRandom:
		return generator.LitRandom
	}
	return def
}

// Tri is an optional yes/no attribute. The zero value leaves the decision to
// the game.
type Tri int

const (
	Unset Tri = iota
	Yes
	No
)

func (t Tri) int() int {
	switch t {
	case Yes:
		return 1
	case No:
		return 0
	}
	return -1
}

// LevelInit selects how the whole map is prepared before anything is placed.
type LevelInit struct {
	// Style is a registered init style: none, solidfill, mazegrid, maze,
	// mines or swamp.
	Style string

	Filling world.Terrain
	Fg, Bg  world.Terrain
	// Lit defaults to random.
	Lit Light

	Smoothed  bool
	Joined    bool
	Walled    bool
	IcedPools bool

	CorridorWidth  int
	WallThickness  int
	RemoveDeadEnds bool
}

// LevelFlags are level-wide switches. Flags accumulate across calls.
type LevelFlags struct {
	NoTeleport bool
	HardFloor  bool
	MazeLevel  bool
	CorrMaze   bool
	Arboreal   bool
	Solidify   bool
	// Inaccessibles makes finalization fail when a room cannot be reached.
	Inaccessibles bool
	// Verify adds checks to run on the finalized level.
	Verify verify.Checks
}

// HAlign places a map fragment horizontally.
type HAlign int

const (
	HCenter HAlign = iota
	HLeft
	HHalfLeft
	HHalfRight
	HRight
)

// VAlign places a map fragment vertically.
type VAlign int

const (
	VCenter VAlign = iota
	VTop
	VBottom
)

// MapSpec is an ASCII map fragment. Each line is a row; 'x' leaves the
// location below untouched. Without an explicit position the fragment is
// aligned inside the maze area.
type MapSpec struct {
	Map    string
	HAlign HAlign
	VAlign VAlign
	// At pins the fragment's top left corner.
	At Pos
}

// ChanceAlways is a RoomSpec.Chance that skips the type roll.
const ChanceAlways = -1

// RoomSpec describes a room. Zero position, size and alignment fields are
// random. For a top-level room X and Y select a cell of the 5x5 placement
// grid; for a nested room they are offsets into the parent.
type RoomSpec struct {
	Type           world.RoomType
	X, Y           int
	W, H           int
	XAlign, YAlign int
	// Lit defaults to random.
	Lit Light
	// Chance is the percentage for Type to apply. It is rolled with rn2(100);
	// 0 means 100. ChanceAlways applies Type without a roll.
	Chance int
	// Unfilled rooms are not stocked later.
	Unfilled bool
	// NoJoin keeps corridor generation away from the room.
	NoJoin bool
	// Required turns a room that cannot be placed into a fatal error.
	Required bool

	Contents func(*RoomScope) error
}

// RegionSpec changes the lighting of an area and, for special or irregular
// regions, turns it into a room. Corners are relative to the map fragment.
type RegionSpec struct {
	X1, Y1, X2, Y2 int
	// Lit defaults to random.
	Lit       Light
	Type      world.RoomType
	Irregular bool
	// Prefilled forces a room for an ordinary region.
	Prefilled bool
	NoJoin    bool

	Contents func(*RoomScope) error
}

// DoorState is the state of a scripted door. The zero value is random.
type DoorState int

const (
	DoorRandom DoorState = iota
	DoorOpen
	DoorClosed
	DoorLocked
	DoorNone
	DoorBroken
	DoorSecret
)

var doorMasks = map[DoorState]world.DoorMask{
	DoorOpen:   world.Open,
	DoorClosed: world.Closed,
	DoorLocked: world.Locked,
	DoorNone:   world.NoDoor,
	DoorBroken: world.Broken,
	DoorSecret: world.Secret,
}

// DoorStateFromName maps the script spelling of a door state.
func DoorStateFromName(s string) (DoorState, bool) {
	switch s {
	case "random":
		return DoorRandom, true
	case "open":
		return DoorOpen, true
	case "closed":
		return DoorClosed, true
	case "locked":
		return DoorLocked, true
	case "nodoor":
		return DoorNone, true
	case "broken":
		return DoorBroken, true
	case "secret":
		return DoorSecret, true
	}
	return DoorRandom, false
}

// DoorSpec is a door written straight onto the map. Its position must be
// fixed.
type DoorSpec struct {
	State DoorState
	At    Pos
}

// RoomDoor is a door on a wall of the enclosing room. A zero Wall picks a
// side at random and a nil Pos a random offset along it.
type RoomDoor struct {
	State DoorState
	Wall  world.Wall
	Pos   *int
}

// AltarSpec places an altar. A zero Align is random.
type AltarSpec struct {
	At     Pos
	Align  int
	Shrine Tri
}

// TrapSpec places a trap. world.NoTrap is a random kind.
type TrapSpec struct {
	Kind world.TrapType
	At   Pos
}

// ObjectSpec places an object record.
type ObjectSpec struct {
	Class  rune
	ID     string
	Buried bool
	At     Pos
}

// MonsterSpec places a monster record.
type MonsterSpec struct {
	Class    rune
	ID       string
	Peaceful Tri
	Asleep   Tri
	At       Pos
}

// CorridorEnd names the nth door (from zero) on a wall of a room.
type CorridorEnd struct {
	Room int
	Wall world.Wall
	Door int
}

// ReplaceSpec swaps one terrain for another over an area. A nil Area is the
// whole map.
type ReplaceSpec struct {
	Area     *selection.Selection
	From, To world.Terrain
	// Chance is the percentage of matching locations changed; 0 means all.
	Chance int
	// Lit defaults to leaving lighting alone.
	Lit Light
}
