package world

import "fmt"

// Stairway is an up or down staircase or ladder.
type Stairway struct {
	X, Y   int
	Up     bool
	Ladder bool
}

// TrapType identifies a trap. Zero means "pick one at random" in scripts.
type TrapType int

const (
	NoTrap TrapType = iota
	ArrowTrap
	DartTrap
	RockTrap
	SqueakyBoard
	BearTrap
	LandMine
	RollingBoulderTrap
	SleepingGasTrap
	RustTrap
	FireTrap
	Pit
	SpikedPit
	Hole
	TrapDoor
	TeleportTrap
	LevelTeleporter
	MagicPortal
	Web
	StatueTrap
	MagicTrap
	AntiMagicField
	PolyTrap
	VibratingSquare
	TrapNum
)

var trapNames = [...]string{
	"none", "arrow", "dart", "falling rock", "squeaky board", "bear",
	"land mine", "rolling boulder", "sleep gas", "rust", "fire", "pit",
	"spiked pit", "hole", "trap door", "teleport", "level teleport",
	"magic portal", "web", "statue", "magic", "anti magic", "polymorph",
	"vibrating square",
}

func (t TrapType) String() string {
	if t >= 0 && int(t) < len(trapNames) {
		return trapNames[t]
	}
	return fmt.Sprintf("trap(%d)", int(t))
}

// TrapTypeFromName parses a trap name; "random" and "" give NoTrap.
func TrapTypeFromName(s string) (TrapType, bool) {
	if s == "" || s == "random" {
		return NoTrap, true
	}
	for i, n := range trapNames {
		if n == s && i != 0 {
			return TrapType(i), true
		}
	}
	return NoTrap, false
}

// Trap is a placed trap.
type Trap struct {
	X, Y int
	Type TrapType
}

// Object is a placement record for an object. Creating the object itself
// belongs to the game engine.
type Object struct {
	X, Y  int
	Class rune
	ID    string
	// Buried objects and container contents are flagged, not modelled.
	Buried bool
}

// Monster is a placement record for a monster.
type Monster struct {
	X, Y     int
	Class    rune
	ID       string
	Peaceful int
	Asleep   int
}
