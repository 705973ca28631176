package world

// Wall is a bit mask of room sides. Combining bits selects several sides at
// once; for selection growth a pair of adjacent sides also includes the
// diagonal between them.
type Wall int

const (
	North Wall = 1 << iota
	South
	East
	West

	AnyWall Wall = North | South | East | West
)

// AllWalls returns the four sides in the order random choices index them.
func AllWalls() []Wall {
	return []Wall{North, South, East, West}
}

// String returns the name of a single side, "none" for zero, or "any" for
// combinations.
func (w Wall) String() string {
	switch w {
	case 0:
		return "none"
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "any"
	}
}

// Opposite returns the opposite side of a single-side mask.
func (w Wall) Opposite() Wall {
	switch w {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return w
	}
}

// Delta returns the x and y offsets for a single side.
func (w Wall) Delta() (dx, dy int) {
	switch w {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// WallFromName parses "north", "south", "east", "west", "all" or "random".
// Random is returned as zero.
func WallFromName(s string) (Wall, bool) {
	switch s {
	case "north":
		return North, true
	case "south":
		return South, true
	case "east":
		return East, true
	case "west":
		return West, true
	case "all", "any":
		return AnyWall, true
	case "random", "":
		return 0, true
	}
	return 0, false
}
