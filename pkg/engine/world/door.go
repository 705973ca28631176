package world

import "strings"

// DoorMask is the state of a door location.
type DoorMask int

const (
	NoDoor  DoorMask = 0
	Broken  DoorMask = 1
	Open    DoorMask = 2
	Closed  DoorMask = 4
	Locked  DoorMask = 8
	Trapped DoorMask = 16
	// Secret is only used in scripts; it is stored as SDoor terrain.
	Secret DoorMask = 32
)

// String returns a readable description like "locked|trapped".
func (m DoorMask) String() string {
	var parts []string
	switch {
	case m&Open != 0:
		parts = append(parts, "open")
	case m&Locked != 0:
		parts = append(parts, "locked")
	case m&Closed != 0:
		parts = append(parts, "closed")
	case m&Broken != 0:
		parts = append(parts, "broken")
	default:
		parts = append(parts, "nodoor")
	}
	if m&Trapped != 0 {
		parts = append(parts, "trapped")
	}
	if m&Secret != 0 {
		parts = append(parts, "secret")
	}
	return strings.Join(parts, "|")
}

// Door is an entry in the level's door table.
type Door struct {
	X, Y int
	// State mirrors the cell's DoorMask, with Secret set for a secret door.
	State DoorMask
	// Wall is the side of the owning room the door sits in. It is zero for a
	// door off the room's bounding box, as in irregular rooms.
	Wall Wall
}

// DoorWall returns the side of r whose wall holds (x,y), or 0.
func DoorWall(x, y int, r *Room) Wall {
	switch {
	case y == r.LY-1 && x >= r.LX && x <= r.HX:
		return North
	case y == r.HY+1 && x >= r.LX && x <= r.HX:
		return South
	case x == r.LX-1 && y >= r.LY && y <= r.HY:
		return West
	case x == r.HX+1 && y >= r.LY && y <= r.HY:
		return East
	}
	return 0
}
