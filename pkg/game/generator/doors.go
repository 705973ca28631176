package generator

import (
	"splev/pkg/engine/world"
)

// okDoor reports whether a door may go at (x,y): a straight wall with no door
// beside it while the door table still has room.
func (c *Context) okDoor(x, y int) bool {
	t := c.Grid.Typ(x, y)
	return (t == world.HWall || t == world.VWall) &&
		len(c.Grid.Doors) < world.MaxDoors &&
		!c.Grid.ByDoor(x, y)
}

// findDoorPos picks a door location on the wall segment (xl,yl)-(xh,yh). A
// random spot is tried first, then the first acceptable wall, then any
// existing door; the segment's end is the last resort.
func (c *Context) findDoorPos(xl, yl, xh, yh int) world.Coord {
	x := c.RNG.Rn1(xh-xl+1, xl)
	y := c.RNG.Rn1(yh-yl+1, yl)
	if c.okDoor(x, y) {
		return world.Coord{X: x, Y: y}
	}
	for x := xl; x <= xh; x++ {
		for y := yl; y <= yh; y++ {
			if c.okDoor(x, y) {
				return world.Coord{X: x, Y: y}
			}
		}
	}
	for x := xl; x <= xh; x++ {
		for y := yl; y <= yh; y++ {
			if t := c.Grid.Typ(x, y); t == world.Doorway || t == world.SDoor {
				return world.Coord{X: x, Y: y}
			}
		}
	}
	return world.Coord{X: xl, Y: yh}
}

// addDoor records a door for r, logging when the table is full.
func (c *Context) addDoor(x, y int, r *world.Room) {
	if err := c.Grid.AddDoor(x, y, r); err != nil {
		c.Log.Printf("door: %v", err)
	}
}

// DoDoor makes a corridor door for r at (x,y): secret one time in eight.
func (c *Context) DoDoor(x, y int, r *world.Room) {
	if len(c.Grid.Doors) >= world.MaxDoors {
		c.Log.Printf("door: table full, skipping (%d,%d)", x, y)
		return
	}
	typ := world.Doorway
	if c.RNG.Rn2(8) == 0 {
		typ = world.SDoor
	}
	c.doSDoor(x, y, r, typ)
}

func (c *Context) doSDoor(x, y int, r *world.Room, typ world.Terrain) {
	g := c.Grid
	shdoor := c.inShop(x, y)
	if !g.Typ(x, y).IsWall() {
		typ = world.Doorway
	}
	g.Set(x, y, typ)
	cell := g.At(x, y)

	if typ == world.Doorway {
		if c.RNG.Rn2(3) == 0 {
			switch {
			case c.RNG.Rn2(5) == 0:
				cell.DoorMask = world.Open
			case c.RNG.Rn2(6) == 0:
				cell.DoorMask = world.Locked
			default:
				cell.DoorMask = world.Closed
			}
			if cell.DoorMask != world.Open && !shdoor && c.Difficulty >= 5 && c.RNG.Rn2(25) == 0 {
				cell.DoorMask |= world.Trapped
			}
		} else if shdoor {
			cell.DoorMask = world.Open
		} else {
			cell.DoorMask = world.NoDoor
		}

		if cell.DoorMask&world.Trapped != 0 && c.Difficulty >= 9 && c.RNG.Rn2(5) == 0 {
			// A mimic pretends to be the door instead.
			cell.DoorMask = world.NoDoor
			g.Monsters = append(g.Monsters, world.Monster{X: x, Y: y, Class: 'm', ID: "mimic"})
		}
	} else {
		if shdoor || c.RNG.Rn2(5) == 0 {
			cell.DoorMask = world.Locked
		} else {
			cell.DoorMask = world.Closed
		}
		if !shdoor && c.Difficulty >= 4 && c.RNG.Rn2(20) == 0 {
			cell.DoorMask |= world.Trapped
		}
	}
	c.addDoor(x, y, r)
}

// DoorRequest is a door on a room wall. Wall 0 means a random side, Pos -1 a
// random position along it, Secret -1 a coin flip and Mask -1 a random state.
type DoorRequest struct {
	Wall   world.Wall
	Pos    int
	Secret int
	Mask   world.DoorMask
}

// RandomDoorMask asks CreateDoor to roll the door state.
const RandomDoorMask world.DoorMask = -1

// CreateDoor puts a door on one of r's walls. It gives up quietly after a
// hundred attempts to find a usable wall cell.
func (c *Context) CreateDoor(req DoorRequest, r *world.Room) {
	secret := req.Secret
	if secret == -1 {
		secret = c.RNG.Rn2(2)
	}
	mask := req.Mask
	if mask == RandomDoorMask {
		if secret == 0 {
			if c.RNG.Rn2(3) == 0 {
				switch {
				case c.RNG.Rn2(5) == 0:
					mask = world.Open
				case c.RNG.Rn2(6) == 0:
					mask = world.Locked
				default:
					mask = world.Closed
				}
				if mask != world.Open && c.RNG.Rn2(25) == 0 {
					mask |= world.Trapped
				}
			} else {
				mask = world.NoDoor
			}
		} else {
			if c.RNG.Rn2(5) == 0 {
				mask = world.Locked
			} else {
				mask = world.Closed
			}
			if c.RNG.Rn2(20) == 0 {
				mask |= world.Trapped
			}
		}
	}

	x, y := 0, 0
	for attempts := 0; ; attempts++ {
		dwall := req.Wall
		if dwall == 0 {
			dwall = 1 << c.RNG.Rn2(4)
		}
		along := func(span int) int {
			if req.Pos == -1 {
				return c.RNG.Rn2(1 + span)
			}
			return req.Pos
		}

		// A side whose far cell is rock is skipped.
		beyondOpen := func(x, y int) bool {
			return world.IsOK(x, y) && !c.Grid.Typ(x, y).IsRock()
		}
		wtry := c.RNG.Rn2(4)
	sides:
		for trycnt := 0; trycnt < 4; trycnt++ {
			switch (wtry + trycnt) % 4 {
			case 0:
				if dwall&world.North == 0 {
					continue
				}
				y = r.LY - 1
				x = r.LX + along(r.HX-r.LX)
				if !beyondOpen(x, y-1) {
					continue
				}
				break sides
			case 1:
				if dwall&world.South == 0 {
					continue
				}
				y = r.HY + 1
				x = r.LX + along(r.HX-r.LX)
				if !beyondOpen(x, y+1) {
					continue
				}
				break sides
			case 2:
				if dwall&world.West == 0 {
					continue
				}
				x = r.LX - 1
				y = r.LY + along(r.HY-r.LY)
				if !beyondOpen(x-1, y) {
					continue
				}
				break sides
			case 3:
				if dwall&world.East == 0 {
					continue
				}
				x = r.HX + 1
				y = r.LY + along(r.HY-r.LY)
				if !beyondOpen(x+1, y) {
					continue
				}
				break sides
			}
		}
		if c.okDoor(x, y) {
			break
		}
		if attempts >= 100 {
			c.Log.Printf("door: no place for a door in room %d", r.Index)
			return
		}
	}

	if secret != 0 {
		c.Grid.Set(x, y, world.SDoor)
	} else {
		c.Grid.Set(x, y, world.Doorway)
	}
	c.Grid.At(x, y).DoorMask = mask
	c.addDoor(x, y, r)
}

// RandomDoorState returns one of the plain door states with rn2(5).
func (c *Context) RandomDoorState() world.DoorMask {
	states := [...]world.DoorMask{world.NoDoor, world.Broken, world.Open, world.Closed, world.Locked}
	return states[c.RNG.Rn2(len(states))]
}

// MapDoor writes a door directly onto the map. Secret doors are never left
// open or broken. The door joins its rooms' tables at finalization.
func (c *Context) MapDoor(x, y int, mask world.DoorMask) {
	g := c.Grid
	secret := mask&world.Secret != 0
	if t := g.Typ(x, y); t != world.Doorway && t != world.SDoor {
		if secret {
			g.Set(x, y, world.SDoor)
		} else {
			g.Set(x, y, world.Doorway)
		}
	}
	if secret {
		mask &^= world.Secret
		if mask < world.Closed {
			mask = world.Closed
		}
	}
	c.setDoorOrientation(x, y)
	cell := g.At(x, y)
	cell.DoorMask = mask
	cell.MapFragment = true
}

func (c *Context) setDoorOrientation(x, y int) {
	walled := func(x, y int) bool {
		if !world.IsOK(x, y) {
			return false
		}
		t := c.Grid.Typ(x, y)
		return t.IsWall() || t == world.Doorway || t == world.SDoor
	}
	wleft, wright := walled(x-1, y), walled(x+1, y)
	wup, wdown := walled(x, y-1), walled(x, y+1)
	cell := c.Grid.At(x, y)
	switch {
	case (wleft || wright) && !(wup && wdown):
		cell.Horizontal = true
	case (wup || wdown) && !(wleft && wright):
		cell.Horizontal = false
	}
}

// LinkDoorsRooms adds every door on the map to the tables of the rooms it
// belongs to, scanning row by row.
func (c *Context) LinkDoorsRooms() {
	g := c.Grid
	for y := 0; y < world.RowNo; y++ {
		for x := 0; x < world.ColNo; x++ {
			if t := g.Typ(x, y); t != world.Doorway && t != world.SDoor {
				continue
			}
			for _, r := range g.Rooms {
				c.maybeAddDoor(x, y, r)
				for _, sub := range r.Subrooms {
					c.maybeAddDoor(x, y, sub)
				}
			}
		}
	}
}

func (c *Context) maybeAddDoor(x, y int, r *world.Room) {
	if r.HX < 0 {
		return
	}
	if (!r.Irregular && r.Inside(x, y)) || c.Grid.At(x, y).RoomNo == r.RoomNo() {
		c.addDoor(x, y, r)
	}
}
