package generator

import (
	"fmt"

	"splev/pkg/engine/world"
)

// DigCorridor walks from org toward dest turning btyp cells into ftyp. The
// walk prefers the axis with the larger distance, occasionally stalls it,
// and turns aside around obstacles. Cells that are already ftyp or a secret
// corridor are crossed unchanged. nxcor marks an optional corridor that may
// stop early and leave boulders behind.
func (c *Context) DigCorridor(org, dest world.Coord, nxcor bool, ftyp, btyp world.Terrain) bool {
	g := c.Grid
	xx, yy := org.X, org.Y
	tx, ty := dest.X, dest.Y
	if xx <= 0 || yy <= 0 || tx <= 0 || ty <= 0 ||
		xx > world.ColNo-1 || tx > world.ColNo-1 || yy > world.RowNo-1 || ty > world.RowNo-1 {
		return false
	}

	dx, dy := 0, 0
	switch {
	case tx > xx:
		dx = 1
	case ty > yy:
		dy = 1
	case tx < xx:
		dx = -1
	default:
		dy = -1
	}
	xx -= dx
	yy -= dy

	passable := func(x, y int) bool {
		t := g.Typ(x, y)
		return t == btyp || t == ftyp || t == world.SCorr
	}

	cct := 0
	for xx != tx || yy != ty {
		if cct > 500 || (nxcor && c.RNG.Rn2(35) == 0) {
			return false
		}
		cct++

		xx += dx
		yy += dy
		if xx >= world.ColNo-1 || xx <= 0 || yy <= 0 || yy >= world.RowNo-1 {
			return false
		}

		switch t := g.Typ(xx, yy); {
		case t == btyp:
			if ftyp != world.Corr || c.RNG.Rn2(100) != 0 {
				g.Set(xx, yy, ftyp)
				if nxcor && c.RNG.Rn2(50) == 0 {
					g.Objects = append(g.Objects, world.Object{X: xx, Y: yy, Class: '`', ID: "boulder"})
				}
			} else {
				g.Set(xx, yy, world.SCorr)
			}
		case t != ftyp && t != world.SCorr:
			return false
		}

		dix := abs(xx - tx)
		diy := abs(yy - ty)
		if dix > diy && diy != 0 && c.RNG.Rn2(dix-diy+1) == 0 {
			dix = 0
		} else if diy > dix && dix != 0 && c.RNG.Rn2(diy-dix+1) == 0 {
			diy = 0
		}

		if dy != 0 && dix > diy {
			ddx := 1
			if xx > tx {
				ddx = -1
			}
			if passable(xx+ddx, yy) {
				dx, dy = ddx, 0
				continue
			}
		} else if dx != 0 && diy > dix {
			ddy := 1
			if yy > ty {
				ddy = -1
			}
			if passable(xx, yy+ddy) {
				dx, dy = 0, ddy
				continue
			}
		}

		if passable(xx+dx, yy+dy) {
			continue
		}

		if dx != 0 {
			dx = 0
			dy = 1
			if ty < yy {
				dy = -1
			}
		} else {
			dy = 0
			dx = 1
			if tx < xx {
				dx = -1
			}
		}
		if passable(xx+dx, yy+dy) {
			continue
		}
		dx, dy = -dx, -dy
	}
	return true
}

// corridorTerrain is what room-joining corridors are dug as.
func (c *Context) corridorTerrain() world.Terrain {
	if c.Flags.Arboreal {
		return world.Floor
	}
	return world.Corr
}

// Join connects rooms a and b with doors and a corridor. Optional corridors
// (nxcor) may give up part way and only add doors where they fit.
func (c *Context) Join(a, b int, nxcor bool) {
	g := c.Grid
	if a < 0 || b < 0 || a >= len(g.Rooms) || b >= len(g.Rooms) {
		return
	}
	croom, troom := g.Rooms[a], g.Rooms[b]
	if troom.HX < 0 || croom.HX < 0 || len(g.Doors) >= world.MaxDoors {
		return
	}
	if !croom.NeedJoining || !troom.NeedJoining {
		return
	}

	var dd, tt world.Coord
	dx, dy := 0, 0
	switch {
	case troom.LX > croom.HX:
		dx = 1
		dd = c.findDoorPos(croom.HX+1, croom.LY, croom.HX+1, croom.HY)
		tt = c.findDoorPos(troom.LX-1, troom.LY, troom.LX-1, troom.HY)
	case troom.HY < croom.LY:
		dy = -1
		dd = c.findDoorPos(croom.LX, croom.LY-1, croom.HX, croom.LY-1)
		tt = c.findDoorPos(troom.LX, troom.HY+1, troom.HX, troom.HY+1)
	case troom.HX < croom.LX:
		dx = -1
		dd = c.findDoorPos(croom.LX-1, croom.LY, croom.LX-1, croom.HY)
		tt = c.findDoorPos(troom.HX+1, troom.LY, troom.HX+1, troom.HY)
	default:
		dy = 1
		dd = c.findDoorPos(croom.LX, croom.HY+1, croom.HX, croom.HY+1)
		tt = c.findDoorPos(troom.LX, troom.LY-1, troom.HX, troom.LY-1)
	}

	org := dd.Add(dx, dy)
	dest := tt.Add(-dx, -dy)
	if nxcor && g.Typ(org.X, org.Y) != world.Stone {
		return
	}
	if c.okDoor(dd.X, dd.Y) || !nxcor {
		c.DoDoor(dd.X, dd.Y, croom)
	}
	if !c.DigCorridor(org, dest, nxcor, c.corridorTerrain(), world.Stone) {
		if !nxcor {
			c.Log.Printf("corridor: dig from (%d,%d) to (%d,%d) failed", org.X, org.Y, dest.X, dest.Y)
		}
		return
	}
	if c.okDoor(tt.X, tt.Y) || !nxcor {
		c.DoDoor(tt.X, tt.Y, troom)
	}

	if c.smeq[a] < c.smeq[b] {
		c.smeq[b] = c.smeq[a]
	} else {
		c.smeq[a] = c.smeq[b]
	}
}

// MakeCorridors joins every room: neighbours first, then rooms two apart,
// then anything still disconnected, then a few optional extra corridors.
func (c *Context) MakeCorridors() {
	n := len(c.Grid.Rooms)
	for a := 0; a < n-1; a++ {
		c.Join(a, a+1, false)
		if c.RNG.Rn2(50) == 0 {
			break
		}
	}
	for a := 0; a < n-2; a++ {
		if c.smeq[a] != c.smeq[a+2] {
			c.Join(a, a+2, false)
		}
	}
	more := true
	for a := 0; more && a < n; a++ {
		more = false
		for b := 0; b < n; b++ {
			if c.smeq[a] != c.smeq[b] {
				c.Join(a, b, false)
				more = true
			}
		}
	}
	if n > 2 {
		for i := c.RNG.Rn2(n) + 4; i > 0; i-- {
			a := c.RNG.Rn2(n)
			b := c.RNG.Rn2(n - 2)
			if b >= a {
				b += 2
			}
			c.Join(a, b, true)
		}
	}
}

// Connected reports whether corridors have joined rooms a and b.
func (c *Context) Connected(a, b int) bool {
	return c.smeq[a] == c.smeq[b]
}

// CorridorEnd names a door of a room for an explicit corridor: the nth door
// (counting from zero) along the given wall.
type CorridorEnd struct {
	Room int
	Wall world.Wall
	Door int
}

// CreateCorridor digs a corridor between two existing doors. Missing doors
// make it a silent no-op; an unknown room is an error.
func (c *Context) CreateCorridor(src, dst CorridorEnd) error {
	g := c.Grid
	for _, e := range []CorridorEnd{src, dst} {
		if e.Room < 0 || e.Room >= len(g.Rooms) {
			return fmt.Errorf("corridor: no room %d", e.Room)
		}
	}
	org, ok := c.searchDoor(g.Rooms[src.Room], src.Wall, src.Door)
	if !ok {
		return nil
	}
	dest, ok := c.searchDoor(g.Rooms[dst.Room], dst.Wall, dst.Door)
	if !ok {
		return nil
	}
	sdx, sdy := src.Wall.Delta()
	ddx, ddy := dst.Wall.Delta()
	org = org.Add(sdx, sdy)
	dest = dest.Add(ddx, ddy)
	if !c.DigCorridor(org, dest, false, world.Corr, world.Stone) {
		c.Log.Printf("corridor: dig from (%d,%d) to (%d,%d) failed", org.X, org.Y, dest.X, dest.Y)
	}
	return nil
}

func (c *Context) searchDoor(r *world.Room, wall world.Wall, cnt int) (world.Coord, bool) {
	var dx, dy, xx, yy int
	switch wall {
	case world.North:
		dx, xx, yy = 1, r.LX, r.LY-1
	case world.South:
		dx, xx, yy = 1, r.LX, r.HY+1
	case world.East:
		dy, xx, yy = 1, r.HX+1, r.LY
	case world.West:
		dy, xx, yy = 1, r.LX-1, r.LY
	default:
		return world.Coord{}, false
	}
	for xx <= r.HX+1 && yy <= r.HY+1 {
		if t := c.Grid.Typ(xx, yy); t == world.Doorway || t == world.SDoor {
			if cnt <= 0 {
				return world.Coord{X: xx, Y: yy}, true
			}
			cnt--
		}
		xx += dx
		yy += dy
	}
	return world.Coord{}, false
}
