package generator

import (
	"fmt"

	"splev/pkg/engine/world"
)

// Alignment of a room inside its 1..5 placement cell.
const (
	AlignRandom = -1
	AlignLeft   = 1
	AlignCenter = 2
	AlignRight  = 3
	AlignTop    = 1
	AlignBottom = 3
)

// RoomRequest describes a room for CreateRoom. X and Y select a cell of the
// 5x5 placement grid. Negative position, size and alignment fields are
// chosen at random.
type RoomRequest struct {
	X, Y           int
	W, H           int
	XAlign, YAlign int
	Type           world.RoomType
	Lit            LitState
}

// RandomRoom returns a request with every field random.
func RandomRoom() RoomRequest {
	return RoomRequest{X: -1, Y: -1, W: -1, H: -1, XAlign: AlignRandom, YAlign: AlignRandom, Lit: LitRandom}
}

// CreateRoom places a room, either entirely at random inside a free
// rectangle or on the 5x5 placement grid, and carves it into the map.
// ErrNoRect is returned when no rectangle can hold it.
func (c *Context) CreateRoom(req RoomRequest) (*world.Room, error) {
	vault := req.Type == world.Vault
	xlim, ylim := xLim, yLim
	if vault {
		xlim++
		ylim++
	}
	lit := c.ResolveLit(req.Lit)

	var (
		r1         Rect
		found      bool
		r2         Rect
		xabs, yabs int
		wtmp, htmp int
	)

	for trycnt := 1; trycnt <= 100 && !found; trycnt++ {
		// Random fields are redrawn on every attempt.
		x, y, w, h := req.X, req.Y, req.W, req.H
		xal, yal := req.XAlign, req.YAlign
		if (x < 0 && y < 0 && w < 0 && xal < 0 && yal < 0) || vault {
			var ok bool
			r1, ok = c.Rects.Random(c.RNG)
			if !ok {
				return nil, ErrNoRect
			}
			hx, hy, lx, ly := r1.HX, r1.HY, r1.LX, r1.LY
			var dx, dy int
			if vault {
				dx, dy = 1, 1
			} else {
				dx = 2 + c.RNG.Rn2(pick(hx-lx > 28, 12, 8))
				dy = 2 + c.RNG.Rn2(4)
				if dx*dy > 50 {
					dy = 50 / dx
				}
			}
			xborder := pick(lx > 0 && hx < world.ColNo-1, 2*xlim, xlim+1)
			yborder := pick(ly > 0 && hy < world.RowNo-1, 2*ylim, ylim+1)
			if hx-lx < dx+3+xborder || hy-ly < dy+3+yborder {
				continue
			}
			xabs = lx + pick(lx > 0, xlim, 3) +
				c.RNG.Rn2(hx-pick(lx > 0, lx, 3)-dx-xborder+1)
			yabs = ly + pick(ly > 0, ylim, 2) +
				c.RNG.Rn2(hy-pick(ly > 0, ly, 2)-dy-yborder+1)
			if ly == 0 && hy >= world.RowNo-1 && (c.NRooms() == 0 || c.RNG.Rn2(c.NRooms()) == 0) &&
				yabs+dy > world.RowNo/2 {
				yabs = c.RNG.Rn1(3, 2)
				if c.NRooms() < 4 && dy > 1 {
					dy--
				}
			}
			var ok2 bool
			xabs, dx, yabs, dy, ok2 = c.checkRoom(xabs, dx, yabs, dy, xlim, ylim)
			if !ok2 {
				continue
			}
			wtmp, htmp = dx+1, dy+1
			r2 = Rect{xabs - 1, yabs - 1, xabs + wtmp, yabs + htmp}
			found = true
		} else {
			rndpos := 0
			if x < 0 && y < 0 {
				x = c.RNG.Rnd(5)
				y = c.RNG.Rnd(5)
				rndpos = 1
			}
			if w < 0 || h < 0 {
				w = c.RNG.Rn1(15, 3)
				h = c.RNG.Rn1(8, 2)
			}
			if xal == AlignRandom {
				xal = c.RNG.Rnd(3)
			}
			if yal == AlignRandom {
				yal = c.RNG.Rnd(3)
			}

			xabs = (x-1)*world.ColNo/5 + 1
			yabs = (y-1)*world.RowNo/5 + 1
			switch xal {
			case AlignRight:
				xabs += world.ColNo/5 - w
			case AlignCenter:
				xabs += (world.ColNo/5 - w) / 2
			}
			switch yal {
			case AlignBottom:
				yabs += world.RowNo/5 - h
			case AlignCenter:
				yabs += (world.RowNo/5 - h) / 2
			}
			if xabs+w-1 > world.ColNo-2 {
				xabs = world.ColNo - w - 3
			}
			if xabs < 2 {
				xabs = 2
			}
			if yabs+h-1 > world.RowNo-2 {
				yabs = world.RowNo - h - 3
			}
			if yabs < 2 {
				yabs = 2
			}
			wtmp, htmp = w, h
			r2 = Rect{xabs - 1, yabs - 1, xabs + wtmp + rndpos, yabs + htmp + rndpos}
			r1, found = c.Rects.Containing(r2)
		}
	}
	if !found {
		return nil, ErrNoRect
	}

	c.Rects.Split(r1, r2)

	if vault {
		return c.AddRoom(xabs, yabs, xabs+1, yabs+1, true, world.Vault, false)
	}
	return c.AddRoom(xabs, yabs, xabs+wtmp-1, yabs+htmp-1, lit, req.Type, false)
}

// checkRoom shrinks a candidate room away from anything already built
// nearby. It fails outright on a one-in-three chance when it meets built
// terrain, or when nothing is left.
func (c *Context) checkRoom(lowx, ddx, lowy, ddy, xlim, ylim int) (int, int, int, int, bool) {
	hix, hiy := lowx+ddx, lowy+ddy
	if lowx < 3 {
		lowx = 3
	}
	if lowy < 2 {
		lowy = 2
	}
	if hix > world.ColNo-3 {
		hix = world.ColNo - 3
	}
	if hiy > world.RowNo-3 {
		hiy = world.RowNo - 3
	}

chk:
	if hix <= lowx || hiy <= lowy {
		return lowx, ddx, lowy, ddy, false
	}
	for x := lowx - xlim; x <= hix+xlim; x++ {
		if x <= 0 || x >= world.ColNo {
			continue
		}
		y := max(lowy-ylim, 0)
		ymax := min(hiy+ylim, world.RowNo-1)
		for ; y <= ymax; y++ {
			if c.Grid.Typ(x, y) == world.Stone {
				continue
			}
			if c.RNG.Rn2(3) == 0 {
				return lowx, ddx, lowy, ddy, false
			}
			if x < lowx {
				lowx = x + xlim + 1
			} else {
				hix = x - xlim - 1
			}
			if y < lowy {
				lowy = y + ylim + 1
			} else {
				hiy = y - ylim - 1
			}
			goto chk
		}
	}
	return lowx, hix - lowx, lowy, hiy - lowy, true
}

// AddRoom appends a top-level room with floor (lowx,lowy)-(hix,hiy). Unless
// special is set the floor and its rectangular walls are carved.
func (c *Context) AddRoom(lowx, lowy, hix, hiy int, lit bool, rtype world.RoomType, special bool) (*world.Room, error) {
	return c.addRoom(world.MaxRooms, lowx, lowy, hix, hiy, lit, rtype, special)
}

func (c *Context) addRoom(limit, lowx, lowy, hix, hiy int, lit bool, rtype world.RoomType, special bool) (*world.Room, error) {
	if len(c.Grid.Rooms) >= limit {
		return nil, &StructuralError{Element: "room", Reason: "room table full"}
	}
	r := &world.Room{Index: len(c.Grid.Rooms)}
	c.Grid.Rooms = append(c.Grid.Rooms, r)
	c.smeq = append(c.smeq, r.Index)
	c.carveRoom(r, lowx, lowy, hix, hiy, lit, rtype, special, true)
	return r, nil
}

// AddSubroom appends a room nested inside parent. Its walls are wallified at
// once so they join the parent's floor cleanly.
func (c *Context) AddSubroom(parent *world.Room, lowx, lowy, hix, hiy int, lit bool, rtype world.RoomType, special bool) (*world.Room, error) {
	if len(c.Grid.Subrooms) >= world.MaxRooms {
		return nil, &StructuralError{Element: "subroom", Reason: "subroom table full"}
	}
	r := &world.Room{Index: len(c.Grid.Subrooms), Parent: parent}
	c.Grid.Subrooms = append(c.Grid.Subrooms, r)
	parent.Subrooms = append(parent.Subrooms, r)
	c.carveRoom(r, lowx, lowy, hix, hiy, lit, rtype, special, false)
	return r, nil
}

func (c *Context) carveRoom(r *world.Room, lowx, lowy, hix, hiy int, lit bool, rtype world.RoomType, special, isRoom bool) {
	g := c.Grid
	if lowx == 0 {
		lowx++
	}
	if lowy == 0 {
		lowy++
	}
	if hix >= world.ColNo-1 {
		hix = world.ColNo - 2
	}
	if hiy >= world.RowNo-1 {
		hiy = world.RowNo - 2
	}

	if lit {
		for x := lowx - 1; x <= hix+1; x++ {
			for y := max(lowy-1, 0); y <= hiy+1; y++ {
				if cell := g.At(x, y); cell != nil {
					cell.Lit = true
				}
			}
		}
	}
	r.Lit = lit
	r.LX, r.LY, r.HX, r.HY = lowx, lowy, hix, hiy
	r.Type = rtype
	r.DoorCount = 0
	r.FirstDoor = len(g.Doors)
	r.Irregular = false

	if special {
		return
	}
	r.NeedJoining = true
	for x := lowx - 1; x <= hix+1; x++ {
		for _, y := range []int{lowy - 1, hiy + 1} {
			g.Set(x, y, world.HWall)
			if cell := g.At(x, y); cell != nil {
				cell.Horizontal = true
			}
		}
	}
	for _, x := range []int{lowx - 1, hix + 1} {
		for y := lowy; y <= hiy; y++ {
			g.Set(x, y, world.VWall)
			if cell := g.At(x, y); cell != nil {
				cell.Horizontal = false
			}
		}
	}
	for x := lowx; x <= hix; x++ {
		for y := lowy; y <= hiy; y++ {
			g.Set(x, y, world.Floor)
		}
	}
	if isRoom {
		g.Set(lowx-1, lowy-1, world.TLCorner)
		g.Set(hix+1, lowy-1, world.TRCorner)
		g.Set(lowx-1, hiy+1, world.BLCorner)
		g.Set(hix+1, hiy+1, world.BRCorner)
	} else {
		c.Wallification(lowx-1, lowy-1, hix+1, hiy+1)
	}
}

// SubroomRequest positions a subroom relative to its parent's floor.
// Negative fields are random.
type SubroomRequest struct {
	X, Y, W, H int
	Type       world.RoomType
	Lit        LitState
}

// CreateSubroom places a subroom inside parent. Parents narrower or shorter
// than four cells cannot hold one.
func (c *Context) CreateSubroom(parent *world.Room, req SubroomRequest) (*world.Room, error) {
	width := parent.HX - parent.LX + 1
	height := parent.HY - parent.LY + 1
	if width < 4 || height < 4 {
		return nil, &StructuralError{
			Element: "subroom",
			Reason:  fmt.Sprintf("parent room %d is only %dx%d", parent.Index, width, height),
		}
	}
	x, y, w, h := req.X, req.Y, req.W, req.H
	if w == -1 {
		w = c.RNG.Rnd(width - 3)
	}
	if h == -1 {
		h = c.RNG.Rnd(height - 3)
	}
	if x == -1 {
		x = c.RNG.Rnd(width - w)
	}
	if y == -1 {
		y = c.RNG.Rnd(height - h)
	}
	if x == 1 {
		x = 0
	}
	if y == 1 {
		y = 0
	}
	if x+w+1 == width {
		x++
	}
	if y+h+1 == height {
		y++
	}
	lit := c.ResolveLit(req.Lit)
	return c.AddSubroom(parent, parent.LX+x, parent.LY+y, parent.LX+x+w-1, parent.LY+y+h-1, lit, req.Type, false)
}

// Topologize stamps the room number onto the floor and marks the walls as
// room edges. Walls shared with another room get SharedRoom.
func (c *Context) Topologize(r *world.Room) {
	g := c.Grid
	roomno := r.RoomNo()
	if g.At(r.LX, r.LY).RoomNo == roomno || r.Irregular {
		return
	}
	for x := r.LX; x <= r.HX; x++ {
		for y := r.LY; y <= r.HY; y++ {
			g.At(x, y).RoomNo = roomno
		}
	}
	edge := func(x, y int) {
		cell := g.At(x, y)
		if cell == nil {
			return
		}
		cell.Edge = true
		if cell.RoomNo != world.NoRoom {
			cell.RoomNo = world.SharedRoom
		} else {
			cell.RoomNo = roomno
		}
	}
	for x := r.LX - 1; x <= r.HX+1; x++ {
		edge(x, r.LY-1)
		edge(x, r.HY+1)
	}
	for y := r.LY; y <= r.HY; y++ {
		edge(r.LX-1, y)
		edge(r.HX+1, y)
	}
	for _, sub := range r.Subrooms {
		c.Topologize(sub)
	}
}

// SomeX returns a random column of the room's floor.
func (c *Context) SomeX(r *world.Room) int {
	return c.RNG.Rn1(r.HX-r.LX+1, r.LX)
}

// SomeY returns a random row of the room's floor.
func (c *Context) SomeY(r *world.Room) int {
	return c.RNG.Rn1(r.HY-r.LY+1, r.LY)
}

// SomeXY picks a random floor location of r that is not inside one of its
// subrooms. Irregular rooms only accept cells stamped with their number.
func (c *Context) SomeXY(r *world.Room) (world.Coord, bool) {
	g := c.Grid
	if r.Irregular {
		roomno := r.RoomNo()
		for try := 0; try < 100; try++ {
			x := c.SomeX(r)
			y := c.SomeY(r)
			if cell := g.At(x, y); !cell.Edge && cell.RoomNo == roomno {
				return world.Coord{X: x, Y: y}, true
			}
		}
		for x := r.LX; x <= r.HX; x++ {
			for y := r.LY; y <= r.HY; y++ {
				if cell := g.At(x, y); !cell.Edge && cell.RoomNo == roomno {
					return world.Coord{X: x, Y: y}, true
				}
			}
		}
		return world.Coord{}, false
	}

	if len(r.Subrooms) == 0 {
		x := c.SomeX(r)
		y := c.SomeY(r)
		return world.Coord{X: x, Y: y}, true
	}

	var p world.Coord
outer:
	for try := 0; try < 100; try++ {
		p.X = c.SomeX(r)
		p.Y = c.SomeY(r)
		if g.Typ(p.X, p.Y).IsWall() {
			continue
		}
		for _, sub := range r.Subrooms {
			if sub.Inside(p.X, p.Y) {
				continue outer
			}
		}
		return p, true
	}
	return p, false
}

// RoomAt returns the innermost room whose floor or walls contain (x,y).
func (c *Context) RoomAt(x, y int) *world.Room {
	for _, r := range c.Grid.Rooms {
		if !r.Inside(x, y) {
			continue
		}
		for _, sub := range r.Subrooms {
			if sub.Inside(x, y) {
				return sub
			}
		}
		return r
	}
	return nil
}

// inShop reports whether (x,y) is on a shop's floor or walls.
func (c *Context) inShop(x, y int) bool {
	for _, list := range [][]*world.Room{c.Grid.Rooms, c.Grid.Subrooms} {
		for _, r := range list {
			if r.Type.IsShop() && r.Inside(x, y) {
				return true
			}
		}
	}
	return false
}
