package generator

import "splev/pkg/engine/world"

// Margins kept free around automatically placed rooms.
const (
	xLim = 4
	yLim = 3
)

var maxRects = world.ColNo * world.RowNo / 30

// Rect is a free region of the map, inclusive on both ends.
type Rect struct {
	LX, LY, HX, HY int
}

// contains reports whether o lies entirely inside r.
func (r Rect) contains(o Rect) bool {
	return o.LX >= r.LX && o.LY >= r.LY && o.HX <= r.HX && o.HY <= r.HY
}

// intersect returns the overlap of r and o.
func (r Rect) intersect(o Rect) (Rect, bool) {
	if o.LX > r.HX || o.LY > r.HY || o.HX < r.LX || o.HY < r.LY {
		return Rect{}, false
	}
	out := Rect{
		LX: max(r.LX, o.LX),
		LY: max(r.LY, o.LY),
		HX: min(r.HX, o.HX),
		HY: min(r.HY, o.HY),
	}
	if out.LX > out.HX || out.LY > out.HY {
		return Rect{}, false
	}
	return out, true
}

// RectPool is the free-space allocator for automatically placed rooms. It
// starts as one rectangle covering the map; placing a room splits every
// rectangle it overlaps.
type RectPool struct {
	rects []Rect
}

// NewRectPool returns a pool holding the whole map.
func NewRectPool() *RectPool {
	p := &RectPool{}
	p.Reset()
	return p
}

// Reset restores the single whole-map rectangle.
func (p *RectPool) Reset() {
	p.rects = append(p.rects[:0], Rect{0, 0, world.ColNo - 1, world.RowNo - 1})
}

// Len returns the number of free rectangles.
func (p *RectPool) Len() int {
	return len(p.rects)
}

// Rects returns a copy of the pool in its internal order.
func (p *RectPool) Rects() []Rect {
	out := make([]Rect, len(p.rects))
	copy(out, p.rects)
	return out
}

// Random picks a rectangle with rn2(len). Nothing is drawn when the pool is
// empty.
func (p *RectPool) Random(r Random) (Rect, bool) {
	if len(p.rects) == 0 {
		return Rect{}, false
	}
	return p.rects[r.Rn2(len(p.rects))], true
}

// Containing returns the first rectangle that fully contains r.
func (p *RectPool) Containing(r Rect) (Rect, bool) {
	for _, o := range p.rects {
		if o.contains(r) {
			return o, true
		}
	}
	return Rect{}, false
}

// Remove deletes the rectangle equal to r, moving the last entry into its
// slot.
func (p *RectPool) Remove(r Rect) {
	for i, o := range p.rects {
		if o == r {
			last := len(p.rects) - 1
			p.rects[i] = p.rects[last]
			p.rects = p.rects[:last]
			return
		}
	}
}

// Add appends r unless the pool is full or r already fits in a rectangle.
func (p *RectPool) Add(r Rect) {
	if len(p.rects) >= maxRects {
		return
	}
	if _, ok := p.Containing(r); ok {
		return
	}
	p.rects = append(p.rects, r)
}

// Split removes r1 and carves the placed area r2 out of every rectangle it
// touches, keeping the leftover strips above, left of, below and right of r2
// when they are still large enough to hold a room.
func (p *RectPool) Split(r1, r2 Rect) {
	old := r1
	p.Remove(r1)

	for i := len(p.rects) - 1; i >= 0; i-- {
		if i >= len(p.rects) {
			continue
		}
		if r, ok := p.rects[i].intersect(r2); ok {
			p.Split(p.rects[i], r)
		}
	}

	if r2.LY-old.LY-1 > pick(old.HY < world.RowNo-1, 2*yLim, yLim+1)+4 {
		r := old
		r.HY = r2.LY - 2
		p.Add(r)
	}
	if r2.LX-old.LX-1 > pick(old.HX < world.ColNo-1, 2*xLim, xLim+1)+4 {
		r := old
		r.HX = r2.LX - 2
		p.Add(r)
	}
	if old.HY-r2.HY-1 > pick(old.LY > 0, 2*yLim, yLim+1)+4 {
		r := old
		r.LY = r2.HY + 2
		p.Add(r)
	}
	if old.HX-r2.HX-1 > pick(old.LX > 0, 2*xLim, xLim+1)+4 {
		r := old
		r.LX = r2.HX + 2
		p.Add(r)
	}
}

func pick(cond bool, a, b int) int {
	if cond {
		return a
	}
	return b
}
