package selection

import "splev/pkg/engine/world"

// Rect returns the outline of the rectangle with corners (x1,y1) and (x2,y2).
func Rect(x1, y1, x2, y2 int) Selection {
	x1, x2 = min(x1, x2), max(x1, x2)
	y1, y2 = min(y1, y2), max(y1, y2)
	var s Selection
	for x := x1; x <= x2; x++ {
		s.put(x, y1)
		s.put(x, y2)
	}
	for y := y1; y <= y2; y++ {
		s.put(x1, y)
		s.put(x2, y)
	}
	return s
}

// FillRect returns every location inside the rectangle, borders included.
func FillRect(x1, y1, x2, y2 int) Selection {
	x1, x2 = min(x1, x2), max(x1, x2)
	y1, y2 = min(y1, y2), max(y1, y2)
	var s Selection
	for x := x1; x <= x2; x++ {
		for y := y1; y <= y2; y++ {
			s.put(x, y)
		}
	}
	return s
}

// Line returns a Bresenham line between the two points, both included.
func Line(x1, y1, x2, y2 int) Selection {
	var s Selection
	dx, dy := x2-x1, y2-y1
	adx, ady := abs(dx), abs(dy)
	sx, sy := sign(dx), sign(dy)

	x, y := x1, y1
	s.put(x, y)
	if adx >= ady {
		e := 2*ady - adx
		for x != x2 {
			x += sx
			if e > 0 {
				y += sy
				e -= 2 * adx
			}
			e += 2 * ady
			s.put(x, y)
		}
	} else {
		e := 2*adx - ady
		for y != y2 {
			y += sy
			if e > 0 {
				x += sx
				e -= 2 * ady
			}
			e += 2 * adx
			s.put(x, y)
		}
	}
	return s
}

// RandLine returns a jagged line between two points built by recursive
// midpoint displacement. Larger roughness wanders further from the straight
// line.
func RandLine(r Source, x1, y1, x2, y2, roughness int) Selection {
	var s Selection
	s.put(x1, y1)
	randLine(r, &s, x1, y1, x2, y2, roughness, 12)
	return s
}

func randLine(r Source, s *Selection, x1, y1, x2, y2, rough, rec int) {
	if rec < 1 || (x2 == x1 && y2 == y1) {
		return
	}
	if span := max(abs(x2-x1), abs(y2-y1)); rough > span {
		rough = span
	}

	var mx, my int
	if rough < 2 {
		mx = (x1 + x2) / 2
		my = (y1 + y2) / 2
	} else {
		for {
			dx := r.Rn2(rough) - rough/2
			dy := r.Rn2(rough) - rough/2
			mx = (x1+x2)/2 + dx
			my = (y1+y2)/2 + dy
			if mx >= 0 && mx <= world.ColNo-1 && my >= 0 && my <= world.RowNo-1 {
				break
			}
		}
	}
	s.put(mx, my)

	rough = rough * 2 / 3
	rec--
	randLine(r, s, x1, y1, mx, my, rough, rec)
	randLine(r, s, mx, my, x2, y2, rough, rec)
	s.put(x2, y2)
}

// Ellipse returns an ellipse centred on (xc,yc) with horizontal radius a and
// vertical radius b, outlined or filled.
func Ellipse(xc, yc, a, b int, filled bool) Selection {
	var s Selection
	x, y := 0, b
	a2, b2 := a*a, b*b
	crit1 := -(a2/4 + a%2 + b2)
	crit2 := -(b2/4 + b%2 + a2)
	crit3 := -(b2/4 + b%2)
	t := -a2 * y
	dxt, dyt := 2*b2*x, -2*a2*y
	d2xt, d2yt := 2*b2, 2*a2
	width := 1

	span := func() {
		for i := 0; i < width; i++ {
			s.put(xc-x+i, yc-y)
		}
		if y != 0 {
			for i := 0; i < width; i++ {
				s.put(xc-x+i, yc+y)
			}
		}
	}
	incX := func() {
		x++
		dxt += d2xt
		t += dxt
	}
	decY := func() {
		y--
		dyt += d2yt
		t += dyt
	}

	for y >= 0 && x <= a {
		if !filled {
			s.put(xc+x, yc+y)
			if x != 0 || y != 0 {
				s.put(xc-x, yc-y)
			}
			if x != 0 && y != 0 {
				s.put(xc+x, yc-y)
				s.put(xc-x, yc+y)
			}
		}
		switch {
		case t+b2*x <= crit1 || t+a2*y <= crit3:
			incX()
			width += 2
		case t-a2*y > crit2:
			if filled {
				span()
			}
			decY()
		default:
			if filled {
				span()
			}
			incX()
			decY()
			width += 2
		}
	}
	return s
}

// Circle is an ellipse with equal radii.
func Circle(xc, yc, radius int, filled bool) Selection {
	return Ellipse(xc, yc, radius, radius, filled)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
