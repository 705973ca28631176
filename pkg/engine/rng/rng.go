// Package rng provides the seeded random number stream used by level
// generation, together with the call trace that is diffed against reference
// logs. The draw functions mirror the classic rn2/rnd/rn1/rnl/rne/rnz/d
// family, and every draw is made in the caller's order so that a seed always
// reproduces the same call sequence.
package rng

import (
	"io"
	"log"
)

// TraceMode selects how composite draws are recorded.
type TraceMode int

const (
	// TraceComposite records rnl, rne, rnz and d as single entries. rn1 is
	// always recorded as the rn2 it makes.
	TraceComposite TraceMode = iota
	// TraceDecomposed records only the primitive rn2/rnd draws they make.
	TraceDecomposed
)

// String returns the flag spelling of the mode.
func (m TraceMode) String() string {
	switch m {
	case TraceComposite:
		return "composite"
	case TraceDecomposed:
		return "decomposed"
	default:
		return "unknown"
	}
}

// RNG is a traced random stream. It is not safe for concurrent use; a level
// generation owns its stream exclusively.
type RNG struct {
	src    *isaac64
	seed   uint64
	trace  *Trace
	mode   TraceMode
	nested int
	draws  int

	// Luck feeds rnl. ULevel feeds rne.
	Luck   int
	ULevel int

	logger *log.Logger
}

// New returns a stream seeded from the eight little-endian bytes of seed, so
// recorded game logs can be replayed call for call.
func New(seed uint64) *RNG {
	var buf [8]byte
	s := seed
	for i := range buf {
		buf[i] = byte(s & 0xff)
		s >>= 8
	}
	return &RNG{
		src:    newISAAC64(buf[:]),
		seed:   seed,
		ULevel: 1,
		logger: log.New(io.Discard, "", 0),
	}
}

// Seed returns the seed the stream was created with.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// Draws returns how many raw values have been consumed.
func (r *RNG) Draws() int {
	return r.draws
}

// SetLogger directs caller-bug reports (non-positive bounds) to l.
func (r *RNG) SetLogger(l *log.Logger) {
	if l != nil {
		r.logger = l
	}
}

// SetTraceMode selects composite or decomposed recording.
func (r *RNG) SetTraceMode(m TraceMode) {
	r.mode = m
}

// TraceMode returns the current recording mode.
func (r *RNG) TraceMode() TraceMode {
	return r.mode
}

// EnableTrace starts recording into a fresh trace.
func (r *RNG) EnableTrace() {
	r.trace = &Trace{}
}

// DisableTrace stops recording and returns what was recorded.
func (r *RNG) DisableTrace() *Trace {
	t := r.trace
	r.trace = nil
	return t
}

// Trace returns the live trace, or nil when tracing is off.
func (r *RNG) Trace() *Trace {
	return r.trace
}

func (r *RNG) raw(x int) int {
	r.draws++
	return int(r.src.next() % uint64(x))
}

// recordPrimitive logs a primitive draw when it is visible in the current mode.
func (r *RNG) recordPrimitive(fn string, result int, args ...int) {
	if r.trace == nil {
		return
	}
	if r.mode == TraceComposite && r.nested > 0 {
		return
	}
	r.trace.add(fn, result, args...)
}

// recordComposite logs a wrapper draw in composite mode only.
func (r *RNG) recordComposite(fn string, result int, args ...int) {
	if r.trace == nil || r.mode != TraceComposite || r.nested > 0 {
		return
	}
	r.trace.add(fn, result, args...)
}

// Rn2 returns a value in [0,x).
func (r *RNG) Rn2(x int) int {
	if x <= 0 {
		r.logger.Printf("rng: rn2(%d) called with a non-positive bound", x)
		return 0
	}
	v := r.raw(x)
	r.recordPrimitive("rn2", v, x)
	return v
}

// Rnd returns a value in [1,x].
func (r *RNG) Rnd(x int) int {
	if x <= 0 {
		r.logger.Printf("rng: rnd(%d) called with a non-positive bound", x)
		return 1
	}
	v := r.raw(x) + 1
	r.recordPrimitive("rnd", v, x)
	return v
}

// Rn1 returns a value in [y,y+x). It is a plain rn2 offset by y and traces
// as that rn2 in every mode.
func (r *RNG) Rn1(x, y int) int {
	return r.Rn2(x) + y
}

// Rnl returns a luck-adjusted value in [0,x).
func (r *RNG) Rnl(x int) int {
	if x <= 0 {
		r.logger.Printf("rng: rnl(%d) called with a non-positive bound", x)
		return 0
	}
	adjustment := r.Luck
	if x <= 15 {
		adjustment = (abs(r.Luck) + 1) / 3 * sign(r.Luck)
	}
	r.nested++
	i := r.raw(x)
	r.recordPrimitive("rn2", i, x)
	if adjustment != 0 && r.Rn2(37+abs(adjustment)) != 0 {
		i -= adjustment
		if i < 0 {
			i = 0
		} else if i >= x {
			i = x - 1
		}
	}
	r.nested--
	r.recordComposite("rnl", i, x)
	return i
}

// Rne returns a geometrically distributed value in [1,max(5,ulevel/3)].
func (r *RNG) Rne(x int) int {
	utmp := 5
	if r.ULevel >= 15 {
		utmp = r.ULevel / 3
	}
	r.nested++
	tmp := 1
	for tmp < utmp && r.Rn2(x) == 0 {
		tmp++
	}
	r.nested--
	r.recordComposite("rne", tmp, x)
	return tmp
}

// Rnz returns a value spread around i on a logarithmic scale.
func (r *RNG) Rnz(i int) int {
	x := int64(i)
	r.nested++
	tmp := int64(1000)
	tmp += int64(r.Rn2(1000))
	tmp *= int64(r.Rne(4))
	if r.Rn2(2) != 0 {
		x *= tmp
		x /= 1000
	} else {
		x *= 1000
		x /= tmp
	}
	r.nested--
	r.recordComposite("rnz", int(x), i)
	return int(x)
}

// D rolls n dice of x faces.
func (r *RNG) D(n, x int) int {
	if x <= 0 {
		r.logger.Printf("rng: d(%d,%d) called with a non-positive face count", n, x)
		return n
	}
	r.nested++
	tmp := n
	for k := 0; k < n; k++ {
		v := r.raw(x) + 1
		r.recordPrimitive("rnd", v, x)
		tmp += v - 1
	}
	r.nested--
	r.recordComposite("d", tmp, n, x)
	return tmp
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
