package rng

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Entry is one recorded draw.
type Entry struct {
	Fn     string
	Args   []int
	Result int
}

// String formats the entry as fn(args)=result.
func (e Entry) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = strconv.Itoa(a)
	}
	return fmt.Sprintf("%s(%s)=%d", e.Fn, strings.Join(args, ","), e.Result)
}

// Equal reports whether two entries have the same call signature and result.
func (e Entry) Equal(o Entry) bool {
	if e.Fn != o.Fn || e.Result != o.Result || len(e.Args) != len(o.Args) {
		return false
	}
	for i := range e.Args {
		if e.Args[i] != o.Args[i] {
			return false
		}
	}
	return true
}

// Trace is an ordered list of draws.
type Trace struct {
	Entries []Entry
}

func (t *Trace) add(fn string, result int, args ...int) {
	cp := make([]int, len(args))
	copy(cp, args)
	t.Entries = append(t.Entries, Entry{Fn: fn, Args: cp, Result: result})
}

// Len returns the number of recorded draws.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Entries)
}

// WriteTo writes one entry per line.
func (t *Trace) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, e := range t.Entries {
		n, err := fmt.Fprintln(w, e.String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// entryPattern matches a call record, optionally prefixed by a sequence number
// and optionally followed by a caller annotation.
var entryPattern = regexp.MustCompile(`^\s*(?:\d+\s*[:.]?\s+)?(rn2|rnd|rn1|rnl|rne|rnz|d)\(\s*(-?\d+(?:\s*,\s*-?\d+)*)?\s*\)\s*=\s*(-?\d+)`)

// ParseTrace reads a reference log. Lines that are not call records, such as
// section markers or diagnostics, are skipped.
func ParseTrace(r io.Reader) (*Trace, error) {
	t := &Trace{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		m := entryPattern.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		var args []int
		if m[2] != "" {
			for _, f := range strings.Split(m[2], ",") {
				v, err := strconv.Atoi(strings.TrimSpace(f))
				if err != nil {
					return nil, fmt.Errorf("parse trace argument %q: %w", f, err)
				}
				args = append(args, v)
			}
		}
		res, err := strconv.Atoi(m[3])
		if err != nil {
			return nil, fmt.Errorf("parse trace result %q: %w", m[3], err)
		}
		t.Entries = append(t.Entries, Entry{Fn: m[1], Args: args, Result: res})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return t, nil
}

// DivergenceError reports the first index at which two traces differ.
// Got or Want is nil when that side ended first.
type DivergenceError struct {
	Index int
	Got   *Entry
	Want  *Entry
}

func (e *DivergenceError) Error() string {
	side := func(p *Entry) string {
		if p == nil {
			return "<end of trace>"
		}
		return p.String()
	}
	return fmt.Sprintf("trace diverges at call %d: got %s, want %s", e.Index, side(e.Got), side(e.Want))
}

// Compare walks both traces and returns nil when they match call for call.
func Compare(got, want *Trace) error {
	g, w := got.entries(), want.entries()
	n := len(g)
	if len(w) < n {
		n = len(w)
	}
	for i := 0; i < n; i++ {
		if !g[i].Equal(w[i]) {
			return &DivergenceError{Index: i, Got: &g[i], Want: &w[i]}
		}
	}
	if len(g) == len(w) {
		return nil
	}
	d := &DivergenceError{Index: n}
	if n < len(g) {
		d.Got = &g[n]
	}
	if n < len(w) {
		d.Want = &w[n]
	}
	return d
}

func (t *Trace) entries() []Entry {
	if t == nil {
		return nil
	}
	return t.Entries
}
