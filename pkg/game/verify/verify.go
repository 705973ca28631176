// Package verify checks the structural invariants of a finalized level:
// closed room walls, rooms reachable from one another, and stairs.
package verify

import (
	"fmt"

	"github.com/spakin/disjoint"
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"splev/pkg/engine/world"
	"splev/pkg/game/state"
)

// Checks selects which checks Run performs.
type Checks int

const (
	CheckWalls Checks = 1 << iota
	CheckConnectivity
	CheckStairs

	CheckNone Checks = 0
	CheckAll         = CheckWalls | CheckConnectivity | CheckStairs
)

// Violation is one broken invariant.
type Violation struct {
	Check string
	X, Y  int
	// Room is the index of the room involved, or -1.
	Room int
	Msg  string
}

func (v Violation) String() string {
	if v.Room >= 0 {
		return fmt.Sprintf("%s: room %d at (%d,%d): %s", v.Check, v.Room, v.X, v.Y, v.Msg)
	}
	return fmt.Sprintf("%s: (%d,%d): %s", v.Check, v.X, v.Y, v.Msg)
}

// Error collects the violations found by Run.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	if len(e.Violations) == 1 {
		return e.Violations[0].String()
	}
	return fmt.Sprintf("%d violations, first: %s", len(e.Violations), e.Violations[0])
}

// Run performs the selected checks and returns an *Error listing every
// violation, or nil.
func Run(l *state.Level, checks Checks) error {
	var vs []Violation
	if checks&CheckWalls != 0 {
		vs = append(vs, Walls(l)...)
	}
	if checks&CheckConnectivity != 0 {
		vs = append(vs, Connectivity(l)...)
	}
	if checks&CheckStairs != 0 {
		vs = append(vs, Stairs(l)...)
	}
	if len(vs) == 0 {
		return nil
	}
	return &Error{Violations: vs}
}

// perimeterOK lists what may stand on a room's boundary.
func perimeterOK(t world.Terrain) bool {
	switch {
	case t.IsWall(), t == world.Doorway, t == world.SDoor, t == world.Corr,
		t == world.SCorr, t == world.IronBars, t == world.Tree:
		return true
	}
	return false
}

// Walls checks that every rectangular room is closed: each cell on its
// boundary is a wall, door, secret door, corridor or iron bars. Irregular
// rooms are checked for stone next to their floor instead.
func Walls(l *state.Level) []Violation {
	var vs []Violation
	check := func(r state.RoomInfo) {
		if r.Irregular {
			vs = append(vs, irregularWalls(l, r)...)
			return
		}
		for x := r.LX - 1; x <= r.HX+1; x++ {
			for y := r.LY - 1; y <= r.HY+1; y++ {
				if r.Contains(x, y) || !world.IsOK(x, y) {
					continue
				}
				if t := l.Typ(x, y); !perimeterOK(t) {
					vs = append(vs, Violation{Check: "walls", X: x, Y: y, Room: r.Index, Msg: "boundary is " + t.String()})
				}
			}
		}
	}
	for _, r := range l.Rooms() {
		check(r)
	}
	for _, r := range l.Subrooms() {
		check(r)
	}
	return vs
}

func irregularWalls(l *state.Level, r state.RoomInfo) []Violation {
	var vs []Violation
	for x := r.LX; x <= r.HX; x++ {
		for y := r.LY; y <= r.HY; y++ {
			cell := l.At(x, y)
			if cell.RoomNo != r.RoomNo || !cell.Typ.IsRoom() {
				continue
			}
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					if world.IsOK(x+dx, y+dy) && l.Typ(x+dx, y+dy) == world.Stone {
						vs = append(vs, Violation{Check: "walls", X: x + dx, Y: y + dy, Room: r.Index, Msg: "stone next to floor"})
					}
				}
			}
		}
	}
	return vs
}

// passable is what a connectivity walk may cross. Secret doors and
// corridors count, since they can be found.
func passable(t world.Terrain) bool {
	return t.IsAccessible() || t == world.SDoor || t == world.SCorr
}

func isDoorway(t world.Terrain) bool {
	return t == world.Doorway || t == world.SDoor
}

// step reports whether a walker may move between two adjacent passable
// cells. Doorways cannot be entered or left diagonally.
func step(l *state.Level, x, y, nx, ny int) bool {
	if !world.IsOK(nx, ny) || !passable(l.Typ(nx, ny)) {
		return false
	}
	if x != nx && y != ny && (isDoorway(l.Typ(x, y)) || isDoorway(l.Typ(nx, ny))) {
		return false
	}
	return true
}

// anchor returns a passable floor cell of room r: its center when that is
// walkable, otherwise the first floor cell found.
func anchor(l *state.Level, r state.RoomInfo) (world.Coord, bool) {
	c := r.Center()
	if passable(l.Typ(c.X, c.Y)) {
		return c, true
	}
	for x := r.LX; x <= r.HX; x++ {
		for y := r.LY; y <= r.HY; y++ {
			if passable(l.Typ(x, y)) && (!r.Irregular || l.At(x, y).RoomNo == r.RoomNo) {
				return world.Coord{X: x, Y: y}, true
			}
		}
	}
	return world.Coord{}, false
}

// Components partitions the passable cells of the level into connected
// components. Cells of one component share a disjoint-set root.
func Components(l *state.Level) *[world.ColNo][world.RowNo]*disjoint.Element {
	var sets [world.ColNo][world.RowNo]*disjoint.Element
	for x := 1; x < world.ColNo; x++ {
		for y := 0; y < world.RowNo; y++ {
			if passable(l.Typ(x, y)) {
				sets[x][y] = disjoint.NewElement()
			}
		}
	}
	// Looking right and down covers every pair once.
	for x := 1; x < world.ColNo; x++ {
		for y := 0; y < world.RowNo; y++ {
			if sets[x][y] == nil {
				continue
			}
			for _, d := range [][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}} {
				nx, ny := x+d[0], y+d[1]
				if step(l, x, y, nx, ny) && sets[x][y].Find() != sets[nx][ny].Find() {
					disjoint.Union(sets[x][y], sets[nx][ny])
				}
			}
		}
	}
	return &sets
}

// Connectivity checks that every room that wants joining shares a component
// with the first such room. Vaults are exempt.
func Connectivity(l *state.Level) []Violation {
	sets := Components(l)
	var vs []Violation
	var root *disjoint.Element
	for _, r := range l.Rooms() {
		if r.Type == world.Vault || !r.NeedJoining {
			continue
		}
		a, ok := anchor(l, r)
		if !ok {
			vs = append(vs, Violation{Check: "connectivity", X: r.LX, Y: r.LY, Room: r.Index, Msg: "room has no floor"})
			continue
		}
		e := sets[a.X][a.Y].Find()
		if root == nil {
			root = e
			continue
		}
		if e != root {
			vs = append(vs, Violation{Check: "connectivity", X: a.X, Y: a.Y, Room: r.Index, Msg: "unreachable from the first room"})
		}
	}
	return vs
}

// Reachable returns every passable cell a walker starting at from can get to.
func Reachable(l *state.Level, from world.Coord) mapset.Set[world.Coord] {
	seen := mapset.New[world.Coord]()
	if !world.IsOK(from.X, from.Y) || !passable(l.Typ(from.X, from.Y)) {
		return seen
	}
	q := queue.New[world.Coord]()
	seen.Put(from)
	q.Enqueue(from)
	for !q.Empty() {
		p := q.Dequeue()
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				n := world.Coord{X: p.X + dx, Y: p.Y + dy}
				if n == p || seen.Has(n) || !step(l, p.X, p.Y, n.X, n.Y) {
					continue
				}
				seen.Put(n)
				q.Enqueue(n)
			}
		}
	}
	return seen
}

// Stairs checks the staircases: one down staircase, one up staircase below
// the first level, each on a stairs cell, and the two joined by a walk.
func Stairs(l *state.Level) []Violation {
	var vs []Violation
	var up, down []world.Stairway
	for _, s := range l.Stairs() {
		if s.Ladder {
			if l.Typ(s.X, s.Y) != world.Ladder {
				vs = append(vs, Violation{Check: "stairs", X: s.X, Y: s.Y, Room: -1, Msg: "ladder cell is " + l.Typ(s.X, s.Y).String()})
			}
			continue
		}
		if l.Typ(s.X, s.Y) != world.Stairs {
			vs = append(vs, Violation{Check: "stairs", X: s.X, Y: s.Y, Room: -1, Msg: "stairs cell is " + l.Typ(s.X, s.Y).String()})
		}
		if s.Up {
			up = append(up, s)
		} else {
			down = append(down, s)
		}
	}
	if len(down) != 1 {
		vs = append(vs, Violation{Check: "stairs", Room: -1, Msg: fmt.Sprintf("%d down staircases, want 1", len(down))})
	}
	wantUp := 0
	if l.Depth() > 1 {
		wantUp = 1
	}
	if len(up) != wantUp {
		vs = append(vs, Violation{Check: "stairs", Room: -1, Msg: fmt.Sprintf("%d up staircases, want %d", len(up), wantUp)})
	}
	if len(up) == 1 && len(down) == 1 {
		from := world.Coord{X: up[0].X, Y: up[0].Y}
		to := world.Coord{X: down[0].X, Y: down[0].Y}
		if !Reachable(l, from).Has(to) {
			vs = append(vs, Violation{Check: "stairs", X: to.X, Y: to.Y, Room: -1, Msg: "down staircase unreachable from up staircase"})
		}
	}
	return vs
}
