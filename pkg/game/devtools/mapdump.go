// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"splev/pkg/engine/rng"
	"splev/pkg/engine/world"
	"splev/pkg/game/renderer"
	"splev/pkg/game/state"
)

const levelDumpFilename = "level.txt"

// DumpLevel writes a full debug dump of a finalized level: metadata, legend,
// the map, and the room, door, stair, trap, object and monster tables.
// Format is human- and LLM-readable (sections, key: value, consistent structure).
func DumpLevel(w io.Writer, lvl *state.Level) error {
	ew := &errWriter{w: w}
	flags := lvl.Flags()

	// --- Metadata ---
	ew.println("=== LEVEL DUMP ===")
	ew.println("")
	ew.println("--- Metadata ---")
	ew.printf("script: %s\n", lvl.Name())
	ew.printf("seed: %d\n", lvl.Seed())
	ew.printf("depth: %d\n", lvl.Depth())
	ew.printf("grid_cols: %d\n", world.ColNo)
	ew.printf("grid_rows: %d\n", world.RowNo)
	ew.printf("coordinate_system: x,y (x=column 1..%d, y=row 0..%d)\n", world.ColNo-1, world.RowNo-1)
	ew.printf("maze_level: %v\n", flags.MazeLevel)
	ew.printf("corridor_maze: %v\n", flags.CorrMaze)
	ew.printf("no_teleport: %v\n", flags.NoTeleport)
	ew.printf("hard_floor: %v\n", flags.HardFloor)
	ew.println("")

	// --- Legend ---
	ew.println("--- Legend (cell symbols) ---")
	ew.println(". = floor  # = corridor  - | = wall  + = closed door  S = secret door  H = secret corridor  < > = stairs  { = fountain  _ = altar  \\ = throne  K = sink  T = tree  P } W = water  L Z = lava  F = iron bars  I = ice")
	ew.println("")

	// --- Map ---
	ew.println("--- Map (column 0 omitted) ---")
	for _, line := range renderer.Lines(lvl) {
		ew.println(line)
	}
	ew.println("")

	ew.println("Rooms:")
	for _, r := range lvl.Rooms() {
		ew.printf("  index: %d type: %v bounds: %d,%d-%d,%d lit: %v irregular: %v joined: %v filled: %v doors: %d subrooms: %v\n",
			r.Index, r.Type, r.LX, r.LY, r.HX, r.HY, r.Lit, r.Irregular, r.NeedJoining, r.NeedFill, len(r.Doors), r.Subrooms)
	}
	ew.println("")

	ew.println("Subrooms:")
	for _, r := range lvl.Subrooms() {
		ew.printf("  index: %d parent: %d type: %v bounds: %d,%d-%d,%d lit: %v\n",
			r.Index, r.Parent, r.Type, r.LX, r.LY, r.HX, r.HY, r.Lit)
	}
	ew.println("")

	ew.println("Doors:")
	for _, d := range lvl.Doors() {
		ew.printf("  x: %d y: %d type: %v state: %v wall: %v\n", d.X, d.Y, lvl.At(d.X, d.Y).Typ, d.State, d.Wall)
	}
	ew.println("")

	ew.println("Stairs:")
	for _, s := range lvl.Stairs() {
		ew.printf("  x: %d y: %d up: %v ladder: %v\n", s.X, s.Y, s.Up, s.Ladder)
	}
	ew.println("")

	ew.println("Traps:")
	for _, t := range lvl.Traps() {
		ew.printf("  x: %d y: %d type: %q\n", t.X, t.Y, t.Type.String())
	}
	ew.println("")

	ew.println("Objects:")
	for _, o := range lvl.Objects() {
		ew.printf("  x: %d y: %d class: %q id: %q buried: %v\n", o.X, o.Y, o.Class, o.ID, o.Buried)
	}
	ew.println("")

	ew.println("Monsters:")
	for _, m := range lvl.Monsters() {
		ew.printf("  x: %d y: %d class: %q id: %q peaceful: %d asleep: %d\n", m.X, m.Y, m.Class, m.ID, m.Peaceful, m.Asleep)
	}
	ew.println("")

	ew.println("=== END LEVEL DUMP ===")
	return ew.err
}

// DumpLevelToFile writes DumpLevel output to level.txt in the working
// directory and returns the file's absolute path.
func DumpLevelToFile(lvl *state.Level) (string, error) {
	absPath, err := filepath.Abs(levelDumpFilename)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := DumpLevel(f, lvl); err != nil {
		return absPath, err
	}
	if err := f.Sync(); err != nil {
		return absPath, err
	}
	return absPath, nil
}

// DiffTraceFile compares a recorded trace with a reference trace file. It
// returns nil when they match and an *rng.DivergenceError when they do not.
func DiffTraceFile(path string, got *rng.Trace) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	want, err := rng.ParseTrace(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if got == nil {
		got = &rng.Trace{}
	}
	return rng.Compare(got, want)
}

// errWriter keeps the first write error so the dump can be written without
// checking every line.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, a ...any) {
	if e.err == nil {
		_, e.err = fmt.Fprintf(e.w, format, a...)
	}
}

func (e *errWriter) println(s string) {
	if e.err == nil {
		_, e.err = fmt.Fprintln(e.w, s)
	}
}
