package devtools

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"splev/pkg/engine/rng"
	"splev/pkg/game/scripts"
	"splev/pkg/game/state"
)

func chapel(t *testing.T, trace bool) (*state.Session, *state.Level) {
	t.Helper()
	s := state.NewSession(state.SessionConfig{Seed: 3, Trace: trace})
	lvl, err := scripts.Generate(s, "chapel")
	if err != nil {
		t.Fatal(err)
	}
	return s, lvl
}

func TestDumpLevel(t *testing.T) {
	_, lvl := chapel(t, false)
	var buf bytes.Buffer
	if err := DumpLevel(&buf, lvl); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"--- Metadata ---",
		"script: chapel",
		"seed: 3",
		"maze_level: true",
		"--- Map (column 0 omitted) ---",
		"Rooms:",
		"Doors:",
		"Stairs:",
		"Monsters:",
		"=== END LEVEL DUMP ===",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump is missing %q", want)
		}
	}
	if !strings.Contains(out, `id: "aligned cleric"`) {
		t.Error("dump does not list the cleric")
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestDumpLevel_WriteError(t *testing.T) {
	_, lvl := chapel(t, false)
	if err := DumpLevel(failWriter{}, lvl); err == nil {
		t.Error("DumpLevel() to a failing writer returned nil")
	}
}

func TestDumpLevelToFile(t *testing.T) {
	_, lvl := chapel(t, false)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	path, err := DumpLevelToFile(lvl)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != levelDumpFilename || !filepath.IsAbs(path) {
		t.Errorf("path = %q, want an absolute path to %s", path, levelDumpFilename)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("=== LEVEL DUMP ===")) {
		t.Error("level file does not start with the dump header")
	}
}

func TestDiffTraceFile(t *testing.T) {
	s, _ := chapel(t, true)
	got := s.RNG().Trace()
	if got.Len() == 0 {
		t.Fatal("no draws recorded")
	}

	path := filepath.Join(t.TempDir(), "trace.log")
	var ref bytes.Buffer
	ref.WriteString("# reference\n")
	if _, err := got.WriteTo(&ref); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, ref.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := DiffTraceFile(path, got); err != nil {
		t.Errorf("DiffTraceFile() of the same trace = %v", err)
	}

	short := &rng.Trace{Entries: got.Entries[:got.Len()-1]}
	var div *rng.DivergenceError
	if err := DiffTraceFile(path, short); !errors.As(err, &div) {
		t.Fatalf("DiffTraceFile() of a shorter trace = %v, want a divergence", err)
	}
	if div.Index != got.Len()-1 || div.Got != nil {
		t.Errorf("divergence = %+v, want end of trace at %d", div, got.Len()-1)
	}

	if err := DiffTraceFile(filepath.Join(t.TempDir(), "missing"), got); err == nil {
		t.Error("DiffTraceFile() of a missing file returned nil")
	}
}
