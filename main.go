package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"splev/pkg/engine/rng"
	"splev/pkg/engine/terminal"
	"splev/pkg/engine/world"
	"splev/pkg/game/devtools"
	"splev/pkg/game/messages"
	"splev/pkg/game/renderer"
	"splev/pkg/game/scripts"
	"splev/pkg/game/state"
)

// listScripts prints the registered level scripts.
func listScripts(w io.Writer) {
	fmt.Fprintln(w, messages.ScriptsHeader())
	for _, name := range scripts.Names() {
		s, _ := scripts.Get(name)
		fmt.Fprintf(w, "  %-10s %s\n", s.Name, s.Description)
	}
}

// newSession builds the session configuration from the command line.
func newSession(seed uint64, depth int, composite, trace, verbose bool) *state.Session {
	cfg := state.SessionConfig{
		Seed:       seed,
		StartDepth: depth,
		TraceMode:  rng.TraceDecomposed,
		Trace:      trace,
	}
	if composite {
		cfg.TraceMode = rng.TraceComposite
	}
	if verbose {
		cfg.Logger = log.New(os.Stderr, "splev: ", 0)
	}
	return state.NewSession(cfg)
}

func main() {
	scriptName := flag.String("script", "rooms", "level script to run (see -list)")
	seed := flag.Uint64("seed", 0, "random seed (0 picks one from the clock)")
	depth := flag.Int("depth", 1, "depth of the first level")
	levels := flag.Int("levels", 1, "number of levels to generate from one random stream")
	tracePath := flag.String("trace", "", "reference trace file to check the random calls against")
	composite := flag.Bool("composite", false, "record rnl/rne/rnz/d as single trace entries")
	dump := flag.Bool("dump", false, "write a full dump of the last level to level.txt")
	noColor := flag.Bool("nocolor", false, "disable colored output")
	list := flag.Bool("list", false, "list the level scripts and exit")
	verbose := flag.Bool("v", false, "log placement failures to stderr")
	localeDir := flag.String("locale", "", "directory holding message translations")
	lang := flag.String("lang", "en", "language of the messages when -locale is set")
	flag.Parse()

	messages.Configure(*localeDir, *lang)
	renderer.InitColors()

	if *list {
		listScripts(os.Stdout)
		return
	}
	if _, ok := scripts.Get(*scriptName); !ok {
		log.Fatalf("%s", messages.UnknownScript(*scriptName))
	}
	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	if *levels < 1 {
		*levels = 1
	}

	sess := newSession(*seed, *depth, *composite, *tracePath != "", *verbose)
	opts := renderer.Options{
		Color:    !*noColor && terminal.Fits(os.Stdout, world.ColNo-1),
		Contents: true,
	}

	var last *state.Level
	for i := 0; i < *levels; i++ {
		lvl, err := scripts.Generate(sess, *scriptName)
		if err != nil {
			log.Fatalf("%s", messages.Failure(*scriptName, err))
		}
		fmt.Println(messages.Generated(lvl.Name(), lvl.Depth(), lvl.Seed()))
		if err := renderer.Render(os.Stdout, lvl, opts); err != nil {
			log.Fatalf("render: %v", err)
		}
		fmt.Println()
		last = lvl
	}

	if *dump {
		path, err := devtools.DumpLevelToFile(last)
		if err != nil {
			log.Fatalf("dump: %v", err)
		}
		fmt.Println(messages.DumpWritten(path))
	}

	if *tracePath != "" {
		got := sess.RNG().Trace()
		if got == nil {
			log.Fatalf("%s", messages.TraceUnavailable())
		}
		if err := devtools.DiffTraceFile(*tracePath, got); err != nil {
			log.Fatalf("%s", messages.Failure(*scriptName, err))
		}
		fmt.Println(messages.TraceMatches(got.Len()))
	}
}
