// Package state holds what outlives a single level generation: the session
// whose random stream continues from level to level, and the finalized level
// artifact handed to the rest of the game.
package state

import (
	"io"
	"log"

	"splev/pkg/engine/rng"
	"splev/pkg/game/generator"
)

// SessionConfig configures a generation session. Zero values are usable:
// depth starts at 1 and logging is discarded.
type SessionConfig struct {
	Seed uint64

	// Luck and ULevel feed the luck-adjusted and level-scaled draws.
	Luck   int
	ULevel int

	TraceMode rng.TraceMode
	Trace     bool

	// StartDepth is the depth of the first level generated.
	StartDepth int

	Logger *log.Logger
}

// Session generates a sequence of levels from one random stream. Levels are
// generated one at a time; a session is not safe for concurrent use.
type Session struct {
	cfg   SessionConfig
	rng   *rng.RNG
	depth int
	log   *log.Logger

	levels []*Level
}

// NewSession seeds a session's stream.
func NewSession(cfg SessionConfig) *Session {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard, "", 0)
	}
	if cfg.StartDepth < 1 {
		cfg.StartDepth = 1
	}
	if cfg.ULevel < 1 {
		cfg.ULevel = 1
	}
	r := rng.New(cfg.Seed)
	r.Luck = cfg.Luck
	r.ULevel = cfg.ULevel
	r.SetTraceMode(cfg.TraceMode)
	r.SetLogger(cfg.Logger)
	if cfg.Trace {
		r.EnableTrace()
	}
	return &Session{
		cfg:   cfg,
		rng:   r,
		depth: cfg.StartDepth - 1,
		log:   cfg.Logger,
	}
}

// RNG returns the session's stream.
func (s *Session) RNG() *rng.RNG {
	return s.rng
}

// Seed returns the seed the session was started with.
func (s *Session) Seed() uint64 {
	return s.cfg.Seed
}

// Logger returns the logger soft failures are reported to.
func (s *Session) Logger() *log.Logger {
	return s.log
}

// Depth returns the depth of the level most recently begun, or one less than
// the start depth before any level.
func (s *Session) Depth() int {
	return s.depth
}

// BeginLevel moves one level deeper and returns a fresh generation context
// drawing from the session's stream.
func (s *Session) BeginLevel() *generator.Context {
	s.depth++
	return generator.NewContext(s.rng, s.depth, s.log)
}

// Record stores a finalized level in the session history.
func (s *Session) Record(l *Level) {
	s.levels = append(s.levels, l)
}

// Levels returns the finalized levels in generation order.
func (s *Session) Levels() []*Level {
	out := make([]*Level, len(s.levels))
	copy(out, s.levels)
	return out
}
