// Package messages holds the user-visible strings of the level generator.
// English text doubles as the message id, so with no locale configured the
// strings come back unchanged.
package messages

import (
	"errors"

	"github.com/leonelquinteros/gotext"

	"splev/pkg/engine/rng"
	"splev/pkg/game/des"
	"splev/pkg/game/generator"
)

// Domain is the gettext domain the translations are loaded from.
const Domain = "splev"

// Configure loads translations for lang from dir (dir/lang/LC_MESSAGES/splev.po).
// An empty dir leaves the English strings in place.
func Configure(dir, lang string) {
	if dir == "" {
		return
	}
	gotext.Configure(dir, lang, Domain)
}

// Generated is the status line printed above each level.
func Generated(script string, depth int, seed uint64) string {
	return gotext.Get("Level %s, depth %d, seed %d", script, depth, seed)
}

// ScriptsHeader heads the -list output.
func ScriptsHeader() string {
	return gotext.Get("Available level scripts:")
}

// UnknownScript reports a -script name that is not registered.
func UnknownScript(name string) string {
	return gotext.Get("No level script named %q. Use -list to see the available scripts.", name)
}

// DumpWritten reports where the level dump went.
func DumpWritten(path string) string {
	return gotext.Get("Level dump written to %s", path)
}

// TraceMatches reports a trace that agrees with the reference.
func TraceMatches(calls int) string {
	return gotext.Get("Random trace matches the reference (%d calls)", calls)
}

// TraceUnavailable reports that -trace was given without a recorded trace.
func TraceUnavailable() string {
	return gotext.Get("No random trace was recorded")
}

// Failure describes why a level could not be generated, in terms of what the
// level script did wrong rather than where in the code it failed.
func Failure(script string, err error) string {
	var (
		scriptErr *des.ScriptError
		structErr *generator.StructuralError
		divErr    *rng.DivergenceError
	)
	switch {
	case errors.As(err, &scriptErr):
		return gotext.Get("Level script %s has a bad call #%d (%s): %v", script, scriptErr.Index, scriptErr.Call, scriptErr.Err)
	case errors.As(err, &structErr):
		return gotext.Get("Level %s could not be built: cannot place %s (%s)", script, structErr.Element, structErr.Reason)
	case errors.As(err, &divErr):
		return gotext.Get("Random trace diverges from the reference at call %d", divErr.Index)
	case errors.Is(err, generator.ErrNoRect):
		return gotext.Get("Level %s could not be built: the map is full", script)
	}
	return gotext.Get("Level %s failed: %v", script, err)
}
