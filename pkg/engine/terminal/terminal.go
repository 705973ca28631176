// Package terminal inspects the output terminal so the CLI can decide whether a
// colored map dump is worth emitting.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Size returns the width and height of the terminal behind f.
// Falls back to defaults if the size cannot be determined.
func Size(f *os.File) (width, height int) {
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Fits reports whether f is a terminal at least cols columns wide. Pipes and
// files never fit, so redirected output stays free of escape codes.
func Fits(f *os.File, cols int) bool {
	if !IsTerminal(f) {
		return false
	}
	width, _ := Size(f)
	return width >= cols
}
