// Package scripts holds the built-in level scripts. Each script drives a
// des.Builder; Generate runs one against a session and finalizes the level.
package scripts

import (
	"fmt"
	"sort"

	"splev/pkg/game/des"
	"splev/pkg/game/state"
)

// Script is a named level script.
type Script struct {
	Name        string
	Description string
	Build       func(b *des.Builder) error
}

var registry = map[string]Script{}

func init() {
	for _, s := range []Script{
		{Name: "rooms", Description: "rooms joined by corridors", Build: buildRooms},
		{Name: "oracle", Description: "centre room with a fountain court", Build: buildOracle},
		{Name: "minefill", Description: "cavern filler level", Build: buildMinefill},
		{Name: "maze", Description: "maze with traps and a minotaur", Build: buildMaze},
		{Name: "chapel", Description: "fixed map with a temple region", Build: buildChapel},
	} {
		Register(s)
	}
}

// Register makes a script available under its name, replacing any script
// with the same name.
func Register(s Script) {
	registry[s.Name] = s
}

// Get looks up a script.
func Get(name string) (Script, bool) {
	s, ok := registry[name]
	return s, ok
}

// Names lists the registered scripts alphabetically.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Generate builds the next level of sess with the named script.
func Generate(sess *state.Session, name string) (*state.Level, error) {
	s, ok := Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown script %q", name)
	}
	b := des.NewBuilder(sess, s.Name)
	if err := s.Build(b); err != nil {
		return nil, err
	}
	return b.Finalize()
}
