// Package des is the level-script API. A script drives a Builder through an
// ordered series of calls; each call changes the level at once, so later
// calls see what earlier ones built. Finalize freezes the result.
package des

import (
	"errors"
	"fmt"

	"splev/pkg/engine/selection"
	"splev/pkg/engine/world"
	"splev/pkg/game/generator"
	"splev/pkg/game/levelgen"
	"splev/pkg/game/state"
	"splev/pkg/game/verify"
)

// Builder builds one level. It is used by a single script and discarded
// after Finalize.
type Builder struct {
	script string
	sess   *state.Session
	ctx    *generator.Context
	place  *levelgen.Placer

	calls       int
	err         error
	initPresent bool
	checks      verify.Checks

	// deferred holds object and monster placements made inside rooms. They
	// run after the next corridor pass or at finalization.
	deferred []func()

	level *state.Level
}

// NewBuilder starts the next level of the session.
func NewBuilder(sess *state.Session, script string) *Builder {
	c := sess.BeginLevel()
	return &Builder{
		script: script,
		sess:   sess,
		ctx:    c,
		place:  levelgen.NewPlacer(c),
	}
}

// Context exposes the generation context for inspection.
func (b *Builder) Context() *generator.Context {
	return b.ctx
}

// Err returns the first failure, if any. Once a call has failed every later
// call is skipped and returns the same error.
func (b *Builder) Err() error {
	return b.err
}

// do runs one script call.
func (b *Builder) do(call string, fn func() error) error {
	if b.err != nil {
		return b.err
	}
	b.calls++
	var err error
	if b.level != nil {
		err = errFinalized
	} else {
		err = fn()
	}
	if err == nil {
		return nil
	}
	// A nested call inside room contents has already recorded its failure.
	if b.err != nil {
		return b.err
	}
	if errors.Is(err, ErrInvalid) {
		b.err = &ScriptError{Script: b.script, Call: call, Index: b.calls, Err: err}
	} else {
		b.err = fmt.Errorf("%s: %s: %w", b.script, call, err)
	}
	return b.err
}

// abs turns a map-relative position into map coordinates.
func (b *Builder) abs(x, y int) (int, int) {
	g := b.ctx.Grid
	return x + g.XStart, y + g.YStart
}

// Area returns the filled rectangle between two map-relative corners.
func (b *Builder) Area(x1, y1, x2, y2 int) selection.Selection {
	ax1, ay1 := b.abs(x1, y1)
	ax2, ay2 := b.abs(x2, y2)
	return selection.FillRect(ax1, ay1, ax2, ay2)
}

// Point returns the selection of one map-relative location.
func (b *Builder) Point(x, y int) selection.Selection {
	ax, ay := b.abs(x, y)
	return selection.Of(world.Coord{X: ax, Y: ay})
}

// LevelInit prepares the whole map with a registered init style.
func (b *Builder) LevelInit(init LevelInit) error {
	return b.do("level_init", func() error {
		style, err := generator.StyleByName(init.Style)
		if err != nil {
			return invalidf("%v", err)
		}
		b.initPresent = true
		switch style {
		case generator.Maze, generator.MazeGrid:
			b.ctx.Flags.MazeLevel = true
		case generator.Mines:
			b.ctx.Flags.Cavernous = true
		}
		return style.Init(b.ctx, generator.InitParams{
			Filling:        init.Filling,
			Fg:             init.Fg,
			Bg:             init.Bg,
			Lit:            init.Lit.state(generator.LitRandom),
			Smoothed:       init.Smoothed,
			Joined:         init.Joined,
			Walled:         init.Walled,
			IcedPools:      init.IcedPools,
			CorridorWidth:  init.CorridorWidth,
			WallThickness:  init.WallThickness,
			RemoveDeadEnds: init.RemoveDeadEnds,
		})
	})
}

// LevelFlags turns level flags on.
func (b *Builder) LevelFlags(f LevelFlags) error {
	return b.do("level_flags", func() error {
		fl := &b.ctx.Flags
		fl.NoTeleport = fl.NoTeleport || f.NoTeleport
		fl.HardFloor = fl.HardFloor || f.HardFloor
		fl.MazeLevel = fl.MazeLevel || f.MazeLevel
		fl.CorrMaze = fl.CorrMaze || f.CorrMaze
		fl.Arboreal = fl.Arboreal || f.Arboreal
		fl.Solidify = fl.Solidify || f.Solidify
		fl.CheckInaccessibles = fl.CheckInaccessibles || f.Inaccessibles
		b.checks |= f.Verify
		return nil
	})
}

// Wallify turns stone next to floor into walls over the whole map.
func (b *Builder) Wallify() error {
	return b.do("wallify", func() error {
		b.ctx.WallifyMap(1, 0, world.ColNo-1, world.RowNo-1)
		return nil
	})
}

// WallifyArea is Wallify limited to a map-relative rectangle.
func (b *Builder) WallifyArea(x1, y1, x2, y2 int) error {
	return b.do("wallify", func() error {
		ax1, ay1 := b.abs(x1, y1)
		ax2, ay2 := b.abs(x2, y2)
		b.ctx.WallifyMap(max(ax1, 1), max(ay1, 0), min(ax2, world.ColNo-1), min(ay2, world.RowNo-1))
		return nil
	})
}

// NonDiggable makes the walls in area undiggable. A nil area is the whole
// map.
func (b *Builder) NonDiggable(area *selection.Selection) error {
	return b.do("non_diggable", func() error {
		if area == nil {
			b.ctx.SetWallProperty(0, 0, world.ColNo-1, world.RowNo-1, world.WallNonDiggable)
			return nil
		}
		area.Each(func(x, y int) {
			b.ctx.SetWallProperty(x, y, x, y, world.WallNonDiggable)
		})
		return nil
	})
}

// NonPassWall makes the walls in area impossible to phase through.
func (b *Builder) NonPassWall(area *selection.Selection) error {
	return b.do("non_passwall", func() error {
		if area == nil {
			b.ctx.SetWallProperty(0, 0, world.ColNo-1, world.RowNo-1, world.WallNonPassWall)
			return nil
		}
		area.Each(func(x, y int) {
			b.ctx.SetWallProperty(x, y, x, y, world.WallNonPassWall)
		})
		return nil
	})
}

// flush runs the deferred room contents in the order they were queued.
func (b *Builder) flush() {
	pending := b.deferred
	b.deferred = nil
	for _, fn := range pending {
		fn()
	}
}

// Finalize completes the level: doors are linked to rooms, map boundary
// markers are removed, walls get their final shapes, deferred contents are
// placed and the result is frozen and checked.
func (b *Builder) Finalize() (*state.Level, error) {
	if b.level != nil {
		return b.level, nil
	}
	var lvl *state.Level
	err := b.do("finalize_level", func() error {
		c := b.ctx
		g := c.Grid
		c.LinkDoorsRooms()
		b.removeBoundarySyms()
		if !c.Flags.CorrMaze {
			c.Wallification(1, 0, world.ColNo-1, world.RowNo-1)
		}
		if c.Flags.Solidify {
			g.ForEach(func(x, y int, cell *world.Cell) {
				if cell.Typ.IsStWall() && !cell.MapFragment {
					cell.WallInfo |= world.WallNonDiggable | world.WallNonPassWall
				}
			})
		}
		b.flush()
		if msg := g.Validate(); msg != "" {
			panic("des: inconsistent level tables: " + msg)
		}

		lvl = state.NewLevel(b.script, b.sess.Seed(), c)
		checks := b.checks
		if c.Flags.CheckInaccessibles {
			checks |= verify.CheckConnectivity
		}
		if err := verify.Run(lvl, checks); err != nil {
			return &generator.StructuralError{Element: "level", Reason: "verification failed", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	b.level = lvl
	b.sess.Record(lvl)
	return lvl, nil
}

// removeBoundarySyms turns the crosswall markers map fragments use for
// invisible room boundaries into floor.
func (b *Builder) removeBoundarySyms() {
	g := b.ctx.Grid
	found := false
	g.ForEach(func(x, y int, cell *world.Cell) {
		if x < world.ColNo-1 && cell.Typ == world.CrossWall {
			found = true
		}
	})
	if !found {
		return
	}
	for x := 0; x < g.XMazeMax; x++ {
		for y := 0; y < g.YMazeMax; y++ {
			if cell := g.At(x, y); cell.Typ == world.CrossWall && cell.MapFragment {
				g.Set(x, y, world.Floor)
			}
		}
	}
}
