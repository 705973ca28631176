package scripts

import (
	"splev/pkg/engine/world"
	"splev/pkg/game/des"
	"splev/pkg/game/generator"
	"splev/pkg/game/levelgen"
	"splev/pkg/game/verify"
)

// run calls each step in order and stops at the first failure.
func run(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func buildRooms(b *des.Builder) error {
	if err := b.Room(des.RoomSpec{Required: true, Contents: func(s *des.RoomScope) error {
		return s.Stair(true, des.Anywhere)
	}}); err != nil {
		return err
	}
	if err := b.Room(des.RoomSpec{Required: true, Contents: func(s *des.RoomScope) error {
		return run(
			func() error { return s.Stair(false, des.Anywhere) },
			func() error { return s.Trap(des.TrapSpec{}) },
		)
	}}); err != nil {
		return err
	}
	for i := 0; i < 6; i++ {
		err := b.Room(des.RoomSpec{Contents: func(s *des.RoomScope) error {
			return run(
				func() error { return s.Object(des.ObjectSpec{}) },
				func() error { return s.Monster(des.MonsterSpec{}) },
			)
		}})
		if err != nil {
			return err
		}
	}
	if err := b.Room(des.RoomSpec{Type: world.Vault, NoJoin: true, Unfilled: true}); err != nil {
		return err
	}
	return b.Corridors()
}

func buildOracle(b *des.Builder) error {
	centre := func(s *des.RoomScope) error {
		for _, p := range [][2]int{{0, 0}, {0, 8}, {10, 0}, {10, 8}} {
			if err := s.Object(des.ObjectSpec{Class: '`', ID: "statue", At: des.At(p[0], p[1])}); err != nil {
				return err
			}
		}
		err := s.Room(des.RoomSpec{X: 4, Y: 3, W: 3, H: 3, Lit: des.LightOn, Required: true,
			Contents: func(f *des.RoomScope) error {
				for _, p := range [][2]int{{0, 1}, {1, 0}, {1, 2}, {2, 1}} {
					if err := f.Feature(world.Fountain, des.At(p[0], p[1])); err != nil {
						return err
					}
				}
				return run(
					func() error {
						return f.Monster(des.MonsterSpec{Class: '@', ID: "Oracle", Peaceful: des.Yes, At: des.At(1, 1)})
					},
					func() error { return f.Door(des.RoomDoor{State: des.DoorNone, Wall: world.AnyWall}) },
				)
			}})
		if err != nil {
			return err
		}
		for i := 0; i < 4; i++ {
			if err := s.Monster(des.MonsterSpec{Class: 'C', Peaceful: des.Yes}); err != nil {
				return err
			}
		}
		return nil
	}
	err := b.Room(des.RoomSpec{
		Type: world.Delphi, Lit: des.LightOn, Required: true,
		X: 3, Y: 3, XAlign: generator.AlignCenter, YAlign: generator.AlignCenter, W: 11, H: 9,
		Contents: centre,
	})
	if err != nil {
		return err
	}

	if err := b.Room(des.RoomSpec{Contents: func(s *des.RoomScope) error {
		return run(
			func() error { return s.Stair(true, des.Anywhere) },
			func() error { return s.Object(des.ObjectSpec{}) },
		)
	}}); err != nil {
		return err
	}
	if err := b.Room(des.RoomSpec{Contents: func(s *des.RoomScope) error {
		return run(
			func() error { return s.Stair(false, des.Anywhere) },
			func() error { return s.Object(des.ObjectSpec{}) },
			func() error { return s.Trap(des.TrapSpec{}) },
			func() error { return s.Monster(des.MonsterSpec{}) },
		)
	}}); err != nil {
		return err
	}
	for i := 0; i < 3; i++ {
		err := b.Room(des.RoomSpec{Contents: func(s *des.RoomScope) error {
			return run(
				func() error { return s.Object(des.ObjectSpec{}) },
				func() error { return s.Trap(des.TrapSpec{}) },
				func() error { return s.Monster(des.MonsterSpec{}) },
			)
		}})
		if err != nil {
			return err
		}
	}
	return b.Corridors()
}

func buildMinefill(b *des.Builder) error {
	err := run(
		func() error { return b.LevelFlags(des.LevelFlags{MazeLevel: true}) },
		func() error {
			return b.LevelInit(des.LevelInit{
				Style: "mines", Fg: world.Floor, Bg: world.Stone,
				Smoothed: true, Joined: true, Walled: true, Lit: des.LightOff,
			})
		},
		func() error { return b.Stair(true, des.Anywhere) },
		func() error { return b.Stair(false, des.Anywhere) },
	)
	if err != nil {
		return err
	}
	for _, o := range []des.ObjectSpec{
		{Class: '*'}, {Class: '*'}, {Class: '*'}, {Class: '('},
		{}, {}, {},
	} {
		if err := b.Object(o); err != nil {
			return err
		}
	}
	for _, m := range []des.MonsterSpec{
		{ID: "gnome"}, {ID: "gnome"}, {ID: "gnome"}, {ID: "gnome"},
		{ID: "gnome"}, {ID: "gnome"}, {ID: "gnome"},
		{ID: "gnome lord"}, {ID: "dwarf"}, {ID: "dwarf"},
		{Class: 'G'}, {Class: 'G'}, {Class: 'h'},
	} {
		if err := b.Monster(m); err != nil {
			return err
		}
	}
	for i := 0; i < 6; i++ {
		if err := b.Trap(des.TrapSpec{}); err != nil {
			return err
		}
	}
	return nil
}

func buildMaze(b *des.Builder) error {
	err := run(
		func() error { return b.LevelFlags(des.LevelFlags{MazeLevel: true}) },
		func() error {
			return b.LevelInit(des.LevelInit{
				Style: "maze", Filling: world.HWall,
				CorridorWidth: 1, WallThickness: 1,
			})
		},
		func() error { return b.Stair(true, des.Anywhere) },
		func() error { return b.Stair(false, des.Anywhere) },
	)
	if err != nil {
		return err
	}
	for i := 0; i < 8; i++ {
		if err := b.Object(des.ObjectSpec{}); err != nil {
			return err
		}
	}
	for i := 0; i < 5; i++ {
		if err := b.Trap(des.TrapSpec{}); err != nil {
			return err
		}
	}
	return b.Monster(des.MonsterSpec{Class: 'H', ID: "minotaur"})
}

const chapelMap = `
---------------------
|...................|
|..-------------....|
|..|...........|....|
|..|...........+....|
|..|...........|....|
|..-------------....|
|...................|
---------------------
`

func buildChapel(b *des.Builder) error {
	temple := func(s *des.RoomScope) error {
		return run(
			func() error {
				return s.Altar(des.AltarSpec{At: des.At(5, 1), Align: levelgen.AlignNeutral, Shrine: des.Yes})
			},
			func() error {
				return s.Monster(des.MonsterSpec{Class: '@', ID: "aligned cleric", Peaceful: des.Yes, At: des.At(5, 0)})
			},
		)
	}
	return run(
		func() error {
			return b.LevelFlags(des.LevelFlags{MazeLevel: true, Verify: verify.CheckAll})
		},
		func() error { return b.Map(des.MapSpec{Map: chapelMap}) },
		func() error { return b.Region(des.RegionSpec{X1: 0, Y1: 0, X2: 20, Y2: 8, Lit: des.LightOn}) },
		func() error {
			return b.Region(des.RegionSpec{X1: 4, Y1: 3, X2: 14, Y2: 5, Lit: des.LightOn, Type: world.Temple, Contents: temple})
		},
		func() error { return b.Door(des.DoorSpec{State: des.DoorLocked, At: des.At(15, 4)}) },
		func() error { return b.Stair(true, des.At(1, 1)) },
		func() error { return b.Stair(false, des.At(19, 7)) },
		func() error { return b.NonDiggable(nil) },
		func() error { return b.Trap(des.TrapSpec{Kind: world.SqueakyBoard, At: des.At(17, 4)}) },
		func() error { return b.Object(des.ObjectSpec{Class: '?', At: des.At(10, 1)}) },
	)
}
