package tuning

import (
	"flag"
	"fmt"
	"math"

	"drive-demo/internal/commands"
)

// toggle is the --show/--hide pair shared by the overlay commands.
type toggle struct {
	fs   *flag.FlagSet
	show *bool
	hide *bool
}

func newToggle(name string) toggle {
	fs := commands.NewFlagSet(name)
	return toggle{fs: fs, show: fs.Bool("show", false, "turn on"), hide: fs.Bool("hide", false, "turn off")}
}

// apply flips *v when neither flag is given.
func (t toggle) apply(v *bool) error {
	switch {
	case *t.show && *t.hide:
		return fmt.Errorf("%s: --show and --hide together", t.fs.Name())
	case *t.show:
		*v = true
	case *t.hide:
		*v = false
	default:
		*v = !*v
	}
	return nil
}

// RegisterCommands adds gravity, debug, fps, memalloc, reset and save to reg.
func (s *Settings) RegisterCommands(reg *commands.Registry) {
	gfs := commands.NewFlagSet("gravity")
	nan := math.NaN()
	x := gfs.Float64("x", nan, "gravity x")
	y := gfs.Float64("y", nan, "gravity y")
	z := gfs.Float64("z", nan, "gravity z")
	reg.Register("gravity", "-x -y -z set gravity components in [-10, 10]", gfs, func() error {
		g := s.Gravity()
		for i, p := range []*float64{x, y, z} {
			if !math.IsNaN(*p) {
				g[i] = float32(*p)
			}
		}
		return s.SetGravity(g)
	})

	for _, c := range []struct {
		name, usage string
		flag        *bool
	}{
		{"debug", "--show|--hide collider wireframes", &s.DebugColliders},
		{"fps", "--show|--hide the FPS counter", &s.ShowFPS},
		{"memalloc", "--show|--hide heap usage", &s.ShowMemAlloc},
	} {
		tg := newToggle(c.name)
		v := c.flag
		name := c.name
		reg.Register(name, c.usage, tg.fs, func() error {
			if err := tg.apply(v); err != nil {
				return err
			}
			s.log.Logf("%s: %t", name, *v)
			return nil
		})
	}

	reg.Register("reset", "restore startup gravity and overlays", nil, func() error {
		s.Reset()
		return nil
	})
	reg.Register("save", "write current settings to the config file", nil, s.Save)
	reg.Register("help", "list commands", nil, func() error {
		for _, line := range reg.Help() {
			s.log.Log(line)
		}
		return nil
	})
}
