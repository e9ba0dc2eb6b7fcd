// Package tuning holds the live-tunable demo settings behind the GUI panel and the console.
package tuning

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"drive-demo/internal/config"
	"drive-demo/internal/logger"
)

// Gravity slider range and step, per axis.
const (
	GravityMin  = -10
	GravityMax  = 10
	GravityStep = 0.1
)

var ErrNotFinite = errors.New("tuning: value is not finite")

// GravitySink receives validated gravity. *physics.World satisfies it.
type GravitySink interface {
	SetGravity(g mgl32.Vec3)
}

// ValidateGravity rejects NaN and Inf, clamps to the slider range and snaps to its step.
func ValidateGravity(v float32) (float32, error) {
	if math32.IsNaN(v) || math32.IsInf(v, 0) {
		return 0, ErrNotFinite
	}
	v = mgl32.Clamp(v, GravityMin, GravityMax)
	return math32.Floor(v/GravityStep+0.5) * GravityStep, nil
}

// Settings is the tuning model. The flags are read by the renderer and overlays every frame.
type Settings struct {
	DebugColliders bool
	ShowFPS        bool
	ShowMemAlloc   bool

	gravity mgl32.Vec3
	sink    GravitySink
	log     *logger.Logger
	startup config.Config
	path    string
}

// New applies cfg's gravity and prefs to sink. path is where Save writes.
func New(sink GravitySink, cfg config.Config, path string, log *logger.Logger) *Settings {
	startup, err := config.Clone(cfg)
	if err != nil {
		log.Logf("tuning: clone config: %v", err)
		startup = cfg
	}
	s := &Settings{sink: sink, log: log, startup: startup, path: path}
	s.gravity = mgl32.Vec3(cfg.Physics.Gravity)
	s.push()
	if err := s.ApplyPrefs(cfg.Prefs); err != nil {
		log.Logf("tuning: saved prefs: %v", err)
	}
	return s
}

func (s *Settings) push() {
	if s.sink != nil {
		s.sink.SetGravity(s.gravity)
	}
}

func (s *Settings) Gravity() mgl32.Vec3 { return s.gravity }

// SetGravity validates every component before changing anything.
func (s *Settings) SetGravity(g mgl32.Vec3) error {
	var out mgl32.Vec3
	for i := range g {
		v, err := ValidateGravity(g[i])
		if err != nil {
			return fmt.Errorf("gravity %c: %w", "xyz"[i], err)
		}
		out[i] = v
	}
	if out == s.gravity {
		return nil
	}
	s.gravity = out
	s.push()
	s.log.Logf("gravity set to (%.1f, %.1f, %.1f)", out[0], out[1], out[2])
	return nil
}

// SetGravityAxis changes one component (0 x, 1 y, 2 z).
func (s *Settings) SetGravityAxis(axis int, v float32) error {
	if axis < 0 || axis > 2 {
		return fmt.Errorf("gravity axis %d out of range", axis)
	}
	g := s.gravity
	g[axis] = v
	return s.SetGravity(g)
}

// Prefs snapshots the current values for saving.
func (s *Settings) Prefs() config.Prefs {
	g := [3]float32(s.gravity)
	return config.Prefs{
		ShowFPS:        s.ShowFPS,
		ShowMemAlloc:   s.ShowMemAlloc,
		DebugColliders: s.DebugColliders,
		Gravity:        &g,
	}
}

// ApplyPrefs sets the flags and, when p carries a gravity, the gravity too. A saved zero
// gravity is applied like any other value.
func (s *Settings) ApplyPrefs(p config.Prefs) error {
	s.ShowFPS = p.ShowFPS
	s.ShowMemAlloc = p.ShowMemAlloc
	s.DebugColliders = p.DebugColliders
	if p.Gravity == nil {
		return nil
	}
	return s.SetGravity(mgl32.Vec3(*p.Gravity))
}

// Reset restores the values the demo started with.
func (s *Settings) Reset() {
	s.gravity = mgl32.Vec3(s.startup.Physics.Gravity)
	s.push()
	if err := s.ApplyPrefs(s.startup.Prefs); err != nil {
		s.log.Logf("tuning: reset prefs: %v", err)
	}
	s.log.Log("settings reset")
}

// Save writes the startup config with the current prefs to the settings path.
func (s *Settings) Save() error {
	cfg, err := config.Clone(s.startup)
	if err != nil {
		return err
	}
	cfg.Prefs = s.Prefs()
	if err := config.Save(s.path, cfg); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	s.log.Logf("settings saved to %s", s.path)
	return nil
}
