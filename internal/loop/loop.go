// Package loop runs one frame of the demo: clamp the frame delta, step physics, run the
// per-frame updaters, copy body poses onto their nodes, then render.
package loop

import (
	"errors"

	"github.com/chewxy/math32"

	"drive-demo/internal/entity"
	"drive-demo/internal/logger"
)

// DefaultMaxStep caps a single physics step in seconds.
const DefaultMaxStep = 0.1

// Clamp bounds a frame delta to [0, max]. NaN and negative deltas become 0.
func Clamp(delta, max float32) float32 {
	if math32.IsNaN(delta) || delta < 0 {
		return 0
	}
	if delta > max {
		return max
	}
	return delta
}

// Stepper advances a simulation by dt seconds.
type Stepper interface {
	Step(dt float32)
}

// Updater runs once per frame after the physics step.
type Updater interface {
	Update(dt float32) error
}

// UpdateFunc adapts a function to Updater.
type UpdateFunc func(dt float32) error

func (f UpdateFunc) Update(dt float32) error { return f(dt) }

// Loop owns the frame order. Render and Overlays may be nil.
type Loop struct {
	Physics  Stepper
	MaxStep  float32
	Render   func()
	Overlays []func()

	log      *logger.Logger
	updaters []Updater
	proxies  []*entity.Proxy
	frames   uint64
	lastStep float32
}

func New(physics Stepper, maxStep float32, log *logger.Logger) *Loop {
	if maxStep <= 0 {
		maxStep = DefaultMaxStep
	}
	return &Loop{Physics: physics, MaxStep: maxStep, log: log}
}

// AddUpdater appends u; updaters run in insertion order.
func (l *Loop) AddUpdater(u Updater) {
	l.updaters = append(l.updaters, u)
}

// Track adds proxies whose nodes are synced after every step.
func (l *Loop) Track(p ...*entity.Proxy) {
	l.proxies = append(l.proxies, p...)
}

func (l *Loop) Tracked() int { return len(l.proxies) }

func (l *Loop) Frames() uint64 { return l.frames }

// LastStep is the clamped dt given to the most recent physics step.
func (l *Loop) LastStep() float32 { return l.lastStep }

// Tick runs one frame with a raw delta in seconds.
func (l *Loop) Tick(delta float32) {
	dt := Clamp(delta, l.MaxStep)
	l.lastStep = dt
	l.frames++

	if l.Physics != nil {
		l.Physics.Step(dt)
	}
	for _, u := range l.updaters {
		if err := u.Update(dt); err != nil {
			l.log.Logf("update: %v", err)
		}
	}
	l.sync()

	if l.Render != nil {
		l.Render()
	}
	for _, o := range l.Overlays {
		o()
	}
}

// sync copies poses and drops proxies whose bodies are gone, logging each once.
func (l *Loop) sync() {
	kept := l.proxies[:0]
	for _, p := range l.proxies {
		err := p.Sync()
		if errors.Is(err, entity.ErrStaleBody) {
			l.log.Logf("dropping proxy: %v", err)
			continue
		}
		if err != nil {
			l.log.Logf("sync %s: %v", p.Name, err)
		}
		kept = append(kept, p)
	}
	for i := len(kept); i < len(l.proxies); i++ {
		l.proxies[i] = nil
	}
	l.proxies = kept
}
