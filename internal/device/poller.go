// Package device turns raylib's polled keyboard and mouse state into bus events and owns
// pointer capture.
package device

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"drive-demo/internal/device/capture"
	"drive-demo/internal/event"
	"drive-demo/internal/logger"
)

// wheelScale converts raylib wheel notches to DOM-style pixel deltas; raylib's sign is
// the opposite of the DOM's.
const wheelScale = -100

// keyCodes maps the event key names used in config bindings to raylib keys.
var keyCodes = map[string]int32{
	"KeyW": rl.KeyW, "KeyA": rl.KeyA, "KeyS": rl.KeyS, "KeyD": rl.KeyD,
	"KeyQ": rl.KeyQ, "KeyE": rl.KeyE, "KeyR": rl.KeyR, "KeyF": rl.KeyF,
	"ArrowUp": rl.KeyUp, "ArrowDown": rl.KeyDown, "ArrowLeft": rl.KeyLeft, "ArrowRight": rl.KeyRight,
	"Space": rl.KeySpace, "ShiftLeft": rl.KeyLeftShift, "ControlLeft": rl.KeyLeftControl,
}

type watched struct {
	name string
	key  int32
}

// Poller publishes input each frame. Gate.CanStart and Gate.MustRelease are set by the
// caller (console open, mouse over the panel).
type Poller struct {
	Gate capture.Gate

	bus  *event.Bus
	log  *logger.Logger
	keys []watched
}

// NewPoller watches the given key names. Unknown names are logged and skipped.
func NewPoller(bus *event.Bus, log *logger.Logger, names ...[]string) *Poller {
	p := &Poller{bus: bus, log: log}
	seen := make(map[string]bool)
	for _, group := range names {
		for _, n := range group {
			if seen[n] {
				continue
			}
			seen[n] = true
			k, ok := keyCodes[n]
			if !ok {
				log.Logf("device: unknown key %q", n)
				continue
			}
			p.keys = append(p.keys, watched{name: n, key: k})
		}
	}
	return p
}

func (p *Poller) Captured() bool { return p.Gate.Captured() }

func (p *Poller) enter() {
	rl.DisableCursor()
	p.bus.Publish(event.CaptureEnter, nil)
}

func (p *Poller) exit() {
	rl.EnableCursor()
	p.bus.Publish(event.CaptureExit, nil)
}

// Release shows the cursor and publishes capture.exit if captured.
func (p *Poller) Release() {
	if p.Gate.Force(false) {
		p.exit()
	}
}

// Poll runs once per frame before the loop tick.
func (p *Poller) Poll() {
	switch p.Gate.Next(capture.Frame{
		Click:   rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		Escape:  rl.IsKeyPressed(rl.KeyEscape),
		Focused: rl.IsWindowFocused(),
	}) {
	case capture.Enter:
		p.enter()
		return
	case capture.Exit:
		p.exit()
		return
	}
	if !p.Gate.Captured() {
		return
	}

	for _, k := range p.keys {
		if rl.IsKeyPressed(k.key) {
			p.bus.Publish(event.KeyDown, event.KeyEvent{Code: k.name})
		}
		if rl.IsKeyReleased(k.key) {
			p.bus.Publish(event.KeyUp, event.KeyEvent{Code: k.name})
		}
	}
	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		p.bus.Publish(event.MouseMove, event.MouseMoveEvent{DX: d.X, DY: d.Y})
	}
	if w := rl.GetMouseWheelMove(); w != 0 {
		p.bus.Publish(event.Wheel, event.WheelEvent{DeltaY: w * wheelScale})
	}
}
