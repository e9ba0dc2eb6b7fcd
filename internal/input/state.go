// Package input holds the keyboard state the vehicle reads each tick.
package input

import (
	"sort"

	"drive-demo/internal/event"
)

// State maps key codes to pressed. Only the key handlers from Attach (and Reset on
// capture exit) mutate it; everything else reads.
type State struct {
	pressed map[string]bool
}

func NewState() *State {
	return &State{pressed: make(map[string]bool)}
}

// Set records code as held (down) or released.
func (s *State) Set(code string, down bool) {
	if code == "" {
		return
	}
	if down {
		s.pressed[code] = true
		return
	}
	delete(s.pressed, code)
}

func (s *State) Pressed(code string) bool {
	return s.pressed[code]
}

// Any reports whether at least one of codes is held.
func (s *State) Any(codes []string) bool {
	for _, c := range codes {
		if s.pressed[c] {
			return true
		}
	}
	return false
}

// Reset releases every key.
func (s *State) Reset() {
	clear(s.pressed)
}

// Snapshot returns the held codes in sorted order.
func (s *State) Snapshot() []string {
	out := make([]string, 0, len(s.pressed))
	for c := range s.pressed {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Attach subscribes the key-down/key-up handlers. Used with event.Scope so keys only
// register while the pointer is captured.
func (s *State) Attach(b *event.Bus) []*event.Subscription {
	return []*event.Subscription{
		b.Subscribe(event.KeyDown, func(evt any) {
			if k, ok := evt.(event.KeyEvent); ok {
				s.Set(k.Code, true)
			}
		}),
		b.Subscribe(event.KeyUp, func(evt any) {
			if k, ok := evt.(event.KeyEvent); ok {
				s.Set(k.Code, false)
			}
		}),
	}
}
