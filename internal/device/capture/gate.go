// Package capture decides pointer-capture transitions from one frame of input. It has no
// window dependency so the rules can be tested directly.
package capture

// Frame is the input that matters for capture, sampled once per frame.
type Frame struct {
	Click   bool // left button went down this frame
	Escape  bool // ESC went down this frame
	Focused bool // window has focus
}

// Action is what the caller should do this frame.
type Action int

const (
	None Action = iota
	Enter
	Exit
)

// Gate tracks whether the pointer is captured.
//
// CanStart vetoes a click that would start capture (console open, cursor over a panel).
// It is not consulted while captured: the hidden cursor still has a position and may
// pass over a panel mid-drive. MustRelease forces an exit while captured (console opened).
type Gate struct {
	CanStart    func() bool
	MustRelease func() bool

	captured bool
}

func (g *Gate) Captured() bool { return g.captured }

// Next applies f and reports the transition, if any.
func (g *Gate) Next(f Frame) Action {
	if !g.captured {
		if f.Click && f.Focused && (g.CanStart == nil || g.CanStart()) {
			g.captured = true
			return Enter
		}
		return None
	}
	if f.Escape || !f.Focused || (g.MustRelease != nil && g.MustRelease()) {
		g.captured = false
		return Exit
	}
	return None
}

// Force sets the state directly, for releases the caller initiates. It reports whether
// the state changed.
func (g *Gate) Force(captured bool) bool {
	if g.captured == captured {
		return false
	}
	g.captured = captured
	return true
}
