// Package debug draws the diagnostic overlays: the stats corner and collider wireframes.
package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"drive-demo/internal/physics"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// Text is rebuilt every refreshEvery frames to keep allocations down.
	refreshEvery = 30
)

var (
	dynamicWire = rl.NewColor(80, 255, 120, 255)
	fixedWire   = rl.NewColor(255, 170, 60, 255)
)

// Source supplies the numbers shown in the stats corner.
type Source interface {
	Len() int
}

// Stats draws FPS, heap, body count and the last physics step at the top right.
type Stats struct {
	ShowFPS      func() bool
	ShowMemAlloc func() bool
	Bodies       Source
	Step         func() float32

	font    rl.Font
	frames  uint32
	fps     string
	mem     string
	bodies  string
	memStat runtime.MemStats
}

func NewStats(showFPS, showMem func() bool, bodies Source, step func() float32) *Stats {
	return &Stats{ShowFPS: showFPS, ShowMemAlloc: showMem, Bodies: bodies, Step: step}
}

// SetFont switches to DrawTextEx. A zero texture ID keeps raylib's default font.
func (s *Stats) SetFont(font rl.Font) {
	s.font = font
}

func (s *Stats) Draw() {
	s.frames++
	refresh := s.frames%refreshEvery == 0

	y := float32(padding)
	if s.ShowFPS() {
		if refresh || s.fps == "" {
			s.fps = fmt.Sprintf("FPS: %d", rl.GetFPS())
			s.bodies = fmt.Sprintf("Bodies: %d  step %.1f ms", s.Bodies.Len(), s.Step()*1000)
		}
		s.text(s.fps, y)
		y += lineHeight
		s.text(s.bodies, y)
		y += lineHeight
	}
	if s.ShowMemAlloc() {
		if refresh || s.mem == "" {
			runtime.ReadMemStats(&s.memStat)
			s.mem = fmt.Sprintf("Mem: %.2f MiB", float64(s.memStat.Alloc)/(1024*1024))
		}
		s.text(s.mem, y)
	}
}

func (s *Stats) text(t string, y float32) {
	w := float32(rl.GetScreenWidth())
	if s.font.Texture.ID != 0 {
		size := rl.MeasureTextEx(s.font, t, fontSize, 1)
		rl.DrawTextEx(s.font, t, rl.NewVector2(w-size.X-padding, y), fontSize, 1, rl.Green)
		return
	}
	x := int32(w) - rl.MeasureText(t, fontSize) - padding
	rl.DrawText(t, x, int32(y), fontSize, rl.Green)
}

// Colliders draws the world's collider wireframes when Enabled reports true.
// Call inside the 3D pass.
type Colliders struct {
	World   *physics.World
	Enabled func() bool
}

func (c Colliders) Draw() {
	if !c.Enabled() {
		return
	}
	for _, seg := range c.World.DebugRender() {
		col := dynamicWire
		if seg.Fixed {
			col = fixedWire
		}
		rl.DrawLine3D(
			rl.NewVector3(seg.A[0], seg.A[1], seg.A[2]),
			rl.NewVector3(seg.B[0], seg.B[1], seg.B[2]),
			col,
		)
	}
}
