// Package gui is the on-screen tuning panel: a collider debug checkbox and the gravity sliders.
package gui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"drive-demo/internal/logger"
	"drive-demo/internal/tuning"
)

const (
	panelWidth = 260
	margin     = 12
	rowHeight  = 20
	labelWidth = 20
)

var axisLabels = [3]string{"x", "y", "z"}

// Panel edits a tuning.Settings in place. Hidden panels draw nothing and never report hover.
type Panel struct {
	Visible bool

	settings *tuning.Settings
	log      *logger.Logger
	bounds   rl.Rectangle
}

func NewPanel(s *tuning.Settings, log *logger.Logger) *Panel {
	p := &Panel{Visible: true, settings: s, log: log}
	p.layout()
	return p
}

// InitStyle applies the dark theme. Call once after the window opens.
func InitStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(rl.NewColor(30, 30, 35, 230)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(45, 45, 50, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.NewColor(60, 60, 70, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(200, 200, 200, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.White))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(80, 80, 90, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 14)
}

func (p *Panel) layout() {
	p.bounds = rl.Rectangle{
		X:      margin,
		Y:      margin,
		Width:  panelWidth,
		Height: margin*2 + rowHeight*5 + 8,
	}
}

// Hovered reports whether the mouse is over the panel, so a click there does not capture the pointer.
func (p *Panel) Hovered() bool {
	return p.Visible && rl.CheckCollisionPointRec(rl.GetMousePosition(), p.bounds)
}

// Draw draws the controls and writes changes back to the settings.
func (p *Panel) Draw() {
	if !p.Visible {
		return
	}
	rl.DrawRectangleRec(p.bounds, rl.NewColor(30, 30, 35, 200))

	x := p.bounds.X + margin
	y := p.bounds.Y + margin
	p.settings.DebugColliders = gui.CheckBox(
		rl.Rectangle{X: x, Y: y, Width: rowHeight - 4, Height: rowHeight - 4},
		"Collider Debug Renderer",
		p.settings.DebugColliders,
	)
	y += rowHeight + 8

	group := rl.Rectangle{X: x, Y: y, Width: panelWidth - margin*2, Height: rowHeight*3 + margin*2}
	gui.GroupBox(group, "Physics")
	y += margin

	g := p.settings.Gravity()
	sliderW := group.Width - labelWidth - 60
	for i := range g {
		r := rl.Rectangle{X: x + labelWidth + 4, Y: y, Width: sliderW, Height: rowHeight - 4}
		v := gui.Slider(r, axisLabels[i], fmt.Sprintf("%.1f", g[i]), g[i], tuning.GravityMin, tuning.GravityMax)
		if v != g[i] {
			if err := p.settings.SetGravityAxis(i, v); err != nil {
				p.log.Logf("gui: gravity %s: %v", axisLabels[i], err)
			}
		}
		y += rowHeight
	}
}
