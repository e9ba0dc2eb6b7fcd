// Package graphics owns the raylib window and draws the scene graph.
package graphics

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"drive-demo/internal/config"
)

// Run opens the window and calls frame once per display refresh between BeginDrawing
// and EndDrawing, with the raw frame time in seconds. It returns when the window closes;
// shutdown funcs run first, while the GL context still exists.
// ESC releases the pointer rather than quitting; close via the window button.
func Run(cfg config.WindowConfig, frame func(dt float32), shutdown ...func()) {
	flags := uint32(rl.FlagMsaa4xHint | rl.FlagVsyncHint | rl.FlagWindowResizable)
	if cfg.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)

	w, h := cfg.Width, cfg.Height
	rl.InitWindow(w, h, cfg.Title)
	defer rl.CloseWindow()
	if cfg.Fullscreen {
		rl.SetWindowSize(rl.GetMonitorWidth(0), rl.GetMonitorHeight(0))
	}

	rl.SetExitKey(rl.KeyNull)
	if cfg.TargetFPS > 0 {
		rl.SetTargetFPS(cfg.TargetFPS)
	}

	defer func() {
		for _, fn := range shutdown {
			fn()
		}
	}()

	for !rl.WindowShouldClose() {
		dt := rl.GetFrameTime()
		rl.BeginDrawing()
		frame(dt)
		rl.EndDrawing()
	}
}

// Matrix converts a column-major mgl32 matrix to raylib's layout.
func Matrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func Vec(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

func Color(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
