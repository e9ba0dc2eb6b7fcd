// Package environment builds the static world: light, grid helper, ground, and the sky.
// The sky image loads in the background; until it resolves the environment is not ready
// and the renderer clears to the fallback colour.
package environment

import (
	"context"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"drive-demo/internal/config"
	"drive-demo/internal/entity"
	"drive-demo/internal/logger"
	"drive-demo/internal/physics"
	"drive-demo/internal/scene"
)

// Grid helper: 200 units across, 100 divisions, just above the ground's top face.
const (
	GridExtent    = 200
	GridDivisions = 100
	GridHeight    = -0.5
)

var defaultBackground = color.RGBA{R: 0x87, G: 0xa8, B: 0xc8, A: 0xff}

// Light is the sun direction used for primitive shading.
type Light struct {
	Position mgl32.Vec3
}

type Environment struct {
	Light      Light
	Grid       *scene.Node
	Ground     *entity.Proxy
	Background color.RGBA

	log     *logger.Logger
	pending <-chan SkyboxResult
	sky     *Skybox
	ready   bool
}

// New adds the grid and ground to g and w and starts the sky load. A missing sky
// image is logged and leaves the environment ready with the fallback colour.
func New(ctx context.Context, g *scene.Graph, w *physics.World, cfg config.EnvironmentConfig, log *logger.Logger) (*Environment, error) {
	ground, err := entity.NewGround(g, w)
	if err != nil {
		return nil, fmt.Errorf("ground: %w", err)
	}

	grid := scene.NewNode("grid", scene.ShapeGrid)
	grid.Size = mgl32.Vec3{GridExtent, GridDivisions, 0}
	grid.Position = mgl32.Vec3{0, GridHeight, 0}
	grid.Color = color.RGBA{R: 90, G: 90, B: 90, A: 160}
	g.Add(grid)

	bg, err := ParseColor(cfg.Background)
	if err != nil {
		log.Logf("environment: background %q: %v", cfg.Background, err)
		bg = defaultBackground
	}

	e := &Environment{
		Light: Light{
			Position: mgl32.Vec3(cfg.LightPosition),
		},
		Grid:       grid,
		Ground:     ground,
		Background: bg,
		log:        log,
	}

	path, err := ResolveAsset(cfg.Skybox)
	if err != nil {
		log.Logf("environment: %v, using background colour", err)
		e.ready = true
		return e, nil
	}
	e.pending = LoadSkybox(ctx, path, cfg.BackgroundBlur)
	return e, nil
}

// Poll checks for the sky without blocking. It returns true on the call that resolves it.
func (e *Environment) Poll() bool {
	if e.ready || e.pending == nil {
		return false
	}
	select {
	case res := <-e.pending:
		e.pending = nil
		e.ready = true
		if res.Err != nil {
			e.log.Logf("environment: skybox failed, using background colour: %v", res.Err)
			return true
		}
		e.sky = res.Skybox
		e.log.Logf("environment: skybox %s (%dx%d)", res.Skybox.Path, res.Skybox.Image.Bounds().Dx(), res.Skybox.Image.Bounds().Dy())
		return true
	default:
		return false
	}
}

// Ready reports whether the sky has resolved, successfully or not.
func (e *Environment) Ready() bool { return e.ready }

// Skybox is nil until Poll resolves a successful load.
func (e *Environment) Skybox() *Skybox { return e.sky }

// ParseColor accepts "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("want #rrggbb, got %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
