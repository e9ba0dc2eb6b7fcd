package entity

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"drive-demo/internal/physics"
	"drive-demo/internal/scene"
)

// Ground is a 200 x 1 x 200 slab whose top face sits at y = -0.5.
var (
	GroundCenter = mgl32.Vec3{0, -1, 0}
	GroundHalf   = mgl32.Vec3{100, 0.5, 100}
	groundColor  = color.RGBA{R: 110, G: 120, B: 110, A: 255}
)

// NewGround creates the fixed floor.
func NewGround(g *scene.Graph, w *physics.World) (*Proxy, error) {
	node := scene.NewBox("ground", GroundHalf.Mul(2), groundColor)
	return spawn("ground",
		g, w, node,
		physics.FixedBody().WithTranslation(GroundCenter),
		physics.Cuboid(GroundHalf[0], GroundHalf[1], GroundHalf[2]),
	)
}
