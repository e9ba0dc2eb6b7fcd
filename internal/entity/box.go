package entity

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"drive-demo/internal/physics"
	"drive-demo/internal/scene"
)

const (
	boxHalf        = 0.5
	boxMass        = 0.1
	boxRestitution = 0.5
)

var boxColor = color.RGBA{R: 230, G: 230, B: 230, A: 255}

// NewBox drops a unit cube at pos: dynamic body, bouncy, light.
func NewBox(g *scene.Graph, w *physics.World, pos mgl32.Vec3) (*Proxy, error) {
	node := scene.NewBox("box", mgl32.Vec3{2 * boxHalf, 2 * boxHalf, 2 * boxHalf}, boxColor)
	return spawn("box",
		g, w, node,
		physics.DynamicBody().WithTranslation(pos),
		physics.Cuboid(boxHalf, boxHalf, boxHalf).WithRestitution(boxRestitution).WithMass(boxMass),
	)
}

// BoxGrid lays out cols x rows positions in a vertical wall at depth z:
// ((x - cols/2) * spacing, y + yOffset, z).
func BoxGrid(cols, rows int, spacing, yOffset, z float32) []mgl32.Vec3 {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	out := make([]mgl32.Vec3, 0, cols*rows)
	half := cols / 2
	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			out = append(out, mgl32.Vec3{float32(x-half) * spacing, float32(y) + yOffset, z})
		}
	}
	return out
}

// NewBoxes creates one box per position.
func NewBoxes(g *scene.Graph, w *physics.World, positions []mgl32.Vec3) ([]*Proxy, error) {
	boxes := make([]*Proxy, 0, len(positions))
	for i, pos := range positions {
		b, err := NewBox(g, w, pos)
		if err != nil {
			return boxes, fmt.Errorf("box %d: %w", i, err)
		}
		boxes = append(boxes, b)
	}
	return boxes, nil
}
