package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Segment is one world-space line of the collider wireframe.
type Segment struct {
	A, B  mgl32.Vec3
	Fixed bool
}

// boxEdges indexes corner pairs; corner i has sign bits x=i&1, y=i&2, z=i&4.
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// DebugRender returns the 12 edges of every collider in world space.
func (w *World) DebugRender() []Segment {
	out := make([]Segment, 0, w.live*len(boxEdges))
	var corners [8]mgl32.Vec3
	for i := range w.bodies {
		b := &w.bodies[i]
		if !b.alive || b.collider == nil {
			continue
		}
		h := b.collider.HalfExtents
		for c := 0; c < 8; c++ {
			local := mgl32.Vec3{-h[0], -h[1], -h[2]}
			if c&1 != 0 {
				local[0] = h[0]
			}
			if c&2 != 0 {
				local[1] = h[1]
			}
			if c&4 != 0 {
				local[2] = h[2]
			}
			corners[c] = b.position.Add(b.rotation.Rotate(local))
		}
		for _, e := range boxEdges {
			out = append(out, Segment{A: corners[e[0]], B: corners[e[1]], Fixed: !b.dynamic()})
		}
	}
	return out
}
