// Package scene is the retained scene graph: named nodes with a local transform, a shape to
// draw, and children. The renderer walks it each frame; nothing here talks to the GPU.
package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Shape selects what the renderer draws for a node.
type Shape int

const (
	// ShapeNone is a pure transform node (pivots, the camera).
	ShapeNone Shape = iota
	// ShapeBox is a cuboid of Size centered on the node.
	ShapeBox
	// ShapeGrid is a line grid on the node's XZ plane; Size.X is the extent, Size.Y the division count.
	ShapeGrid
)

// Node is one element of the graph. Position/Rotation/Scale are relative to the parent.
type Node struct {
	Name     string
	Shape    Shape
	Size     mgl32.Vec3
	Color    color.RGBA
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3

	Visible bool

	parent   *Node
	children []*Node
}

// NewNode returns a visible node with identity transform.
func NewNode(name string, shape Shape) *Node {
	return &Node{
		Name:     name,
		Shape:    shape,
		Size:     mgl32.Vec3{1, 1, 1},
		Color:    color.RGBA{R: 200, G: 200, B: 200, A: 255},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
		Visible:  true,
	}
}

// NewBox is a box node of the given full size and colour.
func NewBox(name string, size mgl32.Vec3, c color.RGBA) *Node {
	n := NewNode(name, ShapeBox)
	n.Size = size
	n.Color = c
	return n
}

// Add reparents child under n.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child if it is a direct child of n.
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

// LocalMatrix is T * R * S.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	r := n.Rotation.Normalize().Mat4()
	s := mgl32.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix composes the local matrices from the root down.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}

// WorldRotation composes rotations only; scale is ignored.
func (n *Node) WorldRotation() mgl32.Quat {
	q := n.Rotation
	for p := n.parent; p != nil; p = p.parent {
		q = p.Rotation.Mul(q)
	}
	return q.Normalize()
}
