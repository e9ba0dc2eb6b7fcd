package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"drive-demo/internal/environment"
	"drive-demo/internal/followcam"
	"drive-demo/internal/logger"
	"drive-demo/internal/primitives"
	"drive-demo/internal/scene"
)

// Renderer draws one frame of the 3D world. Overlays3D run inside the 3D pass after the
// scene (collider wireframes); 2D overlays belong to the caller.
type Renderer struct {
	Graph      *scene.Graph
	Rig        *followcam.Rig
	Env        *environment.Environment
	Fovy       float32
	Overlays3D []func()
	Log        *logger.Logger

	prims  *primitives.Registry
	sky    skybox
	camera rl.Camera3D
}

func NewRenderer(g *scene.Graph, rig *followcam.Rig, env *environment.Environment, fovy float32, log *logger.Logger) *Renderer {
	if fovy <= 0 {
		fovy = 75
	}
	return &Renderer{Graph: g, Rig: rig, Env: env, Fovy: fovy, Log: log, prims: primitives.NewRegistry()}
}

// Camera is the raylib camera used for the last frame.
func (r *Renderer) Camera() rl.Camera3D { return r.camera }

// Draw polls the sky, clears, and draws the graph from the rig's point of view.
func (r *Renderer) Draw() {
	if r.Env.Poll() {
		if sky := r.Env.Skybox(); sky != nil && !r.sky.upload(sky) {
			r.Log.Logf("graphics: skybox upload failed for %s, using background colour", sky.Path)
		}
	}
	rl.ClearBackground(Color(r.Env.Background))

	view := r.Rig.View()
	r.camera = rl.Camera3D{
		Position:   Vec(view.Eye),
		Target:     Vec(view.Target),
		Up:         Vec(view.Up),
		Fovy:       r.Fovy,
		Projection: rl.CameraPerspective,
	}
	toLight := r.Env.Light.Position.Normalize()
	r.prims.SetView([3]float32(view.Eye), [3]float32(toLight))

	rl.BeginMode3D(r.camera)
	r.sky.draw(r.camera.Position)
	r.Graph.Walk(r.drawNode)
	for _, o := range r.Overlays3D {
		o()
	}
	rl.EndMode3D()
}

func (r *Renderer) drawNode(n *scene.Node) {
	switch n.Shape {
	case scene.ShapeBox:
		model := n.WorldMatrix().Mul4(mgl32.Scale3D(n.Size[0], n.Size[1], n.Size[2]))
		r.prims.Draw(primitives.Cube, Matrix(model), n.Color)
	case scene.ShapeGrid:
		drawGrid(n)
	}
}

// drawGrid draws Size.Y divisions across Size.X units on the node's XZ plane.
func drawGrid(n *scene.Node) {
	extent := n.Size[0]
	div := int(n.Size[1])
	if div <= 0 || extent <= 0 {
		return
	}
	m := n.WorldMatrix()
	c := Color(n.Color)
	half := extent / 2
	step := extent / float32(div)
	for i := 0; i <= div; i++ {
		d := -half + float32(i)*step
		a := m.Mul4x1(mgl32.Vec4{d, 0, -half, 1}).Vec3()
		b := m.Mul4x1(mgl32.Vec4{d, 0, half, 1}).Vec3()
		rl.DrawLine3D(Vec(a), Vec(b), c)
		a = m.Mul4x1(mgl32.Vec4{-half, 0, d, 1}).Vec3()
		b = m.Mul4x1(mgl32.Vec4{half, 0, d, 1}).Vec3()
		rl.DrawLine3D(Vec(a), Vec(b), c)
	}
}

// Unload frees GPU resources. Call before the window closes.
func (r *Renderer) Unload() {
	r.sky.unload()
	r.prims.Unload()
}
