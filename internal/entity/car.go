package entity

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"drive-demo/internal/physics"
	"drive-demo/internal/scene"
)

// CarSpec sizes the car. Forward is -Z in body space.
type CarSpec struct {
	Spawn          mgl32.Vec3
	HalfExtents    mgl32.Vec3
	Mass           float32
	Friction       float32
	LinearDamping  float32
	AngularDamping float32
}

// DefaultCarSpec is a small hatchback on the origin.
func DefaultCarSpec() CarSpec {
	return CarSpec{
		HalfExtents:    mgl32.Vec3{0.9, 0.35, 2},
		Mass:           1,
		Friction:       0.2,
		LinearDamping:  0.1,
		AngularDamping: 3,
	}
}

var (
	bodyColor  = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	cabinColor = color.RGBA{R: 60, G: 70, B: 90, A: 255}
	wheelColor = color.RGBA{R: 25, G: 25, B: 25, A: 255}
)

// NewCar builds the chassis body and a node tree of chassis, cabin and four wheels.
// Only the chassis is simulated; the rest are children and follow it.
func NewCar(g *scene.Graph, w *physics.World, spec CarSpec) (*Proxy, error) {
	h := spec.HalfExtents
	if spec.Mass <= 0 {
		spec.Mass = 1
	}
	chassis := scene.NewBox("car", h.Mul(2), bodyColor)

	cabin := scene.NewBox("car/cabin", mgl32.Vec3{h[0] * 1.6, h[1] * 1.4, h[2] * 0.9}, cabinColor)
	cabin.Position = mgl32.Vec3{0, h[1] * 1.7, h[2] * 0.1}
	chassis.Add(cabin)

	wheel := mgl32.Vec3{0.25, 0.6, 0.6}
	for _, corner := range [4][2]float32{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		n := scene.NewBox("car/wheel", wheel, wheelColor)
		n.Position = mgl32.Vec3{corner[0] * (h[0] + wheel[0]/2), -h[1] + wheel[1]/2, corner[1] * h[2] * 0.65}
		chassis.Add(n)
	}

	return spawn("car",
		g, w, chassis,
		physics.DynamicBody().WithTranslation(spec.Spawn).WithDamping(spec.LinearDamping, spec.AngularDamping),
		physics.Cuboid(h[0], h[1], h[2]).WithMass(spec.Mass).WithFriction(spec.Friction),
	)
}
