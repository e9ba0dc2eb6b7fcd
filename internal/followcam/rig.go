// Package followcam is a third-person camera built from a pivot -> yaw -> pitch -> camera
// node chain. The car pulls the pivot toward itself; the mouse turns yaw and pitch; the
// wheel moves the camera along the pitch node's Z axis.
package followcam

import (
	"github.com/go-gl/mathgl/mgl32"

	"drive-demo/internal/config"
	"drive-demo/internal/event"
	"drive-demo/internal/scene"
)

var (
	axisX = mgl32.Vec3{1, 0, 0}
	axisY = mgl32.Vec3{0, 1, 0}
)

// Limits bound the rig. Angles are radians.
type Limits struct {
	Sensitivity  float32
	PitchMin     float32
	PitchMax     float32
	ZoomMin      float32
	ZoomMax      float32
	ZoomSpeed    float32
	Distance     float32
	FollowRate   float32
	FollowOffset mgl32.Vec3
}

// DefaultLimits are the limits of the default camera config.
func DefaultLimits() Limits {
	return LimitsFromConfig(config.Default().Camera)
}

// LimitsFromConfig converts the camera config section. Swapped min/max pairs are reordered.
func LimitsFromConfig(c config.CameraConfig) Limits {
	l := Limits{
		Sensitivity:  c.Sensitivity,
		PitchMin:     c.PitchMin,
		PitchMax:     c.PitchMax,
		ZoomMin:      c.ZoomMin,
		ZoomMax:      c.ZoomMax,
		ZoomSpeed:    c.ZoomSpeed,
		Distance:     c.Distance,
		FollowRate:   c.FollowRate,
		FollowOffset: mgl32.Vec3(c.FollowOffset),
	}
	if l.PitchMin > l.PitchMax {
		l.PitchMin, l.PitchMax = l.PitchMax, l.PitchMin
	}
	if l.ZoomMin > l.ZoomMax {
		l.ZoomMin, l.ZoomMax = l.ZoomMax, l.ZoomMin
	}
	return l
}

// Rig owns the four chained nodes. Pivot is added to the graph by New.
type Rig struct {
	Pivot  *scene.Node
	Yaw    *scene.Node
	Pitch  *scene.Node
	Camera *scene.Node

	limits   Limits
	yaw      float32
	pitch    float32
	distance float32
}

// New builds the chain, hangs the pivot off the graph root, and applies the starting distance.
func New(g *scene.Graph, l Limits) *Rig {
	r := &Rig{
		Pivot:  scene.NewNode("camera/pivot", scene.ShapeNone),
		Yaw:    scene.NewNode("camera/yaw", scene.ShapeNone),
		Pitch:  scene.NewNode("camera/pitch", scene.ShapeNone),
		Camera: scene.NewNode("camera", scene.ShapeNone),
		limits: l,
	}
	g.Add(r.Pivot)
	r.Pivot.Add(r.Yaw)
	r.Yaw.Add(r.Pitch)
	r.Pitch.Add(r.Camera)

	r.pitch = mgl32.Clamp(0, l.PitchMin, l.PitchMax)
	r.distance = mgl32.Clamp(l.Distance, l.ZoomMin, l.ZoomMax)
	r.apply()
	return r
}

func (r *Rig) apply() {
	r.Yaw.Rotation = mgl32.QuatRotate(r.yaw, axisY)
	r.Pitch.Rotation = mgl32.QuatRotate(r.pitch, axisX)
	r.Camera.Position = mgl32.Vec3{0, 0, r.distance}
}

// MouseMove turns the rig by a relative pointer movement. Yaw is unbounded; pitch is clamped.
func (r *Rig) MouseMove(dx, dy float32) {
	r.yaw -= dx * r.limits.Sensitivity
	r.pitch = mgl32.Clamp(r.pitch-dy*r.limits.Sensitivity, r.limits.PitchMin, r.limits.PitchMax)
	r.apply()
}

// Wheel zooms by a DOM-style wheel delta (positive pulls the camera back), clamped.
func (r *Rig) Wheel(deltaY float32) {
	r.distance = mgl32.Clamp(r.distance+deltaY*r.limits.ZoomSpeed, r.limits.ZoomMin, r.limits.ZoomMax)
	r.apply()
}

// Follow moves the pivot a fraction dt*FollowRate (at most all the way) toward target+offset.
func (r *Rig) Follow(target mgl32.Vec3, dt float32) {
	goal := target.Add(r.limits.FollowOffset)
	t := mgl32.Clamp(dt*r.limits.FollowRate, 0, 1)
	r.Pivot.Position = r.Pivot.Position.Add(goal.Sub(r.Pivot.Position).Mul(t))
}

// Snap puts the pivot on target+offset immediately.
func (r *Rig) Snap(target mgl32.Vec3) {
	r.Pivot.Position = target.Add(r.limits.FollowOffset)
}

func (r *Rig) YawAngle() float32   { return r.yaw }
func (r *Rig) PitchAngle() float32 { return r.pitch }
func (r *Rig) Distance() float32   { return r.distance }

// View is what the renderer needs for a look-at camera.
type View struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
}

// View resolves the chain: the camera sits at its world position looking at the pivot.
func (r *Rig) View() View {
	return View{
		Eye:    r.Camera.WorldPosition(),
		Target: r.Pivot.WorldPosition(),
		Up:     r.Camera.WorldRotation().Rotate(axisY),
	}
}

// Attach subscribes the mouse handlers. Register the rig with an event.Scope so they are
// live only while the pointer is captured.
func (r *Rig) Attach(b *event.Bus) []*event.Subscription {
	return []*event.Subscription{
		b.Subscribe(event.MouseMove, func(evt any) {
			if m, ok := evt.(event.MouseMoveEvent); ok {
				r.MouseMove(m.DX, m.DY)
			}
		}),
		b.Subscribe(event.Wheel, func(evt any) {
			if w, ok := evt.(event.WheelEvent); ok {
				r.Wheel(w.DeltaY)
			}
		}),
	}
}

// Follower adapts the rig to the main loop: each tick it follows target().
type Follower struct {
	Rig    *Rig
	Target func() mgl32.Vec3
}

// Update eases the rig toward Target.
func (f Follower) Update(dt float32) error {
	f.Rig.Follow(f.Target(), dt)
	return nil
}
