package vehicle

import (
	"github.com/go-gl/mathgl/mgl32"

	"drive-demo/internal/physics"
)

// Tires is the sideways friction of the wheels. It runs as its own loop updater and does
// not depend on the input, so it keeps acting while the car coasts.
type Tires struct {
	// Grip is the rate, per second, at which sideways velocity is cancelled.
	// Grip*dt is clamped to 1, so a tick never removes more than all of it.
	Grip float32

	world *physics.World
	body  physics.BodyHandle
	last  mgl32.Vec3
}

// NewTires attaches tire friction to body. Negative grip is treated as none.
func NewTires(w *physics.World, body physics.BodyHandle, grip float32) *Tires {
	if grip < 0 {
		grip = 0
	}
	return &Tires{Grip: grip, world: w, body: body}
}

// Update removes Grip*dt of the velocity along the car's right axis.
func (t *Tires) Update(dt float32) error {
	t.last = mgl32.Vec3{}
	pose, err := t.world.Pose(t.body)
	if err != nil {
		return err
	}
	vel, err := t.world.Linvel(t.body)
	if err != nil {
		return err
	}
	forward := pose.Rotation.Rotate(bodyForward)
	forward[1] = 0
	if forward.Len() == 0 || t.Grip == 0 || dt <= 0 {
		return nil
	}
	right := forward.Normalize().Cross(worldUp)
	frac := mgl32.Clamp(t.Grip*dt, 0, 1)
	lateral := right.Mul(-vel.Dot(right) * frac)
	if lateral.Len() == 0 {
		return nil
	}
	mass, err := t.world.Mass(t.body)
	if err != nil {
		return err
	}
	if err := t.world.ApplyImpulse(t.body, lateral.Mul(mass)); err != nil {
		return err
	}
	t.last = lateral
	return nil
}

// Lateral is the velocity change the last Update applied.
func (t *Tires) Lateral() mgl32.Vec3 {
	return t.last
}
