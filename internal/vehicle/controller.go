// Package vehicle turns the held keys into drive and steering impulses on the car body.
package vehicle

import (
	"github.com/go-gl/mathgl/mgl32"

	"drive-demo/internal/config"
	"drive-demo/internal/input"
	"drive-demo/internal/physics"
)

var (
	// bodyForward is the car's nose in body space.
	bodyForward = mgl32.Vec3{0, 0, -1}
	worldUp     = mgl32.Vec3{0, 1, 0}
)

// Bindings lists the key codes for each action. Any bound key counts.
type Bindings struct {
	Forward []string
	Back    []string
	Left    []string
	Right   []string
}

// DefaultBindings is WASD plus the arrow keys.
func DefaultBindings() Bindings {
	return Bindings{
		Forward: []string{"KeyW", "ArrowUp"},
		Back:    []string{"KeyS", "ArrowDown"},
		Left:    []string{"KeyA", "ArrowLeft"},
		Right:   []string{"KeyD", "ArrowRight"},
	}
}

// BindingsFromConfig falls back to the defaults per action when the config leaves one empty.
func BindingsFromConfig(c config.Bindings) Bindings {
	b := DefaultBindings()
	if len(c.Forward) > 0 {
		b.Forward = c.Forward
	}
	if len(c.Back) > 0 {
		b.Back = c.Back
	}
	if len(c.Left) > 0 {
		b.Left = c.Left
	}
	if len(c.Right) > 0 {
		b.Right = c.Right
	}
	return b
}

// Command is the resolved intent for one tick. Each axis is -1, 0 or 1.
type Command struct {
	Throttle float32
	Steer    float32
}

// Resolve maps the held keys to a Command. Opposing keys cancel out, so forward+back
// yields zero throttle and left+right yields zero steer. Unbound keys are ignored.
func Resolve(s *input.State, b Bindings) Command {
	var c Command
	if s.Any(b.Forward) {
		c.Throttle++
	}
	if s.Any(b.Back) {
		c.Throttle--
	}
	if s.Any(b.Left) {
		c.Steer++
	}
	if s.Any(b.Right) {
		c.Steer--
	}
	return c
}

// Params tune the handling.
type Params struct {
	DriveForce  float32
	SteerTorque float32
}

// ParamsFromConfig copies the drive and steering strengths from the vehicle section.
func ParamsFromConfig(c config.VehicleConfig) Params {
	return Params{DriveForce: c.DriveForce, SteerTorque: c.SteerTorque}
}

// Applied records the last Update. Force and Torque are per-second values before scaling by dt.
type Applied struct {
	Command Command
	Force   mgl32.Vec3
	Torque  mgl32.Vec3
}

// Controller drives one body from one input state.
type Controller struct {
	world    *physics.World
	body     physics.BodyHandle
	input    *input.State
	bindings Bindings
	params   Params
	last     Applied
}

// NewController drives body from in. The controller only reads in; the device layer writes it.
func NewController(w *physics.World, body physics.BodyHandle, in *input.State, b Bindings, p Params) *Controller {
	return &Controller{world: w, body: body, input: in, bindings: b, params: p}
}

// Update reads the input and applies this tick's impulses. With no keys held nothing is applied.
func (c *Controller) Update(dt float32) error {
	cmd := Resolve(c.input, c.bindings)
	pose, err := c.world.Pose(c.body)
	if err != nil {
		return err
	}
	vel, err := c.world.Linvel(c.body)
	if err != nil {
		return err
	}

	forward := pose.Rotation.Rotate(bodyForward)
	forward[1] = 0
	if forward.Len() > 0 {
		forward = forward.Normalize()
	}

	a := Applied{Command: cmd}
	if cmd.Throttle != 0 {
		a.Force = forward.Mul(cmd.Throttle * c.params.DriveForce)
	}
	if cmd.Steer != 0 {
		// Reversing flips the steering like a real car.
		dir := float32(1)
		if vel.Dot(forward) < -0.1 {
			dir = -1
		}
		a.Torque = worldUp.Mul(cmd.Steer * dir * c.params.SteerTorque)
	}
	if a.Force.Len() > 0 {
		if err := c.world.ApplyImpulse(c.body, a.Force.Mul(dt)); err != nil {
			return err
		}
	}
	if a.Torque.Len() > 0 {
		if err := c.world.ApplyTorqueImpulse(c.body, a.Torque.Mul(dt)); err != nil {
			return err
		}
	}
	c.last = a
	return nil
}

// Applied returns what the last Update did.
func (c *Controller) Applied() Applied {
	return c.last
}
