package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BodyType selects how the solver treats a body.
type BodyType int

const (
	// BodyDynamic bodies are moved by gravity, impulses, and contacts.
	BodyDynamic BodyType = iota
	// BodyFixed bodies never move; they only push dynamic bodies away.
	BodyFixed
)

func (t BodyType) String() string {
	switch t {
	case BodyDynamic:
		return "dynamic"
	case BodyFixed:
		return "fixed"
	}
	return "unknown"
}

// BodyDesc describes a body to create. Build one with DynamicBody or FixedBody and the With* helpers.
type BodyDesc struct {
	Type           BodyType
	Translation    mgl32.Vec3
	Rotation       mgl32.Quat
	LinearDamping  float32
	AngularDamping float32
}

// DynamicBody returns a dynamic body description at the origin.
func DynamicBody() BodyDesc {
	return BodyDesc{Type: BodyDynamic, Rotation: mgl32.QuatIdent()}
}

// FixedBody returns a fixed body description at the origin.
func FixedBody() BodyDesc {
	return BodyDesc{Type: BodyFixed, Rotation: mgl32.QuatIdent()}
}

// WithTranslation sets the starting position.
func (d BodyDesc) WithTranslation(v mgl32.Vec3) BodyDesc {
	d.Translation = v
	return d
}

// WithRotation sets the starting orientation.
func (d BodyDesc) WithRotation(q mgl32.Quat) BodyDesc {
	d.Rotation = q.Normalize()
	return d
}

// WithDamping sets the per-second linear and angular velocity decay.
func (d BodyDesc) WithDamping(linear, angular float32) BodyDesc {
	d.LinearDamping = linear
	d.AngularDamping = angular
	return d
}

// BodyHandle is a generational index into a World's body table. The zero value is never valid.
type BodyHandle struct {
	index      uint32
	generation uint32
}

// IsZero reports whether h was never assigned by CreateBody.
func (h BodyHandle) IsZero() bool {
	return h.generation == 0
}

// Pose is a body's world-space placement.
type Pose struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
}

// body is one slot of the body table. Slots are reused; generation tells handles apart.
type body struct {
	generation uint32
	alive      bool

	kind           BodyType
	position       mgl32.Vec3
	rotation       mgl32.Quat
	linvel         mgl32.Vec3
	angvel         mgl32.Vec3
	linearDamping  float32
	angularDamping float32

	collider   *Collider
	invMass    float32
	invInertia mgl32.Vec3
}

func (b *body) dynamic() bool {
	return b.kind == BodyDynamic
}

// updateMass derives inverse mass and a box inertia tensor (body axes) from the collider.
// Bodies without a collider get unit mass so impulses still move them.
func (b *body) updateMass() {
	if !b.dynamic() {
		b.invMass = 0
		b.invInertia = mgl32.Vec3{}
		return
	}
	m := float32(1)
	full := mgl32.Vec3{1, 1, 1}
	if b.collider != nil {
		m = b.collider.mass()
		full = b.collider.HalfExtents.Mul(2)
	}
	if m <= 0 {
		m = 1
	}
	b.invMass = 1 / m
	ix := m / 12 * (full[1]*full[1] + full[2]*full[2])
	iy := m / 12 * (full[0]*full[0] + full[2]*full[2])
	iz := m / 12 * (full[0]*full[0] + full[1]*full[1])
	b.invInertia = mgl32.Vec3{inv(ix), inv(iy), inv(iz)}
}

func inv(v float32) float32 {
	if v <= 0 {
		return 0
	}
	return 1 / v
}
