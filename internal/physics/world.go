package physics

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrStaleHandle is returned for handles whose body was removed or that belong to another world.
	ErrStaleHandle = errors.New("physics: stale body handle")
	// ErrColliderExists is returned when a second collider is attached to a body.
	ErrColliderExists = errors.New("physics: body already has a collider")
)

const (
	// solverIterations is how many times contacts are re-resolved per step so stacks settle.
	solverIterations = 4
	// bounceThreshold: approach speeds below this do not bounce, which keeps resting contacts quiet.
	bounceThreshold = 1.0
)

// World owns every body and collider. It is stepped from the frame thread only.
type World struct {
	Gravity  mgl32.Vec3
	Timestep float32

	bodies []body
	free   []uint32
	live   int
}

// NewWorld returns an empty world with the given gravity.
func NewWorld(gravity mgl32.Vec3) *World {
	return &World{Gravity: gravity, Timestep: 1.0 / 60}
}

// SetGravity replaces the gravity vector (e.g. (0, -9.81, 0) for down in -Y).
func (w *World) SetGravity(g mgl32.Vec3) {
	w.Gravity = g
}

// Len is the number of live bodies.
func (w *World) Len() int {
	return w.live
}

// CreateBody adds a body and returns its handle.
func (w *World) CreateBody(desc BodyDesc) BodyHandle {
	rot := desc.Rotation
	if rot.Len() == 0 {
		rot = mgl32.QuatIdent()
	}
	b := body{
		alive:          true,
		kind:           desc.Type,
		position:       desc.Translation,
		rotation:       rot.Normalize(),
		linearDamping:  desc.LinearDamping,
		angularDamping: desc.AngularDamping,
	}
	b.updateMass()

	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
		b.generation = w.bodies[idx].generation + 1
		w.bodies[idx] = b
	} else {
		idx = uint32(len(w.bodies))
		b.generation = 1
		w.bodies = append(w.bodies, b)
	}
	w.live++
	return BodyHandle{index: idx, generation: b.generation}
}

// CreateCollider attaches a cuboid to the body and recomputes its mass.
func (w *World) CreateCollider(desc ColliderDesc, h BodyHandle) error {
	b, err := w.get(h)
	if err != nil {
		return err
	}
	if b.collider != nil {
		return ErrColliderExists
	}
	if desc.Friction < 0 {
		desc.Friction = 0
	}
	b.collider = &Collider{ColliderDesc: desc}
	b.updateMass()
	return nil
}

// RemoveBody deletes the body and its collider. The handle becomes stale.
func (w *World) RemoveBody(h BodyHandle) error {
	b, err := w.get(h)
	if err != nil {
		return err
	}
	gen := b.generation
	*b = body{generation: gen}
	w.free = append(w.free, h.index)
	w.live--
	return nil
}

// Contains reports whether h refers to a live body of this world.
func (w *World) Contains(h BodyHandle) bool {
	_, err := w.get(h)
	return err == nil
}

func (w *World) get(h BodyHandle) (*body, error) {
	if h.IsZero() || int(h.index) >= len(w.bodies) {
		return nil, ErrStaleHandle
	}
	b := &w.bodies[h.index]
	if !b.alive || b.generation != h.generation {
		return nil, ErrStaleHandle
	}
	return b, nil
}

// Pose returns the body's translation and rotation.
func (w *World) Pose(h BodyHandle) (Pose, error) {
	b, err := w.get(h)
	if err != nil {
		return Pose{}, err
	}
	return Pose{Translation: b.position, Rotation: b.rotation}, nil
}

// Type returns the body's type.
func (w *World) Type(h BodyHandle) (BodyType, error) {
	b, err := w.get(h)
	if err != nil {
		return 0, err
	}
	return b.kind, nil
}

// Mass is the body's mass; 0 for fixed bodies.
func (w *World) Mass(h BodyHandle) (float32, error) {
	b, err := w.get(h)
	if err != nil {
		return 0, err
	}
	return inv(b.invMass), nil
}

// Linvel returns the linear velocity in world units per second.
func (w *World) Linvel(h BodyHandle) (mgl32.Vec3, error) {
	b, err := w.get(h)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return b.linvel, nil
}

// Angvel returns the angular velocity in radians per second about each world axis.
func (w *World) Angvel(h BodyHandle) (mgl32.Vec3, error) {
	b, err := w.get(h)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return b.angvel, nil
}

// SetLinvel overwrites the linear velocity. Ignored for fixed bodies.
func (w *World) SetLinvel(h BodyHandle, v mgl32.Vec3) error {
	b, err := w.get(h)
	if err != nil {
		return err
	}
	if b.dynamic() {
		b.linvel = v
	}
	return nil
}

// ApplyImpulse changes linear velocity by impulse/mass. Ignored for fixed bodies.
func (w *World) ApplyImpulse(h BodyHandle, impulse mgl32.Vec3) error {
	b, err := w.get(h)
	if err != nil {
		return err
	}
	b.linvel = b.linvel.Add(impulse.Mul(b.invMass))
	return nil
}

// ApplyTorqueImpulse changes angular velocity by the world-space torque impulse.
// The inertia is taken along the body axes, which is exact for rotation about a single axis.
func (w *World) ApplyTorqueImpulse(h BodyHandle, torque mgl32.Vec3) error {
	b, err := w.get(h)
	if err != nil {
		return err
	}
	for i := 0; i < 3; i++ {
		b.angvel[i] += torque[i] * b.invInertia[i]
	}
	return nil
}

// Step advances the simulation by dt seconds: gravity, damping, integration, then contacts.
// dt is recorded as Timestep. Non-positive or non-finite dt leaves the world untouched.
func (w *World) Step(dt float32) {
	if !(dt > 0) || math32.IsInf(dt, 0) {
		return
	}
	w.Timestep = dt
	for i := range w.bodies {
		b := &w.bodies[i]
		if !b.alive || !b.dynamic() {
			continue
		}
		b.linvel = b.linvel.Add(w.Gravity.Mul(dt))
		b.linvel = b.linvel.Mul(1 / (1 + dt*b.linearDamping))
		b.angvel = b.angvel.Mul(1 / (1 + dt*b.angularDamping))
		b.position = b.position.Add(b.linvel.Mul(dt))
		b.rotation = integrateRotation(b.rotation, b.angvel, dt)
	}
	for it := 0; it < solverIterations; it++ {
		w.resolveContacts(it == 0)
	}
}

// integrateRotation applies q' = q + dt/2 * (0, w) * q and renormalises.
func integrateRotation(q mgl32.Quat, w mgl32.Vec3, dt float32) mgl32.Quat {
	if w.Len() == 0 {
		return q
	}
	spin := mgl32.Quat{W: 0, V: w}.Mul(q).Scale(0.5 * dt)
	return q.Add(spin).Normalize()
}

// resolveContacts pushes overlapping pairs apart along the axis of minimum penetration
// and removes approaching velocity. Restitution only applies on the first pass.
func (w *World) resolveContacts(bounce bool) {
	for i := 0; i < len(w.bodies); i++ {
		bi := &w.bodies[i]
		if !bi.alive || bi.collider == nil {
			continue
		}
		for j := i + 1; j < len(w.bodies); j++ {
			bj := &w.bodies[j]
			if !bj.alive || bj.collider == nil {
				continue
			}
			if !bi.dynamic() && !bj.dynamic() {
				continue
			}
			w.resolvePair(bi, bj, bounce)
		}
	}
}

func (w *World) resolvePair(a, b *body, bounce bool) {
	boxA := worldAABB(a.position, a.rotation, a.collider.HalfExtents)
	boxB := worldAABB(b.position, b.rotation, b.collider.HalfExtents)
	depth, axis := penetration(boxA, boxB)
	if axis < 0 {
		return
	}
	total := a.invMass + b.invMass
	if total == 0 {
		return
	}

	var n mgl32.Vec3
	n[axis] = 1
	if b.position[axis] < a.position[axis] {
		n[axis] = -1
	}

	// Positional correction, split by inverse mass. Fixed bodies have invMass 0.
	a.position = a.position.Sub(n.Mul(depth * a.invMass / total))
	b.position = b.position.Add(n.Mul(depth * b.invMass / total))

	rv := b.linvel.Sub(a.linvel)
	vn := rv.Dot(n)
	if vn >= 0 {
		return
	}
	e := float32(0)
	if bounce && -vn > bounceThreshold {
		e = (a.collider.Restitution + b.collider.Restitution) / 2
	}
	jn := -(1 + e) * vn / total
	a.linvel = a.linvel.Sub(n.Mul(jn * a.invMass))
	b.linvel = b.linvel.Add(n.Mul(jn * b.invMass))

	// Coulomb friction on what is left of the tangential velocity.
	rv = b.linvel.Sub(a.linvel)
	tangent := rv.Sub(n.Mul(rv.Dot(n)))
	tl := tangent.Len()
	if tl < 1e-6 {
		return
	}
	tangent = tangent.Mul(1 / tl)
	mu := math32.Sqrt(a.collider.Friction * b.collider.Friction)
	jt := -rv.Dot(tangent) / total
	limit := jn * mu
	jt = mgl32.Clamp(jt, -limit, limit)
	a.linvel = a.linvel.Sub(tangent.Mul(jt * a.invMass))
	b.linvel = b.linvel.Add(tangent.Mul(jt * b.invMass))
}

func abs(v float32) float32 {
	return math32.Abs(v)
}
