package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// defaultFriction matches the usual engine default for box colliders.
const defaultFriction = 0.5

// ColliderDesc describes a cuboid collider. Mass 0 means "derive from Density".
type ColliderDesc struct {
	HalfExtents mgl32.Vec3
	Mass        float32
	Density     float32
	Restitution float32
	Friction    float32
}

// Cuboid returns a box collider with the given half-extents, density 1 and default friction.
func Cuboid(hx, hy, hz float32) ColliderDesc {
	return ColliderDesc{
		HalfExtents: mgl32.Vec3{hx, hy, hz},
		Density:     1,
		Friction:    defaultFriction,
	}
}

// WithMass fixes the collider mass, overriding density times volume.
func (d ColliderDesc) WithMass(m float32) ColliderDesc {
	d.Mass = m
	return d
}

// WithRestitution sets the bounce coefficient, 0 (none) to 1 (elastic).
func (d ColliderDesc) WithRestitution(e float32) ColliderDesc {
	d.Restitution = e
	return d
}

// WithFriction sets the Coulomb friction coefficient.
func (d ColliderDesc) WithFriction(f float32) ColliderDesc {
	d.Friction = f
	return d
}

// Collider is a cuboid attached to exactly one body.
type Collider struct {
	ColliderDesc
}

func (c *Collider) mass() float32 {
	if c.Mass > 0 {
		return c.Mass
	}
	h := c.HalfExtents
	return c.Density * 8 * h[0] * h[1] * h[2]
}

// aabb is an axis-aligned box in world space.
type aabb struct {
	min, max mgl32.Vec3
}

// worldAABB bounds the oriented box: each world half-extent is |R| * h.
func worldAABB(pos mgl32.Vec3, rot mgl32.Quat, half mgl32.Vec3) aabb {
	r := rot.Mat4()
	var ext mgl32.Vec3
	for i := 0; i < 3; i++ {
		ext[i] = abs(r.At(i, 0))*half[0] + abs(r.At(i, 1))*half[1] + abs(r.At(i, 2))*half[2]
	}
	return aabb{min: pos.Sub(ext), max: pos.Add(ext)}
}

// penetration returns the overlap depth and axis (0=X, 1=Y, 2=Z) of minimum penetration.
// axis is -1 when the boxes do not overlap.
func penetration(a, b aabb) (depth float32, axis int) {
	axis = -1
	for i := 0; i < 3; i++ {
		o := min(a.max[i], b.max[i]) - max(a.min[i], b.min[i])
		if o <= 0 {
			return 0, -1
		}
		if axis < 0 || o < depth {
			depth = o
			axis = i
		}
	}
	return depth, axis
}
