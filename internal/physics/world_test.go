package physics

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

func newGroundWorld(t *testing.T) (*World, BodyHandle) {
	t.Helper()
	w := NewWorld(mgl32.Vec3{0, -9.81, 0})
	ground := w.CreateBody(FixedBody().WithTranslation(mgl32.Vec3{0, -1, 0}))
	if err := w.CreateCollider(Cuboid(100, 0.5, 100), ground); err != nil {
		t.Fatalf("ground collider: %v", err)
	}
	return w, ground
}

func TestCreateBodyPose(t *testing.T) {
	w := NewWorld(mgl32.Vec3{})
	h := w.CreateBody(DynamicBody().WithTranslation(mgl32.Vec3{1, 2, 3}))
	pose, err := w.Pose(h)
	if err != nil {
		t.Fatalf("Pose: %v", err)
	}
	if !pose.Translation.ApproxEqual(mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Translation = %v, want (1,2,3)", pose.Translation)
	}
	if !pose.Rotation.ApproxEqual(mgl32.QuatIdent()) {
		t.Errorf("Rotation = %v, want identity", pose.Rotation)
	}
	if w.Len() != 1 {
		t.Errorf("Len = %d, want 1", w.Len())
	}
}

func TestRemovedHandleIsStale(t *testing.T) {
	w := NewWorld(mgl32.Vec3{})
	h := w.CreateBody(DynamicBody())
	if err := w.RemoveBody(h); err != nil {
		t.Fatalf("RemoveBody: %v", err)
	}
	if w.Contains(h) {
		t.Error("Contains(removed) = true")
	}
	if _, err := w.Pose(h); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Pose(removed) err = %v, want ErrStaleHandle", err)
	}
	if err := w.RemoveBody(h); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("second RemoveBody err = %v, want ErrStaleHandle", err)
	}

	reused := w.CreateBody(DynamicBody())
	if reused.index != h.index {
		t.Fatalf("slot not reused: %d vs %d", reused.index, h.index)
	}
	if w.Contains(h) {
		t.Error("old handle resolves to the reused slot")
	}
	if !w.Contains(reused) {
		t.Error("new handle not live")
	}
	if w.Contains(BodyHandle{}) {
		t.Error("zero handle reported live")
	}
}

func TestSecondColliderRejected(t *testing.T) {
	w := NewWorld(mgl32.Vec3{})
	h := w.CreateBody(DynamicBody())
	if err := w.CreateCollider(Cuboid(0.5, 0.5, 0.5), h); err != nil {
		t.Fatal(err)
	}
	if err := w.CreateCollider(Cuboid(1, 1, 1), h); !errors.Is(err, ErrColliderExists) {
		t.Errorf("err = %v, want ErrColliderExists", err)
	}
}

func TestStepAppliesGravityToDynamicOnly(t *testing.T) {
	w := NewWorld(mgl32.Vec3{0, -10, 0})
	dyn := w.CreateBody(DynamicBody().WithTranslation(mgl32.Vec3{0, 10, 0}))
	fixed := w.CreateBody(FixedBody().WithTranslation(mgl32.Vec3{5, 10, 0}))

	w.Step(0.1)

	if w.Timestep != 0.1 {
		t.Errorf("Timestep = %v, want 0.1", w.Timestep)
	}
	v, _ := w.Linvel(dyn)
	if math32.Abs(v.Y()+1) > eps {
		t.Errorf("dynamic vy = %v, want -1", v.Y())
	}
	p, _ := w.Pose(dyn)
	if math32.Abs(p.Translation.Y()-9.9) > eps {
		t.Errorf("dynamic y = %v, want 9.9", p.Translation.Y())
	}
	fp, _ := w.Pose(fixed)
	if !fp.Translation.ApproxEqual(mgl32.Vec3{5, 10, 0}) {
		t.Errorf("fixed body moved to %v", fp.Translation)
	}
}

func TestStepIgnoresInvalidTimestep(t *testing.T) {
	w := NewWorld(mgl32.Vec3{0, -10, 0})
	h := w.CreateBody(DynamicBody())
	for _, dt := range []float32{0, -1, math32.NaN(), math32.Inf(1)} {
		w.Step(dt)
	}
	p, _ := w.Pose(h)
	if !p.Translation.ApproxEqual(mgl32.Vec3{}) {
		t.Errorf("body moved to %v on invalid steps", p.Translation)
	}
}

func TestBoxSettlesOnGround(t *testing.T) {
	w, _ := newGroundWorld(t)
	box := w.CreateBody(DynamicBody().WithTranslation(mgl32.Vec3{0, 1, 0}))
	if err := w.CreateCollider(Cuboid(0.5, 0.5, 0.5).WithMass(0.1).WithRestitution(0.5), box); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 600; i++ {
		w.Step(1.0 / 60)
	}
	p, _ := w.Pose(box)
	if math32.Abs(p.Translation.Y()) > 0.02 {
		t.Errorf("resting y = %v, want ~0 (ground top is -0.5)", p.Translation.Y())
	}
	v, _ := w.Linvel(box)
	if v.Len() > 0.2 {
		t.Errorf("resting speed = %v, want ~0", v.Len())
	}
}

func TestRestitutionBounces(t *testing.T) {
	w, _ := newGroundWorld(t)
	box := w.CreateBody(DynamicBody().WithTranslation(mgl32.Vec3{0, 0.1, 0}))
	if err := w.CreateCollider(Cuboid(0.5, 0.5, 0.5).WithRestitution(1), box); err != nil {
		t.Fatal(err)
	}
	if err := w.SetLinvel(box, mgl32.Vec3{0, -5, 0}); err != nil {
		t.Fatal(err)
	}
	w.Step(1.0 / 30)
	v, _ := w.Linvel(box)
	if v.Y() <= 0 {
		t.Errorf("vy after impact = %v, want upward bounce", v.Y())
	}
}

func TestImpulses(t *testing.T) {
	w := NewWorld(mgl32.Vec3{})
	h := w.CreateBody(DynamicBody())
	if err := w.CreateCollider(Cuboid(0.5, 0.5, 0.5).WithMass(1), h); err != nil {
		t.Fatal(err)
	}
	if err := w.ApplyImpulse(h, mgl32.Vec3{2, 0, 0}); err != nil {
		t.Fatal(err)
	}
	v, _ := w.Linvel(h)
	if !v.ApproxEqual(mgl32.Vec3{2, 0, 0}) {
		t.Errorf("linvel = %v, want (2,0,0)", v)
	}

	// Unit cube of mass 1: I = 1/6 about every axis.
	if err := w.ApplyTorqueImpulse(h, mgl32.Vec3{0, 1, 0}); err != nil {
		t.Fatal(err)
	}
	av, _ := w.Angvel(h)
	if math32.Abs(av.Y()-6) > eps {
		t.Errorf("angvel.y = %v, want 6", av.Y())
	}

	w.Step(0.1)
	p, _ := w.Pose(h)
	if math32.Abs(p.Rotation.Len()-1) > eps {
		t.Errorf("rotation not normalised: |q| = %v", p.Rotation.Len())
	}
	if p.Rotation.ApproxEqual(mgl32.QuatIdent()) {
		t.Error("spinning body did not rotate")
	}

	fixed := w.CreateBody(FixedBody())
	_ = w.ApplyImpulse(fixed, mgl32.Vec3{1, 1, 1})
	fv, _ := w.Linvel(fixed)
	if fv.Len() != 0 {
		t.Errorf("fixed body linvel = %v, want 0", fv)
	}
}

func TestDebugRender(t *testing.T) {
	w, _ := newGroundWorld(t)
	box := w.CreateBody(DynamicBody().WithTranslation(mgl32.Vec3{0, 3, 0}))
	_ = w.CreateCollider(Cuboid(0.5, 0.5, 0.5), box)
	w.CreateBody(DynamicBody()) // no collider, no lines

	segs := w.DebugRender()
	if len(segs) != 24 {
		t.Fatalf("segments = %d, want 24", len(segs))
	}
	var fixed int
	for _, s := range segs[12:] {
		if l := s.B.Sub(s.A).Len(); math32.Abs(l-1) > eps {
			t.Errorf("unit box edge length = %v, want 1", l)
		}
	}
	for _, s := range segs {
		if s.Fixed {
			fixed++
		}
	}
	if fixed != 12 {
		t.Errorf("fixed segments = %d, want 12", fixed)
	}
}

func TestMass(t *testing.T) {
	w, ground := newGroundWorld(t)
	box := w.CreateBody(DynamicBody())
	if err := w.CreateCollider(Cuboid(0.5, 0.5, 0.5).WithMass(0.1), box); err != nil {
		t.Fatal(err)
	}
	bare := w.CreateBody(DynamicBody())

	tests := []struct {
		name string
		h    BodyHandle
		want float32
	}{
		{"explicit mass", box, 0.1},
		{"no collider", bare, 1},
		{"fixed", ground, 0},
	}
	for _, tt := range tests {
		got, err := w.Mass(tt.h)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if math32.Abs(got-tt.want) > eps {
			t.Errorf("%s: Mass = %v, want %v", tt.name, got, tt.want)
		}
	}

	_ = w.RemoveBody(bare)
	if _, err := w.Mass(bare); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("stale: err = %v, want ErrStaleHandle", err)
	}
}
