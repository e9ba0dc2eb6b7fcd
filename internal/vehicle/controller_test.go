package vehicle

import (
	"errors"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"drive-demo/internal/config"
	"drive-demo/internal/input"
	"drive-demo/internal/physics"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want Command
	}{
		{name: "idle", want: Command{}},
		{name: "forward", keys: []string{"KeyW"}, want: Command{Throttle: 1}},
		{name: "forward arrow", keys: []string{"ArrowUp"}, want: Command{Throttle: 1}},
		{name: "back", keys: []string{"KeyS"}, want: Command{Throttle: -1}},
		{name: "forward and back cancel", keys: []string{"KeyW", "KeyS"}, want: Command{}},
		{name: "left", keys: []string{"KeyA"}, want: Command{Steer: 1}},
		{name: "right", keys: []string{"ArrowRight"}, want: Command{Steer: -1}},
		{name: "left and right cancel", keys: []string{"KeyA", "KeyD"}, want: Command{}},
		{name: "forward left", keys: []string{"KeyW", "KeyA"}, want: Command{Throttle: 1, Steer: 1}},
		{name: "unbound ignored", keys: []string{"KeyQ", "Space"}, want: Command{}},
		{name: "both forward keys count once", keys: []string{"KeyW", "ArrowUp"}, want: Command{Throttle: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := input.NewState()
			for _, k := range tt.keys {
				s.Set(k, true)
			}
			if got := Resolve(s, DefaultBindings()); got != tt.want {
				t.Errorf("Resolve(%v) = %+v, want %+v", tt.keys, got, tt.want)
			}
		})
	}
}

func TestBindingsFromConfig(t *testing.T) {
	def := DefaultBindings()
	tests := []struct {
		name string
		in   config.Bindings
		want Bindings
	}{
		{"empty falls back", config.Bindings{}, def},
		{"empty list falls back", config.Bindings{Forward: []string{}, Left: []string{}}, def},
		{"override one action", config.Bindings{Forward: []string{"KeyI"}},
			Bindings{Forward: []string{"KeyI"}, Back: def.Back, Left: def.Left, Right: def.Right}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BindingsFromConfig(tt.in)
			// Every resolved action must have keys; the poller watches exactly these.
			for _, pair := range []struct {
				action    string
				got, want []string
			}{
				{"Forward", got.Forward, tt.want.Forward},
				{"Back", got.Back, tt.want.Back},
				{"Left", got.Left, tt.want.Left},
				{"Right", got.Right, tt.want.Right},
			} {
				if !slices.Equal(pair.got, pair.want) {
					t.Errorf("%s = %v, want %v", pair.action, pair.got, pair.want)
				}
				if len(pair.got) == 0 {
					t.Errorf("%s resolved to no keys", pair.action)
				}
			}
		})
	}
}

type rig struct {
	world *physics.World
	body  physics.BodyHandle
	input *input.State
	ctrl  *Controller
}

func newRig(t *testing.T) rig {
	t.Helper()
	w := physics.NewWorld(mgl32.Vec3{})
	h := w.CreateBody(physics.DynamicBody())
	if err := w.CreateCollider(physics.Cuboid(0.9, 0.35, 2).WithMass(1), h); err != nil {
		t.Fatal(err)
	}
	in := input.NewState()
	p := Params{DriveForce: 10, SteerTorque: 2}
	return rig{world: w, body: h, input: in, ctrl: NewController(w, h, in, DefaultBindings(), p)}
}

func TestForwardThenIdle(t *testing.T) {
	r := newRig(t)

	r.input.Set("KeyW", true)
	if err := r.ctrl.Update(1.0 / 60); err != nil {
		t.Fatalf("Update: %v", err)
	}
	a := r.ctrl.Applied()
	if a.Force.Len() == 0 {
		t.Fatal("forward key applied no force")
	}
	if !a.Force.ApproxEqual(mgl32.Vec3{0, 0, -10}) {
		t.Errorf("Force = %v, want (0,0,-10)", a.Force)
	}
	v, _ := r.world.Linvel(r.body)
	if v.Z() >= 0 {
		t.Errorf("vz = %v, want negative (forward is -Z)", v.Z())
	}

	r.input.Reset()
	drift := mgl32.Vec3{3, 0, -5}
	_ = r.world.SetLinvel(r.body, drift)
	if err := r.ctrl.Update(1.0 / 60); err != nil {
		t.Fatal(err)
	}
	a = r.ctrl.Applied()
	if a.Force.Len() != 0 || a.Torque.Len() != 0 {
		t.Errorf("idle applied force %v torque %v, want zero", a.Force, a.Torque)
	}
	if v, _ := r.world.Linvel(r.body); v != drift {
		t.Errorf("idle update changed velocity %v -> %v", drift, v)
	}
	if av, _ := r.world.Angvel(r.body); av.Len() != 0 {
		t.Errorf("idle update changed angvel to %v", av)
	}
}

func TestSteerTurnsLeft(t *testing.T) {
	r := newRig(t)
	r.input.Set("KeyA", true)
	if err := r.ctrl.Update(0.1); err != nil {
		t.Fatal(err)
	}
	if r.ctrl.Applied().Torque.Y() <= 0 {
		t.Errorf("Torque = %v, want +Y", r.ctrl.Applied().Torque)
	}
	av, _ := r.world.Angvel(r.body)
	if av.Y() <= 0 {
		t.Errorf("angvel = %v, want +Y", av)
	}
}

func TestSteerMirrorsWhenReversing(t *testing.T) {
	r := newRig(t)
	_ = r.world.SetLinvel(r.body, mgl32.Vec3{0, 0, 5})
	r.input.Set("KeyA", true)
	if err := r.ctrl.Update(0.1); err != nil {
		t.Fatal(err)
	}
	if r.ctrl.Applied().Torque.Y() >= 0 {
		t.Errorf("Torque = %v while reversing, want -Y", r.ctrl.Applied().Torque)
	}
}

func TestTiresRemoveSidewaysPerSecond(t *testing.T) {
	tests := []struct {
		name string
		grip float32
		dt   float32
		want float32
	}{
		{"half at 60 fps", 30, 1.0 / 60, 2},
		{"half at 10 fps", 5, 0.1, 2},
		{"clamped to all", 100, 0.1, 0},
		{"no grip", 0, 0.1, 4},
		{"zero dt", 30, 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t)
			_ = r.world.SetLinvel(r.body, mgl32.Vec3{4, 0, -1})
			tires := NewTires(r.world, r.body, tt.grip)
			if err := tires.Update(tt.dt); err != nil {
				t.Fatal(err)
			}
			v, _ := r.world.Linvel(r.body)
			if v.X() < tt.want-0.01 || v.X() > tt.want+0.01 {
				t.Errorf("vx = %v, want %v", v.X(), tt.want)
			}
			if v.Z() != -1 {
				t.Errorf("vz = %v, forward speed must be untouched", v.Z())
			}
		})
	}
}

func TestTiresSameResultAcrossFrameRates(t *testing.T) {
	run := func(dt float32, steps int) float32 {
		r := newRig(t)
		_ = r.world.SetLinvel(r.body, mgl32.Vec3{4, 0, 0})
		tires := NewTires(r.world, r.body, 2)
		for i := 0; i < steps; i++ {
			_ = tires.Update(dt)
		}
		v, _ := r.world.Linvel(r.body)
		return v.X()
	}
	fast, slow := run(1.0/120, 60), run(1.0/30, 15)
	if fast < 0.9 || fast > 1.7 || slow < 0.9 || slow > 1.7 {
		t.Errorf("after 0.5 s: vx = %v at 120 fps, %v at 30 fps; want both near 4*e^-1", fast, slow)
	}
}

func TestUpdateOnRemovedBody(t *testing.T) {
	r := newRig(t)
	_ = r.world.RemoveBody(r.body)
	if err := r.ctrl.Update(0.1); !errors.Is(err, physics.ErrStaleHandle) {
		t.Errorf("err = %v, want ErrStaleHandle", err)
	}
	if err := NewTires(r.world, r.body, 1).Update(0.1); !errors.Is(err, physics.ErrStaleHandle) {
		t.Errorf("tires err = %v, want ErrStaleHandle", err)
	}
}
