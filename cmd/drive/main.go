package main

import (
	"context"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"drive-demo/internal/commands"
	"drive-demo/internal/config"
	"drive-demo/internal/debug"
	"drive-demo/internal/device"
	"drive-demo/internal/entity"
	"drive-demo/internal/env"
	"drive-demo/internal/environment"
	"drive-demo/internal/event"
	"drive-demo/internal/followcam"
	"drive-demo/internal/fonts"
	"drive-demo/internal/graphics"
	"drive-demo/internal/gui"
	"drive-demo/internal/input"
	"drive-demo/internal/logger"
	"drive-demo/internal/loop"
	"drive-demo/internal/physics"
	"drive-demo/internal/scene"
	"drive-demo/internal/terminal"
	"drive-demo/internal/tuning"
	"drive-demo/internal/vehicle"
)

const hint = "click to drive  |  WASD / arrows  |  ESC releases  |  ` console"

func main() {
	_ = env.Load(".env")
	cfgPath := env.ConfigPath(config.DefaultPath)
	cfg, cfgErr := config.Load(cfgPath)
	log := logger.New(cfg.Logging.File)
	if cfgErr != nil {
		log.Logf("config: %v, using defaults", cfgErr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := event.NewBus(log)
	scope := event.NewScope(bus)
	scope.Listen()
	defer scope.Close()

	world := physics.NewWorld(mgl32.Vec3(cfg.Physics.Gravity))
	graph := scene.NewGraph()

	envr, err := environment.New(ctx, graph, world, cfg.Environment, log)
	if err != nil {
		log.Logf("environment: %v", err)
		os.Exit(1)
	}

	spec := entity.DefaultCarSpec()
	spec.Spawn = mgl32.Vec3(cfg.Vehicle.Spawn)
	spec.Mass = cfg.Vehicle.Mass
	car, err := entity.NewCar(graph, world, spec)
	if err != nil {
		log.Logf("car: %v", err)
		os.Exit(1)
	}
	b := cfg.Boxes
	boxes, err := entity.NewBoxes(graph, world, entity.BoxGrid(b.Cols, b.Rows, b.Spacing, b.YOffset, b.Z))
	if err != nil {
		log.Logf("boxes: %v", err)
	}

	keys := input.NewState()
	scope.Register(keys)
	scope.OnExit(keys.Reset)
	bindings := vehicle.BindingsFromConfig(cfg.Vehicle.Bindings)
	ctrl := vehicle.NewController(world, car.Body, keys, bindings, vehicle.ParamsFromConfig(cfg.Vehicle))

	rig := followcam.New(graph, followcam.LimitsFromConfig(cfg.Camera))
	rig.Snap(car.Position())
	scope.Register(rig)

	settings := tuning.New(world, cfg, cfgPath, log)
	reg := commands.NewRegistry()
	settings.RegisterCommands(reg)

	lp := loop.New(world, cfg.Physics.MaxTimestep, log)
	lp.AddUpdater(ctrl)
	lp.AddUpdater(vehicle.NewTires(world, car.Body, cfg.Vehicle.Grip))
	lp.AddUpdater(followcam.Follower{Rig: rig, Target: func() mgl32.Vec3 {
		pose, err := car.Pose()
		if err != nil {
			return rig.Pivot.Position
		}
		return pose.Translation
	}})
	lp.Track(car)
	lp.Track(boxes...)

	renderer := graphics.NewRenderer(graph, rig, envr, cfg.Camera.Fovy, log)
	renderer.Overlays3D = append(renderer.Overlays3D, debug.Colliders{
		World:   world,
		Enabled: func() bool { return settings.DebugColliders },
	}.Draw)

	term := terminal.New(log, reg)
	panel := gui.NewPanel(settings, log)
	stats := debug.NewStats(
		func() bool { return settings.ShowFPS },
		func() bool { return settings.ShowMemAlloc },
		world, lp.LastStep,
	)

	poller := device.NewPoller(bus, log, bindings.Forward, bindings.Back, bindings.Left, bindings.Right)
	poller.Gate.CanStart = func() bool { return !term.IsOpen() && !panel.Hovered() }
	poller.Gate.MustRelease = term.IsOpen
	term.OnToggle = func(open bool) {
		if open {
			poller.Release()
		}
	}

	lp.Render = renderer.Draw
	lp.Overlays = []func(){
		panel.Draw,
		stats.Draw,
		func() {
			if !poller.Captured() && !term.IsOpen() {
				rl.DrawText(hint, 12, int32(rl.GetScreenHeight())-32, 18, rl.RayWhite)
			}
		},
		term.Draw,
	}

	var font rl.Font
	started := false
	frame := func(dt float32) {
		if !started {
			started = true
			gui.InitStyle()
			if path, err := fonts.Find(fonts.BaseDirs()); err == nil {
				font = rl.LoadFontEx(path, 40, nil)
				term.SetFont(font)
				stats.SetFont(font)
			}
			log.Logf("drive-demo: %d bodies, config %s", world.Len(), cfgPath)
		}
		term.Update()
		poller.Poll()
		lp.Tick(dt)
	}

	graphics.Run(cfg.Window, frame, renderer.Unload, func() {
		if font.Texture.ID != 0 {
			rl.UnloadFont(font)
		}
	})
}
