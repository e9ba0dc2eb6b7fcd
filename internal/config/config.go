package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the demo looks for its config, relative to the working directory.
const DefaultPath = "config/drive.yaml"

// Config is the whole demo configuration. Every field has a default, so a partial file
// only overrides what it names.
type Config struct {
	Window      WindowConfig      `yaml:"window"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Camera      CameraConfig      `yaml:"camera"`
	Vehicle     VehicleConfig     `yaml:"vehicle"`
	Boxes       BoxesConfig       `yaml:"boxes"`
	Environment EnvironmentConfig `yaml:"environment"`
	Prefs       Prefs             `yaml:"prefs"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int32  `yaml:"width"`
	Height     int32  `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	TargetFPS  int32  `yaml:"target_fps"`
}

type PhysicsConfig struct {
	Gravity     [3]float32 `yaml:"gravity"`
	MaxTimestep float32    `yaml:"max_timestep"`
}

// CameraConfig drives the follow camera. Angles are radians.
type CameraConfig struct {
	Sensitivity  float32    `yaml:"sensitivity"`
	PitchMin     float32    `yaml:"pitch_min"`
	PitchMax     float32    `yaml:"pitch_max"`
	ZoomMin      float32    `yaml:"zoom_min"`
	ZoomMax      float32    `yaml:"zoom_max"`
	ZoomSpeed    float32    `yaml:"zoom_speed"`
	Distance     float32    `yaml:"distance"`
	FollowRate   float32    `yaml:"follow_rate"`
	FollowOffset [3]float32 `yaml:"follow_offset"`
	Fovy         float32    `yaml:"fovy"`
}

type VehicleConfig struct {
	DriveForce  float32    `yaml:"drive_force"`
	SteerTorque float32    `yaml:"steer_torque"`
	Grip        float32    `yaml:"grip"` // sideways velocity cancelled per second
	Mass        float32    `yaml:"mass"`
	Spawn       [3]float32 `yaml:"spawn"`
	Bindings    Bindings   `yaml:"bindings"`
}

// Bindings lists key codes ("KeyW", "ArrowUp", ...) per driving action.
type Bindings struct {
	Forward []string `yaml:"forward"`
	Back    []string `yaml:"back"`
	Left    []string `yaml:"left"`
	Right   []string `yaml:"right"`
}

type BoxesConfig struct {
	Cols    int     `yaml:"cols"`
	Rows    int     `yaml:"rows"`
	Spacing float32 `yaml:"spacing"`
	YOffset float32 `yaml:"y_offset"`
	Z       float32 `yaml:"z"`
}

type EnvironmentConfig struct {
	Skybox         []string   `yaml:"skybox"`
	BackgroundBlur float32    `yaml:"background_blur"`
	LightPosition  [3]float32 `yaml:"light_position"`
	Background     string     `yaml:"background"`
}

// Prefs are the live-tunable values that "cmd save" writes back.
type Prefs struct {
	ShowFPS        bool        `yaml:"show_fps"`
	ShowMemAlloc   bool        `yaml:"show_memalloc"`
	DebugColliders bool        `yaml:"debug_colliders"`
	Gravity        *[3]float32 `yaml:"gravity,omitempty"` // nil: keep physics.gravity
}

type LoggingConfig struct {
	File string `yaml:"file"`
}

// Default returns the stock demo setup.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "drive-demo",
			Width:     1280,
			Height:    720,
			TargetFPS: 60,
		},
		Physics: PhysicsConfig{
			Gravity:     [3]float32{0, -9.81, 0},
			MaxTimestep: 0.1,
		},
		Camera: CameraConfig{
			Sensitivity:  0.002,
			PitchMin:     -1,
			PitchMax:     0.1,
			ZoomMin:      1,
			ZoomMax:      10,
			ZoomSpeed:    0.005,
			Distance:     4,
			FollowRate:   10,
			FollowOffset: [3]float32{0, 0.5, 0},
			Fovy:         75,
		},
		Vehicle: VehicleConfig{
			DriveForce:  12,
			SteerTorque: 3,
			Grip:        8,
			Mass:        1,
			Spawn:       [3]float32{0, 0, 0},
			Bindings: Bindings{
				Forward: []string{"KeyW", "ArrowUp"},
				Back:    []string{"KeyS", "ArrowDown"},
				Left:    []string{"KeyA", "ArrowLeft"},
				Right:   []string{"KeyD", "ArrowRight"},
			},
		},
		Boxes: BoxesConfig{
			Cols:    8,
			Rows:    8,
			Spacing: 1.2,
			YOffset: 1,
			Z:       -20,
		},
		Environment: EnvironmentConfig{
			Skybox: []string{
				"assets/skybox/venice_sunset.png",
				"assets/skybox/venice_sunset.jpg",
				"assets/skybox/skybox.webp",
				"../../assets/skybox/venice_sunset.png",
			},
			BackgroundBlur: 0.4,
			LightPosition:  [3]float32{65.7, 19.2, 50.2},
			Background:     "#87a8c8",
		},
		Logging: LoggingConfig{File: "logs/drive.txt"},
	}
}

// Load reads path over Default(). A missing file yields the defaults and no error.
// A malformed file yields the defaults and the parse error so the caller can report it.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy; slices in the copy do not alias cfg.
func Clone(cfg Config) (Config, error) {
	var out Config
	if err := copier.CopyWithOption(&out, &cfg, copier.Option{DeepCopy: true}); err != nil {
		return Config{}, err
	}
	return out, nil
}
