package environment

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"drive-demo/internal/config"
	"drive-demo/internal/physics"
	"drive-demo/internal/scene"
)

func writePNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			c := color.RGBA{A: 255}
			if x < w/2 {
				c.R = 255
			}
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, "sky.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

// waitReady polls like the main loop does, one frame at a time.
func waitReady(t *testing.T, e *Environment) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !e.Ready() {
		if time.Now().After(deadline) {
			t.Fatal("skybox never resolved")
		}
		e.Poll()
		time.Sleep(time.Millisecond)
	}
}

func TestResolveAsset(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, 4, 2)
	got, err := ResolveAsset([]string{filepath.Join(dir, "missing.png"), dir, path})
	if err != nil || got != path {
		t.Errorf("ResolveAsset = %q, %v; want %q", got, err, path)
	}
	if _, err := ResolveAsset([]string{filepath.Join(dir, "nope")}); !errors.Is(err, ErrNoSkybox) {
		t.Errorf("err = %v, want ErrNoSkybox", err)
	}
}

func TestDecodeSkyboxBlursAndDetectsEquirect(t *testing.T) {
	path := writePNG(t, t.TempDir(), 256, 128)
	sky, err := DecodeSkybox(path, 0.4)
	if err != nil {
		t.Fatal(err)
	}
	if !sky.Equirect {
		t.Error("2:1 image not detected as equirect")
	}
	if sky.Image.Bounds().Dx() != 256 || sky.Image.Bounds().Dy() != 128 {
		t.Errorf("size = %v", sky.Image.Bounds())
	}
	edge := sky.Image.RGBAAt(128, 64)
	if edge.R == 0 || edge.R == 255 {
		t.Errorf("edge pixel R = %d, want a blurred value", edge.R)
	}

	sharp, err := DecodeSkybox(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if sharp.Image.RGBAAt(127, 64).R != 255 {
		t.Error("blur 0 changed the image")
	}
}

func TestDecodeSkyboxRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sky.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeSkybox(path, 0.4); err == nil {
		t.Error("garbage decoded")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#87a8c8", color.RGBA{0x87, 0xa8, 0xc8, 0xff}, false},
		{"00000080", color.RGBA{0, 0, 0, 0x80}, false},
		{"#fff", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func newEnv(t *testing.T, cfg config.EnvironmentConfig) (*Environment, *scene.Graph) {
	t.Helper()
	g := scene.NewGraph()
	w := physics.NewWorld(mgl32.Vec3{0, -9.81, 0})
	e, err := New(context.Background(), g, w, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	return e, g
}

func TestNewBuildsStaticWorld(t *testing.T) {
	cfg := config.Default().Environment
	cfg.Skybox = nil
	e, g := newEnv(t, cfg)

	if e.Light.Position != (mgl32.Vec3{65.7, 19.2, 50.2}) {
		t.Errorf("light = %v", e.Light.Position)
	}
	if e.Grid.Parent() != g.Root || e.Grid.Position.Y() != -0.5 || e.Grid.Size.X() != 200 {
		t.Errorf("grid = %+v", e.Grid)
	}
	if e.Ground == nil || e.Ground.Node.Parent() != g.Root {
		t.Error("ground not in graph")
	}
	if !e.Ready() || e.Skybox() != nil {
		t.Error("no skybox candidates should be ready with fallback")
	}
	if e.Poll() {
		t.Error("Poll resolved twice")
	}
}

func TestSkyboxLoadsAsynchronously(t *testing.T) {
	cfg := config.Default().Environment
	cfg.Skybox = []string{writePNG(t, t.TempDir(), 64, 32)}
	e, _ := newEnv(t, cfg)
	waitReady(t, e)
	if e.Skybox() == nil || !e.Skybox().Equirect {
		t.Errorf("skybox = %+v", e.Skybox())
	}
}

func TestBrokenSkyboxFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sky.png")
	if err := os.WriteFile(path, []byte{0, 1, 2}, 0644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default().Environment
	cfg.Skybox = []string{path}
	cfg.Background = "bogus"
	e, _ := newEnv(t, cfg)
	waitReady(t, e)
	if e.Skybox() != nil {
		t.Error("broken skybox produced an image")
	}
	if e.Background != defaultBackground {
		t.Errorf("background = %v, want default", e.Background)
	}
}

func TestLoadSkyboxCancelled(t *testing.T) {
	path := writePNG(t, t.TempDir(), 8, 4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := <-LoadSkybox(ctx, path, 0)
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", res.Err)
	}
}
