package environment

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNoSkybox means none of the candidate paths exist.
var ErrNoSkybox = errors.New("environment: no skybox image found")

const (
	// maxSkyboxWidth keeps the decoded panorama inside common GPU texture limits.
	maxSkyboxWidth = 4096
	// blurRadiusScale turns the 0..1 background blur into a gaussian radius in pixels
	// per 1024 pixels of image width.
	blurRadiusScale = 8

	equirectAspectMin = 1.8
	equirectAspectMax = 2.2
)

// Skybox is a decoded, CPU-side panorama ready for upload.
type Skybox struct {
	Path     string
	Image    *image.RGBA
	Equirect bool
}

// SkyboxResult is what LoadSkybox delivers. Exactly one of Skybox and Err is set.
type SkyboxResult struct {
	Skybox *Skybox
	Err    error
}

// ResolveAsset returns the first candidate that exists as a regular file.
func ResolveAsset(candidates []string) (string, error) {
	for _, p := range candidates {
		cleaned := filepath.Clean(p)
		if info, err := os.Stat(cleaned); err == nil && !info.IsDir() {
			return cleaned, nil
		}
	}
	return "", ErrNoSkybox
}

// DecodeSkybox reads path, shrinks it to maxSkyboxWidth and applies the background blur
// (0 disables it, 1 is the strongest).
func DecodeSkybox(path string, blurAmount float32) (*Skybox, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open skybox: %w", err)
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode skybox %s: %w", path, err)
	}
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("skybox %s (%s) is empty", path, format)
	}

	w, h := b.Dx(), b.Dy()
	var img *image.RGBA
	if w > maxSkyboxWidth {
		h = h * maxSkyboxWidth / w
		w = maxSkyboxWidth
		img = transform.Resize(src, w, h, transform.Linear)
	} else {
		img = clone.AsRGBA(src)
	}

	if blurAmount > 0 {
		if blurAmount > 1 {
			blurAmount = 1
		}
		radius := float64(blurAmount) * blurRadiusScale * float64(w) / 1024
		img = blur.Gaussian(img, radius)
	}

	aspect := float32(w) / float32(h)
	return &Skybox{
		Path:     path,
		Image:    img,
		Equirect: aspect >= equirectAspectMin && aspect <= equirectAspectMax,
	}, nil
}

// LoadSkybox decodes path on its own goroutine. The channel receives one result and is
// never closed without one. A cancelled ctx yields ctx.Err().
func LoadSkybox(ctx context.Context, path string, blurAmount float32) <-chan SkyboxResult {
	out := make(chan SkyboxResult, 1)
	go func() {
		sky, err := DecodeSkybox(path, blurAmount)
		if ctxErr := ctx.Err(); ctxErr != nil {
			out <- SkyboxResult{Err: ctxErr}
			return
		}
		if err != nil {
			out <- SkyboxResult{Err: err}
			return
		}
		out <- SkyboxResult{Skybox: sky}
	}()
	return out
}
