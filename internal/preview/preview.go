// Package preview renders the particle field to a PNG on the CPU, without a
// GL context. It exists for inspecting formations on headless machines and
// is wired to the preview.path configuration key.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// Options controls the projection. Zero values fall back to usable defaults.
type Options struct {
	Width  int
	Height int

	// FOV is the projection scale factor in pixels; ViewerDistance is the
	// camera's distance from the field's center along +Z.
	FOV            float64
	ViewerDistance float64
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 600
	}
	if o.FOV == 0 {
		o.FOV = 300
	}
	if o.ViewerDistance == 0 {
		o.ViewerDistance = 8
	}
	return o
}

// Render projects the particle positions onto an image, brightening pixels
// that receive multiple particles. Points behind the viewer are skipped.
func Render(positions []mgl32.Vec3, opts Options) *image.RGBA {
	opts = opts.withDefaults()
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))

	axis := color.RGBA{60, 60, 60, 255}
	drawLine(img, 0, opts.Height/2, opts.Width-1, opts.Height/2, axis)
	drawLine(img, opts.Width/2, 0, opts.Width/2, opts.Height-1, axis)

	for _, p := range positions {
		x, y, ok := project(p, opts)
		if !ok || x < 0 || x >= opts.Width || y < 0 || y >= opts.Height {
			continue
		}
		brighten(img, x, y)
	}
	return img
}

// WriteFile renders the positions and writes the PNG to path.
func WriteFile(path string, positions []mgl32.Vec3, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, Render(positions, opts)); err != nil {
		return fmt.Errorf("preview: encode %s: %w", path, err)
	}
	return f.Close()
}

// project maps a 3D point to pixel coordinates with a simple perspective
// divide. ok is false when the point sits at or behind the viewer plane.
func project(p mgl32.Vec3, opts Options) (x, y int, ok bool) {
	z := opts.ViewerDistance + float64(p.Z())
	if z <= 0 {
		return 0, 0, false
	}
	factor := opts.FOV / z
	x = int(float64(p.X())*factor) + opts.Width/2
	y = int(-float64(p.Y())*factor) + opts.Height/2
	return x, y, true
}

func brighten(img *image.RGBA, x, y int) {
	off := img.PixOffset(x, y)
	for i := 0; i < 3; i++ {
		v := int(img.Pix[off+i]) + 120
		if v > 255 {
			v = 255
		}
		img.Pix[off+i] = uint8(v)
	}
	img.Pix[off+3] = 255
}

// drawLine plots a line with uniform steps along the major axis.
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps == 0 {
		img.SetRGBA(x1, y1, col)
		return
	}

	xInc := dx / steps
	yInc := dy / steps
	x := float64(x1)
	y := float64(y1)
	for i := 0; i <= int(steps); i++ {
		ix, iy := int(x), int(y)
		if ix >= 0 && ix < img.Bounds().Dx() && iy >= 0 && iy < img.Bounds().Dy() {
			img.SetRGBA(ix, iy, col)
		}
		x += xInc
		y += yInc
	}
}
