package preview

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestProjectCenter(t *testing.T) {
	opts := Options{}.withDefaults()
	x, y, ok := project(mgl32.Vec3{}, opts)
	if !ok {
		t.Fatal("origin not projectable")
	}
	if x != opts.Width/2 || y != opts.Height/2 {
		t.Errorf("origin projects to (%d,%d), want image center (%d,%d)", x, y, opts.Width/2, opts.Height/2)
	}
}

func TestProjectBehindViewer(t *testing.T) {
	opts := Options{ViewerDistance: 5}.withDefaults()
	if _, _, ok := project(mgl32.Vec3{0, 0, -6}, opts); ok {
		t.Error("point behind the viewer reported projectable")
	}
}

func TestProjectYUp(t *testing.T) {
	opts := Options{}.withDefaults()
	_, y, ok := project(mgl32.Vec3{0, 1, 0}, opts)
	if !ok {
		t.Fatal("point not projectable")
	}
	if y >= opts.Height/2 {
		t.Errorf("+Y point projects to row %d, want above center %d", y, opts.Height/2)
	}
}

func TestRenderPlotsParticles(t *testing.T) {
	img := Render([]mgl32.Vec3{{0, 0, 0}}, Options{Width: 100, Height: 100})
	// The axis lines paint the center a dim gray; the particle must push it
	// well past that.
	r, _, _, _ := img.At(50, 50).RGBA()
	if r <= 60*257 {
		t.Errorf("center pixel = %d, want brighter than the axis gray", r)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.png")
	positions := []mgl32.Vec3{{0, 0, 0}, {1, 1, 1}, {-1, 0.5, 2}}
	if err := WriteFile(path, positions, Options{Width: 64, Height: 64}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if cfg.Width != 64 || cfg.Height != 64 {
		t.Errorf("PNG size = %dx%d, want 64x64", cfg.Width, cfg.Height)
	}
}
