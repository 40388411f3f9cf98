package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"driftscene/internal/scene"
)

// Renderer draws one frame: the bloom-composited main scene, then the
// overlay viewport on top. Models that failed to load stay nil and their
// passes are skipped.
type Renderer struct {
	points  *Points
	crystal *Mesh
	overlay *Mesh
	bloom   *Bloom

	width  int
	height int
}

// New builds the renderer. crystal and overlay may be nil when their assets
// did not load; the rest of the scene still renders.
func New(particleCount, width, height int, crystal, overlay *Mesh) (*Renderer, error) {
	points, err := NewPoints(particleCount)
	if err != nil {
		return nil, err
	}
	bloom, err := NewBloom(width, height)
	if err != nil {
		points.Delete()
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	return &Renderer{
		points:  points,
		crystal: crystal,
		overlay: overlay,
		bloom:   bloom,
		width:   width,
		height:  height,
	}, nil
}

// Resize adapts the framebuffer chain to a new window size.
func (r *Renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	r.width, r.height = width, height
	if err := r.bloom.Resize(width, height); err != nil {
		return fmt.Errorf("render: resize: %w", err)
	}
	return nil
}

// Frame renders the scene's current state.
func (r *Renderer) Frame(s *scene.Scene) {
	viewProj := s.Camera.Projection().Mul4(s.Camera.View())

	r.bloom.BeginScene()

	r.points.Upload(s.Field.Positions())
	r.points.Draw(viewProj, 1)

	if r.crystal != nil && s.Crystal.Visible() {
		r.crystal.Draw(viewProj, s.CrystalModelMatrix(), s.Camera.Position(), s.Crystal.Opacity())
	}

	r.bloom.Composite()

	if r.overlay != nil {
		if f, ok := s.Overlay.Frame(); ok && f.Opacity > 0 {
			r.drawOverlay(f)
		}
	}
}

// drawOverlay renders the overlay model into its own scissored viewport, the
// stand-in for the second canvas layered over the page header.
func (r *Renderer) drawOverlay(f scene.OverlayFrame) {
	// Rect is top-left based; GL viewports are bottom-left based.
	x := int32(f.Viewport.X)
	y := int32(float32(r.height) - f.Viewport.Y - f.Viewport.H)
	w := int32(f.Viewport.W)
	h := int32(f.Viewport.H)

	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(x, y, w, h)
	gl.Viewport(x, y, w, h)
	gl.Clear(gl.DEPTH_BUFFER_BIT)

	aspect := f.Viewport.W / f.Viewport.H
	proj := mgl32.Ortho(-aspect, aspect, -1, 1, -10, 10)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	model := mgl32.HomogRotate3D(f.Angle, mgl32.Vec3{0, 1, 0}).
		Mul4(mgl32.Scale3D(f.Scale, f.Scale, f.Scale)).
		Mul4(mgl32.Translate3D(-f.Center.X(), -f.Center.Y(), -f.Center.Z()))

	r.overlay.SetEnvMap(f.EnvMap)
	r.overlay.Draw(proj.Mul4(view), model, mgl32.Vec3{0, 0, 5}, f.Opacity)

	gl.Disable(gl.SCISSOR_TEST)
	gl.Viewport(0, 0, int32(r.width), int32(r.height))
}

// Delete releases all GL resources.
func (r *Renderer) Delete() {
	r.points.Delete()
	r.bloom.Delete()
	if r.crystal != nil {
		r.crystal.Delete()
	}
	if r.overlay != nil {
		r.overlay.Delete()
	}
}
