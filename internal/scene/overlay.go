package scene

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
)

// FitMode selects which axis of the header rectangle the overlay model is
// scaled against.
type FitMode string

const (
	FitHeight FitMode = "height"
	FitWidth  FitMode = "width"
)

// Rect is an on-screen rectangle in pixels, origin at the top-left.
type Rect struct {
	X, Y, W, H float32
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// HeaderRectFunc supplies the header rectangle the overlay tracks. It is
// queried every frame so the overlay follows resizes and relayouts.
type HeaderRectFunc func() Rect

// Layout configures how the overlay sits over its header rectangle.
type Layout struct {
	Fit       FitMode
	FitAmount float32
	OffsetX   float32
	OffsetY   float32
	ZOrder    int
	EnvMap    uint32
}

// Bounds is an axis-aligned bounding box of a loaded model.
type Bounds struct {
	Min, Max mgl32.Vec3
}

// Size returns the box extents per axis.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the box midpoint.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Overlay fades a second model in over a header rectangle as the page
// scrolls. Unlike the crystal's linear fade-out, the overlay target opacity
// ramps between two scroll thresholds and is shaped by smoothstep, then the
// displayed opacity approaches that target with time-scaled smoothing.
type Overlay struct {
	showAt   float32
	fullAt   float32
	fadeRate float64

	layout     Layout
	headerRect HeaderRectFunc
	progress   func() float32

	bounds    Bounds
	hasModel  bool
	spinSpeed float64

	opacity float32
	angle   float64

	logger *log.Logger
}

// OverlayFrame is everything the renderer needs for one overlay pass.
type OverlayFrame struct {
	Viewport Rect
	Scale    float32
	Center   mgl32.Vec3 // model-space point scaling pivots on
	Opacity  float32
	Angle    float32
	ZOrder   int
	EnvMap   uint32
}

// NewOverlay creates an overlay with the given fade thresholds. showAt must
// be below fullAt; fadeRate is the opacity approach rate in 1/seconds.
func NewOverlay(showAt, fullAt float32, fadeRate float64, logger *log.Logger) *Overlay {
	return &Overlay{
		showAt:   showAt,
		fullAt:   fullAt,
		fadeRate: fadeRate,
		logger:   logger,
	}
}

// SetModel installs the loaded model's bounds. Until a model is set the
// overlay never displays.
func (o *Overlay) SetModel(b Bounds) {
	o.bounds = b
	o.hasModel = true
}

// SetEnvMap assigns the shared environment map texture.
func (o *Overlay) SetEnvMap(tex uint32) {
	o.layout.EnvMap = tex
}

// BindProgress binds the scroll-progress source driving the fade.
func (o *Overlay) BindProgress(fn func() float32) {
	o.progress = fn
}

// Attach binds the overlay to a header rectangle provider with the given
// layout. A nil provider disables the overlay with a warning rather than
// failing the scene.
func (o *Overlay) Attach(rect HeaderRectFunc, layout Layout) {
	if rect == nil {
		if o.logger != nil {
			o.logger.Warn("overlay: no header rectangle provider, overlay disabled")
		}
		o.headerRect = nil
		return
	}
	if layout.Fit != FitWidth {
		layout.Fit = FitHeight
	}
	env := o.layout.EnvMap
	if layout.EnvMap == 0 {
		layout.EnvMap = env
	}
	o.headerRect = rect
	o.layout = layout
}

// SetSpinSpeed sets the continuous Y spin in radians per second.
func (o *Overlay) SetSpinSpeed(v float64) {
	o.spinSpeed = v
}

// Update advances the fade and spin for one frame.
func (o *Overlay) Update(dt float64) {
	if o.progress != nil {
		s := clamp01(o.progress())
		t := clamp01((s - o.showAt) / (o.fullAt - o.showAt))
		target := smoothstep(t)
		o.opacity = clamp01(o.opacity + (target-o.opacity)*smoothing(o.fadeRate, dt))
	}
	o.angle = math.Mod(o.angle+o.spinSpeed*dt, 2*math.Pi)
}

// Opacity returns the displayed opacity in [0,1].
func (o *Overlay) Opacity() float32 {
	return o.opacity
}

// Frame computes the overlay pass for this frame. ok is false when the
// overlay is unattached, has no model, or the header rectangle currently has
// zero area; it recovers on its own once the rectangle is non-empty again.
func (o *Overlay) Frame() (f OverlayFrame, ok bool) {
	if o.headerRect == nil || !o.hasModel {
		return OverlayFrame{}, false
	}
	rect := o.headerRect()
	rect.X += o.layout.OffsetX
	rect.Y += o.layout.OffsetY
	if rect.Empty() {
		return OverlayFrame{}, false
	}

	size := o.bounds.Size()
	var scale float32
	switch o.layout.Fit {
	case FitWidth:
		if size.X() <= 0 {
			return OverlayFrame{}, false
		}
		aspect := rect.W / rect.H
		scale = 2 * aspect * o.layout.FitAmount / size.X()
	default:
		if size.Y() <= 0 {
			return OverlayFrame{}, false
		}
		scale = 2 * o.layout.FitAmount / size.Y()
	}

	return OverlayFrame{
		Viewport: rect,
		Scale:    scale,
		Center:   o.bounds.Center(),
		Opacity:  o.opacity,
		Angle:    float32(o.angle),
		ZOrder:   o.layout.ZOrder,
		EnvMap:   o.layout.EnvMap,
	}, true
}
