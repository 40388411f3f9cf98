package scene

import "github.com/go-gl/mathgl/mgl32"

// Input accumulates scroll and pointer state from window callbacks. It is
// written by event handlers and read once per frame; everything runs on the
// render thread so no locking is involved.
type Input struct {
	scrollTop  float64
	pageHeight float64
	wheelSpeed float64

	viewportW float64
	viewportH float64

	pointer mgl32.Vec2 // normalized device coordinates, [-1,1]
}

// NewInput creates input state for a virtual page of the given height.
func NewInput(pageHeight, wheelSpeed float64) *Input {
	return &Input{pageHeight: pageHeight, wheelSpeed: wheelSpeed}
}

// SetViewport records the window size in pixels. Shrinking the window can
// leave scrollTop past the new extent, so it is re-clamped here.
func (in *Input) SetViewport(w, h float64) {
	in.viewportW = w
	in.viewportH = h
	in.scrollTop = clampf(in.scrollTop, 0, in.extent())
}

// Scroll applies a wheel delta. Positive deltas scroll down the page.
func (in *Input) Scroll(delta float64) {
	in.scrollTop = clampf(in.scrollTop+delta*in.wheelSpeed, 0, in.extent())
}

// SetPointer records the cursor position in pixels and converts it to
// normalized device coordinates, Y up.
func (in *Input) SetPointer(x, y float64) {
	if in.viewportW <= 0 || in.viewportH <= 0 {
		return
	}
	in.pointer = mgl32.Vec2{
		float32(x/in.viewportW*2 - 1),
		float32(-(y/in.viewportH*2 - 1)),
	}
}

// Progress returns the scroll fraction in [0,1]. The denominator is floored
// at 1 so a page shorter than the viewport never divides by zero.
func (in *Input) Progress() float32 {
	return clamp01(float32(in.scrollTop / maxf(1, in.extent())))
}

// Pointer returns the pointer in normalized device coordinates.
func (in *Input) Pointer() mgl32.Vec2 {
	return in.pointer
}

func (in *Input) extent() float64 {
	e := in.pageHeight - in.viewportH
	if e < 0 {
		return 0
	}
	return e
}

func clampf(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
