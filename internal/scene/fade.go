package scene

import "math"

// Crystal drives the primary model's fade-out and spin. The model is fully
// opaque at scroll 0 and fully transparent once progress reaches fadeEnd;
// past that it is skipped at render time but never unloaded.
type Crystal struct {
	fadeEnd   float32
	spinSpeed float64

	opacity float32
	angle   float64
}

// NewCrystal creates the fade state. fadeEnd is the scroll fraction at which
// opacity reaches zero; spinSpeed is in radians per second.
func NewCrystal(fadeEnd float32, spinSpeed float64) *Crystal {
	if fadeEnd <= 0 {
		fadeEnd = 0.2
	}
	return &Crystal{fadeEnd: fadeEnd, spinSpeed: spinSpeed, opacity: 1}
}

// Update recomputes opacity from the scroll fraction and advances the spin.
// Rotation runs on wall-clock time, independent of scroll.
func (c *Crystal) Update(s float32, dt float64) {
	c.opacity = clamp01(1 - clamp01(s)/c.fadeEnd)
	c.angle = math.Mod(c.angle+c.spinSpeed*dt, 2*math.Pi)
}

// Opacity returns the current opacity in [0,1].
func (c *Crystal) Opacity() float32 {
	return c.opacity
}

// Visible reports whether the model should be drawn this frame.
func (c *Crystal) Visible() bool {
	return c.opacity > 0
}

// Angle returns the accumulated Y rotation in radians.
func (c *Crystal) Angle() float32 {
	return float32(c.angle)
}
