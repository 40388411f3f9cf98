package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCrystalFade(t *testing.T) {
	tests := []struct {
		s           float32
		wantOpacity float32
		wantVisible bool
	}{
		{0, 1, true},
		{0.1, 0.5, true},
		{0.2, 0, false},
		{0.5, 0, false},
		{1, 0, false},
		{-1, 1, true},  // out-of-range scroll stays clamped
		{1.5, 0, false},
	}
	for _, tt := range tests {
		c := NewCrystal(0.2, 0)
		c.Update(tt.s, 1.0/60)
		if got := c.Opacity(); mgl32.Abs(got-tt.wantOpacity) > 1e-5 {
			t.Errorf("Update(%v) opacity = %v, want %v", tt.s, got, tt.wantOpacity)
		}
		if got := c.Visible(); got != tt.wantVisible {
			t.Errorf("Update(%v) visible = %v, want %v", tt.s, got, tt.wantVisible)
		}
	}
}

func TestCrystalSpinIndependentOfScroll(t *testing.T) {
	c := NewCrystal(0.2, 1)
	c.Update(1, 0.5) // fully scrolled out, still spinning
	if got := c.Angle(); mgl32.Abs(got-0.5) > 1e-5 {
		t.Errorf("angle = %v, want 0.5", got)
	}
	c.Update(0, 0.5)
	if got := c.Angle(); mgl32.Abs(got-1) > 1e-5 {
		t.Errorf("angle = %v, want 1", got)
	}
}

func TestSmoothstep(t *testing.T) {
	for _, tt := range []struct{ in, want float32 }{
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{-2, 0}, // clamps
		{3, 1},
	} {
		if got := smoothstep(tt.in); mgl32.Abs(got-tt.want) > 1e-6 {
			t.Errorf("smoothstep(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSmoothstepStrictlyIncreasing(t *testing.T) {
	prev := smoothstep(0)
	for i := 1; i <= 1000; i++ {
		v := smoothstep(float32(i) / 1000)
		if v <= prev {
			t.Fatalf("smoothstep not strictly increasing at t=%v: %v <= %v", float32(i)/1000, v, prev)
		}
		prev = v
	}
}
