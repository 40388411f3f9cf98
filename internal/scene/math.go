package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func clamp01(v float32) float32 {
	return mgl32.Clamp(v, 0, 1)
}

// smoothstep is the cubic Hermite ease 3t² - 2t³ with t clamped to [0,1].
func smoothstep(t float32) float32 {
	t = clamp01(t)
	return t * t * (3 - 2*t)
}

// smoothing converts an approach rate (1/seconds) and a frame's elapsed
// time into a lerp factor, keeping motion speed independent of refresh rate.
func smoothing(rate, dt float64) float32 {
	return float32(1 - math.Exp(-rate*dt))
}
