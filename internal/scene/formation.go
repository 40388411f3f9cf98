package scene

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Formation is a fixed point-cloud layout particles blend toward. Formations
// are generated once at startup and treated as read-only afterwards.
type Formation []mgl32.Vec3

// SphereFormation samples n points uniformly on a sphere of the given radius.
func SphereFormation(n int, radius float64, rnd *rand.Rand) Formation {
	f := make(Formation, n)
	for i := range f {
		z := rnd.Float64()*2 - 1
		theta := rnd.Float64() * 2 * math.Pi
		r := math.Sqrt(1 - z*z)
		f[i] = mgl32.Vec3{
			float32(r * math.Cos(theta) * radius),
			float32(r * math.Sin(theta) * radius),
			float32(z * radius),
		}
	}
	return f
}

// BeltFormation samples n points on a tilted annulus: radii uniform in
// [inner, outer], a small vertical jitter of ±thickness/2, then the whole
// ring rotated around X by tilt radians.
func BeltFormation(n int, inner, outer, thickness, tilt float64, rnd *rand.Rand) Formation {
	sin, cos := math.Sin(tilt), math.Cos(tilt)
	f := make(Formation, n)
	for i := range f {
		theta := rnd.Float64() * 2 * math.Pi
		r := inner + rnd.Float64()*(outer-inner)
		x := r * math.Cos(theta)
		y := (rnd.Float64() - 0.5) * thickness
		z := r * math.Sin(theta)
		f[i] = mgl32.Vec3{
			float32(x),
			float32(y*cos - z*sin),
			float32(y*sin + z*cos),
		}
	}
	return f
}
