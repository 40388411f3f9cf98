package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Field owns the live particle buffer and the three formations it morphs
// between. The buffer is allocated once and only ever eased toward targets,
// never reallocated or snapped.
type Field struct {
	formations [3]Formation
	buf        []mgl32.Vec3
	rate       float64
}

// NewField creates a particle field initialized to the first formation.
// All three formations must have equal length.
func NewField(initial, belt, sphere2 Formation, smoothingRate float64) *Field {
	if len(belt) != len(initial) || len(sphere2) != len(initial) {
		panic("scene: formations must have equal length")
	}
	buf := make([]mgl32.Vec3, len(initial))
	copy(buf, initial)
	return &Field{
		formations: [3]Formation{initial, belt, sphere2},
		buf:        buf,
		rate:       smoothingRate,
	}
}

// blendSegment maps a scroll fraction onto the two-segment piecewise path:
// segment 0 blends formation 0→1 over s∈[0,0.5), segment 1 blends 1→2 over
// s∈[0.5,1]. p resets to 0 at the boundary; the velocity discontinuity there
// is intentional.
func blendSegment(s float32) (seg int, p float32) {
	s = clamp01(s)
	if s < 0.5 {
		return 0, s * 2
	}
	return 1, (s - 0.5) * 2
}

// Update eases every particle toward its blend target for the current scroll
// fraction. dt is the elapsed frame time in seconds.
func (f *Field) Update(s float32, dt float64) {
	seg, p := blendSegment(s)
	src, dst := f.formations[seg], f.formations[seg+1]
	k := smoothing(f.rate, dt)
	for i := range f.buf {
		target := lerpVec3(src[i], dst[i], p)
		f.buf[i] = lerpVec3(f.buf[i], target, k)
	}
}

// Repel pushes particles within radius of point directly away from it, with
// closer particles pushed harder. The impulse lands in position, not in a
// persistent velocity, so it decays only through subsequent Update easing.
func (f *Field) Repel(point mgl32.Vec3, radius, strength float32) {
	if radius <= 0 {
		return
	}
	r2 := radius * radius
	for i, pos := range f.buf {
		off := pos.Sub(point)
		d2 := off.LenSqr()
		if d2 >= r2 || d2 == 0 {
			continue
		}
		d := sqrt32(d2)
		falloff := (radius - d) / radius
		f.buf[i] = pos.Add(off.Mul(strength * falloff / d))
	}
}

// Positions exposes the live buffer for upload to the renderer. Callers must
// not retain it across frames.
func (f *Field) Positions() []mgl32.Vec3 {
	return f.buf
}

// Len returns the particle count.
func (f *Field) Len() int {
	return len(f.buf)
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
