package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testRig() *Rig {
	return NewRig(DefaultWaypoints(), mgl32.DegToRad(45), 16.0/9, 0.1, 100)
}

func TestRigWaypoints(t *testing.T) {
	r := testRig()
	w := r.Waypoints

	tests := []struct {
		s    float32
		want mgl32.Vec3
	}{
		{0, w[0]},
		{0.25, lerpVec3(w[0], w[1], 0.5)},
		{0.5, w[1]}, // segment boundary: p resets, position continuous
		{0.75, lerpVec3(w[1], w[2], 0.5)},
		{1, w[2]},
	}
	for _, tt := range tests {
		r.Update(tt.s)
		if got := r.Position(); !got.ApproxEqualThreshold(tt.want, 1e-5) {
			t.Errorf("Update(%v) position = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestRigLooksAtOrigin(t *testing.T) {
	r := testRig()
	for _, s := range []float32{0, 0.3, 0.5, 0.9, 1} {
		r.Update(s)
		// The origin must map to the view-space -Z axis.
		o := r.View().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
		if mgl32.Abs(o.X()) > 1e-4 || mgl32.Abs(o.Y()) > 1e-4 {
			t.Errorf("s=%v: origin in view space = %v, want on -Z axis", s, o)
		}
		if o.Z() >= 0 {
			t.Errorf("s=%v: origin not in front of camera, z=%v", s, o.Z())
		}
	}
}

func TestPointerRayCenterHitsOrigin(t *testing.T) {
	r := testRig()
	r.Update(0)

	origin, dir := r.PointerRay(mgl32.Vec2{0, 0})
	hit, ok := IntersectZPlane(origin, dir)
	if !ok {
		t.Fatal("center ray missed z=0 plane")
	}
	// The camera looks at the origin, so the center ray passes through it.
	if hit.Len() > 1e-2 {
		t.Errorf("center ray hit %v, want origin", hit)
	}
}

func TestIntersectZPlane(t *testing.T) {
	tests := []struct {
		name        string
		origin, dir mgl32.Vec3
		want        mgl32.Vec3
		wantOK      bool
	}{
		{
			name:   "StraightOn",
			origin: mgl32.Vec3{1, 2, 5},
			dir:    mgl32.Vec3{0, 0, -1},
			want:   mgl32.Vec3{1, 2, 0},
			wantOK: true,
		},
		{
			name:   "Parallel",
			origin: mgl32.Vec3{0, 0, 5},
			dir:    mgl32.Vec3{1, 0, 0},
			wantOK: false,
		},
		{
			name:   "BehindOrigin",
			origin: mgl32.Vec3{0, 0, 5},
			dir:    mgl32.Vec3{0, 0, 1},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := IntersectZPlane(tt.origin, tt.dir)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !hit.ApproxEqualThreshold(tt.want, 1e-5) {
				t.Errorf("hit = %v, want %v", hit, tt.want)
			}
		})
	}
}
