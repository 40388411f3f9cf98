package scene

import "github.com/go-gl/mathgl/mgl32"

// Rig moves the camera along a two-segment piecewise path between three
// fixed waypoints, keyed by scroll fraction, always looking at the origin.
type Rig struct {
	Waypoints [3]mgl32.Vec3

	fovy   float32
	aspect float32
	near   float32
	far    float32

	position mgl32.Vec3
}

// DefaultWaypoints places the camera front-high, side, and far-top.
func DefaultWaypoints() [3]mgl32.Vec3 {
	return [3]mgl32.Vec3{
		{0, 1.2, 7},
		{6, 0.5, 2.5},
		{0, 5.5, 9},
	}
}

// NewRig creates a camera rig. fovy is in radians.
func NewRig(waypoints [3]mgl32.Vec3, fovy, aspect, near, far float32) *Rig {
	return &Rig{
		Waypoints: waypoints,
		fovy:      fovy,
		aspect:    aspect,
		near:      near,
		far:       far,
		position:  waypoints[0],
	}
}

// SetAspect updates the projection aspect ratio on window resize.
func (r *Rig) SetAspect(aspect float32) {
	if aspect > 0 {
		r.aspect = aspect
	}
}

// Update positions the camera for the given scroll fraction, using the same
// segment split as the particle blend.
func (r *Rig) Update(s float32) {
	seg, p := blendSegment(s)
	r.position = lerpVec3(r.Waypoints[seg], r.Waypoints[seg+1], p)
}

// Position returns the current camera position.
func (r *Rig) Position() mgl32.Vec3 {
	return r.position
}

// View returns the look-at-origin view matrix.
func (r *Rig) View() mgl32.Mat4 {
	return mgl32.LookAtV(r.position, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective projection matrix.
func (r *Rig) Projection() mgl32.Mat4 {
	return mgl32.Perspective(r.fovy, r.aspect, r.near, r.far)
}

// PointerRay casts a ray from the camera through the pointer's normalized
// device coordinates. It returns the ray origin and normalized direction.
func (r *Rig) PointerRay(ndc mgl32.Vec2) (origin, dir mgl32.Vec3) {
	inv := r.Projection().Mul4(r.View()).Inv()
	near := unproject(inv, mgl32.Vec4{ndc.X(), ndc.Y(), -1, 1})
	far := unproject(inv, mgl32.Vec4{ndc.X(), ndc.Y(), 1, 1})
	return near, far.Sub(near).Normalize()
}

// IntersectZPlane intersects a ray with the plane z = 0 (normal (0,0,1)
// through the origin). ok is false when the ray is parallel to the plane or
// the hit lies behind the ray origin.
func IntersectZPlane(origin, dir mgl32.Vec3) (hit mgl32.Vec3, ok bool) {
	const eps = 1e-6
	if dir.Z() > -eps && dir.Z() < eps {
		return mgl32.Vec3{}, false
	}
	t := -origin.Z() / dir.Z()
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	return origin.Add(dir.Mul(t)), true
}

func unproject(inv mgl32.Mat4, v mgl32.Vec4) mgl32.Vec3 {
	out := inv.Mul4x1(v)
	return out.Vec3().Mul(1 / out.W())
}
