// Package scene implements the scroll-driven animation logic: particle
// formations, the two-stage camera/particle blend, pointer repulsion, and
// the fade state machines for the crystal and overlay models. The package
// owns no GL state; rendering consumes the values it produces each tick.
package scene

import "github.com/go-gl/mathgl/mgl32"

// Scene ties the animated components together. It is constructed once at
// startup, ticked once per frame on the render thread, and holds all the
// mutable state the renderer reads.
type Scene struct {
	Input   *Input
	Camera  *Rig
	Field   *Field
	Crystal *Crystal
	Overlay *Overlay

	repelRadius   float32
	repelStrength float32
}

// New assembles a scene. The overlay's progress source is bound to the
// scene's own input.
func New(in *Input, cam *Rig, field *Field, crystal *Crystal, overlay *Overlay, repelRadius, repelStrength float32) *Scene {
	overlay.BindProgress(in.Progress)
	return &Scene{
		Input:         in,
		Camera:        cam,
		Field:         field,
		Crystal:       crystal,
		Overlay:       overlay,
		repelRadius:   repelRadius,
		repelStrength: repelStrength,
	}
}

// Tick advances every component by one frame. dt is the elapsed time since
// the previous frame in seconds.
func (s *Scene) Tick(dt float64) {
	p := s.Input.Progress()

	s.Camera.Update(p)
	s.Field.Update(p, dt)

	origin, dir := s.Camera.PointerRay(s.Input.Pointer())
	if hit, ok := IntersectZPlane(origin, dir); ok {
		s.Field.Repel(hit, s.repelRadius, s.repelStrength)
	}

	s.Crystal.Update(p, dt)
	s.Overlay.Update(dt)
}

// CrystalModelMatrix returns the crystal's model transform for this frame.
func (s *Scene) CrystalModelMatrix() mgl32.Mat4 {
	return mgl32.HomogRotate3D(s.Crystal.Angle(), mgl32.Vec3{0, 1, 0})
}
