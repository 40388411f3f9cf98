package scene

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testScene(t *testing.T) (*Scene, *Input) {
	t.Helper()
	in := NewInput(4000, 1)
	in.SetViewport(1280, 720)

	rnd := rand.New(rand.NewSource(1))
	field := NewField(
		SphereFormation(64, 3, rnd),
		BeltFormation(64, 2, 4, 0.4, 0.3, rnd),
		SphereFormation(64, 2, rnd),
		4.35,
	)
	rig := NewRig(DefaultWaypoints(), mgl32.DegToRad(45), 1280.0/720, 0.1, 100)
	crystal := NewCrystal(0.2, 0.4)
	overlay := NewOverlay(0.02, 0.12, 8, nil)
	overlay.SetModel(Bounds{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}})
	overlay.Attach(func() Rect { return Rect{0, 0, 800, 200} }, Layout{Fit: FitHeight, FitAmount: 0.8})

	return New(in, rig, field, crystal, overlay, 1.2, 0.35), in
}

func TestTickAtRest(t *testing.T) {
	s, _ := testScene(t)
	s.Tick(1.0 / 60)

	if got := s.Camera.Position(); !got.ApproxEqualThreshold(s.Camera.Waypoints[0], 1e-5) {
		t.Errorf("camera = %v, want first waypoint %v", got, s.Camera.Waypoints[0])
	}
	if !s.Crystal.Visible() || s.Crystal.Opacity() != 1 {
		t.Errorf("crystal opacity=%v visible=%v, want fully opaque", s.Crystal.Opacity(), s.Crystal.Visible())
	}
	if got := s.Overlay.Opacity(); got != 0 {
		t.Errorf("overlay opacity = %v, want 0", got)
	}
}

func TestTickFullyScrolled(t *testing.T) {
	s, in := testScene(t)
	in.Scroll(1e6)
	for i := 0; i < 600; i++ {
		s.Tick(1.0 / 60)
	}

	if got := s.Camera.Position(); !got.ApproxEqualThreshold(s.Camera.Waypoints[2], 1e-5) {
		t.Errorf("camera = %v, want last waypoint %v", got, s.Camera.Waypoints[2])
	}
	if s.Crystal.Visible() || s.Crystal.Opacity() != 0 {
		t.Errorf("crystal opacity=%v visible=%v, want gone", s.Crystal.Opacity(), s.Crystal.Visible())
	}
	if got := s.Overlay.Opacity(); got < 0.999 {
		t.Errorf("overlay opacity = %v, want ~1", got)
	}
}

func TestTickSegmentBoundary(t *testing.T) {
	s, in := testScene(t)
	in.Scroll(1640) // exactly half the scrollable extent
	s.Tick(1.0 / 60)

	// At s=0.5 the path switches pairs and p resets: the camera sits on the
	// middle waypoint shared by both segments.
	if got := s.Camera.Position(); !got.ApproxEqualThreshold(s.Camera.Waypoints[1], 1e-5) {
		t.Errorf("camera = %v, want middle waypoint %v", got, s.Camera.Waypoints[1])
	}
}
