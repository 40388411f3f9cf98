package scene

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSphereFormation(t *testing.T) {
	f := SphereFormation(500, 3, rand.New(rand.NewSource(42)))
	if len(f) != 500 {
		t.Fatalf("len = %d, want 500", len(f))
	}
	for i, p := range f {
		if d := p.Len(); mgl32.Abs(d-3) > 1e-4 {
			t.Fatalf("point %d at radius %v, want 3", i, d)
		}
	}
}

func TestBeltFormation(t *testing.T) {
	// Untilted belt: radius in [inner,outer] in the XZ plane, |Y| within
	// half the thickness.
	f := BeltFormation(500, 2, 4, 0.3, 0, rand.New(rand.NewSource(42)))
	for i, p := range f {
		r := mgl32.Vec2{p.X(), p.Z()}.Len()
		if r < 2-1e-4 || r > 4+1e-4 {
			t.Fatalf("point %d at ring radius %v, want [2,4]", i, r)
		}
		if mgl32.Abs(p.Y()) > 0.15+1e-4 {
			t.Fatalf("point %d at height %v, want |y| <= 0.15", i, p.Y())
		}
	}
}

func TestFormationsDeterministic(t *testing.T) {
	a := SphereFormation(100, 3, rand.New(rand.NewSource(7)))
	b := SphereFormation(100, 3, rand.New(rand.NewSource(7)))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs between identically seeded runs: %v vs %v", i, a[i], b[i])
		}
	}
}
