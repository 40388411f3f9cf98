package scene

import "testing"

func TestProgress(t *testing.T) {
	in := NewInput(4000, 1)
	in.SetViewport(1280, 720)

	if got := in.Progress(); got != 0 {
		t.Errorf("initial progress = %v, want 0", got)
	}

	in.Scroll(1640) // half of the 3280px scrollable extent
	if got := in.Progress(); got != 0.5 {
		t.Errorf("progress = %v, want 0.5", got)
	}

	in.Scroll(1e6) // past the end: clamps
	if got := in.Progress(); got != 1 {
		t.Errorf("progress after overscroll = %v, want 1", got)
	}

	in.Scroll(-1e6)
	if got := in.Progress(); got != 0 {
		t.Errorf("progress after underscroll = %v, want 0", got)
	}
}

func TestProgressShortPage(t *testing.T) {
	// Page shorter than the viewport: the denominator floors at 1, so the
	// fraction is defined and stays at 0.
	in := NewInput(500, 1)
	in.SetViewport(1280, 720)
	in.Scroll(100)
	if got := in.Progress(); got != 0 {
		t.Errorf("progress = %v, want 0 for unscrollable page", got)
	}
}

func TestViewportShrinkReclamps(t *testing.T) {
	in := NewInput(2000, 1)
	in.SetViewport(800, 600)
	in.Scroll(1400) // full extent
	if got := in.Progress(); got != 1 {
		t.Fatalf("progress = %v, want 1", got)
	}

	// A taller viewport shrinks the extent; scrollTop must follow.
	in.SetViewport(800, 1500)
	if got := in.Progress(); got != 1 {
		t.Errorf("progress after resize = %v, want 1 (re-clamped scrollTop)", got)
	}
}

func TestSetPointerNDC(t *testing.T) {
	in := NewInput(4000, 1)
	in.SetViewport(1000, 500)

	tests := []struct {
		x, y  float64
		wantX float32
		wantY float32
	}{
		{500, 250, 0, 0},
		{0, 0, -1, 1},
		{1000, 500, 1, -1},
	}
	for _, tt := range tests {
		in.SetPointer(tt.x, tt.y)
		p := in.Pointer()
		if p.X() != tt.wantX || p.Y() != tt.wantY {
			t.Errorf("SetPointer(%v,%v) = %v, want (%v,%v)", tt.x, tt.y, p, tt.wantX, tt.wantY)
		}
	}
}
