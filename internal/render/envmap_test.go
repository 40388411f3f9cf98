package render

import (
	"image"
	"testing"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/hdrcolor"
)

func TestEnvPixels(t *testing.T) {
	img := hdr.NewRGB(image.Rect(0, 0, 2, 2))
	img.SetRGB(0, 0, hdrcolor.RGB{R: 1, G: 0.5, B: 0.25})
	img.SetRGB(1, 0, hdrcolor.RGB{R: 2, G: 3, B: 4})
	img.SetRGB(0, 1, hdrcolor.RGB{})
	img.SetRGB(1, 1, hdrcolor.RGB{R: 0.125})

	pix := envPixels(img)
	want := []float32{
		1, 0.5, 0.25,
		2, 3, 4,
		0, 0, 0,
		0.125, 0, 0,
	}
	if len(pix) != len(want) {
		t.Fatalf("len = %d, want %d", len(pix), len(want))
	}
	for i := range want {
		if pix[i] != want[i] {
			t.Errorf("pix[%d] = %v, want %v", i, pix[i], want[i])
		}
	}
}

func TestEnvPixelsOffsetBounds(t *testing.T) {
	// A sub-rectangle not anchored at the origin must still flatten from its
	// own top-left corner.
	img := hdr.NewRGB(image.Rect(3, 5, 4, 6))
	img.SetRGB(3, 5, hdrcolor.RGB{R: 7})

	pix := envPixels(img)
	if len(pix) != 3 {
		t.Fatalf("len = %d, want 3", len(pix))
	}
	if pix[0] != 7 {
		t.Errorf("pix[0] = %v, want 7", pix[0])
	}
}
