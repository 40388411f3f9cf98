package render

import (
	"fmt"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
)

// LoadEnvMap decodes a Radiance HDR file and uploads it as a float RGB
// texture for equirectangular environment sampling.
func LoadEnvMap(path string) (uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("render: open env map %s: %w", path, err)
	}
	defer f.Close()

	img, err := rgbe.Decode(f)
	if err != nil {
		return 0, fmt.Errorf("render: env map %s: %w", path, err)
	}
	hdrImg, ok := img.(hdr.Image)
	if !ok {
		return 0, fmt.Errorf("render: env map %s: decoded image has no high dynamic range", path)
	}

	bounds := hdrImg.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pix := envPixels(hdrImg)

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB16F, int32(w), int32(h), 0, gl.RGB, gl.FLOAT, gl.Ptr(pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex, nil
}

// envPixels flattens the decoded image into tightly packed float32 RGB
// triplets, row-major from the top-left, the layout TexImage2D expects.
func envPixels(img hdr.Image) []float32 {
	bounds := img.Bounds()
	pix := make([]float32, 0, bounds.Dx()*bounds.Dy()*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.HDRAt(x, y).HDRRGBA()
			pix = append(pix, float32(r), float32(g), float32(b))
		}
	}
	return pix
}
