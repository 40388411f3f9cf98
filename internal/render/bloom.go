package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Bloom implements the glow pass: the scene renders into an offscreen
// target, bright regions are extracted and blurred at half resolution, and
// the composite step adds the blur back over the base image.
type Bloom struct {
	width  int32
	height int32

	sceneFBO   uint32
	sceneTex   uint32
	sceneDepth uint32

	brightFBO uint32
	brightTex uint32
	pingFBO   [2]uint32
	pingTex   [2]uint32

	brightProgram    uint32
	blurProgram      uint32
	compositeProgram uint32

	thresholdLoc int32
	directionLoc int32
	strengthLoc  int32

	quadVAO uint32
	quadVBO uint32

	Threshold float32
	Strength  float32
}

// NewBloom builds the framebuffer chain for a w by h scene.
func NewBloom(w, h int) (*Bloom, error) {
	b := &Bloom{Threshold: 0.6, Strength: 1.2}

	var err error
	if b.brightProgram, err = newProgram(quadVertexShader, brightFragmentShader); err != nil {
		return nil, fmt.Errorf("render: bright program: %w", err)
	}
	if b.blurProgram, err = newProgram(quadVertexShader, blurFragmentShader); err != nil {
		return nil, fmt.Errorf("render: blur program: %w", err)
	}
	if b.compositeProgram, err = newProgram(quadVertexShader, compositeFragmentShader); err != nil {
		return nil, fmt.Errorf("render: composite program: %w", err)
	}
	b.thresholdLoc = uniform(b.brightProgram, "threshold")
	b.directionLoc = uniform(b.blurProgram, "direction")
	b.strengthLoc = uniform(b.compositeProgram, "bloomStrength")

	quad := []float32{
		-1, -1, 1, -1, -1, 1,
		-1, 1, 1, -1, 1, 1,
	}
	gl.GenVertexArrays(1, &b.quadVAO)
	gl.BindVertexArray(b.quadVAO)
	gl.GenBuffers(1, &b.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	vertAttrib := uint32(gl.GetAttribLocation(b.brightProgram, gl.Str("vp\x00")))
	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 2, gl.FLOAT, false, 0, gl.PtrOffset(0))
	gl.BindVertexArray(0)

	if err := b.Resize(w, h); err != nil {
		return nil, err
	}
	return b, nil
}

// Resize rebuilds the render targets for a new framebuffer size.
func (b *Bloom) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	b.deleteTargets()
	b.width, b.height = int32(w), int32(h)

	b.sceneFBO, b.sceneTex = newColorTarget(b.width, b.height)
	gl.GenRenderbuffers(1, &b.sceneDepth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, b.sceneDepth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, b.width, b.height)
	gl.BindFramebuffer(gl.FRAMEBUFFER, b.sceneFBO)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, b.sceneDepth)
	if err := checkFramebuffer("scene"); err != nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return err
	}

	// Bright extraction and blur run at half resolution.
	hw, hh := b.width/2, b.height/2
	if hw < 1 {
		hw = 1
	}
	if hh < 1 {
		hh = 1
	}
	b.brightFBO, b.brightTex = newColorTarget(hw, hh)
	if err := checkFramebuffer("bright"); err != nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return err
	}
	for i := range b.pingFBO {
		b.pingFBO[i], b.pingTex[i] = newColorTarget(hw, hh)
		if err := checkFramebuffer("blur"); err != nil {
			gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
			return err
		}
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

// checkFramebuffer verifies the completeness of the currently bound target.
func checkFramebuffer(name string) error {
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("render: incomplete %s framebuffer: %#x", name, status)
	}
	return nil
}

// BeginScene binds the offscreen scene target and clears it.
func (b *Bloom) BeginScene() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, b.sceneFBO)
	gl.Viewport(0, 0, b.width, b.height)
	gl.ClearColor(0.02, 0.02, 0.05, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Composite extracts and blurs the bright regions, then draws the final
// image to the default framebuffer.
func (b *Bloom) Composite() {
	gl.Disable(gl.DEPTH_TEST)
	defer gl.Enable(gl.DEPTH_TEST)

	hw, hh := b.width/2, b.height/2
	if hw < 1 {
		hw = 1
	}
	if hh < 1 {
		hh = 1
	}

	// Bright pass.
	gl.BindFramebuffer(gl.FRAMEBUFFER, b.brightFBO)
	gl.Viewport(0, 0, hw, hh)
	gl.UseProgram(b.brightProgram)
	gl.Uniform1f(b.thresholdLoc, b.Threshold)
	b.drawQuad(b.sceneTex, 0)

	// Separable blur, ping-ponging between the two half-res targets.
	src := b.brightTex
	for i := 0; i < 4; i++ {
		gl.BindFramebuffer(gl.FRAMEBUFFER, b.pingFBO[i%2])
		gl.UseProgram(b.blurProgram)
		if i%2 == 0 {
			gl.Uniform2f(b.directionLoc, 1.0/float32(hw), 0)
		} else {
			gl.Uniform2f(b.directionLoc, 0, 1.0/float32(hh))
		}
		b.drawQuad(src, 0)
		src = b.pingTex[i%2]
	}

	// Composite to the default framebuffer.
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, b.width, b.height)
	gl.UseProgram(b.compositeProgram)
	gl.Uniform1f(b.strengthLoc, b.Strength)
	gl.Uniform1i(uniform(b.compositeProgram, "scene"), 0)
	gl.Uniform1i(uniform(b.compositeProgram, "bloom"), 1)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, src)
	b.drawQuad(b.sceneTex, 0)
}

func (b *Bloom) drawQuad(tex uint32, unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.BindVertexArray(b.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

// Delete releases all GL resources.
func (b *Bloom) Delete() {
	b.deleteTargets()
	gl.DeleteBuffers(1, &b.quadVBO)
	gl.DeleteVertexArrays(1, &b.quadVAO)
	gl.DeleteProgram(b.brightProgram)
	gl.DeleteProgram(b.blurProgram)
	gl.DeleteProgram(b.compositeProgram)
}

func (b *Bloom) deleteTargets() {
	if b.sceneFBO != 0 {
		gl.DeleteFramebuffers(1, &b.sceneFBO)
		gl.DeleteTextures(1, &b.sceneTex)
		gl.DeleteRenderbuffers(1, &b.sceneDepth)
		gl.DeleteFramebuffers(1, &b.brightFBO)
		gl.DeleteTextures(1, &b.brightTex)
		gl.DeleteFramebuffers(2, &b.pingFBO[0])
		gl.DeleteTextures(2, &b.pingTex[0])
	}
}

func newColorTarget(w, h int32) (fbo, tex uint32) {
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)

	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16F, w, h, 0, gl.RGBA, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex, 0)
	return fbo, tex
}
