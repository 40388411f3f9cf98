package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Points draws the particle buffer as round sprites. The vertex buffer is
// sized once for the particle count and refilled every frame.
type Points struct {
	program uint32
	vao     uint32
	vbo     uint32
	count   int32

	mvpLoc       int32
	colorLoc     int32
	opacityLoc   int32
	pointSizeLoc int32

	Color     mgl32.Vec3
	PointSize float32
}

// NewPoints allocates GL state for count particles.
func NewPoints(count int) (*Points, error) {
	program, err := newProgram(pointVertexShader, pointFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("render: points program: %w", err)
	}

	p := &Points{
		program:      program,
		count:        int32(count),
		mvpLoc:       uniform(program, "mvp"),
		colorLoc:     uniform(program, "color"),
		opacityLoc:   uniform(program, "opacity"),
		pointSizeLoc: uniform(program, "pointSize"),
		Color:        mgl32.Vec3{0.55, 0.75, 1.0},
		PointSize:    24,
	}

	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)

	gl.GenBuffers(1, &p.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, count*3*4, nil, gl.DYNAMIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(program, gl.Str("vp\x00")))
	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 3, gl.FLOAT, false, 0, gl.PtrOffset(0))

	gl.BindVertexArray(0)
	return p, nil
}

// Upload refills the vertex buffer from the live particle positions.
func (p *Points) Upload(positions []mgl32.Vec3) {
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(positions)*3*4, gl.Ptr(positions))
}

// Draw renders the particles with the given combined matrix and opacity.
func (p *Points) Draw(mvp mgl32.Mat4, opacity float32) {
	gl.UseProgram(p.program)
	gl.UniformMatrix4fv(p.mvpLoc, 1, false, &mvp[0])
	gl.Uniform3f(p.colorLoc, p.Color.X(), p.Color.Y(), p.Color.Z())
	gl.Uniform1f(p.opacityLoc, opacity)
	gl.Uniform1f(p.pointSizeLoc, p.PointSize)

	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.POINTS, 0, p.count)
	gl.BindVertexArray(0)
}

// Delete releases GL resources.
func (p *Points) Delete() {
	gl.DeleteBuffers(1, &p.vbo)
	gl.DeleteVertexArrays(1, &p.vao)
	gl.DeleteProgram(p.program)
}
