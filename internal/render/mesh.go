package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"driftscene/internal/gltf"
)

// Mesh draws a loaded model's triangles with the shared crystal material:
// derivative flat shading, fresnel rim, optional equirect environment
// reflections.
type Mesh struct {
	program uint32
	vao     uint32
	vbo     uint32
	count   int32

	mvpLoc     int32
	modelLoc   int32
	cameraLoc  int32
	colorLoc   int32
	opacityLoc int32
	envLoc     int32
	useEnvLoc  int32

	envMap uint32

	BaseColor mgl32.Vec3
}

// NewMesh uploads the model's triangle geometry.
func NewMesh(model *gltf.Model) (*Mesh, error) {
	positions := model.TrianglePositions()
	if len(positions) == 0 {
		return nil, fmt.Errorf("render: model has no triangle geometry")
	}

	program, err := newProgram(meshVertexShader, meshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("render: mesh program: %w", err)
	}

	m := &Mesh{
		program:    program,
		count:      int32(len(positions)),
		mvpLoc:     uniform(program, "mvp"),
		modelLoc:   uniform(program, "model"),
		cameraLoc:  uniform(program, "cameraPos"),
		colorLoc:   uniform(program, "baseColor"),
		opacityLoc: uniform(program, "opacity"),
		envLoc:     uniform(program, "envMap"),
		useEnvLoc:  uniform(program, "useEnvMap"),
		BaseColor:  mgl32.Vec3{0.35, 0.45, 0.8},
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(positions)*3*4, gl.Ptr(positions), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(program, gl.Str("vp\x00")))
	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 3, gl.FLOAT, false, 0, gl.PtrOffset(0))

	gl.BindVertexArray(0)
	return m, nil
}

// SetEnvMap assigns the shared environment texture; 0 disables reflections.
func (m *Mesh) SetEnvMap(tex uint32) {
	m.envMap = tex
}

// Draw renders the mesh. model is the object transform, viewProj the
// combined camera matrix.
func (m *Mesh) Draw(viewProj, model mgl32.Mat4, cameraPos mgl32.Vec3, opacity float32) {
	mvp := viewProj.Mul4(model)

	gl.UseProgram(m.program)
	gl.UniformMatrix4fv(m.mvpLoc, 1, false, &mvp[0])
	gl.UniformMatrix4fv(m.modelLoc, 1, false, &model[0])
	gl.Uniform3f(m.cameraLoc, cameraPos.X(), cameraPos.Y(), cameraPos.Z())
	gl.Uniform3f(m.colorLoc, m.BaseColor.X(), m.BaseColor.Y(), m.BaseColor.Z())
	gl.Uniform1f(m.opacityLoc, opacity)

	if m.envMap != 0 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, m.envMap)
		gl.Uniform1i(m.envLoc, 0)
		gl.Uniform1f(m.useEnvLoc, 1)
	} else {
		gl.Uniform1f(m.useEnvLoc, 0)
	}

	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	gl.BindVertexArray(0)
}

// Delete releases GL resources.
func (m *Mesh) Delete() {
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteProgram(m.program)
}
