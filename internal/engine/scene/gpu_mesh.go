package scene

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/gerstner-ocean/internal/engine/mesh"
)

// gpuMesh is an uploaded indexed mesh using the mesh.Vertex layout.
type gpuMesh struct {
	vao   uint32
	vbo   uint32
	ebo   uint32
	count int32
}

func uploadMesh(m *mesh.Mesh) *gpuMesh {
	g := &gpuMesh{count: int32(len(m.Indices))}
	vertices := m.Floats()

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, mesh.VertexStride, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, mesh.VertexStride, 3*4)
	gl.EnableVertexAttribArray(1)
	// UV
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, mesh.VertexStride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return g
}

func (g *gpuMesh) draw() {
	gl.BindVertexArray(g.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

func (g *gpuMesh) destroy() {
	if g == nil {
		return
	}
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
		g.vbo = 0
	}
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
		g.ebo = 0
	}
}
