// Package mesh builds the CPU-side geometry the ocean passes draw: the
// subdivided plane, the full-screen quad and a small marker box for floaters.
// Upload to the GPU happens in the scene package.
package mesh

// Vertex is the interleaved vertex layout shared by every ocean program:
// location 0 position, 1 normal, 2 uv.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// VertexStride is the size of Vertex in bytes.
const VertexStride = 8 * 4

// Bounds is an axis-aligned box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Floats flattens the vertices for a buffer upload.
func (m *Mesh) Floats() []float32 {
	out := make([]float32, 0, len(m.Vertices)*8)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.UV[0], v.UV[1],
		)
	}
	return out
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

func computeBounds(vertices []Vertex) Bounds {
	b := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	for _, v := range vertices {
		for i := 0; i < 3; i++ {
			if v.Position[i] < b.Min[i] {
				b.Min[i] = v.Position[i]
			}
			if v.Position[i] > b.Max[i] {
				b.Max[i] = v.Position[i]
			}
		}
	}
	return b
}
