package mesh

import "testing"

func TestGridCounts(t *testing.T) {
	m := Grid(20, 20, 40, 30)
	if got, want := len(m.Vertices), 41*31; got != want {
		t.Errorf("vertices = %d, want %d", got, want)
	}
	if got, want := m.TriangleCount(), 40*30*2; got != want {
		t.Errorf("triangles = %d, want %d", got, want)
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestGridUVMatchesPosition(t *testing.T) {
	const w, h = 20, 10
	m := Grid(w, h, 8, 4)
	for i, v := range m.Vertices {
		x := (v.UV[0] - 0.5) * w
		y := (v.UV[1] - 0.5) * h
		if abs(v.Position[0]-x) > 1e-5 || abs(v.Position[1]-y) > 1e-5 || v.Position[2] != 0 {
			t.Errorf("vertex %d: pos %v, uv %v", i, v.Position, v.UV)
		}
	}
	first, last := m.Vertices[0], m.Vertices[len(m.Vertices)-1]
	if first.UV != [2]float32{0, 1} || last.UV != [2]float32{1, 0} {
		t.Errorf("corner uvs: first %v last %v", first.UV, last.UV)
	}
	if m.Bounds.Min != [3]float32{-10, -5, 0} || m.Bounds.Max != [3]float32{10, 5, 0} {
		t.Errorf("bounds = %+v", m.Bounds)
	}
}

func TestGridFacesUp(t *testing.T) {
	m := Grid(2, 2, 1, 1)
	for tri := 0; tri < m.TriangleCount(); tri++ {
		a := m.Vertices[m.Indices[tri*3]].Position
		b := m.Vertices[m.Indices[tri*3+1]].Position
		c := m.Vertices[m.Indices[tri*3+2]].Position
		// z of (b-a) x (c-a)
		z := (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
		if z <= 0 {
			t.Errorf("triangle %d wound clockwise", tri)
		}
	}
}

func TestFloatsLayout(t *testing.T) {
	m := Quad()
	f := m.Floats()
	if len(f) != len(m.Vertices)*VertexStride/4 {
		t.Fatalf("len = %d", len(f))
	}
	v := m.Vertices[1]
	if f[8] != v.Position[0] || f[14] != v.UV[0] || f[15] != v.UV[1] {
		t.Errorf("vertex 1 not at offset 8: %v", f[8:16])
	}
}

func TestBox(t *testing.T) {
	m := Box(2, 1, 4)
	if len(m.Vertices) != 24 || m.TriangleCount() != 12 {
		t.Errorf("box has %d vertices, %d triangles", len(m.Vertices), m.TriangleCount())
	}
	if m.Bounds.Min != [3]float32{-1, -0.5, -2} || m.Bounds.Max != [3]float32{1, 0.5, 2} {
		t.Errorf("bounds = %+v", m.Bounds)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
