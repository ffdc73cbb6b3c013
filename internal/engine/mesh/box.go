package mesh

// Box returns an axis-aligned box centred on the origin with per-face normals.
// Floaters are drawn with it.
func Box(sx, sy, sz float32) *Mesh {
	hx, hy, hz := sx/2, sy/2, sz/2
	faces := []struct {
		n       [3]float32
		corners [4][3]float32
	}{
		{[3]float32{1, 0, 0}, [4][3]float32{{hx, -hy, hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}, {-hx, hy, -hz}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}, {-hx, hy, -hz}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}, {-hx, -hy, hz}}},
		{[3]float32{0, 0, 1}, [4][3]float32{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}}},
	}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	m := &Mesh{}
	for _, f := range faces {
		base := uint32(len(m.Vertices))
		for i, c := range f.corners {
			m.Vertices = append(m.Vertices, Vertex{Position: c, Normal: f.n, UV: uvs[i]})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	m.Bounds = computeBounds(m.Vertices)
	return m
}
