package mesh

// Grid builds a width x height plane in the local XY plane facing +Z, split
// into cols x rows quads. Vertex (ix, iy) sits at
//
//	x = ix*width/cols - width/2,  y = height/2 - iy*height/rows
//	u = ix/cols,                  v = 1 - iy/rows
//
// so x = (u-0.5)*width and y = (v-0.5)*height for every vertex.
func Grid(width, height float32, cols, rows int) *Mesh {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	vertices := make([]Vertex, 0, (cols+1)*(rows+1))
	for iy := 0; iy <= rows; iy++ {
		v := 1 - float32(iy)/float32(rows)
		for ix := 0; ix <= cols; ix++ {
			u := float32(ix) / float32(cols)
			vertices = append(vertices, Vertex{
				Position: [3]float32{(u - 0.5) * width, (v - 0.5) * height, 0},
				Normal:   [3]float32{0, 0, 1},
				UV:       [2]float32{u, v},
			})
		}
	}

	indices := make([]uint32, 0, cols*rows*6)
	stride := uint32(cols + 1)
	for iy := uint32(0); iy < uint32(rows); iy++ {
		for ix := uint32(0); ix < uint32(cols); ix++ {
			a := iy*stride + ix
			b := a + stride
			c := b + 1
			d := a + 1
			indices = append(indices, a, b, d, b, c, d)
		}
	}

	return &Mesh{Vertices: vertices, Indices: indices, Bounds: computeBounds(vertices)}
}

// Quad returns a unit square centred on the origin in the XY plane with UVs
// spanning [0,1]. Scaled by 2 it covers clip space.
func Quad() *Mesh {
	return Grid(1, 1, 1, 1)
}
