// Package softpipe is the CPU reference implementation of the ocean passes.
// It bakes, composites and visualizes exactly like the GPU backend but into
// float slices, so the pipeline can be tested and previewed without a GL
// context.
package softpipe

import (
	"github.com/Faultbox/gerstner-ocean/internal/engine/texture"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/pipeline"
	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

// Precision selects the storage format of the G-buffer images.
type Precision int

const (
	Float32 Precision = iota // RGBA32F
	Float16                  // RGBA16F, values rounded to half floats
)

// GBuffer holds the two baked images as RGBA float rows. Row 0 is v near 0,
// matching GL texture orientation.
type GBuffer struct {
	W, H      int
	Position  []float32
	Normal    []float32
	precision Precision
	released  bool
}

// NewGBuffer allocates a zeroed w x h G-buffer.
func NewGBuffer(w, h int, p Precision) *GBuffer {
	return &GBuffer{
		W:         w,
		H:         h,
		Position:  make([]float32, w*h*4),
		Normal:    make([]float32, w*h*4),
		precision: p,
	}
}

// Size implements pipeline.GBuffer.
func (g *GBuffer) Size() pipeline.Size {
	return pipeline.Size{W: g.W, H: g.H}
}

// Release implements pipeline.GBuffer.
func (g *GBuffer) Release() {
	g.Position = nil
	g.Normal = nil
	g.released = true
}

func (g *GBuffer) clear() {
	clear(g.Position)
	clear(g.Normal)
}

func (g *GBuffer) store(x, y int, offset, normal math.Vec3) {
	i := (y*g.W + x) * 4
	copy(g.Position[i:i+4], []float32{offset.X, offset.Y, offset.Z, 1})
	copy(g.Normal[i:i+4], []float32{normal.X, normal.Y, normal.Z, 1})
}

func (g *GBuffer) quantize() {
	if g.precision == Float16 {
		texture.QuantizeHalf(g.Position)
		texture.QuantizeHalf(g.Normal)
	}
}

// Texel returns the RGBA value of the selected image at (x, y), clamped to the
// edges.
func (g *GBuffer) Texel(target pipeline.DebugTarget, x, y int) [4]float32 {
	x = clampInt(x, 0, g.W-1)
	y = clampInt(y, 0, g.H-1)
	src := g.Position
	if target == pipeline.DebugNormal {
		src = g.Normal
	}
	i := (y*g.W + x) * 4
	return [4]float32{src[i], src[i+1], src[i+2], src[i+3]}
}

// Fetch samples both images at (u, v) with nearest filtering and clamp-to-edge
// addressing, the way the composite vertex stage reads them.
func (g *GBuffer) Fetch(u, v float32) (offset, normal math.Vec3) {
	x := int(u * float32(g.W))
	y := int(v * float32(g.H))
	p := g.Texel(pipeline.DebugPosition, x, y)
	n := g.Texel(pipeline.DebugNormal, x, y)
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}, math.Vec3{X: n[0], Y: n[1], Z: n[2]}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
