package softpipe

import (
	"fmt"

	"github.com/Faultbox/gerstner-ocean/internal/engine/mesh"
	"github.com/Faultbox/gerstner-ocean/internal/engine/texture"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/brdf"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/gerstner"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/pipeline"
	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

// ShadedVertex is one vertex of the composite pass output.
type ShadedVertex struct {
	UV       [2]float32
	Position math.Vec3 // world space, displaced
	Normal   math.Vec3 // world space, unit
	Color    math.Vec3
}

// Backend runs the passes on the CPU. The composite pass shades per vertex of
// the render mesh; the debug pass fills a viewport-sized image.
type Backend struct {
	Precision Precision

	env  *texture.Environment
	mesh *mesh.Mesh
	grid pipeline.Ocean

	// Outputs of the last Composite and Debug calls.
	Shaded    []ShadedVertex
	DebugView *Image
}

// New creates a CPU backend storing the G-buffer at precision p.
func New(p Precision) *Backend {
	return &Backend{Precision: p}
}

// SetEnvironment installs a decoded environment map. nil removes it and the
// composite pass falls back to the base color.
func (b *Backend) SetEnvironment(env *texture.Environment) {
	b.env = env
}

// AllocateGBuffer implements pipeline.Backend.
func (b *Backend) AllocateGBuffer(size pipeline.Size) (pipeline.GBuffer, error) {
	if size.W <= 0 || size.H <= 0 {
		return nil, fmt.Errorf("g-buffer size %dx%d", size.W, size.H)
	}
	return NewGBuffer(size.W, size.H, b.Precision), nil
}

func asGBuffer(gb pipeline.GBuffer) (*GBuffer, error) {
	g, ok := gb.(*GBuffer)
	if !ok || g.released {
		return nil, fmt.Errorf("softpipe: unusable g-buffer %T", gb)
	}
	return g, nil
}

// Bake evaluates the wave sum at every texel centre and stores the offset and
// normal. The whole buffer is rewritten.
func (b *Backend) Bake(gb pipeline.GBuffer, f *pipeline.Frame) error {
	g, err := asGBuffer(gb)
	if err != nil {
		return err
	}
	g.clear()
	for y := 0; y < g.H; y++ {
		v := (float32(y) + 0.5) / float32(g.H)
		for x := 0; x < g.W; x++ {
			u := (float32(x) + 0.5) / float32(g.W)
			offset, normal := gerstner.Offset(f.Waves, f.Ocean.PlanePoint(u, v), f.Time)
			g.store(x, y, offset, normal)
		}
	}
	g.quantize()
	return nil
}

func (b *Backend) renderMesh(o pipeline.Ocean) *mesh.Mesh {
	if b.mesh == nil || b.grid != o {
		b.mesh = mesh.Grid(o.Width, o.Height, o.Segments, o.Segments)
		b.grid = o
	}
	return b.mesh
}

// environment returns the map a mode samples, or nil when it is not loaded.
// Cube mode samples only the cube and the other modes only the equirect, as
// on the GPU.
func (b *Backend) environment(m pipeline.Mode) brdf.Environment {
	if b.env == nil {
		return nil
	}
	switch m {
	case pipeline.ModeCube:
		if b.env.Cube != nil {
			return b.env.Cube
		}
	case pipeline.ModeSimple, pipeline.ModePBR:
		if b.env.Equirect != nil {
			return b.env.Equirect
		}
	}
	return nil
}

// Composite displaces the render mesh from the G-buffer and shades each vertex.
func (b *Backend) Composite(gb pipeline.GBuffer, f *pipeline.Frame) error {
	g, err := asGBuffer(gb)
	if err != nil {
		return err
	}
	m := b.renderMesh(f.Ocean)
	normalMat := f.Model.NormalMatrix()
	env := b.environment(f.Shading.Mode)

	if cap(b.Shaded) < len(m.Vertices) {
		b.Shaded = make([]ShadedVertex, len(m.Vertices))
	}
	b.Shaded = b.Shaded[:len(m.Vertices)]

	for i, vert := range m.Vertices {
		offset, n := g.Fetch(vert.UV[0], vert.UV[1])
		local := math.Vec3From(vert.Position).Add(offset)
		world := f.Model.TransformPoint(local)
		wn := normalMat.MulVec3(n).Normalize()

		b.Shaded[i] = ShadedVertex{
			UV:       vert.UV,
			Position: world,
			Normal:   wn,
			Color:    Shade(env, &f.Shading, world, wn, f.View.Eye, vert.UV),
		}
	}
	return nil
}

// Shade computes the composite color of one surface point. env may be nil.
func Shade(env brdf.Environment, s *pipeline.Shading, world, n, eye math.Vec3, uv [2]float32) math.Vec3 {
	base := s.Material.BaseColor
	i := world.Sub(eye).Normalize()

	var c math.Vec3
	switch s.Mode {
	case pipeline.ModeNone:
		c = brdf.Lambert(base, n, s.SunDir, 0.25)
	case pipeline.ModeSimple, pipeline.ModeCube:
		if env == nil {
			c = base
		} else {
			c = brdf.Reflective(env.Radiance(i.Reflect(n)), base, s.Reflectivity, world.Y)
		}
	case pipeline.ModePBR:
		c = brdf.Integrate(env, s.Material, i, n, s.Samples, brdf.UVSeed(uv[0], uv[1]))
	}
	if s.ToneMap {
		c = brdf.ACES(c, s.Exposure)
	}
	return c
}

// Debug draws the selected G-buffer image on a viewport-sized canvas. The image
// fills a square anchored at the bottom-left corner whose side is the shorter
// viewport edge; everything outside that square is black.
func (b *Backend) Debug(gb pipeline.GBuffer, f *pipeline.Frame) error {
	g, err := asGBuffer(gb)
	if err != nil {
		return err
	}
	w, h := f.View.Viewport.W, f.View.Viewport.H
	if w <= 0 || h <= 0 {
		w, h = g.W, g.H
	}
	if b.DebugView == nil || b.DebugView.W != w || b.DebugView.H != h {
		b.DebugView = NewImage(w, h)
	}
	side := float32(min(w, h))

	for py := 0; py < h; py++ {
		v := (float32(h-py) - 0.5) / side
		for px := 0; px < w; px++ {
			u := (float32(px) + 0.5) / side
			b.DebugView.Set(px, py, DebugColor(g, f.DebugTarget, u, v))
		}
	}
	return nil
}

// DebugColor returns the debug pass color at (u, v): the raw texel inside the
// unit square, black outside it.
func DebugColor(g *GBuffer, target pipeline.DebugTarget, u, v float32) math.Vec3 {
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return math.Vec3{}
	}
	t := g.Texel(target, int(u*float32(g.W)), int(v*float32(g.H)))
	return math.Vec3{X: t[0], Y: t[1], Z: t[2]}
}

// Preview lays the shaded vertices out as an image, one pixel per vertex, top
// row at v = 1. It is what oceanbake writes for the render command.
func (b *Backend) Preview() *Image {
	if b.mesh == nil || len(b.Shaded) == 0 {
		return NewImage(0, 0)
	}
	cols := b.grid.Segments + 1
	rows := len(b.Shaded) / cols
	im := NewImage(cols, rows)
	for i, sv := range b.Shaded {
		im.Set(i%cols, i/cols, sv.Color)
	}
	return im
}

// GBufferImage copies one G-buffer target into an Image with row 0 at the top.
func GBufferImage(g *GBuffer, target pipeline.DebugTarget) *Image {
	im := NewImage(g.W, g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			t := g.Texel(target, x, y)
			im.Set(x, g.H-1-y, math.Vec3{X: t[0], Y: t[1], Z: t[2]})
		}
	}
	return im
}
