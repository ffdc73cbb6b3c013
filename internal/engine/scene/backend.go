// Package scene renders the ocean with OpenGL. Backend implements the three
// pipeline passes: the geometry bake into a float G-buffer, the composite pass
// that displaces and shades the render mesh, and the G-buffer debug view.
package scene

import (
	"fmt"
	"strconv"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gerstner-ocean/internal/engine/framebuffer"
	"github.com/Faultbox/gerstner-ocean/internal/engine/mesh"
	"github.com/Faultbox/gerstner-ocean/internal/engine/scene/shaders"
	"github.com/Faultbox/gerstner-ocean/internal/engine/shader"
	"github.com/Faultbox/gerstner-ocean/internal/engine/texture"
	"github.com/Faultbox/gerstner-ocean/internal/logger"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/pipeline"
)

// Texture units shared by the composite and debug programs.
const (
	unitOffset = iota
	unitNormal
	unitEnvMap
	unitEnvCube
)

// Config contains backend configuration options.
type Config struct {
	MaxWaves int
	Format   framebuffer.Format
}

// Backend is the GPU implementation of pipeline.Backend. All methods must be
// called on the thread owning the GL context.
type Backend struct {
	config Config

	bakeProgram       *shader.Program
	compositePrograms [4]*shader.Program // indexed by pipeline.Mode
	debugProgram      *shader.Program
	skyProgram        *shader.Program

	quad      *gpuMesh
	ocean     *gpuMesh
	oceanGrid pipeline.Ocean

	envMap  uint32
	envCube uint32

	floaters *FloaterRenderer

	log *zap.Logger
}

// New compiles every program with MAX_WAVES set to cfg.MaxWaves.
func New(cfg Config) (*Backend, error) {
	b := &Backend{
		config: cfg,
		log:    logger.Named("scene"),
	}
	src := shader.Source{
		Includes: shaders.Includes,
		Defines:  []shader.Define{{Name: "MAX_WAVES", Value: strconv.Itoa(cfg.MaxWaves)}},
	}

	var err error
	if b.bakeProgram, err = shader.NewProgram("bake", shaders.BakeVertexShader, shaders.BakeFragmentShader, src); err != nil {
		b.Destroy()
		return nil, err
	}

	fragments := [4]struct {
		name string
		src  string
	}{
		pipeline.ModeNone:   {"composite none", shaders.CompositeNoneFragmentShader},
		pipeline.ModeSimple: {"composite simple", shaders.CompositeSimpleFragmentShader},
		pipeline.ModeCube:   {"composite cube", shaders.CompositeCubeFragmentShader},
		pipeline.ModePBR:    {"composite pbr", shaders.CompositePBRFragmentShader},
	}
	for m, f := range fragments {
		if b.compositePrograms[m], err = shader.NewProgram(f.name, shaders.CompositeVertexShader, f.src, src); err != nil {
			b.Destroy()
			return nil, err
		}
	}

	if b.debugProgram, err = shader.NewProgram("debug", shaders.DebugVertexShader, shaders.DebugFragmentShader, src); err != nil {
		b.Destroy()
		return nil, err
	}

	if b.skyProgram, err = shader.NewProgram("sky", shaders.SkyVertexShader, shaders.SkyFragmentShader, src); err != nil {
		b.Destroy()
		return nil, err
	}

	if b.floaters, err = NewFloaterRenderer(src); err != nil {
		b.Destroy()
		return nil, err
	}

	b.quad = uploadMesh(mesh.Quad())

	b.log.Info("ocean programs ready",
		zap.Int("max_waves", cfg.MaxWaves),
		zap.Stringer("gbuffer_format", cfg.Format))
	return b, nil
}

// gbuffer adapts a framebuffer.GBuffer to pipeline.GBuffer.
type gbuffer struct {
	fb *framebuffer.GBuffer
}

func (g *gbuffer) Size() pipeline.Size {
	w, h := g.fb.Size()
	return pipeline.Size{W: int(w), H: int(h)}
}

func (g *gbuffer) Release() {
	if g.fb != nil {
		g.fb.Destroy()
		g.fb = nil
	}
}

// AllocateGBuffer implements pipeline.Backend.
func (b *Backend) AllocateGBuffer(size pipeline.Size) (pipeline.GBuffer, error) {
	fb, err := framebuffer.New(int32(size.W), int32(size.H), b.config.Format)
	if err != nil {
		return nil, err
	}
	return &gbuffer{fb: fb}, nil
}

func asGBuffer(gb pipeline.GBuffer) (*framebuffer.GBuffer, error) {
	g, ok := gb.(*gbuffer)
	if !ok || g.fb == nil {
		return nil, fmt.Errorf("scene: unusable g-buffer %T", gb)
	}
	return g.fb, nil
}

// ReadGBuffer reads both targets of gb back to the CPU as RGBA float rows,
// row 0 at v = 0.
func ReadGBuffer(gb pipeline.GBuffer) (offset, normal []float32, err error) {
	fb, err := asGBuffer(gb)
	if err != nil {
		return nil, nil, err
	}
	return fb.ReadTarget(framebuffer.TargetOffset), fb.ReadTarget(framebuffer.TargetNormal), nil
}

// SetEnvironment uploads a decoded environment map, replacing the previous one.
// nil clears it; the composite pass then falls back to the base color.
func (b *Backend) SetEnvironment(env *texture.Environment) {
	b.releaseEnvironment()
	if env == nil {
		return
	}
	if env.Equirect != nil {
		b.envMap = uploadEquirect(env.Equirect)
	}
	if env.Cube != nil {
		b.envCube = uploadCube(env.Cube)
	}
	b.log.Info("environment uploaded",
		zap.String("path", env.Path),
		zap.Bool("equirect", b.envMap != 0),
		zap.Bool("cube", b.envCube != 0))
}

// HasEnvironment reports whether mode m has a map to sample.
func (b *Backend) HasEnvironment(m pipeline.Mode) bool {
	switch m {
	case pipeline.ModeCube:
		return b.envCube != 0
	case pipeline.ModeSimple, pipeline.ModePBR:
		return b.envMap != 0
	}
	return false
}

func (b *Backend) releaseEnvironment() {
	if b.envMap != 0 {
		gl.DeleteTextures(1, &b.envMap)
		b.envMap = 0
	}
	if b.envCube != 0 {
		gl.DeleteTextures(1, &b.envCube)
		b.envCube = 0
	}
}

// Destroy releases all resources.
func (b *Backend) Destroy() {
	if b.bakeProgram != nil {
		b.bakeProgram.Delete()
	}
	for _, p := range b.compositePrograms {
		if p != nil {
			p.Delete()
		}
	}
	if b.debugProgram != nil {
		b.debugProgram.Delete()
	}
	if b.skyProgram != nil {
		b.skyProgram.Delete()
	}
	if b.floaters != nil {
		b.floaters.Destroy()
	}
	b.quad.destroy()
	b.ocean.destroy()
	b.releaseEnvironment()
}
