package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/gerstner-ocean/internal/engine/camera"
	"github.com/Faultbox/gerstner-ocean/internal/engine/mesh"
	"github.com/Faultbox/gerstner-ocean/internal/engine/shader"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/pipeline"
	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

// setWaves uploads the wave arrays and time. The snapshot must have exactly
// MaxWaves slots so the arrays match their declared length.
func (b *Backend) setWaves(p *shader.Program, f *pipeline.Frame) error {
	s := f.Waves
	if s.Max() != b.config.MaxWaves {
		return fmt.Errorf("snapshot has %d slots, programs expect %d", s.Max(), b.config.MaxWaves)
	}
	p.SetFloat("uTime", f.Time)
	p.SetInt("uWaveCount", s.Count)
	p.SetFloatArray("uLengths", s.Lengths)
	p.SetFloatArray("uSpeeds", s.Speeds)
	p.SetFloatArray("uAmplitudes", s.Amplitudes)
	p.SetFloatArray("uSteepnesses", s.Steepnesses)
	p.SetVec2Array("uDirs", s.Dirs)
	return nil
}

// Bake implements pipeline.Backend. The ortho camera maps the ocean extent onto
// the whole target, and every texel is overwritten.
func (b *Backend) Bake(gb pipeline.GBuffer, f *pipeline.Frame) error {
	fb, err := asGBuffer(gb)
	if err != nil {
		return err
	}
	restore := fb.BindWithViewport()
	defer restore()
	fb.Clear()

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	defer gl.Enable(gl.DEPTH_TEST)

	p := b.bakeProgram
	p.Use()
	if err := b.setWaves(p, f); err != nil {
		return err
	}
	bake := camera.BakeCamera{Width: f.Ocean.Width, Height: f.Ocean.Height}
	p.SetMat4("uProjection", bake.ProjectionMatrix().Mul(math.Scale(f.Ocean.Width, f.Ocean.Height, 1)))
	w, h := fb.Size()
	p.SetVec2("uBakeSize", math.Vec2{X: float32(w), Y: float32(h)})
	p.SetVec2("uOceanSize", math.Vec2{X: f.Ocean.Width, Y: f.Ocean.Height})

	b.quad.draw()
	return nil
}

func (b *Backend) oceanMesh(o pipeline.Ocean) *gpuMesh {
	if b.ocean == nil || b.oceanGrid != o {
		b.ocean.destroy()
		b.ocean = uploadMesh(mesh.Grid(o.Width, o.Height, o.Segments, o.Segments))
		b.oceanGrid = o
	}
	return b.ocean
}

func bindGBufferTextures(gbTex func(int) uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unitOffset)
	gl.BindTexture(gl.TEXTURE_2D, gbTex(0))
	gl.ActiveTexture(gl.TEXTURE0 + unitNormal)
	gl.BindTexture(gl.TEXTURE_2D, gbTex(1))
}

// Composite implements pipeline.Backend. It draws to the framebuffer bound by
// the caller, normally the window.
func (b *Backend) Composite(gb pipeline.GBuffer, f *pipeline.Frame) error {
	fb, err := asGBuffer(gb)
	if err != nil {
		return err
	}
	mode := f.Shading.Mode
	if mode < pipeline.ModeNone || mode > pipeline.ModePBR {
		return fmt.Errorf("shading mode %d", mode)
	}
	b.bindEnvironment()
	b.drawSky(f)

	p := b.compositePrograms[mode]
	p.Use()

	gl.Enable(gl.DEPTH_TEST)
	bindGBufferTextures(fb.Texture)
	p.SetInt("uOffsetMap", unitOffset)
	p.SetInt("uNormalMap", unitNormal)
	// Samplers of different types may not share a unit, even unused ones.
	p.SetInt("uEnvMap", unitEnvMap)
	p.SetInt("uEnvCube", unitEnvCube)
	p.SetBool("uHasEnv", b.HasEnvironment(mode))

	p.SetMat4("uModel", f.Model)
	p.SetMat3("uNormalMatrix", f.Model.NormalMatrix())
	p.SetMat4("uView", f.View.View)
	p.SetMat4("uProjection", f.View.Projection)
	p.SetVec3("uEye", f.View.Eye)

	s := f.Shading
	p.SetVec3("uBaseColor", s.Material.BaseColor)
	p.SetVec3("uSpecularColor", s.Material.SpecularColor)
	p.SetFloat("uRoughness", s.Material.Roughness)
	p.SetFloat("uMetallic", s.Material.Metallic)
	p.SetFloat("uReflectivity", s.Reflectivity)
	p.SetInt("uSamples", int32(s.Samples))
	p.SetVec3("uSunDir", s.SunDir)
	p.SetFloat("uExposure", s.Exposure)
	p.SetBool("uToneMap", s.ToneMap)

	b.oceanMesh(f.Ocean).draw()

	if len(f.Floaters) > 0 {
		b.floaters.Render(f.View.Projection.Mul(f.View.View), s.SunDir, f.Floaters)
	}
	gl.ActiveTexture(gl.TEXTURE0)
	return nil
}

// skySource is the map drawn behind the ocean.
type skySource int

const (
	skyNone skySource = iota
	skyEquirect
	skyCube
)

// chooseSky prefers the map the mode reflects so the horizon matches the
// reflections, then whichever map is loaded.
func chooseSky(mode pipeline.Mode, hasEquirect, hasCube bool) skySource {
	switch {
	case mode == pipeline.ModeCube && hasCube:
		return skyCube
	case hasEquirect:
		return skyEquirect
	case hasCube:
		return skyCube
	}
	return skyNone
}

// bindEnvironment binds both maps to their units. Missing maps bind 0.
func (b *Backend) bindEnvironment() {
	gl.ActiveTexture(gl.TEXTURE0 + unitEnvMap)
	gl.BindTexture(gl.TEXTURE_2D, b.envMap)
	gl.ActiveTexture(gl.TEXTURE0 + unitEnvCube)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, b.envCube)
}

// drawSky fills the background with the environment seen along each view
// ray. Without a map the caller's clear color stays.
func (b *Backend) drawSky(f *pipeline.Frame) {
	src := chooseSky(f.Shading.Mode, b.envMap != 0, b.envCube != 0)
	if src == skyNone {
		return
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.DepthMask(false)
	defer gl.DepthMask(true)

	p := b.skyProgram
	p.Use()
	p.SetInt("uEnvMap", unitEnvMap)
	p.SetInt("uEnvCube", unitEnvCube)
	p.SetBool("uUseCube", src == skyCube)
	p.SetMat4("uInvViewProj", f.View.Projection.Mul(f.View.View).Inverse())
	p.SetVec3("uEye", f.View.Eye)
	p.SetFloat("uExposure", f.Shading.Exposure)
	p.SetBool("uToneMap", f.Shading.ToneMap)

	b.quad.draw()
}

// Debug implements pipeline.Backend. The selected target fills a square
// anchored at the bottom-left of the viewport; the rest is black.
func (b *Backend) Debug(gb pipeline.GBuffer, f *pipeline.Frame) error {
	fb, err := asGBuffer(gb)
	if err != nil {
		return err
	}
	gl.Disable(gl.DEPTH_TEST)
	defer gl.Enable(gl.DEPTH_TEST)

	p := b.debugProgram
	p.Use()
	bindGBufferTextures(fb.Texture)
	p.SetInt("uOffsetMap", unitOffset)
	p.SetInt("uNormalMap", unitNormal)
	p.SetInt("uTarget", int32(f.DebugTarget))

	w, h := f.View.Viewport.W, f.View.Viewport.H
	if w <= 0 || h <= 0 {
		gw, gh := fb.Size()
		w, h = int(gw), int(gh)
	}
	p.SetFloat("uSide", float32(min(w, h)))

	b.quad.draw()
	gl.ActiveTexture(gl.TEXTURE0)
	return nil
}
