// Package framebuffer provides OpenGL framebuffer utilities for offscreen rendering.
package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/gerstner-ocean/internal/engine/texture"
)

// Format is the internal format of the G-buffer color attachments.
type Format int

const (
	RGBA32F Format = iota
	RGBA16F
)

func (f Format) String() string {
	if f == RGBA16F {
		return "rgba16f"
	}
	return "rgba32f"
}

func (f Format) internalFormat() int32 {
	if f == RGBA16F {
		return gl.RGBA16F
	}
	return gl.RGBA32F
}

// Attachment indices of the G-buffer.
const (
	TargetOffset = 0
	TargetNormal = 1
	numTargets   = 2
)

// GBuffer is an offscreen render target with two float color attachments and a
// depth renderbuffer. Attachment 0 receives the surface offset, attachment 1 the
// surface normal. Both textures use nearest filtering and clamp-to-edge so the
// composite pass reads exactly the baked texel values.
type GBuffer struct {
	fbo      uint32
	textures [numTargets]uint32
	depthRBO uint32
	width    int32
	height   int32
	format   Format
}

// New creates a G-buffer with the specified dimensions and format.
func New(width, height int32, format Format) (*GBuffer, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("g-buffer size %dx%d", width, height)
	}

	gb := &GBuffer{
		width:  width,
		height: height,
		format: format,
	}

	if err := gb.create(); err != nil {
		return nil, fmt.Errorf("creating g-buffer: %w", err)
	}

	return gb, nil
}

func (gb *GBuffer) create() error {
	gl.GenFramebuffers(1, &gb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, gb.fbo)

	gl.GenTextures(numTargets, &gb.textures[0])
	for i, tex := range gb.textures {
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gb.format.internalFormat(), gb.width, gb.height, 0, gl.RGBA, gl.FLOAT, nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0+uint32(i), gl.TEXTURE_2D, tex, 0)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenRenderbuffers(1, &gb.depthRBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, gb.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, gb.width, gb.height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, gb.depthRBO)

	drawBuffers := [numTargets]uint32{gl.COLOR_ATTACHMENT0, gl.COLOR_ATTACHMENT1}
	gl.DrawBuffers(numTargets, &drawBuffers[0])

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		gb.Destroy()
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return nil
}

// BindWithViewport binds the G-buffer for drawing and sets the viewport to its
// size. Returns a function restoring the previous framebuffer and viewport.
func (gb *GBuffer) BindWithViewport() func() {
	var prevFBO int32
	var prevViewport [4]int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	gl.GetIntegerv(gl.VIEWPORT, &prevViewport[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, gb.fbo)
	gl.Viewport(0, 0, gb.width, gb.height)

	return func() {
		gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))
		gl.Viewport(prevViewport[0], prevViewport[1], prevViewport[2], prevViewport[3])
	}
}

// Clear zeroes both attachments and the depth buffer. The G-buffer must be bound.
func (gb *GBuffer) Clear() {
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Texture returns the texture name of attachment i.
func (gb *GBuffer) Texture(i int) uint32 {
	return gb.textures[i]
}

// Format returns the attachment format.
func (gb *GBuffer) Format() Format {
	return gb.format
}

// Size returns the G-buffer dimensions.
func (gb *GBuffer) Size() (width, height int32) {
	return gb.width, gb.height
}

// ReadTarget reads attachment i back as RGBA float32 rows, row 0 at the bottom.
// Half-float attachments are widened after readback.
func (gb *GBuffer) ReadTarget(i int) []float32 {
	n := int(gb.width * gb.height * 4)
	out := make([]float32, n)

	var prevFBO int32
	gl.GetIntegerv(gl.READ_FRAMEBUFFER_BINDING, &prevFBO)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, gb.fbo)
	gl.ReadBuffer(gl.COLOR_ATTACHMENT0 + uint32(i))

	if gb.format == RGBA16F {
		half := make([]uint16, n)
		gl.ReadPixels(0, 0, gb.width, gb.height, gl.RGBA, gl.HALF_FLOAT, gl.Ptr(half))
		texture.HalfToFloat32(out, half)
	} else {
		gl.ReadPixels(0, 0, gb.width, gb.height, gl.RGBA, gl.FLOAT, gl.Ptr(out))
	}

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, uint32(prevFBO))
	return out
}

// Destroy releases all OpenGL resources.
func (gb *GBuffer) Destroy() {
	if gb.fbo != 0 {
		gl.DeleteFramebuffers(1, &gb.fbo)
		gb.fbo = 0
	}
	if gb.textures[0] != 0 {
		gl.DeleteTextures(numTargets, &gb.textures[0])
		gb.textures = [numTargets]uint32{}
	}
	if gb.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &gb.depthRBO)
		gb.depthRBO = 0
	}
}
