// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gerstner-ocean/internal/logger"
)

// ErrUnsupported is returned when the context lacks a feature the ocean
// passes need.
var ErrUnsupported = errors.New("graphics context unsupported")

// RequiredDrawBuffers is the number of simultaneous color outputs the bake pass
// writes.
const RequiredDrawBuffers = 2

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	VSync  bool
}

// Caps are the context limits checked at startup.
type Caps struct {
	Version           string
	Renderer          string
	MaxDrawBuffers    int32
	MaxColorAttach    int32
	MaxTextureSize    int32
	MaxVertexSamplers int32
}

// Check reports whether the limits are sufficient for the ocean passes.
func (c Caps) Check(bakeW, bakeH int) error {
	switch {
	case c.MaxDrawBuffers < RequiredDrawBuffers || c.MaxColorAttach < RequiredDrawBuffers:
		return fmt.Errorf("%w: %d draw buffers, %d color attachments, need %d",
			ErrUnsupported, c.MaxDrawBuffers, c.MaxColorAttach, RequiredDrawBuffers)
	case c.MaxVertexSamplers < 2:
		return fmt.Errorf("%w: vertex stage cannot sample textures", ErrUnsupported)
	case int32(bakeW) > c.MaxTextureSize || int32(bakeH) > c.MaxTextureSize:
		return fmt.Errorf("%w: bake size %dx%d exceeds %d", ErrUnsupported, bakeW, bakeH, c.MaxTextureSize)
	}
	return nil
}

// Renderer owns the GL context state shared by all passes.
type Renderer struct {
	config Config
	caps   Caps

	// ClearColor is the background of the visible frame.
	ClearColor [4]float32
}

// New initializes OpenGL and reads the context limits.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:     cfg,
		ClearColor: [4]float32{0.05, 0.07, 0.1, 1.0},
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.caps = Caps{
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
	}
	gl.GetIntegerv(gl.MAX_DRAW_BUFFERS, &r.caps.MaxDrawBuffers)
	gl.GetIntegerv(gl.MAX_COLOR_ATTACHMENTS, &r.caps.MaxColorAttach)
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &r.caps.MaxTextureSize)
	gl.GetIntegerv(gl.MAX_VERTEX_TEXTURE_IMAGE_UNITS, &r.caps.MaxVertexSamplers)

	logger.Info("OpenGL initialized",
		zap.String("version", r.caps.Version),
		zap.String("renderer", r.caps.Renderer),
		zap.Int32("max_draw_buffers", r.caps.MaxDrawBuffers),
		zap.Int32("max_texture_size", r.caps.MaxTextureSize),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// Caps returns the context limits.
func (r *Renderer) Caps() Caps {
	return r.caps
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current drawable size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Begin starts a new frame on the default framebuffer.
func (r *Renderer) Begin() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(r.config.Width), int32(r.config.Height))
	c := r.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame and reports any pending GL error.
func (r *Renderer) End() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", code)
	}
	return nil
}

// ReadPixels reads the default framebuffer as RGBA bytes, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)

	var prevFBO int32
	gl.GetIntegerv(gl.READ_FRAMEBUFFER_BINDING, &prevFBO)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.ReadBuffer(gl.BACK)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, uint32(prevFBO))

	return pixels, w, h
}
