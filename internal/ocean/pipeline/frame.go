package pipeline

import (
	"github.com/Faultbox/gerstner-ocean/internal/ocean/wave"
	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

// View is the camera the composite pass renders from.
type View struct {
	Eye        math.Vec3
	View       math.Mat4
	Projection math.Mat4
	Viewport   Size
}

// Aspect returns the viewport width over height.
func (v View) Aspect() float32 {
	if v.Viewport.H == 0 {
		return 1
	}
	return float32(v.Viewport.W) / float32(v.Viewport.H)
}

// Frame is everything a backend needs for one frame. It is built by the
// Orchestrator and must be treated as read-only by backends.
type Frame struct {
	Number      uint64
	Time        float32
	Waves       wave.Snapshot
	View        View
	Model       math.Mat4
	Ocean       Ocean
	Shading     Shading
	DebugTarget DebugTarget
	Floaters    []Floater
}

// GBuffer is the pair of float images written by the bake pass: target 0 holds
// the position offset, target 1 the unit normal.
type GBuffer interface {
	Size() Size
	Release()
}

// Backend implements the three passes. Bake must overwrite the whole G-buffer;
// Composite and Debug only read it.
type Backend interface {
	AllocateGBuffer(size Size) (GBuffer, error)
	Bake(gb GBuffer, f *Frame) error
	Composite(gb GBuffer, f *Frame) error
	Debug(gb GBuffer, f *Frame) error
}
