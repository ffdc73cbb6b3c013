package pipeline

import (
	"github.com/Faultbox/gerstner-ocean/internal/ocean/gerstner"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/wave"
	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

// Floater is an object riding the surface. Each frame it is moved to the
// displaced surface point under Anchor and tilted so its up axis follows the
// surface normal.
type Floater struct {
	Name     string
	Anchor   math.Vec2 // world XZ
	Draft    float32   // how far the origin sits below the surface
	Scale    float32
	Position math.Vec3
	Normal   math.Vec3
	Rotation math.Quat
}

// NewFloater creates a floater resting at anchor on a flat sea.
func NewFloater(name string, anchor math.Vec2, scale float32) *Floater {
	return &Floater{
		Name:     name,
		Anchor:   anchor,
		Scale:    scale,
		Position: math.Vec3{X: anchor.X, Z: anchor.Y},
		Normal:   math.Vec3{Y: 1},
		Rotation: math.QuatIdentity(),
	}
}

// Update queries the surface on the CPU. It never reads the G-buffer.
func (f *Floater) Update(s wave.Snapshot, model math.Mat4, t float32) {
	pos, normal := gerstner.Query(s, model, f.Anchor, t)
	f.Position = pos.Sub(normal.Scale(f.Draft))
	f.Normal = normal
	f.Rotation = math.QuatFromTo(math.Vec3{Y: 1}, normal)
}

// Matrix returns the model matrix placing the floater.
func (f *Floater) Matrix() math.Mat4 {
	s := f.Scale
	if s == 0 {
		s = 1
	}
	return math.Translate(f.Position.X, f.Position.Y, f.Position.Z).
		Mul(f.Rotation.ToMat4()).
		Mul(math.Scale(s, s, s))
}
