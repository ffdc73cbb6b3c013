// Package gerstner evaluates a sum of Gerstner waves on the CPU.
//
// The loop below is the same one the bake shader runs (see
// internal/engine/scene/shaders/gerstner.glsl): same summation order, same
// float32 arithmetic, same normalization of the wave direction. Keep the two in
// step when changing either.
package gerstner

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/gerstner-ocean/internal/ocean/wave"
	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

const twoPi = 2 * math32.Pi

// Up is the undisturbed surface normal in plane-local space.
var Up = math.Vec3{X: 0, Y: 0, Z: 1}

// Evaluate returns the displaced position and unit normal of the plane-local
// point p at time t. With no active waves it returns (p.X, p.Y, 0) and Up.
func Evaluate(s wave.Snapshot, p math.Vec2, t float32) (math.Vec3, math.Vec3) {
	pos := math.Vec3{X: p.X, Y: p.Y}
	n := int(s.Count)
	if n > s.Max() {
		n = s.Max()
	}
	if n <= 0 {
		return pos, Up
	}

	count := float32(n)
	m := Up
	for i := 0; i < n; i++ {
		length := s.Lengths[i]
		if length <= 0 {
			continue
		}
		dir := s.Direction(i).Normalize()
		amp := s.Amplitudes[i]
		q := s.Steepnesses[i] / count

		cyc := length / twoPi
		freq := twoPi / length
		phase := s.Speeds[i] * freq * t
		angle := freq*dir.Dot(p) + phase
		c := math32.Cos(angle)
		sn := math32.Sin(angle)

		pos.X += q * cyc * dir.X * c
		pos.Y += q * cyc * dir.Y * c
		pos.Z += amp * sn

		m.X -= dir.X * freq * amp * c
		m.Y -= dir.Y * freq * amp * c
		m.Z -= q * sn
	}
	return pos, m.Normalize()
}

// Offset returns the displacement D - P and the unit normal. This is what the
// bake pass stores in the G-buffer.
func Offset(s wave.Snapshot, p math.Vec2, t float32) (math.Vec3, math.Vec3) {
	pos, normal := Evaluate(s, p, t)
	return math.Vec3{X: pos.X - p.X, Y: pos.Y - p.Y, Z: pos.Z}, normal
}

// PlaneToWorld lays the XY wave plane down as a Y-up XZ ground plane: local
// (x, y, z) becomes world (x, z, -y).
func PlaneToWorld() math.Mat4 {
	return math.RotateX(-math32.Pi / 2)
}

// Query evaluates the surface under the world-space point (worldXZ.X, *, worldXZ.Y)
// for an ocean placed by model. It returns the world-space surface point and unit
// normal. Used to float objects without reading the G-buffer back from the GPU.
func Query(s wave.Snapshot, model math.Mat4, worldXZ math.Vec2, t float32) (math.Vec3, math.Vec3) {
	local := model.Inverse().TransformPoint(math.Vec3{X: worldXZ.X, Y: 0, Z: worldXZ.Y})
	pos, normal := Evaluate(s, local.XY(), t)
	return model.TransformPoint(pos), model.NormalMatrix().MulVec3(normal).Normalize()
}
