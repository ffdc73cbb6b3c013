// Package math provides the float32 vector, matrix and quaternion types shared by
// the CPU wave evaluator and the GPU uniform upload code.
package math

import "github.com/chewxy/math32"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns a unit vector, or the zero vector when v has no length.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rotate returns v rotated counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float32) Vec2 {
	c := math32.Cos(angle)
	s := math32.Sin(angle)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// FromAngle returns the unit vector (cos a, sin a).
func FromAngle(angle float32) Vec2 {
	return Vec2{math32.Cos(angle), math32.Sin(angle)}
}

// Angle returns the counter-clockwise angle of v from +X in radians.
func (v Vec2) Angle() float32 {
	return math32.Atan2(v.Y, v.X)
}
