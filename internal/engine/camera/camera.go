// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Projection
	FovY      float32 // radians
	Near, Far float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera ten units from the origin with a 75
// degree field of view.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        10.0,
		RotationX:       0.5,
		RotationY:       0.0,
		FovY:            75 * math32.Pi / 180,
		Near:            0.1,
		Far:             1000,
		MinDistance:     1.0,
		MaxDistance:     200.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cx := math32.Cos(c.RotationX)
	return math.Vec3{
		X: c.Center.X + c.Distance*cx*math32.Sin(c.RotationY),
		Y: c.Center.Y + c.Distance*math32.Sin(c.RotationX),
		Z: c.Center.Z + c.Distance*cx*math32.Cos(c.RotationY),
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{X: 0, Y: 1, Z: 0})
}

// ProjectionMatrix returns the perspective projection for the given aspect.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// FitToExtent centers the camera on a width x depth area lying on the XZ
// plane and backs off far enough to see all of it.
func (c *OrbitCamera) FitToExtent(width, depth float32) {
	c.Center = math.Vec3{}
	size := math32.Max(width, depth)
	c.Distance = size * 0.6
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.MaxDistance < c.Distance*4 {
		c.MaxDistance = c.Distance * 4
	}
	c.RotationX = 0.6
	c.RotationY = 0.0
}

// BakeCamera looks straight down -Z at the local wave plane and maps the
// width x height extent exactly onto the bake target.
type BakeCamera struct {
	Width, Height float32
}

// ProjectionMatrix returns the orthographic projection of the extent.
func (c BakeCamera) ProjectionMatrix() math.Mat4 {
	return math.Ortho(-c.Width/2, c.Width/2, -c.Height/2, c.Height/2, -1, 1)
}
