package brdf

import "github.com/Faultbox/gerstner-ocean/pkg/math"

// ACES applies the Narkowicz fit of the ACES filmic curve after scaling by
// exposure. Output is clamped to [0,1]. Only the visible image is tone mapped;
// G-buffer values stay linear.
func ACES(c math.Vec3, exposure float32) math.Vec3 {
	return math.Vec3{
		X: acesChannel(c.X * exposure),
		Y: acesChannel(c.Y * exposure),
		Z: acesChannel(c.Z * exposure),
	}
}

func acesChannel(x float32) float32 {
	const (
		a = 2.51
		b = 0.03
		c = 2.43
		d = 0.59
		e = 0.14
	)
	x = max0(x)
	return clamp((x*(a*x+b))/(x*(c*x+d)+e), 0, 1)
}
