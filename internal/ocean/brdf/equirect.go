// Package brdf holds the shading math shared by the composite shaders and the
// CPU reference renderer: equirectangular lookup, the GGX microfacet terms, the
// per-pixel sample sequence and the Monte-Carlo environment integrator.
package brdf

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

const (
	pi    = math32.Pi
	twoPi = 2 * math32.Pi
)

// Environment supplies incoming radiance for a world-space direction.
type Environment interface {
	Radiance(dir math.Vec3) math.Vec3
}

// DirToEquirectUV maps a unit direction onto equirectangular texture coordinates:
// theta = atan2(z, x), phi = acos(y), u = theta/2pi + 0.5, v = phi/pi.
// +Y maps to v = 0 and -Y to v = 1.
func DirToEquirectUV(dir math.Vec3) (u, v float32) {
	theta := math32.Atan2(dir.Z, dir.X)
	phi := math32.Acos(clamp(dir.Y, -1, 1))
	return theta/twoPi + 0.5, phi / pi
}

// EquirectUVToDir is the inverse of DirToEquirectUV.
func EquirectUVToDir(u, v float32) math.Vec3 {
	theta := (u - 0.5) * twoPi
	phi := v * pi
	sinPhi := math32.Sin(phi)
	return math.Vec3{
		X: sinPhi * math32.Cos(theta),
		Y: math32.Cos(phi),
		Z: sinPhi * math32.Sin(theta),
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func max0(v float32) float32 {
	if v < 0 {
		return 0
	}
	return v
}
