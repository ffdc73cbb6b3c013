// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

// Sun is a directional light placed by compass angles.
type Sun struct {
	Azimuth   float32 `yaml:"azimuth"`   // degrees around +Y, 0 faces +Z
	Elevation float32 `yaml:"elevation"` // degrees above the horizon
}

// DefaultSun is high in the sky, slightly toward +X.
func DefaultSun() Sun {
	return Sun{Azimuth: 55, Elevation: 70}
}

// Direction returns the unit vector pointing towards the sun.
// Azimuth rotates around the Y axis, elevation lifts from the horizon.
func (s Sun) Direction() math.Vec3 {
	lon := s.Azimuth * math32.Pi / 180
	lat := s.Elevation * math32.Pi / 180

	return math.Vec3{
		X: math32.Cos(lat) * math32.Sin(lon),
		Y: math32.Sin(lat),
		Z: math32.Cos(lat) * math32.Cos(lon),
	}
}
