package brdf

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

// DistributionGGX is the Trowbridge-Reitz normal distribution for half vector h
// and roughness a.
func DistributionGGX(n, h math.Vec3, a float32) float32 {
	a2 := a * a
	nh := max0(n.Dot(h))
	d := nh*nh*(a2-1) + 1
	return a2 / (pi * d * d)
}

// GeometrySchlickGGX is the Schlick-GGX masking term for one direction.
func GeometrySchlickGGX(n, v math.Vec3, k float32) float32 {
	nv := max0(n.Dot(v))
	denom := nv*(1-k) + k
	if denom == 0 {
		return 0
	}
	return nv / denom
}

// GeometrySmith combines masking (view) and shadowing (light) terms.
func GeometrySmith(n, v, l math.Vec3, k float32) float32 {
	return GeometrySchlickGGX(n, v, k) * GeometrySchlickGGX(n, l, k)
}

// FresnelSchlick approximates reflectance at the given cosine.
func FresnelSchlick(cosTheta float32, f0 math.Vec3) math.Vec3 {
	f := math32.Pow(1-clamp(cosTheta, 0, 1), 5)
	return math.Vec3{
		X: f0.X + (1-f0.X)*f,
		Y: f0.Y + (1-f0.Y)*f,
		Z: f0.Z + (1-f0.Z)*f,
	}
}

// DielectricF0 is the base reflectance of a non-metal such as water.
const DielectricF0 = 0.04

// BaseReflectance tints F0 toward the specular color by metallic.
func BaseReflectance(specular math.Vec3, metallic float32) math.Vec3 {
	return math.Vec3{X: DielectricF0, Y: DielectricF0, Z: DielectricF0}.Lerp(specular, clamp(metallic, 0, 1))
}
