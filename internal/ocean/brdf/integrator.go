package brdf

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

// Material describes the ocean surface for the PBR composite mode.
type Material struct {
	BaseColor     math.Vec3 `yaml:"base_color"`
	SpecularColor math.Vec3 `yaml:"specular_color"`
	Roughness     float32   `yaml:"roughness"`
	Metallic      float32   `yaml:"metallic"`
}

// DefaultMaterial returns a deep blue dielectric.
func DefaultMaterial() Material {
	return Material{
		BaseColor:     math.Vec3{X: 0, Y: 94.0 / 256, Z: 184.0 / 256},
		SpecularColor: math.Vec3{X: 1, Y: 1, Z: 1},
		Roughness:     0.2,
		Metallic:      0,
	}
}

// TangentFrame builds the local basis used to place hemisphere samples: n is
// the local up axis, x = normalize(cross(i, n)) and y = normalize(cross(x, n)).
// When i is parallel to n any perpendicular x is chosen.
func TangentFrame(i, n math.Vec3) (x, y math.Vec3) {
	c := i.Cross(n)
	if c.Length() < 1e-6 {
		ref := math.Vec3{X: 1}
		if math32.Abs(n.X) > 0.9 {
			ref = math.Vec3{Z: 1}
		}
		c = ref.Cross(n)
	}
	x = c.Normalize()
	y = x.Cross(n).Normalize()
	return x, y
}

// HemisphereDir maps a sample (hx, hy) in [0,1)^2 to a direction in the
// hemisphere around n. hy is the cosine to n, hx the azimuth.
func HemisphereDir(hx, hy float32, x, n, y math.Vec3) math.Vec3 {
	s := math32.Sqrt(max0(1 - hy*hy))
	phi := twoPi * hx
	return x.Scale(s * math32.Cos(phi)).
		Add(n.Scale(hy)).
		Add(y.Scale(s * math32.Sin(phi))).
		Normalize()
}

// Contribution returns the radiance reflected toward v by light arriving from
// l with radiance li: li * NdotL * (diffuse + specular).
func (m Material) Contribution(li, l, v, n math.Vec3) math.Vec3 {
	nl := max0(n.Dot(l))
	nv := max0(n.Dot(v))
	if nl == 0 || nv == 0 {
		return math.Vec3{}
	}
	h := l.Add(v).Normalize()

	f := FresnelSchlick(max0(h.Dot(v)), BaseReflectance(m.SpecularColor, m.Metallic))
	d := DistributionGGX(n, h, m.Roughness)
	g := GeometrySmith(n, v, l, m.Roughness*m.Roughness/2)
	spec := f.Scale(d * g / (4 * nl * nv))

	kd := (1 - clamp(m.Metallic, 0, 1)) / pi
	diffuse := math.Vec3{
		X: (1 - f.X) * m.BaseColor.X * kd,
		Y: (1 - f.Y) * m.BaseColor.Y * kd,
		Z: (1 - f.Z) * m.BaseColor.Z * kd,
	}
	return li.Mul(diffuse.Add(spec)).Scale(nl)
}

// Direct evaluates the surface lit only from the mirror direction of the
// incident view ray i (pointing from the eye to the surface).
func Direct(env Environment, m Material, i, n math.Vec3) math.Vec3 {
	r := i.Reflect(n)
	return m.Contribution(env.Radiance(r), r, i.Scale(-1), n)
}

// Integrate adds samples hemisphere directions to the mirror term, each
// weighted 1/samples. The sequence starts at seed, usually UVSeed of the
// fragment. With a nil environment it returns the base color.
func Integrate(env Environment, m Material, i, n math.Vec3, samples int, seed int32) math.Vec3 {
	if env == nil {
		return m.BaseColor
	}
	out := Direct(env, m, i, n)
	if samples <= 0 {
		return out
	}

	v := i.Scale(-1)
	x, y := TangentFrame(i, n)
	w := 1 / float32(samples)
	for k := 0; k < samples; k++ {
		hx, hy := Sample2D(seed + int32(k))
		l := HemisphereDir(hx, hy, x, n, y)
		out = out.Add(m.Contribution(env.Radiance(l), l, v, n).Scale(w))
	}
	return out
}

// Reflective is the simple shading mode: the base color, brightened toward
// white with height, blended with the environment color by reflectivity.
func Reflective(envColor, base math.Vec3, reflectivity, height float32) math.Vec3 {
	r := clamp(reflectivity, 0, 1)
	body := base.Lerp(math.Vec3{X: 1, Y: 1, Z: 1}, clamp(height, 0, 1))
	return body.Scale(1 - r).Add(envColor.Scale(r))
}

// Lambert shades base by a single directional light with an ambient floor. It
// is used when no environment reflection is requested.
func Lambert(base, n, toLight math.Vec3, ambient float32) math.Vec3 {
	k := ambient + (1-ambient)*max0(n.Dot(toLight))
	return base.Scale(k)
}
