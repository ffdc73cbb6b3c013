package texture

import (
	"image"

	"github.com/chewxy/math32"

	"github.com/Faultbox/gerstner-ocean/internal/ocean/brdf"
	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

// Equirect is a linear RGB float image in latitude-longitude layout. Row 0 is
// the +Y pole.
type Equirect struct {
	W, H int
	Pix  []float32 // RGB, row-major, top row first
}

// NewEquirect allocates a black w x h map.
func NewEquirect(w, h int) *Equirect {
	return &Equirect{W: w, H: h, Pix: make([]float32, w*h*3)}
}

// FromImage converts an 8- or 16-bit image to linear float, undoing the sRGB
// transfer curve.
func FromImage(img image.Image) *Equirect {
	b := img.Bounds()
	e := NewEquirect(b.Dx(), b.Dy())
	for y := 0; y < e.H; y++ {
		for x := 0; x < e.W; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			e.Set(x, y, math.Vec3{
				X: srgbToLinear(float32(r) / 65535),
				Y: srgbToLinear(float32(g) / 65535),
				Z: srgbToLinear(float32(bl) / 65535),
			})
		}
	}
	return e
}

func srgbToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math32.Pow((c+0.055)/1.055, 2.4)
}

// At returns the texel at (x, y), clamped to the edges.
func (e *Equirect) At(x, y int) math.Vec3 {
	x = clampInt(x, 0, e.W-1)
	y = clampInt(y, 0, e.H-1)
	i := (y*e.W + x) * 3
	return math.Vec3{X: e.Pix[i], Y: e.Pix[i+1], Z: e.Pix[i+2]}
}

// Set writes the texel at (x, y).
func (e *Equirect) Set(x, y int, c math.Vec3) {
	i := (y*e.W + x) * 3
	e.Pix[i], e.Pix[i+1], e.Pix[i+2] = c.X, c.Y, c.Z
}

// Sample filters bilinearly at (u, v) with clamp-to-edge addressing. v = 0 is
// the top row.
func (e *Equirect) Sample(u, v float32) math.Vec3 {
	if e.W == 0 || e.H == 0 {
		return math.Vec3{}
	}
	fx := u*float32(e.W) - 0.5
	fy := v*float32(e.H) - 0.5
	x0 := int(math32.Floor(fx))
	y0 := int(math32.Floor(fy))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	top := e.At(x0, y0).Lerp(e.At(x0+1, y0), tx)
	bottom := e.At(x0, y0+1).Lerp(e.At(x0+1, y0+1), tx)
	return top.Lerp(bottom, ty)
}

// Radiance implements brdf.Environment.
func (e *Equirect) Radiance(dir math.Vec3) math.Vec3 {
	return e.Sample(brdf.DirToEquirectUV(dir.Normalize()))
}

// RGBA returns the map as tightly packed RGBA float32, the layout GL uploads.
func (e *Equirect) RGBA() []float32 {
	out := make([]float32, e.W*e.H*4)
	for i := 0; i < e.W*e.H; i++ {
		out[i*4] = e.Pix[i*3]
		out[i*4+1] = e.Pix[i*3+1]
		out[i*4+2] = e.Pix[i*3+2]
		out[i*4+3] = 1
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
