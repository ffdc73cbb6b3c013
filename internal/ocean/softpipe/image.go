package softpipe

import (
	"image"

	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

// Image is a linear RGBA float image with row 0 at the top.
type Image struct {
	W, H int
	Pix  []float32
}

// NewImage allocates a transparent black image.
func NewImage(w, h int) *Image {
	return &Image{W: w, H: h, Pix: make([]float32, w*h*4)}
}

// Set writes an opaque color at (x, y).
func (im *Image) Set(x, y int, c math.Vec3) {
	i := (y*im.W + x) * 4
	im.Pix[i], im.Pix[i+1], im.Pix[i+2], im.Pix[i+3] = c.X, c.Y, c.Z, 1
}

// At returns the color at (x, y).
func (im *Image) At(x, y int) math.Vec3 {
	i := (y*im.W + x) * 4
	return math.Vec3{X: im.Pix[i], Y: im.Pix[i+1], Z: im.Pix[i+2]}
}

// NRGBA converts to 8 bits per channel. Values are mapped through
// (v*scale + bias) and clamped, so signed G-buffer data can be shown with
// scale 0.5, bias 0.5.
func (im *Image) NRGBA(scale, bias float32) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, im.W, im.H))
	for i := 0; i < im.W*im.H; i++ {
		out.Pix[i*4] = to8(im.Pix[i*4]*scale + bias)
		out.Pix[i*4+1] = to8(im.Pix[i*4+1]*scale + bias)
		out.Pix[i*4+2] = to8(im.Pix[i*4+2]*scale + bias)
		out.Pix[i*4+3] = to8(im.Pix[i*4+3])
	}
	return out
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
