package debug

import (
	"fmt"
	"image"
)

// FloatImage converts RGBA float rows, as read back from a G-buffer target, to
// an 8-bit image. Each channel is mapped through v*scale + bias and clamped;
// scale 0.5 and bias 0.5 show signed normals. Rows are stored bottom-up, the
// way GL returns them, and flipped so the image reads top-down.
func FloatImage(pix []float32, width, height int, scale, bias float32) (*image.NRGBA, error) {
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pix))
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := pix[(height-1-y)*width*4:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			for c := 0; c < 3; c++ {
				dst[x*4+c] = unit8(src[x*4+c]*scale + bias)
			}
			dst[x*4+3] = 255
		}
	}
	return img, nil
}

func unit8(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
