package texture

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // LDR fallbacks
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"

	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

// ErrNotLoaded is returned when an environment map is requested before it is available.
var ErrNotLoaded = errors.New("environment map not loaded")

// ErrUnsupportedFormat is returned for files that are neither Radiance HDR nor a
// standard 8-bit image.
var ErrUnsupportedFormat = errors.New("unsupported environment map format")

// LoadEquirect decodes an environment map from disk. Radiance .hdr files keep
// their full range; PNG and JPEG are linearized from sRGB.
func LoadEquirect(path string) (*Equirect, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".hdr", ".pic", ".rgbe":
		img, err := rgbe.Decode(bufio.NewReader(f))
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		return FromHDR(img)
	case ".png", ".jpg", ".jpeg":
		img, _, err := image.Decode(bufio.NewReader(f))
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		return FromImage(img), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// FromHDR copies a decoded high dynamic range image into an Equirect.
func FromHDR(img image.Image) (*Equirect, error) {
	h, ok := img.(hdr.Image)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not an HDR image", ErrUnsupportedFormat, img)
	}
	b := h.Bounds()
	e := NewEquirect(b.Dx(), b.Dy())
	for y := 0; y < e.H; y++ {
		for x := 0; x < e.W; x++ {
			r, g, bl, _ := h.HDRAt(b.Min.X+x, b.Min.Y+y).HDRRGBA()
			e.Set(x, y, math.Vec3{X: float32(r), Y: float32(g), Z: float32(bl)})
		}
	}
	return e, nil
}
