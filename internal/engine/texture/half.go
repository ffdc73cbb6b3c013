package texture

import "github.com/x448/float16"

// HalfToFloat32 widens IEEE 754 half floats, as read back from an RGBA16F
// attachment, into dst. dst must be at least as long as src.
func HalfToFloat32(dst []float32, src []uint16) {
	for i, h := range src {
		dst[i] = float16.Frombits(h).Float32()
	}
}

// QuantizeHalf rounds every value in p to the nearest half float in place.
// The CPU renderer uses it to mimic a 16-bit G-buffer.
func QuantizeHalf(p []float32) {
	for i, v := range p {
		p[i] = float16.Fromfloat32(v).Float32()
	}
}
