package brdf

import (
	"math"

	"github.com/chewxy/math32"
)

// BaseHash scrambles two 32-bit words into one. The composite shader seeds its
// sample sequence with BaseHash(floatBitsToUint(uv)) so neighbouring pixels
// start at unrelated offsets.
func BaseHash(x, y uint32) uint32 {
	px := 1103515245 * ((x >> 1) ^ y)
	py := 1103515245 * ((y >> 1) ^ x)
	h := 1103515245 * (px ^ (py >> 3))
	return h ^ (h >> 16)
}

// UVSeed returns the sequence offset for the texture coordinate (u, v).
func UVSeed(u, v float32) int32 {
	return int32(BaseHash(math.Float32bits(u), math.Float32bits(v)))
}

// Sample2D returns the i-th point of a rank-1 lattice in [0,1)^2. Index
// arithmetic wraps at 32 bits exactly like GLSL int multiplication.
func Sample2D(i int32) (float32, float32) {
	const scale = 1.0 / (1 << 24)
	return fract(float32(i*12664745) * scale), fract(float32(i*9560333) * scale)
}

func fract(x float32) float32 {
	return x - math32.Floor(x)
}
