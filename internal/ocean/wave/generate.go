package wave

import (
	"math/rand/v2"
	"time"

	"github.com/chewxy/math32"

	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

// GenerateParams controls random wave generation around a prevailing wind.
type GenerateParams struct {
	Count          int       // number of waves to create
	MedianLength   float32   // wavelengths are drawn from [median/2, 2*median]
	AmplitudeRatio float32   // amplitude = wavelength * ratio
	Wind           math.Vec2 // prevailing direction
	MaxTilt        float32   // radians; each wave deviates from Wind by up to this much
	Gravity        float32   // deep-water dispersion: speed = sqrt(g * 2pi / L)
	Seed           uint64    // 0 picks a time-based seed
}

// DefaultGenerateParams returns the parameters of the stock scene.
func DefaultGenerateParams() GenerateParams {
	return GenerateParams{
		Count:          4,
		MedianLength:   3.0,
		AmplitudeRatio: 1.0 / 30.0,
		Wind:           math.Vec2{X: 0, Y: 1},
		MaxTilt:        math32.Pi / 2,
		Gravity:        10,
	}
}

// Generator draws random waves. It keeps its own RNG so repeated calls with the
// same seed produce the same sequence.
type Generator struct {
	params GenerateParams
	rng    *rand.Rand
}

// NewGenerator creates a generator for p.
func NewGenerator(p GenerateParams) *Generator {
	seed := p.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{
		params: p,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Next returns one random wave.
func (g *Generator) Next() Wave {
	p := g.params
	median := p.MedianLength
	if median <= 0 {
		median = 1
	}
	length := median/2 + g.rng.Float32()*(median*2-median/2)
	tilt := p.MaxTilt * (g.rng.Float32()*2 - 1)

	wind := p.Wind.Normalize()
	if wind.Length() == 0 {
		wind = math.Vec2{X: 0, Y: 1}
	}

	return Wave{
		Direction: wind.Rotate(tilt).Normalize(),
		Speed:     DeepWaterSpeed(p.Gravity, length),
		Length:    length,
		Amplitude: length * p.AmplitudeRatio,
		Steepness: g.rng.Float32(),
	}
}

// Fill replaces the contents of s with Count random waves, stopping at capacity.
func (g *Generator) Fill(s *Set) error {
	n := g.params.Count
	if n > s.Max() {
		n = s.Max()
	}
	ws := make([]Wave, 0, n)
	for i := 0; i < n; i++ {
		ws = append(ws, g.Next())
	}
	return s.Replace(ws)
}

// DeepWaterSpeed is the phase speed of a deep-water wave of the given length.
func DeepWaterSpeed(gravity, length float32) float32 {
	if length <= 0 || gravity <= 0 {
		return 0
	}
	return math32.Sqrt(gravity * 2 * math32.Pi / length)
}
