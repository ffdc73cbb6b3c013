// Package wave holds the Gerstner wave parameter records, the bounded set the
// renderer draws from, and the fixed-size uniform snapshot published each frame.
package wave

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

// DefaultMaxWaves is the default capacity of a Set and of the shader uniform arrays.
const DefaultMaxWaves = 5

// HardMaxWaves bounds the configurable capacity; shader arrays are sized from it.
const HardMaxWaves = 16

var (
	// ErrSetFull is returned when adding a wave to a set already at capacity.
	ErrSetFull = errors.New("wave set is full")

	// ErrInvalidWave is returned for waves that cannot be evaluated (e.g. zero wavelength).
	ErrInvalidWave = errors.New("invalid wave")

	// ErrIndexOutOfRange is returned when addressing a wave slot that does not exist.
	ErrIndexOutOfRange = errors.New("wave index out of range")
)

// Wave is a single trochoidal wave component.
type Wave struct {
	Direction math.Vec2 `yaml:"direction"` // unit propagation direction in the plane
	Speed     float32   `yaml:"speed"`     // propagation rate, units per second
	Length    float32   `yaml:"length"`    // wavelength, > 0
	Amplitude float32   `yaml:"amplitude"` // vertical amplitude, >= 0
	Steepness float32   `yaml:"steepness"` // horizontal pinch, [0, 1]
}

// NewWave builds a wave travelling along angleDeg degrees (counter-clockwise from +X).
func NewWave(angleDeg, speed, length, amplitude, steepness float32) Wave {
	return Wave{
		Direction: math.FromAngle(angleDeg * math32.Pi / 180),
		Speed:     speed,
		Length:    length,
		Amplitude: amplitude,
		Steepness: steepness,
	}
}

// Validate reports whether w can be evaluated.
func (w Wave) Validate() error {
	if !(w.Length > 0) {
		return fmt.Errorf("%w: wavelength %v must be positive", ErrInvalidWave, w.Length)
	}
	if w.Direction.Length() == 0 {
		return fmt.Errorf("%w: zero direction", ErrInvalidWave)
	}
	return nil
}

// Normalize re-unitizes the direction and clamps amplitude and steepness into range.
func (w Wave) Normalize() Wave {
	w.Direction = w.Direction.Normalize()
	if w.Amplitude < 0 {
		w.Amplitude = 0
	}
	w.Steepness = clamp01(w.Steepness)
	return w
}

// AngleDeg returns the direction as degrees counter-clockwise from +X.
func (w Wave) AngleDeg() float32 {
	return w.Direction.Angle() * 180 / math32.Pi
}

// Period returns the time after which the wave repeats (wavelength / speed).
// A stationary wave has no period and returns 0.
func (w Wave) Period() float32 {
	if w.Speed == 0 {
		return 0
	}
	return w.Length / math32.Abs(w.Speed)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
