package wave

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

// Param names an editable wave parameter.
type Param int

const (
	ParamLength Param = iota
	ParamAmplitude
	ParamSteepness
	ParamAngle
	ParamSpeed
	paramCount
)

// paramRange is the editable range and key step of a parameter. Angle wraps
// instead of clamping.
type paramRange struct {
	name          string
	min, max, inc float32
}

var paramRanges = [paramCount]paramRange{
	ParamLength:    {"length", 1, 10, 0.5},
	ParamAmplitude: {"amplitude", 0.01, 10, 0.05},
	ParamSteepness: {"steepness", 0, 1, 0.05},
	ParamAngle:     {"angle", 0, 360, 15},
	ParamSpeed:     {"speed", 1, 10, 0.5},
}

func (p Param) String() string {
	if p < 0 || p >= paramCount {
		return fmt.Sprintf("Param(%d)", int(p))
	}
	return paramRanges[p].name
}

// Next returns the parameter after p, wrapping to ParamLength.
func (p Param) Next() Param {
	return (p + 1) % paramCount
}

// Get returns the value of p on w. Angle is in degrees [0, 360).
func (p Param) Get(w Wave) float32 {
	switch p {
	case ParamLength:
		return w.Length
	case ParamAmplitude:
		return w.Amplitude
	case ParamSteepness:
		return w.Steepness
	case ParamAngle:
		a := w.AngleDeg()
		if a < 0 {
			a += 360
		}
		return a
	case ParamSpeed:
		return w.Speed
	}
	return 0
}

// Step moves p on w by n key steps, clamped to the parameter's range.
func (p Param) Step(w *Wave, n int) {
	if p < 0 || p >= paramCount {
		return
	}
	r := paramRanges[p]
	cur := p.Get(*w)
	v := cur + float32(n)*r.inc

	if p == ParamAngle {
		v = math32.Mod(v, 360)
		if v < 0 {
			v += 360
		}
		w.Direction = math.FromAngle(v * math32.Pi / 180)
		return
	}

	// Generated waves may start outside the range; stepping never pushes them further out.
	lo, hi := math32.Min(r.min, cur), math32.Max(r.max, cur)
	v = math32.Max(lo, math32.Min(hi, v))
	switch p {
	case ParamLength:
		w.Length = v
	case ParamAmplitude:
		w.Amplitude = v
	case ParamSteepness:
		w.Steepness = v
	case ParamSpeed:
		w.Speed = v
	}
}
