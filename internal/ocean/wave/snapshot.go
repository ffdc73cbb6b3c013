package wave

import "github.com/Faultbox/gerstner-ocean/pkg/math"

// Snapshot is the immutable per-frame copy of a Set, laid out exactly like the
// shader uniform contract:
//
//	uniform int   wcount;
//	uniform float wlengths[N], wspeeds[N], wamplitudes[N], wsteepnesses[N];
//	uniform float wdirs[2N]; // x,y interleaved
//
// Slots at or beyond Count are zero and contribute no displacement.
type Snapshot struct {
	Count       int32
	Lengths     []float32
	Speeds      []float32
	Amplitudes  []float32
	Steepnesses []float32
	Dirs        []float32
}

// NewSnapshot packs waves into arrays of length max. Waves beyond max are ignored.
func NewSnapshot(waves []Wave, max int) Snapshot {
	if max < 0 {
		max = 0
	}
	n := len(waves)
	if n > max {
		n = max
	}
	s := Snapshot{
		Count:       int32(n),
		Lengths:     make([]float32, max),
		Speeds:      make([]float32, max),
		Amplitudes:  make([]float32, max),
		Steepnesses: make([]float32, max),
		Dirs:        make([]float32, 2*max),
	}
	for i := 0; i < n; i++ {
		w := waves[i]
		s.Lengths[i] = w.Length
		s.Speeds[i] = w.Speed
		s.Amplitudes[i] = w.Amplitude
		s.Steepnesses[i] = w.Steepness
		s.Dirs[2*i] = w.Direction.X
		s.Dirs[2*i+1] = w.Direction.Y
	}
	return s
}

// Max returns the fixed array length.
func (s Snapshot) Max() int {
	return len(s.Lengths)
}

// Direction returns the raw (un-normalized) direction stored in slot i.
func (s Snapshot) Direction(i int) math.Vec2 {
	return math.Vec2{X: s.Dirs[2*i], Y: s.Dirs[2*i+1]}
}

// Empty reports whether no wave is active.
func (s Snapshot) Empty() bool {
	return s.Count == 0
}

// Resize repacks the snapshot into arrays of length max, dropping slots that no
// longer fit and zero-padding new ones.
func (s Snapshot) Resize(max int) Snapshot {
	if max == s.Max() {
		return s
	}
	n := int(s.Count)
	if n > s.Max() {
		n = s.Max()
	}
	waves := make([]Wave, n)
	for i := range waves {
		waves[i] = Wave{
			Direction: s.Direction(i),
			Speed:     s.Speeds[i],
			Length:    s.Lengths[i],
			Amplitude: s.Amplitudes[i],
			Steepness: s.Steepnesses[i],
		}
	}
	return NewSnapshot(waves, max)
}
