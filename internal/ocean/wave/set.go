package wave

import "fmt"

// Set is an ordered, bounded collection of waves. Slot order addresses the
// uniform arrays; the displacement sum itself does not depend on it.
//
// A Set is owned by the frame loop and is not safe for concurrent use. Renderers
// never read it directly: they receive a Snapshot.
type Set struct {
	max   int
	waves []Wave
}

// NewSet creates an empty set holding at most max waves. max is clamped to
// [1, HardMaxWaves].
func NewSet(max int) *Set {
	if max < 1 {
		max = 1
	}
	if max > HardMaxWaves {
		max = HardMaxWaves
	}
	return &Set{
		max:   max,
		waves: make([]Wave, 0, max),
	}
}

// Max returns the capacity.
func (s *Set) Max() int {
	return s.max
}

// Len returns the number of active waves.
func (s *Set) Len() int {
	return len(s.waves)
}

// Full reports whether another wave would be rejected.
func (s *Set) Full() bool {
	return len(s.waves) >= s.max
}

// Add appends a wave. When the set is full it returns ErrSetFull and leaves the
// set unchanged. Invalid waves are rejected with ErrInvalidWave.
func (s *Set) Add(w Wave) error {
	if s.Full() {
		return fmt.Errorf("%w: capacity %d", ErrSetFull, s.max)
	}
	if err := w.Validate(); err != nil {
		return err
	}
	s.waves = append(s.waves, w.Normalize())
	return nil
}

// Remove deletes the wave at index i, shifting later waves down one slot.
func (s *Set) Remove(i int) error {
	if i < 0 || i >= len(s.waves) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(s.waves))
	}
	s.waves = append(s.waves[:i], s.waves[i+1:]...)
	return nil
}

// RemoveLast deletes the most recently added wave. It reports false if the set was empty.
func (s *Set) RemoveLast() bool {
	if len(s.waves) == 0 {
		return false
	}
	s.waves = s.waves[:len(s.waves)-1]
	return true
}

// Clear removes every wave.
func (s *Set) Clear() {
	s.waves = s.waves[:0]
}

// At returns the wave in slot i.
func (s *Set) At(i int) (Wave, error) {
	if i < 0 || i >= len(s.waves) {
		return Wave{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(s.waves))
	}
	return s.waves[i], nil
}

// Update mutates the wave in slot i in place. The result is validated and
// normalized; on error the slot keeps its previous value.
func (s *Set) Update(i int, fn func(*Wave)) error {
	w, err := s.At(i)
	if err != nil {
		return err
	}
	fn(&w)
	if err := w.Validate(); err != nil {
		return err
	}
	s.waves[i] = w.Normalize()
	return nil
}

// Waves returns a copy of the active waves.
func (s *Set) Waves() []Wave {
	out := make([]Wave, len(s.waves))
	copy(out, s.waves)
	return out
}

// Replace swaps the contents for ws. Waves beyond capacity are dropped and
// reported through the returned error (ErrSetFull); invalid waves abort the
// replacement and leave the set unchanged.
func (s *Set) Replace(ws []Wave) error {
	for i, w := range ws {
		if err := w.Validate(); err != nil {
			return fmt.Errorf("wave %d: %w", i, err)
		}
	}
	s.waves = s.waves[:0]
	for _, w := range ws {
		if s.Full() {
			return fmt.Errorf("%w: kept %d of %d waves", ErrSetFull, s.max, len(ws))
		}
		s.waves = append(s.waves, w.Normalize())
	}
	return nil
}

// Snapshot copies the set into fixed-size uniform arrays.
func (s *Set) Snapshot() Snapshot {
	return NewSnapshot(s.waves, s.max)
}
