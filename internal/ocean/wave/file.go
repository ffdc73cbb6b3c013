package wave

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Entry is the on-disk form of a wave: direction as an angle is easier to edit by hand.
type Entry struct {
	Angle     float32 `yaml:"angle"` // degrees counter-clockwise from +X
	Speed     float32 `yaml:"speed"`
	Length    float32 `yaml:"length"`
	Amplitude float32 `yaml:"amplitude"`
	Steepness float32 `yaml:"steepness"`
}

// Wave converts the entry to a Wave.
func (e Entry) Wave() Wave {
	return NewWave(e.Angle, e.Speed, e.Length, e.Amplitude, e.Steepness)
}

// EntryOf converts a Wave to its on-disk form.
func EntryOf(w Wave) Entry {
	return Entry{
		Angle:     w.AngleDeg(),
		Speed:     w.Speed,
		Length:    w.Length,
		Amplitude: w.Amplitude,
		Steepness: w.Steepness,
	}
}

// File is a saved wave set.
type File struct {
	Waves []Entry `yaml:"waves"`
}

// LoadFile reads a wave file into s, replacing its contents.
func LoadFile(s *Set, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	ws := make([]Wave, len(f.Waves))
	for i, e := range f.Waves {
		ws[i] = e.Wave()
	}
	return s.Replace(ws)
}

// SaveFile writes the active waves of s to path.
func SaveFile(s *Set, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f := File{Waves: make([]Entry, 0, s.Len())}
	for _, w := range s.Waves() {
		f.Waves = append(f.Waves, EntryOf(w))
	}
	data, err := yaml.Marshal(&f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadOrGenerate loads path into s, or fills s from g when path is empty or
// cannot be used. loaded reports whether the file was used. A file holding more
// waves than s can take still counts as loaded; the error wraps ErrSetFull. A
// missing file is not an error. Any other load error is returned joined with
// the result of the fallback fill, so s is never left empty by a bad file.
func LoadOrGenerate(s *Set, g *Generator, path string) (loaded bool, err error) {
	if path == "" {
		return false, g.Fill(s)
	}
	err = LoadFile(s, path)
	switch {
	case err == nil, errors.Is(err, ErrSetFull):
		return true, err
	case errors.Is(err, fs.ErrNotExist):
		return false, g.Fill(s)
	}
	return false, errors.Join(err, g.Fill(s))
}
