package app

import (
	"path/filepath"
	"testing"

	"github.com/Faultbox/gerstner-ocean/internal/engine/input"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/pipeline"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/softpipe"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/wave"
)

func newTestControls(t *testing.T, max int) *Controls {
	t.Helper()
	cfg := pipeline.DefaultConfig()
	cfg.MaxWaves = max
	cfg.BakeSize = pipeline.Size{W: 8, H: 8}
	o, err := pipeline.New(softpipe.New(softpipe.Float32), cfg)
	if err != nil {
		t.Fatalf("pipeline.New: %v", err)
	}
	t.Cleanup(o.Close)

	p := wave.DefaultGenerateParams()
	p.Seed = 11
	return &Controls{
		Waves:     wave.NewSet(max),
		Generator: wave.NewGenerator(p),
		Pipeline:  o,
		WavesFile: filepath.Join(t.TempDir(), "waves.yaml"),
	}
}

func TestAddWaveStopsAtCapacity(t *testing.T) {
	c := newTestControls(t, 2)
	res := c.Apply([]input.Action{input.ActionAddWave, input.ActionAddWave, input.ActionAddWave})
	if c.Waves.Len() != 2 {
		t.Errorf("len = %d, want 2", c.Waves.Len())
	}
	if !res.Changed || res.Quit || res.Screenshot {
		t.Errorf("result = %+v", res)
	}
}

func TestRemoveAndRegenerate(t *testing.T) {
	c := newTestControls(t, wave.DefaultMaxWaves)
	c.Apply([]input.Action{input.ActionRegenerate})
	if c.Waves.Len() != wave.DefaultGenerateParams().Count {
		t.Fatalf("regenerated %d waves", c.Waves.Len())
	}
	c.Apply([]input.Action{input.ActionRemoveWave})
	if c.Waves.Len() != wave.DefaultGenerateParams().Count-1 {
		t.Errorf("len after remove = %d", c.Waves.Len())
	}

	c.Waves.Clear()
	c.Apply([]input.Action{input.ActionRemoveWave})
	if c.Waves.Len() != 0 {
		t.Errorf("remove on empty set changed it: %d", c.Waves.Len())
	}
}

func TestModeActions(t *testing.T) {
	c := newTestControls(t, wave.DefaultMaxWaves)
	var asked []pipeline.Mode
	c.HasEnvironment = func(m pipeline.Mode) bool {
		asked = append(asked, m)
		return false
	}

	tests := []struct {
		action input.Action
		want   pipeline.Mode
	}{
		{input.ActionModePBR, pipeline.ModePBR},
		{input.ActionModeCube, pipeline.ModeCube},
		{input.ActionModeNone, pipeline.ModeNone},
		{input.ActionModeSimple, pipeline.ModeSimple},
	}
	for _, tt := range tests {
		c.Apply([]input.Action{tt.action})
		if got := c.Pipeline.Config().Shading.Mode; got != tt.want {
			t.Errorf("%v: mode = %v, want %v", tt.action, got, tt.want)
		}
	}
	if len(asked) != 3 {
		t.Errorf("environment checked for %v, want the three reflective modes", asked)
	}
}

func TestDebugActions(t *testing.T) {
	c := newTestControls(t, wave.DefaultMaxWaves)
	c.Apply([]input.Action{input.ActionToggleDebug, input.ActionDebugTarget})
	cfg := c.Pipeline.Config()
	if !cfg.Debug || cfg.DebugTarget != pipeline.DebugNormal {
		t.Errorf("debug = %v target = %v", cfg.Debug, cfg.DebugTarget)
	}
}

func TestSaveWaves(t *testing.T) {
	c := newTestControls(t, wave.DefaultMaxWaves)
	c.Apply([]input.Action{input.ActionAddWave, input.ActionSaveWaves})

	loaded := wave.NewSet(wave.DefaultMaxWaves)
	if err := wave.LoadFile(loaded, c.WavesFile); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Len() != 1 {
		t.Errorf("saved %d waves, want 1", loaded.Len())
	}
}

func TestQuitAndScreenshot(t *testing.T) {
	c := newTestControls(t, wave.DefaultMaxWaves)
	res := c.Apply([]input.Action{input.ActionScreenshot, input.ActionQuit})
	if !res.Screenshot || !res.Quit || res.Changed {
		t.Errorf("result = %+v", res)
	}
}

func TestEditSelectedWave(t *testing.T) {
	c := newTestControls(t, wave.DefaultMaxWaves)
	for _, w := range []wave.Wave{
		wave.NewWave(0, 2, 4, 0.5, 0.5),
		wave.NewWave(90, 2, 4, 0.5, 0.5),
	} {
		if err := c.Waves.Add(w); err != nil {
			t.Fatal(err)
		}
	}

	// Tab to the second wave, then raise its length twice and lower it once.
	c.Apply([]input.Action{input.ActionSelectWave, input.ActionIncrease, input.ActionIncrease, input.ActionDecrease})
	if c.Selected != 1 {
		t.Fatalf("selected = %d, want 1", c.Selected)
	}
	first, _ := c.Waves.At(0)
	second, _ := c.Waves.At(1)
	if first.Length != 4 {
		t.Errorf("unselected wave length = %v, want 4", first.Length)
	}
	if second.Length != 4.5 {
		t.Errorf("selected wave length = %v, want 4.5", second.Length)
	}

	// Q moves to amplitude.
	c.Apply([]input.Action{input.ActionSelectParam, input.ActionDecrease})
	second, _ = c.Waves.At(1)
	if d := second.Amplitude - 0.45; c.Param != wave.ParamAmplitude || d > 1e-6 || d < -1e-6 {
		t.Errorf("param = %v amplitude = %v", c.Param, second.Amplitude)
	}
	if got := c.Status(); got != "wave 2 amplitude=0.45" {
		t.Errorf("status = %q", got)
	}

	// Tab wraps back to the first wave.
	c.Apply([]input.Action{input.ActionSelectWave})
	if c.Selected != 0 {
		t.Errorf("selection did not wrap: %d", c.Selected)
	}
}

func TestRemoveSelected(t *testing.T) {
	c := newTestControls(t, wave.DefaultMaxWaves)
	for _, angle := range []float32{0, 90, 180} {
		if err := c.Waves.Add(wave.NewWave(angle, 1, 4, 0.1, 0.5)); err != nil {
			t.Fatal(err)
		}
	}

	c.Apply([]input.Action{input.ActionSelectWave, input.ActionRemoveSelected})
	if c.Waves.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Waves.Len())
	}
	for i, want := range []float32{0, 180} {
		w, _ := c.Waves.At(i)
		if d := w.AngleDeg() - want; d > 0.01 || d < -0.01 {
			t.Errorf("wave %d angle = %v, want %v", i, w.AngleDeg(), want)
		}
	}

	// Removing the last slot moves the selection down.
	if c.Selected != 1 {
		t.Fatalf("selected = %d, want 1", c.Selected)
	}
	c.Apply([]input.Action{input.ActionRemoveSelected})
	if c.Waves.Len() != 1 || c.Selected != 0 {
		t.Errorf("len = %d selected = %d", c.Waves.Len(), c.Selected)
	}

	c.Apply([]input.Action{input.ActionRemoveSelected, input.ActionRemoveSelected})
	if c.Waves.Len() != 0 || c.Selected != 0 || c.Status() != "" {
		t.Errorf("empty set: len = %d selected = %d status = %q", c.Waves.Len(), c.Selected, c.Status())
	}
}
