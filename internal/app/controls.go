package app

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/gerstner-ocean/internal/engine/input"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/pipeline"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/wave"
)

// DefaultWavesFile is where F5 saves when no wave file is configured.
const DefaultWavesFile = "waves.yaml"

// Controls applies key actions to the wave set and the pipeline. It holds no
// GL state.
type Controls struct {
	Waves     *wave.Set
	Generator *wave.Generator
	Pipeline  *pipeline.Orchestrator
	WavesFile string

	// HasEnvironment reports whether a mode has a map to sample. Optional.
	HasEnvironment func(pipeline.Mode) bool

	// Selected is the wave the edit keys act on, Param the parameter they step.
	Selected int
	Param    wave.Param

	log *zap.Logger
}

// Result tells the frame loop what the actions asked for beyond state changes.
type Result struct {
	Quit       bool
	Screenshot bool
	Changed    bool // title worth refreshing
}

var modeActions = map[input.Action]pipeline.Mode{
	input.ActionModeNone:   pipeline.ModeNone,
	input.ActionModeSimple: pipeline.ModeSimple,
	input.ActionModeCube:   pipeline.ModeCube,
	input.ActionModePBR:    pipeline.ModePBR,
}

// Apply runs actions in order.
func (c *Controls) Apply(actions []input.Action) Result {
	var r Result
	for _, a := range actions {
		c.logger().Debug("action", zap.Stringer("action", a))
		switch a {
		case input.ActionAddWave:
			c.addWave()
			r.Changed = true
		case input.ActionRemoveWave:
			if !c.Waves.RemoveLast() {
				c.logger().Debug("no waves to remove")
			}
			r.Changed = true
		case input.ActionRegenerate:
			if err := c.Generator.Fill(c.Waves); err != nil {
				c.logger().Warn("regenerating waves", zap.Error(err))
			}
			r.Changed = true
		case input.ActionModeNone, input.ActionModeSimple, input.ActionModeCube, input.ActionModePBR:
			c.setMode(modeActions[a])
			r.Changed = true
		case input.ActionToggleDebug:
			c.Pipeline.ToggleDebug()
			r.Changed = true
		case input.ActionDebugTarget:
			c.Pipeline.CycleDebugTarget()
			r.Changed = true
		case input.ActionSaveWaves:
			c.saveWaves()
		case input.ActionScreenshot:
			r.Screenshot = true
		case input.ActionQuit:
			r.Quit = true
		case input.ActionSelectWave:
			if n := c.Waves.Len(); n > 0 {
				c.Selected = (c.Selected + 1) % n
			}
			r.Changed = true
		case input.ActionSelectParam:
			c.Param = c.Param.Next()
			r.Changed = true
		case input.ActionIncrease:
			c.step(1)
			r.Changed = true
		case input.ActionDecrease:
			c.step(-1)
			r.Changed = true
		case input.ActionRemoveSelected:
			if err := c.Waves.Remove(c.Selected); err != nil {
				c.logger().Debug("no wave to remove", zap.Error(err))
			}
			r.Changed = true
		}
		c.clampSelection()
	}
	return r
}

// Status describes the selected wave and parameter, or "" for an empty set.
func (c *Controls) Status() string {
	w, err := c.Waves.At(c.Selected)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("wave %d %s=%.2f", c.Selected+1, c.Param, c.Param.Get(w))
}

func (c *Controls) step(n int) {
	err := c.Waves.Update(c.Selected, func(w *wave.Wave) { c.Param.Step(w, n) })
	if err != nil {
		c.logger().Debug("editing wave", zap.Int("wave", c.Selected), zap.Error(err))
	}
}

func (c *Controls) clampSelection() {
	if c.Selected >= c.Waves.Len() {
		c.Selected = c.Waves.Len() - 1
	}
	if c.Selected < 0 {
		c.Selected = 0
	}
}

func (c *Controls) addWave() {
	err := c.Waves.Add(c.Generator.Next())
	switch {
	case errors.Is(err, wave.ErrSetFull):
		c.logger().Warn("wave set is full", zap.Int("max", c.Waves.Max()))
	case err != nil:
		c.logger().Warn("adding wave", zap.Error(err))
	default:
		c.logger().Info("wave added", zap.Int("count", c.Waves.Len()))
	}
}

func (c *Controls) setMode(m pipeline.Mode) {
	c.Pipeline.SetMode(m)
	if m != pipeline.ModeNone && c.HasEnvironment != nil && !c.HasEnvironment(m) {
		c.logger().Debug("no environment map, shading with base color", zap.Stringer("mode", m))
	}
}

func (c *Controls) saveWaves() {
	path := c.WavesFile
	if path == "" {
		path = DefaultWavesFile
	}
	if err := wave.SaveFile(c.Waves, path); err != nil {
		c.logger().Error("saving waves", zap.String("path", path), zap.Error(err))
		return
	}
	c.logger().Info("waves saved", zap.String("path", path), zap.Int("count", c.Waves.Len()))
}

func (c *Controls) logger() *zap.Logger {
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c.log
}
