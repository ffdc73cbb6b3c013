package pipeline

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/gerstner-ocean/internal/logger"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/gerstner"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/wave"
	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

// ErrClosed is returned when rendering after Close.
var ErrClosed = errors.New("pipeline closed")

// Orchestrator owns the G-buffer and runs the passes in order every frame:
// bake, then composite or debug, then floaters.
type Orchestrator struct {
	backend  Backend
	cfg      Config
	gbuffer  GBuffer
	model    math.Mat4
	floaters []*Floater
	frame    uint64
	log      *zap.Logger
}

// New validates cfg and allocates the G-buffer on backend.
func New(backend Backend, cfg Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	gb, err := backend.AllocateGBuffer(cfg.BakeSize)
	if err != nil {
		return nil, fmt.Errorf("allocating g-buffer: %w", err)
	}
	o := &Orchestrator{
		backend: backend,
		cfg:     cfg,
		gbuffer: gb,
		model:   gerstner.PlaneToWorld(),
		log:     logger.Named("pipeline"),
	}
	o.log.Debug("pipeline ready",
		zap.Int("bake_w", cfg.BakeSize.W),
		zap.Int("bake_h", cfg.BakeSize.H),
		zap.Int("max_waves", cfg.MaxWaves),
		zap.Stringer("mode", cfg.Shading.Mode))
	return o, nil
}

// Config returns the current configuration.
func (o *Orchestrator) Config() Config {
	return o.cfg
}

// Model returns the ocean's local-to-world matrix.
func (o *Orchestrator) Model() math.Mat4 {
	return o.model
}

// GBuffer returns the current render target pair. Nil after Close.
func (o *Orchestrator) GBuffer() GBuffer {
	return o.gbuffer
}

// SetMode switches the composite shading mode.
func (o *Orchestrator) SetMode(m Mode) {
	if m < ModeNone || m > ModePBR {
		return
	}
	o.cfg.Shading.Mode = m
	o.log.Info("shading mode", zap.Stringer("mode", m))
}

// ToggleDebug switches between the composite and debug passes.
func (o *Orchestrator) ToggleDebug() bool {
	o.cfg.Debug = !o.cfg.Debug
	o.log.Info("debug view", zap.Bool("enabled", o.cfg.Debug), zap.Stringer("target", o.cfg.DebugTarget))
	return o.cfg.Debug
}

// CycleDebugTarget flips the debug pass between position and normal.
func (o *Orchestrator) CycleDebugTarget() DebugTarget {
	if o.cfg.DebugTarget == DebugPosition {
		o.cfg.DebugTarget = DebugNormal
	} else {
		o.cfg.DebugTarget = DebugPosition
	}
	return o.cfg.DebugTarget
}

// AddFloater registers an object to keep on the surface.
func (o *Orchestrator) AddFloater(f *Floater) {
	o.floaters = append(o.floaters, f)
}

// Floaters returns the registered floaters.
func (o *Orchestrator) Floaters() []*Floater {
	return o.floaters
}

// RenderFrame runs one frame. snap is repacked to MaxWaves slots if needed so the
// uniform arrays always have their declared length. A pass error aborts the
// frame; floaters are only moved after the visible pass succeeded.
func (o *Orchestrator) RenderFrame(snap wave.Snapshot, t float32, view View) error {
	if o.gbuffer == nil {
		return ErrClosed
	}
	if snap.Max() != o.cfg.MaxWaves {
		snap = snap.Resize(o.cfg.MaxWaves)
	}

	o.frame++
	f := &Frame{
		Number:      o.frame,
		Time:        t,
		Waves:       snap,
		View:        view,
		Model:       o.model,
		Ocean:       o.cfg.Ocean,
		Shading:     o.cfg.Shading,
		DebugTarget: o.cfg.DebugTarget,
		Floaters:    o.floaterStates(),
	}

	if err := o.backend.Bake(o.gbuffer, f); err != nil {
		return fmt.Errorf("bake pass: %w", err)
	}
	if o.cfg.Debug {
		if err := o.backend.Debug(o.gbuffer, f); err != nil {
			return fmt.Errorf("debug pass: %w", err)
		}
	} else {
		if err := o.backend.Composite(o.gbuffer, f); err != nil {
			return fmt.Errorf("composite pass: %w", err)
		}
	}

	for _, fl := range o.floaters {
		fl.Update(snap, o.model, t)
	}
	return nil
}

func (o *Orchestrator) floaterStates() []Floater {
	if len(o.floaters) == 0 {
		return nil
	}
	out := make([]Floater, len(o.floaters))
	for i, fl := range o.floaters {
		out[i] = *fl
	}
	return out
}

// Resize reallocates the G-buffer at a new bake resolution.
func (o *Orchestrator) Resize(size Size) error {
	if size == o.cfg.BakeSize && o.gbuffer != nil {
		return nil
	}
	next := o.cfg
	next.BakeSize = size
	if err := next.Validate(); err != nil {
		return err
	}
	gb, err := o.backend.AllocateGBuffer(size)
	if err != nil {
		return fmt.Errorf("allocating g-buffer: %w", err)
	}
	if o.gbuffer != nil {
		o.gbuffer.Release()
	}
	o.gbuffer = gb
	o.cfg = next
	o.log.Info("g-buffer resized", zap.Int("w", size.W), zap.Int("h", size.H))
	return nil
}

// Close releases the G-buffer. Further RenderFrame calls fail with ErrClosed.
func (o *Orchestrator) Close() {
	if o.gbuffer != nil {
		o.gbuffer.Release()
		o.gbuffer = nil
	}
}
