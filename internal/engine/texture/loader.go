package texture

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/gerstner-ocean/internal/logger"
)

// Environment is a decoded environment map ready for upload. For cube maps the
// source equirect has already been resampled and dropped.
type Environment struct {
	Path     string
	Equirect *Equirect
	Cube     *Cube
}

// LoadResult is delivered once per Load call.
type LoadResult struct {
	Env *Environment
	Err error
}

// Loader decodes environment maps off the render thread. The frame loop polls
// it; nothing blocks waiting for a decode.
type Loader struct {
	// KeepSource keeps the equirect alongside a derived cube, for callers
	// that shade with both.
	KeepSource bool

	results chan LoadResult
	pending int
	log     *zap.Logger
}

// NewLoader creates an idle loader.
func NewLoader() *Loader {
	return &Loader{
		results: make(chan LoadResult, 4),
		log:     logger.Named("texture"),
	}
}

// Load starts decoding path in the background. When cubeSize > 0 the map is
// resampled into a cube of that face size and, unless KeepSource is set, the
// equirect is released.
func (l *Loader) Load(path string, cubeSize int) {
	l.pending++
	keep := l.KeepSource
	go func() {
		start := time.Now()
		e, err := LoadEquirect(path)
		if err != nil {
			l.results <- LoadResult{Err: err}
			return
		}
		env := &Environment{Path: path, Equirect: e}
		if cubeSize > 0 {
			env.Cube = CubeFromEquirect(e, cubeSize)
			if !keep {
				env.Equirect = nil
			}
		}
		l.log.Debug("environment decoded",
			zap.String("path", path),
			zap.Int("w", e.W),
			zap.Int("h", e.H),
			zap.Duration("took", time.Since(start)))
		l.results <- LoadResult{Env: env}
	}()
}

// Poll returns a finished result if one is ready.
func (l *Loader) Poll() (LoadResult, bool) {
	select {
	case r := <-l.results:
		l.pending--
		return r, true
	default:
		return LoadResult{}, false
	}
}

// Pending reports how many loads have not been polled yet.
func (l *Loader) Pending() int {
	return l.pending
}

// Wait blocks until the next result arrives. Only headless tools use it.
func (l *Loader) Wait() LoadResult {
	r := <-l.results
	l.pending--
	return r
}
