// Package app implements the interactive ocean viewer: window, frame loop and
// key handling around the render pipeline.
package app

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/gerstner-ocean/internal/config"
	"github.com/Faultbox/gerstner-ocean/internal/engine/camera"
	"github.com/Faultbox/gerstner-ocean/internal/engine/debug"
	"github.com/Faultbox/gerstner-ocean/internal/engine/framebuffer"
	"github.com/Faultbox/gerstner-ocean/internal/engine/input"
	"github.com/Faultbox/gerstner-ocean/internal/engine/renderer"
	"github.com/Faultbox/gerstner-ocean/internal/engine/scene"
	"github.com/Faultbox/gerstner-ocean/internal/engine/texture"
	"github.com/Faultbox/gerstner-ocean/internal/engine/window"
	"github.com/Faultbox/gerstner-ocean/internal/logger"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/pipeline"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/wave"
	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

// Title is the window title prefix.
const Title = "Gerstner Ocean"

// App is the interactive viewer.
type App struct {
	config  *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	bindings input.Bindings

	backend  *scene.Backend
	pipeline *pipeline.Orchestrator
	camera   *camera.OrbitCamera
	controls *Controls

	loader      *texture.Loader
	screenshots *debug.ScreenshotCapture

	start time.Time
	log   *zap.Logger
}

// New creates the window and GL context and builds the pipeline. An error
// wrapping renderer.ErrUnsupported means the context cannot run the passes.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config:   cfg,
		bindings: input.DefaultBindings(),
		log:      logger.Named("app"),
	}

	pc, err := cfg.Pipeline()
	if err != nil {
		return nil, err
	}

	a.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Stringer("mode", pc.Shading.Mode),
		zap.Int("max_waves", pc.MaxWaves),
	)

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	w, h := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:  w,
		Height: h,
		VSync:  cfg.Graphics.VSync,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	if err := a.renderer.Caps().Check(pc.BakeSize.W, pc.BakeSize.H); err != nil {
		a.Close()
		return nil, err
	}

	format := framebuffer.RGBA32F
	if cfg.Graphics.HalfFloat {
		format = framebuffer.RGBA16F
	}
	a.backend, err = scene.New(scene.Config{MaxWaves: pc.MaxWaves, Format: format})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	a.pipeline, err = pipeline.New(a.backend, pc)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create pipeline: %w", err)
	}

	if cfg.Floater.Enabled {
		a.pipeline.AddFloater(pipeline.NewFloater("buoy",
			math.Vec2{X: cfg.Floater.X, Y: cfg.Floater.Z}, cfg.Floater.Scale))
	}

	a.controls = &Controls{
		Waves:          wave.NewSet(pc.MaxWaves),
		Generator:      wave.NewGenerator(cfg.GenerateParams()),
		Pipeline:       a.pipeline,
		WavesFile:      cfg.Waves.File,
		HasEnvironment: a.backend.HasEnvironment,
		log:            logger.Named("controls"),
	}
	loaded, err := wave.LoadOrGenerate(a.controls.Waves, a.controls.Generator, cfg.Waves.File)
	if err != nil {
		a.log.Warn("wave set", zap.String("file", cfg.Waves.File), zap.Error(err))
	}
	a.log.Info("waves ready", zap.Bool("from_file", loaded), zap.Int("count", a.controls.Waves.Len()))

	// Zoom limits follow the ocean size; the configured pose overrides the rest.
	a.camera = camera.NewOrbitCamera()
	a.camera.FitToExtent(cfg.Ocean.Width, cfg.Ocean.Height)
	a.camera.Distance = cfg.Camera.Distance
	if a.camera.MaxDistance < a.camera.Distance {
		a.camera.MaxDistance = a.camera.Distance * 4
	}
	a.camera.RotationX = cfg.Camera.Pitch * math32.Pi / 180
	a.camera.RotationY = cfg.Camera.Yaw * math32.Pi / 180
	a.camera.FovY = cfg.Camera.FOV * math32.Pi / 180

	// simple and pbr sample the equirect, cube mode the derived cube
	a.loader = texture.NewLoader()
	a.loader.KeepSource = true
	if cfg.Environment.Path != "" {
		a.loader.Load(cfg.Environment.Path, cfg.Environment.CubeSize)
	}

	a.screenshots = debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "ocean")
	a.input = input.New()

	a.updateTitle()
	a.log.Info("viewer initialized successfully")
	return a, nil
}

// Run starts the main loop. It returns when the window is closed or Esc is
// pressed.
func (a *App) Run() error {
	a.running = true
	a.start = time.Now()

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var frameBudget time.Duration
	if a.config.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(a.config.Graphics.FPSLimit)
	}

	a.log.Info("starting frame loop")

	for a.running {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime).Seconds()
		lastTime = frameStart

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}

		events := a.input.Events()
		for _, event := range events {
			if event.Type == input.EventWindowResize {
				a.renderer.Resize(a.window.DrawableSize())
			}
		}

		res := a.controls.Apply(a.bindings.Actions(events))
		if res.Quit {
			a.running = false
			break
		}
		if res.Changed {
			a.updateTitle()
		}

		if dx, dy := a.input.DragDelta(); dx != 0 || dy != 0 {
			a.camera.HandleDrag(dx, dy)
		}
		if wheel := a.input.WheelDelta(); wheel != 0 {
			a.camera.HandleZoom(wheel)
		}

		// 2. Pick up a finished environment decode
		a.pollEnvironment()

		// 3. Render
		if err := a.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		if res.Screenshot {
			a.screenshot()
		}

		// 4. Present (swap buffers)
		a.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if rest := frameBudget - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	return nil
}

// Close releases GL resources and the window.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.pipeline != nil {
		a.pipeline.Close()
	}
	if a.backend != nil {
		a.backend.Destroy()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

// Time returns the shader time: wall-clock seconds since Run scaled by
// waves.time_scale.
func (a *App) Time() float32 {
	return float32(time.Since(a.start).Seconds()) * a.config.Waves.TimeScale
}

func (a *App) render() error {
	a.renderer.Begin()

	w, h := a.renderer.Size()
	view := pipeline.View{
		Eye:      a.camera.Position(),
		View:     a.camera.ViewMatrix(),
		Viewport: pipeline.Size{W: w, H: h},
	}
	view.Projection = a.camera.ProjectionMatrix(view.Aspect())

	if err := a.pipeline.RenderFrame(a.controls.Waves.Snapshot(), a.Time(), view); err != nil {
		return err
	}
	return a.renderer.End()
}

func (a *App) pollEnvironment() {
	r, ok := a.loader.Poll()
	if !ok {
		return
	}
	defer a.updateTitle()
	if r.Err != nil {
		// Reflective modes fall back to the base color.
		a.log.Warn("environment map", zap.String("path", a.config.Environment.Path), zap.Error(r.Err))
		return
	}
	a.backend.SetEnvironment(r.Env)
}

func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))

	if a.pipeline.Config().Debug {
		a.dumpGBuffer()
	}
}

// dumpGBuffer saves both G-buffer targets next to the screenshot, mapped from
// [-1, 1] to [0, 1].
func (a *App) dumpGBuffer() {
	gb := a.pipeline.GBuffer()
	offset, normal, err := scene.ReadGBuffer(gb)
	if err != nil {
		a.log.Error("reading g-buffer", zap.Error(err))
		return
	}
	size := gb.Size()
	for _, target := range []struct {
		name string
		pix  []float32
	}{{"offset", offset}, {"normal", normal}} {
		img, err := debug.FloatImage(target.pix, size.W, size.H, 0.5, 0.5)
		if err != nil {
			a.log.Error("converting g-buffer", zap.String("target", target.name), zap.Error(err))
			continue
		}
		path, err := a.screenshots.CaptureFromImage(img)
		if err != nil {
			a.log.Error("saving g-buffer", zap.String("target", target.name), zap.Error(err))
			continue
		}
		a.log.Info("g-buffer saved", zap.String("target", target.name), zap.String("path", path))
	}
}

func (a *App) updateTitle() {
	cfg := a.pipeline.Config()
	title := fmt.Sprintf("%s - %s - %d/%d waves", Title, cfg.Shading.Mode,
		a.controls.Waves.Len(), a.controls.Waves.Max())
	if a.loader.Pending() > 0 {
		title += " - loading environment"
	}
	if status := a.controls.Status(); status != "" {
		title = fmt.Sprintf("%s - %s", title, status)
	}
	if cfg.Debug {
		title = fmt.Sprintf("%s - debug %s", title, cfg.DebugTarget)
	}
	a.window.SetTitle(title)
}
