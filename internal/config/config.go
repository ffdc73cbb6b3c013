// Package config handles renderer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/gerstner-ocean/internal/engine/lighting"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/brdf"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/pipeline"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/wave"
	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

// ErrInvalid is returned by Validate and Load for values the renderer cannot run with.
var ErrInvalid = errors.New("invalid config")

// Config holds all renderer settings.
type Config struct {
	Graphics    GraphicsConfig    `yaml:"graphics"`
	Ocean       OceanConfig       `yaml:"ocean"`
	Waves       WavesConfig       `yaml:"waves"`
	Shading     ShadingConfig     `yaml:"shading"`
	Environment EnvironmentConfig `yaml:"environment"`
	Debug       DebugConfig       `yaml:"debug"`
	Floater     FloaterConfig     `yaml:"floater"`
	Camera      CameraConfig      `yaml:"camera"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// GraphicsConfig holds display and render target settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	HalfFloat  bool `yaml:"half_float"` // RGBA16F G-buffer instead of RGBA32F
}

// OceanConfig describes the water plane and its bake resolution.
type OceanConfig struct {
	Width      float32 `yaml:"width"`
	Height     float32 `yaml:"height"`
	Segments   int     `yaml:"segments"`
	BakeWidth  int     `yaml:"bake_width"`
	BakeHeight int     `yaml:"bake_height"`
}

// WavesConfig holds the wave set capacity and random generation parameters.
type WavesConfig struct {
	Max            int     `yaml:"max"`
	File           string  `yaml:"file"` // loaded at startup when present, written by save
	Count          int     `yaml:"count"`
	MedianLength   float32 `yaml:"median_length"`
	AmplitudeRatio float32 `yaml:"amplitude_ratio"`
	WindAngle      float32 `yaml:"wind_angle"` // degrees counter-clockwise from +X
	MaxTilt        float32 `yaml:"max_tilt"`   // degrees
	Gravity        float32 `yaml:"gravity"`
	Seed           uint64  `yaml:"seed"`
	TimeScale      float32 `yaml:"time_scale"` // shader time per wall-clock second
}

// ShadingConfig holds composite pass settings.
type ShadingConfig struct {
	Mode         string        `yaml:"mode"`
	Material     brdf.Material `yaml:"material"`
	Reflectivity float32       `yaml:"reflectivity"`
	Samples      int           `yaml:"samples"`
	Exposure     float32       `yaml:"exposure"`
	ToneMap      bool          `yaml:"tone_map"`
	Sun          lighting.Sun  `yaml:"sun"` // lights the none mode
}

// EnvironmentConfig points at the reflection map.
type EnvironmentConfig struct {
	Path     string `yaml:"path"`      // .hdr or .png equirect; empty disables reflections
	CubeSize int    `yaml:"cube_size"` // face size of the derived cube map, 0 skips it
}

// DebugConfig holds debug view and capture settings.
type DebugConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Target        string `yaml:"target"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// FloaterConfig places an optional object riding the surface.
type FloaterConfig struct {
	Enabled bool    `yaml:"enabled"`
	X       float32 `yaml:"x"`
	Z       float32 `yaml:"z"`
	Scale   float32 `yaml:"scale"`
}

// CameraConfig holds the initial orbit camera.
type CameraConfig struct {
	Distance float32 `yaml:"distance"`
	Pitch    float32 `yaml:"pitch"` // degrees
	Yaw      float32 `yaml:"yaw"`   // degrees
	FOV      float32 `yaml:"fov"`   // degrees
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	gen := wave.DefaultGenerateParams()
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Ocean: OceanConfig{
			Width:      20,
			Height:     20,
			Segments:   40,
			BakeWidth:  512,
			BakeHeight: 512,
		},
		Waves: WavesConfig{
			Max:            wave.DefaultMaxWaves,
			Count:          gen.Count,
			MedianLength:   gen.MedianLength,
			AmplitudeRatio: gen.AmplitudeRatio,
			WindAngle:      90,
			MaxTilt:        90,
			Gravity:        gen.Gravity,
			TimeScale:      0.1,
		},
		Shading: ShadingConfig{
			Mode:         pipeline.ModeSimple.String(),
			Material:     brdf.DefaultMaterial(),
			Reflectivity: 0.3,
			Samples:      8,
			Exposure:     1,
			ToneMap:      true,
			Sun:          lighting.DefaultSun(),
		},
		Environment: EnvironmentConfig{
			CubeSize: 256,
		},
		Debug: DebugConfig{
			Target:        pipeline.DebugPosition.String(),
			ScreenshotDir: "screenshots",
		},
		Floater: FloaterConfig{
			Enabled: true,
			X:       2,
			Z:       -3,
			Scale:   0.6,
		},
		Camera: CameraConfig{
			Distance: 18,
			Pitch:    30,
			Yaw:      0,
			FOV:      75,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate rejects values the renderer cannot run with. Pipeline settings are
// checked by converting them.
func (c *Config) Validate() error {
	switch {
	case c.Graphics.Width <= 0 || c.Graphics.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height)
	case c.Graphics.FPSLimit < 0:
		return fmt.Errorf("%w: negative fps limit", ErrInvalid)
	case c.Waves.Count < 0:
		return fmt.Errorf("%w: negative wave count", ErrInvalid)
	case !(c.Waves.MedianLength > 0):
		return fmt.Errorf("%w: median wavelength %v", ErrInvalid, c.Waves.MedianLength)
	case c.Waves.TimeScale < 0:
		return fmt.Errorf("%w: negative time scale", ErrInvalid)
	case c.Environment.CubeSize < 0:
		return fmt.Errorf("%w: negative cube size", ErrInvalid)
	case c.Floater.Enabled && !(c.Floater.Scale > 0):
		return fmt.Errorf("%w: floater scale %v", ErrInvalid, c.Floater.Scale)
	case !(c.Camera.Distance > 0):
		return fmt.Errorf("%w: camera distance %v", ErrInvalid, c.Camera.Distance)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("%w: camera fov %v", ErrInvalid, c.Camera.FOV)
	}
	if _, err := c.Pipeline(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Pipeline converts the ocean, wave, shading and debug sections into a
// pipeline configuration.
func (c *Config) Pipeline() (pipeline.Config, error) {
	pc := pipeline.DefaultConfig()

	mode, err := pipeline.ParseMode(c.Shading.Mode)
	if err != nil {
		return pc, err
	}
	target, err := pipeline.ParseDebugTarget(c.Debug.Target)
	if err != nil {
		return pc, err
	}

	pc.MaxWaves = c.Waves.Max
	pc.BakeSize = pipeline.Size{W: c.Ocean.BakeWidth, H: c.Ocean.BakeHeight}
	pc.Ocean = pipeline.Ocean{
		Width:    c.Ocean.Width,
		Height:   c.Ocean.Height,
		Segments: c.Ocean.Segments,
	}
	pc.Shading.Mode = mode
	pc.Shading.Material = c.Shading.Material
	pc.Shading.Reflectivity = c.Shading.Reflectivity
	pc.Shading.Samples = c.Shading.Samples
	pc.Shading.Exposure = c.Shading.Exposure
	pc.Shading.ToneMap = c.Shading.ToneMap
	pc.Shading.SunDir = c.Shading.Sun.Direction()
	pc.Debug = c.Debug.Enabled
	pc.DebugTarget = target

	return pc, pc.Validate()
}

// GenerateParams returns the random wave parameters.
func (c *Config) GenerateParams() wave.GenerateParams {
	return wave.GenerateParams{
		Count:          c.Waves.Count,
		MedianLength:   c.Waves.MedianLength,
		AmplitudeRatio: c.Waves.AmplitudeRatio,
		Wind:           math.FromAngle(c.Waves.WindAngle * math32.Pi / 180),
		MaxTilt:        c.Waves.MaxTilt * math32.Pi / 180,
		Gravity:        c.Waves.Gravity,
		Seed:           c.Waves.Seed,
	}
}
