package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/gerstner-ocean/internal/ocean/pipeline"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/wave"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Graphics.HalfFloat {
		t.Error("expected a full float g-buffer by default")
	}

	// Test wave defaults
	if cfg.Waves.Max != wave.DefaultMaxWaves {
		t.Errorf("expected %d max waves, got %d", wave.DefaultMaxWaves, cfg.Waves.Max)
	}
	if cfg.Waves.Count != 4 {
		t.Errorf("expected 4 generated waves, got %d", cfg.Waves.Count)
	}

	// Test shading defaults
	if cfg.Shading.Mode != "simple" {
		t.Errorf("expected mode 'simple', got %s", cfg.Shading.Mode)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  half_float: true

ocean:
  width: 40
  segments: 64
  bake_width: 256
  bake_height: 128

waves:
  max: 8
  file: "waves.yaml"
  seed: 42

shading:
  mode: "pbr"
  samples: 16
  material:
    roughness: 0.5
  sun:
    elevation: 90

environment:
  path: "sky.hdr"
  cube_size: 128

debug:
  enabled: true
  target: "normal"

logging:
  level: "debug"
  log_file: "ocean.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen || !cfg.Graphics.HalfFloat {
		t.Error("expected fullscreen and half float to be true")
	}
	if cfg.Ocean.Width != 40 || cfg.Ocean.Height != 20 {
		t.Errorf("expected ocean 40x20, got %vx%v", cfg.Ocean.Width, cfg.Ocean.Height)
	}
	if cfg.Waves.Max != 8 || cfg.Waves.File != "waves.yaml" || cfg.Waves.Seed != 42 {
		t.Errorf("unexpected waves section: %+v", cfg.Waves)
	}
	if cfg.Shading.Material.Roughness != 0.5 {
		t.Errorf("expected roughness 0.5, got %v", cfg.Shading.Material.Roughness)
	}
	if cfg.Shading.Material.BaseColor.Z == 0 {
		t.Error("unset material fields should keep their defaults")
	}
	if cfg.Environment.Path != "sky.hdr" || cfg.Environment.CubeSize != 128 {
		t.Errorf("unexpected environment section: %+v", cfg.Environment)
	}
	if cfg.Logging.LogFile != "ocean.log" {
		t.Errorf("expected log file 'ocean.log', got %s", cfg.Logging.LogFile)
	}

	pc, err := cfg.Pipeline()
	if err != nil {
		t.Fatalf("Pipeline: %v", err)
	}
	if pc.Shading.Mode != pipeline.ModePBR || pc.Shading.Samples != 16 {
		t.Errorf("unexpected shading: %+v", pc.Shading)
	}
	if pc.BakeSize != (pipeline.Size{W: 256, H: 128}) || pc.MaxWaves != 8 {
		t.Errorf("unexpected pipeline config: %+v", pc)
	}
	if d := pc.Shading.SunDir; math32.Abs(d.Y-1) > 1e-5 {
		t.Errorf("expected overhead sun, got %v", d)
	}
	if !pc.Debug || pc.DebugTarget != pipeline.DebugNormal {
		t.Errorf("expected normal debug view, got %v %v", pc.Debug, pc.DebugTarget)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("shading:\n  mode: raytrace\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	_, err := LoadFile(configPath)
	if !errors.Is(err, ErrInvalid) || !errors.Is(err, pipeline.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalid wrapping the pipeline error, got %v", err)
	}

	cfg, err := LoadFile("")
	if err != nil || cfg.Graphics.Width != 1280 {
		t.Errorf("empty path should return defaults, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"negative fps", func(c *Config) { c.Graphics.FPSLimit = -1 }},
		{"negative wave count", func(c *Config) { c.Waves.Count = -2 }},
		{"zero median", func(c *Config) { c.Waves.MedianLength = 0 }},
		{"too many waves", func(c *Config) { c.Waves.Max = wave.HardMaxWaves + 1 }},
		{"negative time scale", func(c *Config) { c.Waves.TimeScale = -1 }},
		{"unknown mode", func(c *Config) { c.Shading.Mode = "phong" }},
		{"unknown target", func(c *Config) { c.Debug.Target = "depth" }},
		{"empty bake", func(c *Config) { c.Ocean.BakeWidth = 0 }},
		{"floater scale", func(c *Config) { c.Floater.Scale = 0 }},
		{"camera fov", func(c *Config) { c.Camera.FOV = 180 }},
		{"reflectivity", func(c *Config) { c.Shading.Reflectivity = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}

	cfg := Default()
	cfg.Floater.Enabled = false
	cfg.Floater.Scale = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled floater scale should not matter: %v", err)
	}
}

func TestGenerateParams(t *testing.T) {
	cfg := Default()
	cfg.Waves.WindAngle = 0
	cfg.Waves.MaxTilt = 45
	p := cfg.GenerateParams()
	if math32.Abs(p.Wind.X-1) > 1e-6 || math32.Abs(p.Wind.Y) > 1e-6 {
		t.Errorf("wind = %v, want +X", p.Wind)
	}
	if math32.Abs(p.MaxTilt-math32.Pi/4) > 1e-6 {
		t.Errorf("max tilt = %v, want pi/4", p.MaxTilt)
	}

	def := wave.DefaultGenerateParams()
	p = Default().GenerateParams()
	if p.Wind.Sub(def.Wind).Length() > 1e-6 || math32.Abs(p.MaxTilt-def.MaxTilt) > 1e-6 {
		t.Errorf("default config should match default generator: %+v vs %+v", p, def)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Shading.Mode = "cube"
	cfg.Waves.Seed = 7
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Shading.Mode != "cube" || loaded.Waves.Seed != 7 {
		t.Errorf("round trip lost values: %+v %+v", loaded.Shading, loaded.Waves)
	}
	if loaded.Shading.Material != cfg.Shading.Material {
		t.Errorf("material = %+v, want %+v", loaded.Shading.Material, cfg.Shading.Material)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Point the user config dir somewhere empty
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create ocean.yaml in current directory
	configPath := filepath.Join(tmpDir, "ocean.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find ocean.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "mode and environment flags",
			setup: func() {
				*flagMode = "pbr"
				*flagEnv = "sky.hdr"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Shading.Mode != "pbr" {
					t.Errorf("expected mode 'pbr', got %s", cfg.Shading.Mode)
				}
				if cfg.Environment.Path != "sky.hdr" {
					t.Errorf("expected env 'sky.hdr', got %s", cfg.Environment.Path)
				}
			},
			teardown: func() {
				*flagMode = ""
				*flagEnv = ""
			},
		},
		{
			name: "wave flags",
			setup: func() {
				*flagWaves = "saved.yaml"
				*flagMaxWaves = 12
				*flagSeed = 99
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Waves.File != "saved.yaml" || cfg.Waves.Max != 12 || cfg.Waves.Seed != 99 {
					t.Errorf("unexpected waves section: %+v", cfg.Waves)
				}
			},
			teardown: func() {
				*flagWaves = ""
				*flagMaxWaves = 0
				*flagSeed = 0
			},
		},
		{
			name: "half flag",
			setup: func() {
				*flagHalf = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.HalfFloat {
					t.Error("expected half float with half flag")
				}
			},
			teardown: func() {
				*flagHalf = false
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
shading:
  mode: cube
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	*flagMode = "none"
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
		*flagMode = ""
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}

	if cfg.Shading.Mode != "none" {
		t.Errorf("expected mode 'none' from flag, got %s", cfg.Shading.Mode)
	}
}
