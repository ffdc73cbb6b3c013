package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagMode       = flag.String("mode", "", "Shading mode: none, simple, cube or pbr")
	flagWaves      = flag.String("waves", "", "Wave set file to load and save")
	flagEnv        = flag.String("env", "", "Environment map (.hdr or .png)")
	flagMaxWaves   = flag.Int("max-waves", 0, "Wave capacity (1-16)")
	flagSeed       = flag.Uint64("seed", 0, "Random wave seed, 0 for time based")
	flagHalf       = flag.Bool("half", false, "Use a half-float G-buffer")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagMode != "" {
		cfg.Shading.Mode = *flagMode
	}
	if *flagWaves != "" {
		cfg.Waves.File = *flagWaves
	}
	if *flagEnv != "" {
		cfg.Environment.Path = *flagEnv
	}
	if *flagMaxWaves > 0 {
		cfg.Waves.Max = *flagMaxWaves
	}
	if *flagSeed != 0 {
		cfg.Waves.Seed = *flagSeed
	}
	if *flagHalf {
		cfg.Graphics.HalfFloat = true
	}
}
