// Package pipeline drives the per-frame ocean passes: bake the wave sum into the
// G-buffer, shade from it (or show it raw), then move objects floating on the
// surface. The passes themselves live behind Backend so the same ordering runs
// on the GPU and on the CPU reference renderer.
package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/gerstner-ocean/internal/ocean/brdf"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/wave"
	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid pipeline config")

// Mode selects how the composite pass shades the surface.
type Mode int

const (
	ModeNone   Mode = iota // base color lit by the sun direction
	ModeSimple             // equirect reflection blended with the base color
	ModeCube               // cube map reflection
	ModePBR                // GGX mirror term plus hemisphere samples
)

var modeNames = [...]string{"none", "simple", "cube", "pbr"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode converts a name such as "pbr" into a Mode.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return ModeNone, fmt.Errorf("%w: unknown shading mode %q", ErrInvalidConfig, s)
}

// Next cycles through the modes.
func (m Mode) Next() Mode {
	return (m + 1) % Mode(len(modeNames))
}

// DebugTarget selects which G-buffer image the debug pass shows.
type DebugTarget int

const (
	DebugPosition DebugTarget = iota
	DebugNormal
)

func (d DebugTarget) String() string {
	if d == DebugNormal {
		return "normal"
	}
	return "position"
}

// ParseDebugTarget converts "position" or "normal" into a DebugTarget.
func ParseDebugTarget(s string) (DebugTarget, error) {
	switch strings.ToLower(s) {
	case "position", "pos":
		return DebugPosition, nil
	case "normal", "nor":
		return DebugNormal, nil
	}
	return DebugPosition, fmt.Errorf("%w: unknown debug target %q", ErrInvalidConfig, s)
}

// Size is a pixel extent.
type Size struct {
	W, H int
}

// Ocean is the plane the waves are evaluated on, centred at the origin of its
// local XY plane.
type Ocean struct {
	Width    float32
	Height   float32
	Segments int // render mesh subdivisions per side
}

// PlanePoint maps a mesh UV to the local plane point it samples:
// x = (u - 0.5) * Width, y = (v - 0.5) * Height.
func (o Ocean) PlanePoint(u, v float32) math.Vec2 {
	return math.Vec2{X: (u - 0.5) * o.Width, Y: (v - 0.5) * o.Height}
}

// Shading holds the composite pass parameters.
type Shading struct {
	Mode         Mode
	Material     brdf.Material
	Reflectivity float32   // simple mode blend factor
	Samples      int       // pbr hemisphere samples
	SunDir       math.Vec3 // toward the light, none mode
	Exposure     float32
	ToneMap      bool
}

// Config parameterizes the whole pipeline.
type Config struct {
	MaxWaves    int
	BakeSize    Size
	Ocean       Ocean
	Shading     Shading
	Debug       bool
	DebugTarget DebugTarget
}

// DefaultConfig returns a 20x20 ocean baked at 512x512 with simple reflections.
func DefaultConfig() Config {
	return Config{
		MaxWaves: wave.DefaultMaxWaves,
		BakeSize: Size{W: 512, H: 512},
		Ocean: Ocean{
			Width:    20,
			Height:   20,
			Segments: 40,
		},
		Shading: Shading{
			Mode:         ModeSimple,
			Material:     brdf.DefaultMaterial(),
			Reflectivity: 0.3,
			Samples:      8,
			SunDir:       math.Vec3{X: 0.3, Y: 1, Z: 0.2}.Normalize(),
			Exposure:     1,
			ToneMap:      true,
		},
		DebugTarget: DebugPosition,
	}
}

// MaxSamples bounds Shading.Samples.
const MaxSamples = 256

// Validate rejects configurations the passes cannot run with.
func (c Config) Validate() error {
	switch {
	case c.MaxWaves < 1 || c.MaxWaves > wave.HardMaxWaves:
		return fmt.Errorf("%w: max waves %d not in [1, %d]", ErrInvalidConfig, c.MaxWaves, wave.HardMaxWaves)
	case c.BakeSize.W <= 0 || c.BakeSize.H <= 0:
		return fmt.Errorf("%w: bake size %dx%d", ErrInvalidConfig, c.BakeSize.W, c.BakeSize.H)
	case !(c.Ocean.Width > 0) || !(c.Ocean.Height > 0):
		return fmt.Errorf("%w: ocean extent %vx%v", ErrInvalidConfig, c.Ocean.Width, c.Ocean.Height)
	case c.Ocean.Segments < 1:
		return fmt.Errorf("%w: ocean segments must be positive", ErrInvalidConfig)
	case c.Shading.Mode < ModeNone || c.Shading.Mode > ModePBR:
		return fmt.Errorf("%w: shading mode %d", ErrInvalidConfig, c.Shading.Mode)
	case c.Shading.Samples < 0 || c.Shading.Samples > MaxSamples:
		return fmt.Errorf("%w: samples %d not in [0, %d]", ErrInvalidConfig, c.Shading.Samples, MaxSamples)
	case c.Shading.Reflectivity < 0 || c.Shading.Reflectivity > 1:
		return fmt.Errorf("%w: reflectivity %v not in [0, 1]", ErrInvalidConfig, c.Shading.Reflectivity)
	case c.Shading.Material.Roughness < 0 || c.Shading.Material.Roughness > 1:
		return fmt.Errorf("%w: roughness %v not in [0, 1]", ErrInvalidConfig, c.Shading.Material.Roughness)
	case c.Shading.Exposure < 0:
		return fmt.Errorf("%w: negative exposure", ErrInvalidConfig)
	}
	return nil
}
