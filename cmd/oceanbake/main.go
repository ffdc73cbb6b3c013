// oceanbake runs the ocean passes on the CPU and writes the results as PNG.
// It needs no window or GL context.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"

	"github.com/chewxy/math32"

	"github.com/Faultbox/gerstner-ocean/internal/config"
	"github.com/Faultbox/gerstner-ocean/internal/engine/camera"
	"github.com/Faultbox/gerstner-ocean/internal/engine/debug"
	"github.com/Faultbox/gerstner-ocean/internal/engine/texture"
	"github.com/Faultbox/gerstner-ocean/internal/logger"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/gerstner"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/pipeline"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/softpipe"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/wave"
	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "bake":
		cmdBake(args)
	case "debug":
		cmdDebug(args)
	case "render":
		cmdRender(args)
	case "query", "q":
		cmdQuery(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`oceanbake - headless Gerstner ocean passes

Usage:
  oceanbake <command> [options]

Commands:
  bake    [-o dir]                 Write the offset and normal targets as PNG
  debug   [-target normal] [-o f]  Write the debug view at a viewport size
  render  [-mode pbr] [-o f]       Write the shaded render mesh, one pixel per vertex
  query   <x> <z> [<x> <z> ...]    Print the surface position and normal at world points

Common options:
  -config file   Config file (defaults < file < options)
  -waves file    Wave set to use instead of generated waves
  -seed n        Random wave seed
  -t seconds     Shader time
  -half          Store the G-buffer at half precision

Examples:
  oceanbake bake -waves waves.yaml -t 3 -o out
  oceanbake render -mode simple -env sky.hdr -o ocean.png
  oceanbake query -t 1.5 0 0 2.5 -3`)
}

// common holds the options every command accepts.
type common struct {
	config *string
	waves  *string
	seed   *uint64
	time   *float64
	half   *bool
	debug  *bool
}

func addCommon(fs *flag.FlagSet) *common {
	return &common{
		config: fs.String("config", "", "Config file"),
		waves:  fs.String("waves", "", "Wave set file"),
		seed:   fs.Uint64("seed", 0, "Random wave seed (0 = config or time based)"),
		time:   fs.Float64("t", 0, "Shader time"),
		half:   fs.Bool("half", false, "Half precision G-buffer"),
		debug:  fs.Bool("v", false, "Verbose logging"),
	}
}

// scene is what a command renders.
type scene struct {
	cfg   *config.Config
	pc    pipeline.Config
	waves *wave.Set
	prec  softpipe.Precision
	t     float32
}

// load resolves the config and wave set, exiting on error.
func (c *common) load() *scene {
	level := "warn"
	if *c.debug {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fatalf("logger: %v", err)
	}

	cfg, err := config.LoadFile(*c.config)
	if err != nil {
		fatalf("%v", err)
	}
	if *c.waves != "" {
		cfg.Waves.File = *c.waves
	}
	if *c.seed != 0 {
		cfg.Waves.Seed = *c.seed
	}
	if *c.half {
		cfg.Graphics.HalfFloat = true
	}

	pc, err := cfg.Pipeline()
	if err != nil {
		fatalf("%v", err)
	}

	s := &scene{
		cfg:   cfg,
		pc:    pc,
		waves: wave.NewSet(pc.MaxWaves),
		prec:  softpipe.Float32,
		t:     float32(*c.time),
	}
	if cfg.Graphics.HalfFloat {
		s.prec = softpipe.Float16
	}

	// The generator must be seeded for a reproducible bake.
	if cfg.Waves.Seed == 0 {
		cfg.Waves.Seed = 1
	}
	if _, err := wave.LoadOrGenerate(s.waves, wave.NewGenerator(cfg.GenerateParams()), cfg.Waves.File); err != nil {
		if !errors.Is(err, wave.ErrSetFull) {
			fatalf("waves: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return s
}

func (s *scene) orchestrator(b *softpipe.Backend) *pipeline.Orchestrator {
	o, err := pipeline.New(b, s.pc)
	if err != nil {
		fatalf("%v", err)
	}
	return o
}

// view returns the configured orbit camera at the given viewport.
func (s *scene) view(w, h int) pipeline.View {
	cam := camera.NewOrbitCamera()
	cam.Distance = s.cfg.Camera.Distance
	cam.RotationX = s.cfg.Camera.Pitch * math32.Pi / 180
	cam.RotationY = s.cfg.Camera.Yaw * math32.Pi / 180
	cam.FovY = s.cfg.Camera.FOV * math32.Pi / 180

	v := pipeline.View{
		Eye:      cam.Position(),
		View:     cam.ViewMatrix(),
		Viewport: pipeline.Size{W: w, H: h},
	}
	v.Projection = cam.ProjectionMatrix(v.Aspect())
	return v
}

func cmdBake(args []string) {
	fs := flag.NewFlagSet("bake", flag.ExitOnError)
	c := addCommon(fs)
	out := fs.String("o", ".", "Output directory")
	scale := fs.Float64("scale", 0.5, "Offset color scale")
	fs.Parse(args)

	s := c.load()
	b := softpipe.New(s.prec)
	o := s.orchestrator(b)
	defer o.Close()

	if err := o.RenderFrame(s.waves.Snapshot(), s.t, pipeline.View{}); err != nil {
		fatalf("%v", err)
	}
	g := o.GBuffer().(*softpipe.GBuffer)

	offset := softpipe.GBufferImage(g, pipeline.DebugPosition).NRGBA(float32(*scale), 0.5)
	normal := softpipe.GBufferImage(g, pipeline.DebugNormal).NRGBA(0.5, 0.5)
	if err := os.MkdirAll(*out, 0755); err != nil {
		fatalf("%v", err)
	}
	savePNG(filepath.Join(*out, "offset.png"), offset)
	savePNG(filepath.Join(*out, "normal.png"), normal)

	fmt.Printf("Baked %d waves at t=%g into %dx%d (%s)\n",
		s.waves.Len(), s.t, g.W, g.H, filepath.Join(*out, "{offset,normal}.png"))
}

func cmdDebug(args []string) {
	fs := flag.NewFlagSet("debug", flag.ExitOnError)
	c := addCommon(fs)
	out := fs.String("o", "debug.png", "Output file")
	target := fs.String("target", "", "position or normal (default from config)")
	width := fs.Int("w", 800, "Viewport width")
	height := fs.Int("h", 600, "Viewport height")
	fs.Parse(args)

	s := c.load()
	s.pc.Debug = true
	if *target != "" {
		t, err := pipeline.ParseDebugTarget(*target)
		if err != nil {
			fatalf("%v", err)
		}
		s.pc.DebugTarget = t
	}

	b := softpipe.New(s.prec)
	o := s.orchestrator(b)
	defer o.Close()

	if err := o.RenderFrame(s.waves.Snapshot(), s.t, pipeline.View{Viewport: pipeline.Size{W: *width, H: *height}}); err != nil {
		fatalf("%v", err)
	}
	savePNG(*out, b.DebugView.NRGBA(1, 0))
	fmt.Printf("Wrote %s debug view to %s\n", s.pc.DebugTarget, *out)
}

func cmdRender(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	c := addCommon(fs)
	out := fs.String("o", "render.png", "Output file")
	mode := fs.String("mode", "", "none, simple, cube or pbr (default from config)")
	env := fs.String("env", "", "Environment map (.hdr or .png)")
	fs.Parse(args)

	s := c.load()
	if *mode != "" {
		m, err := pipeline.ParseMode(*mode)
		if err != nil {
			fatalf("%v", err)
		}
		s.pc.Shading.Mode = m
	}
	if *env != "" {
		s.cfg.Environment.Path = *env
	}

	b := softpipe.New(s.prec)
	if path := s.cfg.Environment.Path; path != "" {
		l := texture.NewLoader()
		l.KeepSource = true
		l.Load(path, s.cfg.Environment.CubeSize)
		r := l.Wait()
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "Warning: environment map: %v\n", r.Err)
		} else {
			b.SetEnvironment(r.Env)
		}
	}

	o := s.orchestrator(b)
	defer o.Close()

	if err := o.RenderFrame(s.waves.Snapshot(), s.t, s.view(s.cfg.Graphics.Width, s.cfg.Graphics.Height)); err != nil {
		fatalf("%v", err)
	}
	preview := b.Preview()
	savePNG(*out, preview.NRGBA(1, 0))
	fmt.Printf("Wrote %dx%d %s preview to %s\n", preview.W, preview.H, s.pc.Shading.Mode, *out)
}

func cmdQuery(args []string) {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	c := addCommon(fs)
	fs.Parse(args)

	if fs.NArg() < 2 || fs.NArg()%2 != 0 {
		fmt.Fprintln(os.Stderr, "Usage: oceanbake query [options] <x> <z> [<x> <z> ...]")
		os.Exit(1)
	}

	points := make([]math.Vec2, 0, fs.NArg()/2)
	for i := 0; i < fs.NArg(); i += 2 {
		x, errX := strconv.ParseFloat(fs.Arg(i), 32)
		z, errZ := strconv.ParseFloat(fs.Arg(i+1), 32)
		if errX != nil || errZ != nil {
			fatalf("bad point %q %q", fs.Arg(i), fs.Arg(i+1))
		}
		points = append(points, math.Vec2{X: float32(x), Y: float32(z)})
	}

	s := c.load()
	snap := s.waves.Snapshot()
	model := gerstner.PlaneToWorld()

	fmt.Printf("%d waves, t=%g\n", s.waves.Len(), s.t)
	for _, p := range points {
		pos, n := gerstner.Query(snap, model, p, s.t)
		fmt.Printf("  (%8.3f, %8.3f)  pos (%8.4f, %8.4f, %8.4f)  normal (%7.4f, %7.4f, %7.4f)\n",
			p.X, p.Y, pos.X, pos.Y, pos.Z, n.X, n.Y, n.Z)
	}
}

func savePNG(path string, img image.Image) {
	if err := debug.SavePNG(path, img); err != nil {
		fatalf("writing %s: %v", path, err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
