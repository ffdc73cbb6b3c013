//go:build gl

package scene

import (
	"os"
	"runtime"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/gerstner-ocean/internal/engine/framebuffer"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/gerstner"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/pipeline"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/wave"
)

// Run with: go test -tags gl ./internal/engine/scene

func TestMain(m *testing.M) {
	// GL calls must stay on the thread that made the context current.
	runtime.LockOSThread()
	os.Exit(m.Run())
}

// hiddenContext makes a 4.1 core context current on a hidden window.
func hiddenContext(t *testing.T) {
	t.Helper()
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		t.Skipf("no video driver: %v", err)
	}
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	win, err := sdl.CreateWindow("bake test", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		16, 16, sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN)
	if err != nil {
		sdl.Quit()
		t.Skipf("no GL window: %v", err)
	}
	ctx, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		sdl.Quit()
		t.Skipf("no 4.1 core context: %v", err)
	}
	if err := gl.Init(); err != nil {
		t.Fatalf("gl.Init: %v", err)
	}
	t.Cleanup(func() {
		sdl.GLDeleteContext(ctx)
		win.Destroy()
		sdl.Quit()
	})
}

func TestBakeMatchesEvaluator(t *testing.T) {
	hiddenContext(t)

	format := framebuffer.RGBA32F
	b, err := New(Config{MaxWaves: wave.DefaultMaxWaves, Format: format})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer b.Destroy()

	set := wave.NewSet(wave.DefaultMaxWaves)
	for _, w := range []wave.Wave{
		wave.NewWave(0, 1.5, 4, 0.3, 0.6),
		wave.NewWave(70, 2, 7, 0.5, 0.4),
		wave.NewWave(200, 0.8, 2.5, 0.1, 0.9),
	} {
		if err := set.Add(w); err != nil {
			t.Fatal(err)
		}
	}

	size := pipeline.Size{W: 32, H: 24}
	gb, err := b.AllocateGBuffer(size)
	if err != nil {
		t.Fatalf("AllocateGBuffer: %v", err)
	}
	defer gb.Release()

	f := &pipeline.Frame{
		Time:  1.25,
		Waves: set.Snapshot(),
		Ocean: pipeline.Ocean{Width: 20, Height: 20, Segments: 40},
	}
	if err := b.Bake(gb, f); err != nil {
		t.Fatalf("Bake: %v", err)
	}
	offsets, normals, err := ReadGBuffer(gb)
	if err != nil {
		t.Fatalf("ReadGBuffer: %v", err)
	}

	const tol = 1e-4
	var worst float32
	for y := 0; y < size.H; y++ {
		v := (float32(y) + 0.5) / float32(size.H)
		for x := 0; x < size.W; x++ {
			u := (float32(x) + 0.5) / float32(size.W)
			wantOff, wantN := gerstner.Offset(f.Waves, f.Ocean.PlanePoint(u, v), f.Time)

			i := (y*size.W + x) * 4
			for c, want := range [3]float32{wantOff.X, wantOff.Y, wantOff.Z} {
				worst = math32.Max(worst, math32.Abs(offsets[i+c]-want))
			}
			for c, want := range [3]float32{wantN.X, wantN.Y, wantN.Z} {
				worst = math32.Max(worst, math32.Abs(normals[i+c]-want))
			}
		}
	}
	if worst > tol {
		t.Errorf("%v: GPU bake differs from CPU evaluator by %g, want <= %g", format, worst, tol)
	}
}
