package renderer

import (
	"errors"
	"testing"
)

func TestCapsCheck(t *testing.T) {
	good := Caps{MaxDrawBuffers: 8, MaxColorAttach: 8, MaxTextureSize: 4096, MaxVertexSamplers: 16}
	if err := good.Check(512, 512); err != nil {
		t.Fatalf("capable context rejected: %v", err)
	}

	tests := []struct {
		name string
		caps Caps
		w, h int
	}{
		{"single draw buffer", Caps{MaxDrawBuffers: 1, MaxColorAttach: 8, MaxTextureSize: 4096, MaxVertexSamplers: 16}, 512, 512},
		{"single attachment", Caps{MaxDrawBuffers: 8, MaxColorAttach: 1, MaxTextureSize: 4096, MaxVertexSamplers: 16}, 512, 512},
		{"no vertex sampling", Caps{MaxDrawBuffers: 8, MaxColorAttach: 8, MaxTextureSize: 4096}, 512, 512},
		{"bake too large", good, 8192, 512},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.caps.Check(tt.w, tt.h); !errors.Is(err, ErrUnsupported) {
				t.Errorf("expected ErrUnsupported, got %v", err)
			}
		})
	}
}
