package scene

import (
	"testing"

	"github.com/Faultbox/gerstner-ocean/internal/ocean/pipeline"
)

func TestChooseSky(t *testing.T) {
	tests := []struct {
		name           string
		mode           pipeline.Mode
		equirect, cube bool
		want           skySource
	}{
		{"nothing loaded", pipeline.ModeSimple, false, false, skyNone},
		{"cube mode uses cube", pipeline.ModeCube, true, true, skyCube},
		{"cube mode without cube", pipeline.ModeCube, true, false, skyEquirect},
		{"simple uses equirect", pipeline.ModeSimple, true, true, skyEquirect},
		{"pbr with cube only", pipeline.ModePBR, false, true, skyCube},
		{"none mode still has a sky", pipeline.ModeNone, true, false, skyEquirect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := chooseSky(tt.mode, tt.equirect, tt.cube); got != tt.want {
				t.Errorf("chooseSky = %v, want %v", got, tt.want)
			}
		})
	}
}
