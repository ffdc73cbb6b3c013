package scene

import (
	"github.com/Faultbox/gerstner-ocean/internal/engine/mesh"
	"github.com/Faultbox/gerstner-ocean/internal/engine/scene/shaders"
	"github.com/Faultbox/gerstner-ocean/internal/engine/shader"
	"github.com/Faultbox/gerstner-ocean/internal/ocean/pipeline"
	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

// FloaterRenderer draws floating objects as lit boxes.
type FloaterRenderer struct {
	program *shader.Program
	box     *gpuMesh

	Color math.Vec3
}

// NewFloaterRenderer compiles the floater program with the backend's source
// settings.
func NewFloaterRenderer(src shader.Source) (*FloaterRenderer, error) {
	program, err := shader.NewProgram("floater", shaders.FloaterVertexShader, shaders.FloaterFragmentShader, src)
	if err != nil {
		return nil, err
	}
	return &FloaterRenderer{
		program: program,
		box:     uploadMesh(mesh.Box(1, 1, 1)),
		Color:   math.Vec3{X: 0.9, Y: 0.35, Z: 0.1},
	}, nil
}

// Render draws every floater at its last computed pose.
func (fr *FloaterRenderer) Render(viewProj math.Mat4, sunDir math.Vec3, floaters []pipeline.Floater) {
	p := fr.program
	p.Use()
	p.SetMat4("uViewProj", viewProj)
	p.SetVec3("uColor", fr.Color)
	p.SetVec3("uSunDir", sunDir)

	for i := range floaters {
		p.SetMat4("uModel", floaters[i].Matrix())
		fr.box.draw()
	}
}

// Destroy releases all resources.
func (fr *FloaterRenderer) Destroy() {
	fr.box.destroy()
	if fr.program != nil {
		fr.program.Delete()
		fr.program = nil
	}
}
