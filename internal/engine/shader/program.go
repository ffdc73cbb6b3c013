// Package shader compiles GLSL programs and caches their uniform locations.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

// CompileError is a failed compile or link. Source is the preprocessed stage
// source, empty for link errors.
type CompileError struct {
	Program string
	Stage   string // "vertex", "fragment" or "link"
	Log     string
	Source  string
}

func (e *CompileError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Program, e.Stage, strings.TrimRight(e.Log, "\x00\n "))
	if e.Source != "" {
		msg += "\n" + NumberLines(e.Source)
	}
	return msg
}

// NumberLines prefixes every line with its 1-based number, matching the line
// numbers in driver logs.
func NumberLines(src string) string {
	lines := strings.Split(strings.TrimSuffix(src, "\n"), "\n")
	width := len(fmt.Sprint(len(lines)))
	var b strings.Builder
	for i, l := range lines {
		fmt.Fprintf(&b, "%*d: %s\n", width, i+1, l)
	}
	return b.String()
}

// Program is a linked shader program with a uniform location cache.
type Program struct {
	id        uint32
	locations map[string]int32
}

// NewProgram preprocesses both stages with s, then compiles and links them.
// Compile and link failures are returned as *CompileError.
func NewProgram(name, vertexSrc, fragmentSrc string, s Source) (*Program, error) {
	vs, err := Preprocess(vertexSrc, s)
	if err != nil {
		return nil, fmt.Errorf("%s vertex: %w", name, err)
	}
	fs, err := Preprocess(fragmentSrc, s)
	if err != nil {
		return nil, fmt.Errorf("%s fragment: %w", name, err)
	}

	vert, err := compile(name, "vertex", vs, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vert)
	frag, err := compile(name, "fragment", fs, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(frag)

	id := gl.CreateProgram()
	gl.AttachShader(id, vert)
	gl.AttachShader(id, frag)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(id, logLen, nil, &log[0])
		gl.DeleteProgram(id)
		return nil, &CompileError{Program: name, Stage: "link", Log: string(log)}
	}
	return &Program{id: id, locations: make(map[string]int32)}, nil
}

func compile(program, stage, source string, kind uint32) (uint32, error) {
	id := gl.CreateShader(kind)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csource, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(id, logLen, nil, &log[0])
		gl.DeleteShader(id)
		return 0, &CompileError{Program: program, Stage: stage, Log: string(log), Source: source}
	}
	return id, nil
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// Location returns the cached uniform location, -1 if the uniform is inactive.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.locations[name] = loc
	return loc
}

// SetInt sets an int or sampler uniform.
func (p *Program) SetInt(name string, v int32) {
	if loc := p.Location(name); loc != -1 {
		gl.Uniform1i(loc, v)
	}
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	if loc := p.Location(name); loc != -1 {
		gl.Uniform1f(loc, v)
	}
}

// SetBool sets a bool uniform as 0 or 1.
func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	p.SetInt(name, i)
}

// SetVec2 sets a vec2 uniform.
func (p *Program) SetVec2(name string, v math.Vec2) {
	if loc := p.Location(name); loc != -1 {
		gl.Uniform2f(loc, v.X, v.Y)
	}
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(name string, v math.Vec3) {
	if loc := p.Location(name); loc != -1 {
		gl.Uniform3f(loc, v.X, v.Y, v.Z)
	}
}

// SetMat4 sets a column-major mat4 uniform.
func (p *Program) SetMat4(name string, m math.Mat4) {
	if loc := p.Location(name); loc != -1 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

// SetMat3 sets a column-major mat3 uniform.
func (p *Program) SetMat3(name string, m math.Mat3) {
	if loc := p.Location(name); loc != -1 {
		gl.UniformMatrix3fv(loc, 1, false, &m[0])
	}
}

// SetFloatArray uploads a float[] uniform. Empty slices are skipped.
func (p *Program) SetFloatArray(name string, v []float32) {
	if len(v) == 0 {
		return
	}
	if loc := p.Location(name); loc != -1 {
		gl.Uniform1fv(loc, int32(len(v)), &v[0])
	}
}

// SetVec2Array uploads a vec2[] uniform from interleaved x, y pairs.
func (p *Program) SetVec2Array(name string, v []float32) {
	if len(v) < 2 {
		return
	}
	if loc := p.Location(name); loc != -1 {
		gl.Uniform2fv(loc, int32(len(v)/2), &v[0])
	}
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
	p.locations = nil
}
