// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// Gerstner is the wave-sum function shared by the bake stage. It expects
// MAX_WAVES to be defined.
//
//go:embed gerstner.glsl
var Gerstner string

// CompositeCommon holds the uniforms and helpers every composite fragment
// shader includes.
//
//go:embed composite_common.glsl
var CompositeCommon string

// BakeVertexShader is the vertex shader of the geometry bake pass.
//
//go:embed bake.vert
var BakeVertexShader string

// BakeFragmentShader writes offset and normal to the two G-buffer targets.
//
//go:embed bake.frag
var BakeFragmentShader string

// CompositeVertexShader displaces the render mesh from the G-buffer.
//
//go:embed composite.vert
var CompositeVertexShader string

// CompositeNoneFragmentShader shades with a single directional light.
//
//go:embed composite_none.frag
var CompositeNoneFragmentShader string

// CompositeSimpleFragmentShader reflects an equirectangular environment map.
//
//go:embed composite_simple.frag
var CompositeSimpleFragmentShader string

// CompositeCubeFragmentShader reflects a cube environment map.
//
//go:embed composite_cube.frag
var CompositeCubeFragmentShader string

// CompositePBRFragmentShader integrates a GGX BRDF against the environment.
//
//go:embed composite_pbr.frag
var CompositePBRFragmentShader string

// DebugVertexShader draws a full-screen quad.
//
//go:embed debug.vert
var DebugVertexShader string

// DebugFragmentShader shows one G-buffer target.
//
//go:embed debug.frag
var DebugFragmentShader string

// SkyVertexShader draws a full-screen quad on the far plane.
//
//go:embed sky.vert
var SkyVertexShader string

// SkyFragmentShader samples the environment along each view ray.
//
//go:embed sky.frag
var SkyFragmentShader string

// FloaterVertexShader is the vertex shader for floating objects.
//
//go:embed floater.vert
var FloaterVertexShader string

// FloaterFragmentShader is the fragment shader for floating objects.
//
//go:embed floater.frag
var FloaterFragmentShader string

// Includes maps #include names to their sources.
var Includes = map[string]string{
	"gerstner.glsl":         Gerstner,
	"composite_common.glsl": CompositeCommon,
}
