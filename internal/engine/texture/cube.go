package texture

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/gerstner-ocean/pkg/math"
)

// CubeFace indexes faces in GL order: +X, -X, +Y, -Y, +Z, -Z.
type CubeFace int

const (
	FacePosX CubeFace = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// Cube is a float cube map with square faces.
type Cube struct {
	Size  int
	Faces [6][]float32 // RGB per face, row-major, row 0 at t = 0
}

// faceDir returns the direction through face coordinates (s, t) in [-1, 1],
// following the GL cube map convention.
func faceDir(f CubeFace, s, t float32) math.Vec3 {
	switch f {
	case FacePosX:
		return math.Vec3{X: 1, Y: -t, Z: -s}
	case FaceNegX:
		return math.Vec3{X: -1, Y: -t, Z: s}
	case FacePosY:
		return math.Vec3{X: s, Y: 1, Z: t}
	case FaceNegY:
		return math.Vec3{X: s, Y: -1, Z: -t}
	case FacePosZ:
		return math.Vec3{X: s, Y: -t, Z: 1}
	default:
		return math.Vec3{X: -s, Y: -t, Z: -1}
	}
}

// CubeFromEquirect resamples e into a cube map with size x size faces. The
// source can be dropped afterwards.
func CubeFromEquirect(e *Equirect, size int) *Cube {
	if size < 1 {
		size = 1
	}
	c := &Cube{Size: size}
	for f := FacePosX; f <= FaceNegZ; f++ {
		pix := make([]float32, size*size*3)
		for y := 0; y < size; y++ {
			t := (float32(y)+0.5)/float32(size)*2 - 1
			for x := 0; x < size; x++ {
				s := (float32(x)+0.5)/float32(size)*2 - 1
				col := e.Radiance(faceDir(f, s, t))
				i := (y*size + x) * 3
				pix[i], pix[i+1], pix[i+2] = col.X, col.Y, col.Z
			}
		}
		c.Faces[f] = pix
	}
	return c
}

// Radiance implements brdf.Environment with nearest-texel lookup.
func (c *Cube) Radiance(dir math.Vec3) math.Vec3 {
	f, s, t := selectFace(dir)
	x := clampInt(int((s+1)/2*float32(c.Size)), 0, c.Size-1)
	y := clampInt(int((t+1)/2*float32(c.Size)), 0, c.Size-1)
	i := (y*c.Size + x) * 3
	p := c.Faces[f]
	return math.Vec3{X: p[i], Y: p[i+1], Z: p[i+2]}
}

// selectFace picks the face a direction hits and its (s, t) coordinates.
func selectFace(d math.Vec3) (CubeFace, float32, float32) {
	ax, ay, az := math32.Abs(d.X), math32.Abs(d.Y), math32.Abs(d.Z)
	switch {
	case ax >= ay && ax >= az:
		if d.X > 0 {
			return FacePosX, -d.Z / ax, -d.Y / ax
		}
		return FaceNegX, d.Z / ax, -d.Y / ax
	case ay >= az:
		if d.Y > 0 {
			return FacePosY, d.X / ay, d.Z / ay
		}
		return FaceNegY, d.X / ay, -d.Z / ay
	default:
		if d.Z > 0 {
			return FacePosZ, d.X / az, -d.Y / az
		}
		return FaceNegZ, -d.X / az, -d.Y / az
	}
}
