package math

import (
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()
	length := n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W
	if abs(length-1) > 1e-4 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatFromTo(t *testing.T) {
	tests := []struct {
		name     string
		from, to Vec3
	}{
		{"same", Vec3{0, 1, 0}, Vec3{0, 1, 0}},
		{"quarter", Vec3{0, 1, 0}, Vec3{1, 0, 0}},
		{"tilted", Vec3{0, 1, 0}, Vec3{0.3, 0.9, 0.1}.Normalize()},
		{"opposite", Vec3{0, 1, 0}, Vec3{0, -1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuatFromTo(tt.from, tt.to).Rotate(tt.from)
			if got.Distance(tt.to) > 1e-4 {
				t.Errorf("rotated %v = %v, want %v", tt.from, got, tt.to)
			}
		})
	}
}

func TestQuatToMat4MatchesRotate(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 0, 1}, halfPi)
	v := Vec3{1, 0, 0}
	a := q.Rotate(v)
	b := q.ToMat4().TransformDirection(v)
	if a.Distance(b) > 1e-5 {
		t.Errorf("Rotate = %v, ToMat4 = %v", a, b)
	}
	if a.Distance(Vec3{0, 1, 0}) > 1e-5 {
		t.Errorf("quarter turn about Z: got %v, want (0, 1, 0)", a)
	}
}

func TestQuatMulComposes(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, halfPi)
	got := q.Mul(q).Rotate(Vec3{1, 0, 0})
	if got.Distance(Vec3{-1, 0, 0}) > 1e-5 {
		t.Errorf("two quarter turns: got %v, want (-1, 0, 0)", got)
	}
}
