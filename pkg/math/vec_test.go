package math

import (
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	n := Vec2{3, 4}.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
	if (Vec2{}).Normalize() != (Vec2{}) {
		t.Error("zero vector should normalize to zero")
	}
}

func TestVec2Rotate(t *testing.T) {
	// Quarter turn counter-clockwise takes +Y to -X.
	got := Vec2{0, 1}.Rotate(halfPi)
	if abs(got.X+1) > 1e-6 || abs(got.Y) > 1e-6 {
		t.Errorf("Rotate(+Y, pi/2) = %v, want (-1, 0)", got)
	}
}

func TestFromAngle(t *testing.T) {
	v := FromAngle(halfPi)
	if abs(v.X) > 1e-6 || abs(v.Y-1) > 1e-6 {
		t.Errorf("FromAngle(pi/2) = %v, want (0, 1)", v)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Reflect(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		n    Vec3
		want Vec3
	}{
		{"straight down", Vec3{0, -1, 0}, Vec3{0, 1, 0}, Vec3{0, 1, 0}},
		{"grazing", Vec3{1, -1, 0}, Vec3{0, 1, 0}, Vec3{1, 1, 0}},
		{"parallel", Vec3{1, 0, 0}, Vec3{0, 1, 0}, Vec3{1, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Reflect(tt.n); got != tt.want {
				t.Errorf("Reflect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{2, 4, 6}
	if got := a.Lerp(b, 0.5); got != (Vec3{1, 2, 3}) {
		t.Errorf("Lerp() = %v, want (1, 2, 3)", got)
	}
}
