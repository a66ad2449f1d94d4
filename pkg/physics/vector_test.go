// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"
)

func TestVec3_AddSubScale(t *testing.T) {
	tests := []struct {
		name string
		op   string
		v1   Vec3
		v2   Vec3
		s    float32
		want Vec3
	}{
		{name: "add_positive", op: "add", v1: Vec3{1, 2, 3}, v2: Vec3{4, 5, 6}, want: Vec3{5, 7, 9}},
		{name: "add_mixed_signs", op: "add", v1: Vec3{-1, 2, -3}, v2: Vec3{1, -2, 3}, want: Vec3{}},
		{name: "sub_positive", op: "sub", v1: Vec3{5, 7, 9}, v2: Vec3{1, 2, 3}, want: Vec3{4, 5, 6}},
		{name: "sub_self", op: "sub", v1: Vec3{4, 4, 4}, v2: Vec3{4, 4, 4}, want: Vec3{}},
		{name: "scale_double", op: "scale", v1: Vec3{1, -2, 3}, s: 2, want: Vec3{2, -4, 6}},
		{name: "scale_zero", op: "scale", v1: Vec3{1, 2, 3}, s: 0, want: Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Vec3
			switch tt.op {
			case "add":
				got = tt.v1.Add(tt.v2)
			case "sub":
				got = tt.v1.Sub(tt.v2)
			case "scale":
				got = tt.v1.Scale(tt.s)
			}
			if got != tt.want {
				t.Errorf("%s = %v, want %v", tt.op, got, tt.want)
			}
		})
	}
}

func TestVec3_Lengths(t *testing.T) {
	v := Vec3{3, 4, 12}
	if got := v.LengthSquared(); got != 169 {
		t.Errorf("LengthSquared() = %v, want 169", got)
	}
	if got := v.Length(); math.Abs(float64(got-13)) > 1e-5 {
		t.Errorf("Length() = %v, want 13", got)
	}
	if got := (Vec3{1, 0, 5}).DistanceSquared(Vec3{1, 2, 5}); got != 4 {
		t.Errorf("DistanceSquared() = %v, want 4", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
	}{
		{name: "axis_aligned", v: Vec3{0, 0, 5}},
		{name: "diagonal", v: Vec3{1, 1, 1}},
		{name: "small", v: Vec3{0.01, -0.02, 0.02}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.v.Normalize()
			if l := n.Length(); math.Abs(float64(l-1)) > 0.002 {
				t.Errorf("Normalize().Length() = %v, want 1", l)
			}
		})
	}

	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize() of zero vector = %v, want zero", got)
	}
}
