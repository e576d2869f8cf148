package core

import (
	"math"
	"testing"
)

func TestVec3_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		normal   Vec3
		expected Vec3
	}{
		{"Head on", NewVec3(0, -1, 0), NewVec3(0, 1, 0), NewVec3(0, 1, 0)},
		{"45 degrees", NewVec3(1, -1, 0), NewVec3(0, 1, 0), NewVec3(1, 1, 0)},
		{"Grazing", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v.Reflect(tt.normal)
			if result.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_Refract(t *testing.T) {
	// Equal indices leave the direction unchanged
	in := NewVec3(1, -1, 0).Normalize()
	out := in.Refract(NewVec3(0, 1, 0), 1.0)
	if out.Subtract(in).Length() > 1e-9 {
		t.Errorf("Expected unchanged direction %v, got %v", in, out)
	}

	// Entering a denser medium bends toward the normal
	out = in.Refract(NewVec3(0, 1, 0), 1.0/1.5)
	if math.Abs(out.X) >= math.Abs(in.X) {
		t.Errorf("Expected refracted ray to bend toward normal, got %v", out)
	}
	if math.Abs(out.Length()-1.0) > 1e-9 {
		t.Errorf("Expected unit refracted direction, got length %f", out.Length())
	}

	// Snell's law: sin(theta_t) = eta * sin(theta_i)
	sinIn := math.Abs(in.X)
	sinOut := math.Abs(out.X)
	if math.Abs(sinOut-sinIn/1.5) > 1e-9 {
		t.Errorf("Snell's law violated: sin_out=%f, expected %f", sinOut, sinIn/1.5)
	}
}

func TestVec3_NormalizeZero(t *testing.T) {
	zero := NewVec3(0, 0, 0)
	if got := zero.Normalize(); got != zero {
		t.Errorf("Expected zero vector to normalize to zero, got %v", got)
	}
}

func TestVec3_Sanitize(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		expected Vec3
		finite   bool
	}{
		{"Finite", NewVec3(1, 2, 3), NewVec3(1, 2, 3), true},
		{"NaN", NewVec3(math.NaN(), 2, 3), NewVec3(0, 2, 3), false},
		{"Inf", NewVec3(1, math.Inf(1), math.Inf(-1)), NewVec3(1, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.IsFinite() != tt.finite {
				t.Errorf("IsFinite: got %v, expected %v", tt.v.IsFinite(), tt.finite)
			}
			if got := tt.v.Sanitize(); got != tt.expected {
				t.Errorf("Sanitize: got %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestVec3_Axis(t *testing.T) {
	v := NewVec3(1, 2, 3)
	for axis, expected := range []float64{1, 2, 3} {
		if got := v.Axis(axis); got != expected {
			t.Errorf("Axis(%d): got %f, expected %f", axis, got, expected)
		}
	}
}
