package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

func TestSphereUV(t *testing.T) {
	tests := []struct {
		name  string
		point core.Vec3
		u, v  float64
	}{
		{"+X", core.NewVec3(1, 0, 0), 0.5, 0.5},
		{"+Y", core.NewVec3(0, 1, 0), 0.5, 1.0},
		{"-X", core.NewVec3(-1, 0, 0), 0.0, 0.5},
		{"-Y", core.NewVec3(0, -1, 0), 0.5, 0.0},
		{"+Z", core.NewVec3(0, 0, 1), 0.25, 0.5},
		{"-Z", core.NewVec3(0, 0, -1), 0.75, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, v := SphereUV(tt.point)
			if math.Abs(u-tt.u) > 1e-9 || math.Abs(v-tt.v) > 1e-9 {
				t.Errorf("SphereUV(%v) = (%f, %f), expected (%f, %f)", tt.point, u, v, tt.u, tt.v)
			}
		})
	}
}

func TestSphereHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1, nil)

	tests := []struct {
		name      string
		ray       core.Ray
		hit       bool
		t         float64
		frontFace bool
	}{
		{"From outside", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), true, 4, true},
		{"Unnormalized direction", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -2)), true, 2, true},
		{"From inside", core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, -1)), true, 1, false},
		{"Miss", core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(0, 0, -1)), false, 0, false},
		{"Behind", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := sphere.Hit(tt.ray, 0.001, math.Inf(1), nil)
			if ok != tt.hit {
				t.Fatalf("Expected hit=%v, got %v", tt.hit, ok)
			}
			if !ok {
				return
			}
			if math.Abs(hit.T-tt.t) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.t, hit.T)
			}
			if hit.FrontFace != tt.frontFace {
				t.Errorf("Expected FrontFace=%v, got %v", tt.frontFace, hit.FrontFace)
			}
			if hit.Normal.Dot(tt.ray.Direction) >= 0 {
				t.Errorf("Normal %v should face the incoming ray", hit.Normal)
			}
		})
	}
}

func TestSpherePDF(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -4), 1, nil)
	origin := core.NewVec3(0, 0, 0)

	cosThetaMax := math.Sqrt(1 - 1.0/16.0)
	expected := 1 / (2 * math.Pi * (1 - cosThetaMax))
	if got := sphere.PDFValue(origin, core.NewVec3(0, 0, -1)); math.Abs(got-expected) > 1e-9 {
		t.Errorf("PDFValue toward sphere: got %f, expected %f", got, expected)
	}
	if got := sphere.PDFValue(origin, core.NewVec3(0, 0, 1)); got != 0 {
		t.Errorf("PDFValue away from sphere: got %f, expected 0", got)
	}

	// Every sampled direction must hit the sphere and have the uniform cone density
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	for i := 0; i < 1000; i++ {
		direction := sphere.Random(origin, sampler)
		if _, ok := sphere.Hit(core.NewRay(origin, direction), 0.001, math.Inf(1), nil); !ok {
			t.Fatalf("Sampled direction %v misses the sphere", direction)
		}
	}

	// From inside every direction hits with uniform density
	inside := core.NewVec3(0, 0, -4.5)
	if got := sphere.PDFValue(inside, core.NewVec3(1, 0, 0)); math.Abs(got-1/(4*math.Pi)) > 1e-9 {
		t.Errorf("PDFValue from inside: got %f, expected 1/4π", got)
	}
	if d := sphere.Random(inside, sampler); !d.IsFinite() || d.Length() == 0 {
		t.Errorf("Random from inside returned %v", d)
	}
}

func TestMovingSphere(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, -5), core.NewVec3(0, 2, -5), 0, 1, 0.5, nil)

	if c := sphere.Center(0.5); c != core.NewVec3(0, 1, -5) {
		t.Errorf("Center(0.5): got %v", c)
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if _, ok := sphere.Hit(ray, 0.001, math.Inf(1), nil); !ok {
		t.Error("Expected hit at time 0")
	}
	ray.Time = 1
	if _, ok := sphere.Hit(ray, 0.001, math.Inf(1), nil); ok {
		t.Error("Expected miss at time 1 after the sphere moved")
	}

	box, ok := sphere.BoundingBox(0, 1)
	if !ok {
		t.Fatal("Expected a bounding box")
	}
	expected := core.NewAABB(core.NewVec3(-0.5, -0.5, -5.5), core.NewVec3(0.5, 2.5, -4.5))
	if box != expected {
		t.Errorf("Expected box %v, got %v", expected, box)
	}
}
