package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo core.Vec3 // Metal color
	Fuzz   float64   // 0.0 = perfect mirror, approaching 1.0 = very fuzzy
}

// NewMetal creates a new metal material; fuzz is clamped to [0, 1)
func NewMetal(albedo core.Vec3, fuzz float64) *Metal {
	if fuzz >= 1.0 {
		fuzz = 0.999
	}
	if fuzz < 0.0 {
		fuzz = 0.0
	}
	return &Metal{Albedo: albedo, Fuzz: fuzz}
}

// Scatter reflects the incoming direction about the normal, perturbed by fuzz
func (m *Metal) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	reflected := rayIn.Direction.Normalize().Reflect(hit.Normal)
	if m.Fuzz > 0 {
		reflected = reflected.Add(core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(m.Fuzz))
	}

	// Absorbed if the perturbed ray goes below the surface
	if reflected.Dot(hit.Normal) <= 0 {
		return ScatterRecord{}, false
	}

	specular := core.NewRayAtTime(hit.Point, reflected, rayIn.Time)
	return ScatterRecord{
		SpecularRay: &specular,
		Attenuation: m.Albedo,
	}, true
}

// ScatteringPDF is zero: metal is sampled through its specular ray only
func (m *Metal) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	return 0
}
