package material

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
)

// Isotropic is the phase function of a participating medium: it scatters
// uniformly over the full sphere of directions
type Isotropic struct {
	Albedo Texture
}

// NewIsotropic creates an isotropic phase function with a solid color
func NewIsotropic(albedo core.Vec3) *Isotropic {
	return &Isotropic{Albedo: NewSolidColor(albedo)}
}

// NewTexturedIsotropic creates an isotropic phase function driven by a texture
func NewTexturedIsotropic(albedo Texture) *Isotropic {
	return &Isotropic{Albedo: albedo}
}

// Scatter emits a ray in a uniformly random direction. The direction is sampled
// exactly from the phase function, so it is returned as a specular ray with no
// density division.
func (i *Isotropic) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	direction := core.SampleOnUnitSphere(sampler.Get2D())
	scattered := core.NewRayAtTime(hit.Point, direction, rayIn.Time)
	return ScatterRecord{
		SpecularRay: &scattered,
		Attenuation: i.Albedo.Sample(hit.U, hit.V, hit.Point),
	}, true
}

// ScatteringPDF returns the uniform sphere density 1/4π
func (i *Isotropic) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	return 1 / (4 * math.Pi)
}
