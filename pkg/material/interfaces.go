package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// Material interface for surfaces that respond to incoming rays
type Material interface {
	// Scatter returns how an incoming ray leaves the surface.
	// ok=false means the surface absorbs the ray (it may still emit).
	Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool)

	// ScatteringPDF returns the density of the material's own scatter distribution
	// for the scattered direction, used to weight samples drawn from another PDF
	ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emitted(rayIn core.Ray, hit *HitRecord, u, v float64, point core.Vec3) core.Vec3
}

// Emitted returns the light emitted by m at the hit, or black for non-emissive materials
func Emitted(m Material, rayIn core.Ray, hit *HitRecord) core.Vec3 {
	if emitter, ok := m.(Emitter); ok {
		return emitter.Emitted(rayIn, hit, hit.U, hit.V, hit.Point)
	}
	return core.Vec3{}
}

// ScatterRecord contains the result of material scattering.
// Exactly one of SpecularRay and PDF is set for a scattering material.
type ScatterRecord struct {
	SpecularRay *core.Ray // Explicit mirror/refraction ray, bypasses importance sampling
	Attenuation core.Vec3 // Color attenuation
	PDF         core.PDF  // Distribution for diffuse outgoing directions
}

// IsSpecular returns true if this is specular scattering (no PDF)
func (s ScatterRecord) IsSpecular() bool {
	return s.SpecularRay != nil
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal at intersection, always facing the incoming ray
	T         float64   // Parameter t along the ray
	U, V      float64   // Surface coordinates
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Material of the hit object (shared, may be nil)
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
