package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// DiffuseLight represents a light-emitting material
type DiffuseLight struct {
	Emit Texture // Emitted light color/intensity
}

// NewDiffuseLight creates a new emissive material with a solid emission color
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emit: NewSolidColor(emission)}
}

// NewTexturedDiffuseLight creates a new emissive material driven by a texture
func NewTexturedDiffuseLight(emit Texture) *DiffuseLight {
	return &DiffuseLight{Emit: emit}
}

// Scatter absorbs all incoming rays - lights only emit
func (e *DiffuseLight) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	return ScatterRecord{}, false
}

// ScatteringPDF is zero since nothing scatters
func (e *DiffuseLight) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	return 0
}

// Emitted returns the texture color on the front face and black on the back
func (e *DiffuseLight) Emitted(rayIn core.Ray, hit *HitRecord, u, v float64, point core.Vec3) core.Vec3 {
	if !hit.FrontFace {
		return core.Vec3{}
	}
	return e.Emit.Sample(u, v, point)
}
