package geometry

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// HittablePDF samples directions from Origin toward a light source
type HittablePDF struct {
	Origin core.Vec3
	Light  LightSource
}

// NewHittablePDF creates a density over directions from origin toward light
func NewHittablePDF(light LightSource, origin core.Vec3) *HittablePDF {
	return &HittablePDF{Origin: origin, Light: light}
}

// Value delegates to the light's solid-angle density
func (p *HittablePDF) Value(direction core.Vec3) float64 {
	return p.Light.PDFValue(p.Origin, direction)
}

// Generate delegates to the light's direction sampler
func (p *HittablePDF) Generate(sampler core.Sampler) core.Vec3 {
	return p.Light.Random(p.Origin, sampler)
}
