package integrator

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
)

const (
	// rayEpsilon offsets tMin to avoid self-intersection ("shadow acne")
	rayEpsilon = 0.001
)

// missingMaterialColor marks hits on shapes that were built without a material
var missingMaterialColor = core.NewVec3(1, 0, 0)

// PathTracingIntegrator implements recursive unidirectional path tracing with a
// one-sample mixture of light and material sampling for diffuse bounces
type PathTracingIntegrator struct {
	maxDepth int
}

// NewPathTracingIntegrator creates a path tracer that follows at most maxDepth bounces
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{maxDepth: maxDepth}
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, scene, sampler, pt.maxDepth)
}

func (pt *PathTracingIntegrator) rayColor(ray core.Ray, scene Scene, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := scene.GetWorld().Hit(ray, rayEpsilon, math.Inf(1), sampler)
	if !isHit {
		return scene.GetBackground()
	}

	if hit.Material == nil {
		return missingMaterialColor
	}

	colorEmitted := material.Emitted(hit.Material, ray, hit)

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		// Material absorbed the ray, only return emitted light
		return colorEmitted
	}

	if scatter.IsSpecular() {
		return colorEmitted.Add(scatter.Attenuation.MultiplyVec(
			pt.rayColor(*scatter.SpecularRay, scene, sampler, depth-1)))
	}

	return colorEmitted.Add(pt.diffuseColor(ray, hit, scatter, scene, sampler, depth))
}

// diffuseColor samples a direction from the mixture of light and material densities
// and weights the recursive estimate by scatteringPDF/mixturePDF
func (pt *PathTracingIntegrator) diffuseColor(ray core.Ray, hit *material.HitRecord, scatter material.ScatterRecord, scene Scene, sampler core.Sampler, depth int) core.Vec3 {
	if scatter.PDF == nil {
		return core.Vec3{}
	}

	// Without sampleable lights only the material's own distribution is sampled
	samplingPDF := scatter.PDF
	if lights := scene.GetLights(); lights != nil && lights.Sampleable() {
		lightPDF := geometry.NewHittablePDF(lights, hit.Point)
		samplingPDF = core.NewMixturePDF(lightPDF, scatter.PDF)
	}

	scattered := core.NewRayAtTime(hit.Point, samplingPDF.Generate(sampler), ray.Time)
	pdfValue := samplingPDF.Value(scattered.Direction)
	if pdfValue <= 0 || math.IsNaN(pdfValue) || math.IsInf(pdfValue, 0) {
		return core.Vec3{}
	}

	scatteringPDF := hit.Material.ScatteringPDF(ray, hit, scattered)
	if scatteringPDF <= 0 {
		return core.Vec3{}
	}

	incoming := pt.rayColor(scattered, scene, sampler, depth-1)
	return scatter.Attenuation.MultiplyVec(incoming).Multiply(scatteringPDF / pdfValue)
}
