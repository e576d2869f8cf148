package geometry

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// ConstantMedium is a participating medium of uniform density bounded by a closed shape
type ConstantMedium struct {
	Boundary      Hittable
	PhaseFunction material.Material
	negInvDensity float64
}

// NewConstantMedium fills boundary with a medium of the given density and color
func NewConstantMedium(boundary Hittable, density float64, color core.Vec3) *ConstantMedium {
	return NewTexturedConstantMedium(boundary, density, material.NewSolidColor(color))
}

// NewTexturedConstantMedium fills boundary with a medium whose albedo comes from a texture
func NewTexturedConstantMedium(boundary Hittable, density float64, albedo material.Texture) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		PhaseFunction: material.NewTexturedIsotropic(albedo),
		negInvDensity: -1 / density,
	}
}

// Hit finds the entry and exit points of the boundary and samples a free-flight
// distance -1/density·ln(U) inside that span
func (m *ConstantMedium) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	entry, ok := m.Boundary.Hit(ray, math.Inf(-1), math.Inf(1), sampler)
	if !ok {
		return nil, false
	}
	exit, ok := m.Boundary.Hit(ray, entry.T+0.0001, math.Inf(1), sampler)
	if !ok {
		return nil, false
	}

	t0 := math.Max(entry.T, tMin)
	t1 := math.Min(exit.T, tMax)
	if t0 >= t1 {
		return nil, false
	}
	if t0 < 0 {
		t0 = 0
	}

	rayLength := ray.Direction.Length()
	distanceInside := (t1 - t0) * rayLength
	// 1-U lies in (0, 1], keeping the logarithm finite
	hitDistance := m.negInvDensity * math.Log(1-sampler.Get1D())
	if hitDistance > distanceInside {
		return nil, false
	}

	t := t0 + hitDistance/rayLength
	return &material.HitRecord{
		T:         t,
		Point:     ray.At(t),
		Normal:    core.NewVec3(1, 0, 0), // Arbitrary
		FrontFace: true,                  // Arbitrary
		Material:  m.PhaseFunction,
	}, true
}

// BoundingBox is the boundary's box
func (m *ConstantMedium) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return m.Boundary.BoundingBox(time0, time1)
}
