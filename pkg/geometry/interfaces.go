package geometry

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// Hittable interface for objects that can be hit by rays
type Hittable interface {
	// Hit returns the closest intersection with t in [tMin, tMax].
	// The sampler is only consumed by stochastic objects such as participating media.
	Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool)

	// BoundingBox returns the bounds over the shutter interval [time0, time1].
	// ok=false means the object is unbounded or has no box.
	BoundingBox(time0, time1 float64) (box core.AABB, ok bool)
}

// LightSource is implemented by shapes that can be importance sampled as lights
type LightSource interface {
	// PDFValue returns the solid-angle density of sampling direction from origin toward this shape
	PDFValue(origin, direction core.Vec3) float64
	// Random returns a direction from origin toward a random point on this shape
	Random(origin core.Vec3, sampler core.Sampler) core.Vec3
	// Sampleable reports whether Random and PDFValue describe a real distribution.
	// Wrappers and aggregates are only sampleable when something inside them is.
	Sampleable() bool
}

// IsSampleable reports whether object can be importance sampled as a light
func IsSampleable(object Hittable) bool {
	source, ok := object.(LightSource)
	return ok && source.Sampleable()
}
