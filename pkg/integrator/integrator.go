package integrator

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
)

// Scene is the read-only view of a scene needed to estimate radiance
type Scene interface {
	// GetWorld returns the root aggregate, usually a BVH
	GetWorld() geometry.Hittable
	// GetLights returns the shapes used for light importance sampling (may be empty)
	GetLights() *geometry.HittableList
	// GetBackground returns the radiance of rays that escape the scene
	GetBackground() core.Vec3
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray
	RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3
}
