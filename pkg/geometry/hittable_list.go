package geometry

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// HittableList is a linear aggregate of hittables
type HittableList struct {
	Objects []Hittable
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	return &HittableList{Objects: objects}
}

// Add appends an object to the list
func (l *HittableList) Add(object Hittable) {
	l.Objects = append(l.Objects, object)
}

// Len returns the number of objects in the list
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit scans every member and keeps the closest hit
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestSoFar := tMax

	for _, object := range l.Objects {
		if hit, ok := object.Hit(ray, tMin, closestSoFar, sampler); ok {
			closest = hit
			closestSoFar = hit.T
		}
	}

	return closest, closest != nil
}

// BoundingBox returns the union of the members' boxes.
// An empty list, or one with any unbounded member, has no box.
func (l *HittableList) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	if len(l.Objects) == 0 {
		return core.AABB{}, false
	}

	var result core.AABB
	for i, object := range l.Objects {
		box, ok := object.BoundingBox(time0, time1)
		if !ok {
			return core.AABB{}, false
		}
		if i == 0 {
			result = box
		} else {
			result = result.Union(box)
		}
	}
	return result, true
}

// lights returns the members that can be importance sampled
func (l *HittableList) lights() []LightSource {
	var sources []LightSource
	for _, object := range l.Objects {
		if IsSampleable(object) {
			sources = append(sources, object.(LightSource))
		}
	}
	return sources
}

// Sampleable reports whether any member can be importance sampled
func (l *HittableList) Sampleable() bool {
	for _, object := range l.Objects {
		if IsSampleable(object) {
			return true
		}
	}
	return false
}

// PDFValue averages the densities of the sampleable members
func (l *HittableList) PDFValue(origin, direction core.Vec3) float64 {
	sources := l.lights()
	if len(sources) == 0 {
		return 0
	}

	weight := 1.0 / float64(len(sources))
	sum := 0.0
	for _, source := range sources {
		sum += weight * source.PDFValue(origin, direction)
	}
	return sum
}

// Random picks a sampleable member uniformly and samples a direction toward it.
// A list without such members returns +X, which has zero density; callers check Sampleable first.
func (l *HittableList) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	sources := l.lights()
	if len(sources) == 0 {
		return core.NewVec3(1, 0, 0)
	}

	index := int(sampler.Get1D() * float64(len(sources)))
	if index >= len(sources) {
		index = len(sources) - 1
	}
	return sources[index].Random(origin, sampler)
}
