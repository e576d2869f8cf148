package geometry

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// Box is an axis-aligned box made of six rectangles
type Box struct {
	Min, Max core.Vec3
	sides    *HittableList
}

// NewBox creates an axis-aligned box between two opposite corners
func NewBox(p0, p1 core.Vec3, mat material.Material) *Box {
	min := core.NewVec3(math.Min(p0.X, p1.X), math.Min(p0.Y, p1.Y), math.Min(p0.Z, p1.Z))
	max := core.NewVec3(math.Max(p0.X, p1.X), math.Max(p0.Y, p1.Y), math.Max(p0.Z, p1.Z))

	// The faces on the min side have their natural normal pointing into the box,
	// so they are flipped to keep FrontFace meaning "hit from outside"
	sides := NewHittableList(
		NewXYRect(min.X, max.X, min.Y, max.Y, max.Z, mat),
		NewFlipFace(NewXYRect(min.X, max.X, min.Y, max.Y, min.Z, mat)),
		NewXZRect(min.X, max.X, min.Z, max.Z, max.Y, mat),
		NewFlipFace(NewXZRect(min.X, max.X, min.Z, max.Z, min.Y, mat)),
		NewYZRect(min.Y, max.Y, min.Z, max.Z, max.X, mat),
		NewFlipFace(NewYZRect(min.Y, max.Y, min.Z, max.Z, min.X, mat)),
	)

	return &Box{Min: min, Max: max, sides: sides}
}

// Hit returns the closest hit among the six sides
func (b *Box) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	return b.sides.Hit(ray, tMin, tMax, sampler)
}

// BoundingBox returns the box extent directly rather than the padded union of its sides
func (b *Box) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.NewAABB(b.Min, b.Max), true
}
