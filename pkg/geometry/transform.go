package geometry

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// Translate moves a wrapped object by Offset
type Translate struct {
	Object Hittable
	Offset core.Vec3
}

// NewTranslate wraps object so it appears moved by offset
func NewTranslate(object Hittable, offset core.Vec3) *Translate {
	return &Translate{Object: object, Offset: offset}
}

// Hit moves the ray into object space, intersects, and moves the hit point back
func (t *Translate) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	moved := core.NewRayAtTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)
	hit, ok := t.Object.Hit(moved, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}
	hit.Point = hit.Point.Add(t.Offset)
	return hit, true
}

// BoundingBox returns the wrapped box moved by the offset
func (t *Translate) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box, ok := t.Object.BoundingBox(time0, time1)
	if !ok {
		return core.AABB{}, false
	}
	return box.Translate(t.Offset), true
}

// PDFValue forwards light sampling to the wrapped object in its local frame
func (t *Translate) PDFValue(origin, direction core.Vec3) float64 {
	source, ok := t.Object.(LightSource)
	if !ok {
		return 0
	}
	return source.PDFValue(origin.Subtract(t.Offset), direction)
}

// Sampleable reports whether the wrapped object is a sampleable light
func (t *Translate) Sampleable() bool { return IsSampleable(t.Object) }

// Random forwards light sampling to the wrapped object in its local frame
func (t *Translate) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	source, ok := t.Object.(LightSource)
	if !ok {
		return core.NewVec3(1, 0, 0)
	}
	return source.Random(origin.Subtract(t.Offset), sampler)
}

// RotateY rotates a wrapped object about the Y axis
type RotateY struct {
	Object   Hittable
	sinTheta float64
	cosTheta float64
	box      core.AABB
	hasBox   bool
}

// NewRotateY wraps object rotated by angle degrees about the Y axis.
// The world-space box is computed once from the 8 rotated corners of the child's box.
func NewRotateY(object Hittable, angle float64, time0, time1 float64) *RotateY {
	radians := angle * math.Pi / 180
	r := &RotateY{
		Object:   object,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	box, ok := object.BoundingBox(time0, time1)
	if !ok {
		return r
	}

	corners := box.Corners()
	rotated := make([]core.Vec3, len(corners))
	for i, corner := range corners {
		rotated[i] = r.toWorld(corner)
	}
	r.box = core.NewAABBFromPoints(rotated...)
	r.hasBox = true
	return r
}

// toObject rotates a world-space vector into object space
func (r *RotateY) toObject(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// toWorld rotates an object-space vector into world space
func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// Hit rotates the ray into object space, intersects, and rotates the point and normal back
func (r *RotateY) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	rotated := core.NewRayAtTime(r.toObject(ray.Origin), r.toObject(ray.Direction), ray.Time)
	hit, ok := r.Object.Hit(rotated, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}
	hit.Point = r.toWorld(hit.Point)
	hit.Normal = r.toWorld(hit.Normal)
	return hit, true
}

// BoundingBox returns the box computed at construction
func (r *RotateY) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return r.box, r.hasBox
}

// FlipFace inverts the front-face flag of a wrapped object's hits
type FlipFace struct {
	Object Hittable
}

// NewFlipFace wraps object with its sidedness inverted
func NewFlipFace(object Hittable) *FlipFace {
	return &FlipFace{Object: object}
}

// Hit delegates and inverts FrontFace
func (f *FlipFace) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	hit, ok := f.Object.Hit(ray, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}
	hit.FrontFace = !hit.FrontFace
	return hit, true
}

// BoundingBox delegates to the wrapped object
func (f *FlipFace) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return f.Object.BoundingBox(time0, time1)
}

// PDFValue forwards light sampling to the wrapped object
func (f *FlipFace) PDFValue(origin, direction core.Vec3) float64 {
	if source, ok := f.Object.(LightSource); ok {
		return source.PDFValue(origin, direction)
	}
	return 0
}

// Sampleable reports whether the wrapped object is a sampleable light
func (f *FlipFace) Sampleable() bool { return IsSampleable(f.Object) }

// Random forwards light sampling to the wrapped object
func (f *FlipFace) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	if source, ok := f.Object.(LightSource); ok {
		return source.Random(origin, sampler)
	}
	return core.NewVec3(1, 0, 0)
}
