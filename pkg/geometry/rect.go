package geometry

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// rectPadding inflates the thin axis of a rectangle's bounding box
const rectPadding = 0.0001

// Axis-aligned rectangle orientations, named by the two axes they span
const (
	planeXY = iota
	planeXZ
	planeYZ
)

// AARect is an axis-aligned rectangle lying in the plane axis=K.
// It spans [A0, A1] on its first in-plane axis and [B0, B1] on its second.
type AARect struct {
	A0, A1, B0, B1 float64
	K              float64
	Material       material.Material

	axisA, axisB, axisK int
}

// NewXYRect creates a rectangle in the plane z=k spanning [x0,x1]×[y0,y1], normal +Z
func NewXYRect(x0, x1, y0, y1, k float64, mat material.Material) *AARect {
	return newAARect(planeXY, x0, x1, y0, y1, k, mat)
}

// NewXZRect creates a rectangle in the plane y=k spanning [x0,x1]×[z0,z1], normal +Y
func NewXZRect(x0, x1, z0, z1, k float64, mat material.Material) *AARect {
	return newAARect(planeXZ, x0, x1, z0, z1, k, mat)
}

// NewYZRect creates a rectangle in the plane x=k spanning [y0,y1]×[z0,z1], normal +X
func NewYZRect(y0, y1, z0, z1, k float64, mat material.Material) *AARect {
	return newAARect(planeYZ, y0, y1, z0, z1, k, mat)
}

func newAARect(plane int, a0, a1, b0, b1, k float64, mat material.Material) *AARect {
	r := &AARect{
		A0: math.Min(a0, a1), A1: math.Max(a0, a1),
		B0: math.Min(b0, b1), B1: math.Max(b0, b1),
		K:        k,
		Material: mat,
	}
	switch plane {
	case planeXY:
		r.axisA, r.axisB, r.axisK = 0, 1, 2
	case planeXZ:
		r.axisA, r.axisB, r.axisK = 0, 2, 1
	default:
		r.axisA, r.axisB, r.axisK = 1, 2, 0
	}
	return r
}

// point assembles a world-space point from in-plane coordinates
func (r *AARect) point(a, b, k float64) core.Vec3 {
	var c [3]float64
	c[r.axisA] = a
	c[r.axisB] = b
	c[r.axisK] = k
	return core.NewVec3(c[0], c[1], c[2])
}

// Normal returns the rectangle's outward normal (positive along its constant axis)
func (r *AARect) Normal() core.Vec3 {
	return r.point(0, 0, 1)
}

// Area returns the rectangle's surface area
func (r *AARect) Area() float64 {
	return (r.A1 - r.A0) * (r.B1 - r.B0)
}

// Hit intersects the ray with the rectangle's plane and rejects points outside its extent
func (r *AARect) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	t := (r.K - ray.Origin.Axis(r.axisK)) / ray.Direction.Axis(r.axisK)
	// Parallel rays divide to ±Inf or NaN and fail here
	if math.IsInf(t, 0) || !(t >= tMin && t <= tMax) {
		return nil, false
	}

	a := ray.Origin.Axis(r.axisA) + t*ray.Direction.Axis(r.axisA)
	b := ray.Origin.Axis(r.axisB) + t*ray.Direction.Axis(r.axisB)
	if a < r.A0 || a > r.A1 || b < r.B0 || b > r.B1 {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		U:        (a - r.A0) / (r.A1 - r.A0),
		V:        (b - r.B0) / (r.B1 - r.B0),
		Material: r.Material,
	}
	hitRecord.SetFaceNormal(ray, r.Normal())
	return hitRecord, true
}

// BoundingBox pads the constant axis so the box is never zero-thickness
func (r *AARect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.NewAABB(
		r.point(r.A0, r.B0, r.K-rectPadding),
		r.point(r.A1, r.B1, r.K+rectPadding),
	), true
}

// PDFValue converts the uniform area density into a solid-angle density from origin
func (r *AARect) PDFValue(origin, direction core.Vec3) float64 {
	hit, ok := r.Hit(core.NewRay(origin, direction), 0.001, math.Inf(1), nil)
	if !ok {
		return 0
	}

	lengthSquared := direction.LengthSquared()
	distanceSquared := hit.T * hit.T * lengthSquared
	cosine := math.Abs(direction.Dot(r.Normal())) / math.Sqrt(lengthSquared)
	if cosine == 0 {
		return 0
	}
	return distanceSquared / (cosine * r.Area())
}

// Sampleable reports whether the rectangle has area to sample
func (r *AARect) Sampleable() bool { return r.Area() > 0 }

// Random returns a direction from origin toward a uniformly chosen point on the rectangle
func (r *AARect) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	sample := sampler.Get2D()
	p := r.point(
		r.A0+sample.X*(r.A1-r.A0),
		r.B0+sample.Y*(r.B1-r.B0),
		r.K,
	)
	return p.Subtract(origin)
}
