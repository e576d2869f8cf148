package geometry

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	return hitSphere(s.Center, s.Radius, s.Material, ray, tMin, tMax)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return sphereBox(s.Center, s.Radius), true
}

// PDFValue returns 1/solid angle of the sphere as seen from origin when direction hits it.
// From inside the sphere every direction hits, so the density is uniform over the full sphere.
func (s *Sphere) PDFValue(origin, direction core.Vec3) float64 {
	if _, ok := s.Hit(core.NewRay(origin, direction), 0.001, math.Inf(1), nil); !ok {
		return 0
	}

	distanceSquared := s.Center.Subtract(origin).LengthSquared()
	radiusSquared := s.Radius * s.Radius
	if distanceSquared <= radiusSquared {
		return 1 / (4 * math.Pi)
	}

	cosThetaMax := math.Sqrt(1 - radiusSquared/distanceSquared)
	solidAngle := 2 * math.Pi * (1 - cosThetaMax)
	return 1 / solidAngle
}

// Sampleable is always true for spheres
func (s *Sphere) Sampleable() bool { return true }

// Random samples a direction uniformly over the cone the sphere subtends from origin
func (s *Sphere) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	direction := s.Center.Subtract(origin)
	distanceSquared := direction.LengthSquared()
	if distanceSquared <= s.Radius*s.Radius {
		return core.SampleOnUnitSphere(sampler.Get2D())
	}
	uvw := core.NewONBFromW(direction)
	return uvw.Local(core.RandomToSphere(s.Radius, distanceSquared, sampler.Get2D()))
}

// SphereUV maps a point on the unit sphere to texture coordinates:
// u = (atan2(-z, x) + π) / 2π, v = acos(-y) / π
func SphereUV(p core.Vec3) (u, v float64) {
	theta := math.Acos(math.Max(-1, math.Min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return phi / (2 * math.Pi), theta / math.Pi
}

func hitSphere(center core.Vec3, radius float64, mat material.Material, ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - radius*radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || a == 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: mat,
	}

	// Outward normal from center to hit point
	outwardNormal := hitRecord.Point.Subtract(center).Divide(radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)
	hitRecord.U, hitRecord.V = SphereUV(outwardNormal)

	return hitRecord, true
}

func sphereBox(center core.Vec3, radius float64) core.AABB {
	r := math.Abs(radius)
	extent := core.NewVec3(r, r, r)
	return core.NewAABB(center.Subtract(extent), center.Add(extent))
}

// MovingSphere is a sphere whose center moves linearly from Center0 at Time0 to Center1 at Time1
type MovingSphere struct {
	Center0, Center1 core.Vec3
	Time0, Time1     float64
	Radius           float64
	Material         material.Material
}

// NewMovingSphere creates a new moving sphere
func NewMovingSphere(center0, center1 core.Vec3, time0, time1, radius float64, material material.Material) *MovingSphere {
	return &MovingSphere{
		Center0:  center0,
		Center1:  center1,
		Time0:    time0,
		Time1:    time1,
		Radius:   radius,
		Material: material,
	}
}

// Center returns the sphere center at the given time
func (s *MovingSphere) Center(time float64) core.Vec3 {
	if s.Time1 == s.Time0 {
		return s.Center0
	}
	fraction := (time - s.Time0) / (s.Time1 - s.Time0)
	return s.Center0.Add(s.Center1.Subtract(s.Center0).Multiply(fraction))
}

// Hit intersects the sphere at its position for the ray's time
func (s *MovingSphere) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	return hitSphere(s.Center(ray.Time), s.Radius, s.Material, ray, tMin, tMax)
}

// BoundingBox is the union of the boxes at time0 and time1
func (s *MovingSphere) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box0 := sphereBox(s.Center(time0), s.Radius)
	box1 := sphereBox(s.Center(time1), s.Radius)
	return box0.Union(box1), true
}
