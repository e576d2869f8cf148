package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// RandomCosineDirection returns a cosine-weighted direction around +Z in local coordinates
func RandomCosineDirection(sample Vec2) Vec3 {
	phi := 2 * math.Pi * sample.X
	r := math.Sqrt(sample.Y)
	z := math.Sqrt(1 - sample.Y)
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// RandomToSphere samples a direction uniformly within the cone subtended by a sphere
// of the given radius at distanceSquared, expressed around +Z in local coordinates.
func RandomToSphere(radius, distanceSquared float64, sample Vec2) Vec3 {
	cosThetaMax := math.Sqrt(math.Max(0, 1-radius*radius/distanceSquared))
	z := 1 + sample.Y*(cosThetaMax-1)
	phi := 2 * math.Pi * sample.X
	sinTheta := math.Sqrt(math.Max(0, 1-z*z))
	return NewVec3(math.Cos(phi)*sinTheta, math.Sin(phi)*sinTheta, z)
}

// SampleOnUnitSphere generates a uniform random direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// SamplePointInUnitDisk generates a random point in a unit disk using concentric mapping
func SamplePointInUnitDisk(sample Vec2) Vec3 {
	uOffset := NewVec2(2*sample.X-1, 2*sample.Y-1)
	if uOffset.X == 0 && uOffset.Y == 0 {
		return NewVec3(0, 0, 0)
	}

	var theta, r float64
	if math.Abs(uOffset.X) > math.Abs(uOffset.Y) {
		r = uOffset.X
		theta = math.Pi / 4 * (uOffset.Y / uOffset.X)
	} else {
		r = uOffset.Y
		theta = math.Pi/2 - math.Pi/4*(uOffset.X/uOffset.Y)
	}

	return NewVec3(r*math.Cos(theta), r*math.Sin(theta), 0)
}

// SamplePointInUnitSphere generates a random point inside a unit sphere using the inverse CDF method
func SamplePointInUnitSphere(sample Vec3) Vec3 {
	// r = ∛(u₁) accounts for volume scaling
	r := math.Cbrt(sample.X)
	phi := 2 * math.Pi * sample.Y
	cosTheta := 2*sample.Z - 1
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))

	return NewVec3(r*sinTheta*math.Cos(phi), r*sinTheta*math.Sin(phi), r*cosTheta)
}
