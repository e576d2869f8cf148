package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-raytracer/pkg/core"
)

const (
	perlinPointCount = 256
	perlinMask       = perlinPointCount - 1

	// DefaultTurbulenceDepth is the number of octaves summed by Turbulence
	DefaultTurbulenceDepth = 7
)

// Perlin is a gradient lattice noise generator.
// The tables are filled once at construction and read-only afterwards.
type Perlin struct {
	gradients [perlinPointCount]core.Vec3
	permX     [perlinPointCount]int
	permY     [perlinPointCount]int
	permZ     [perlinPointCount]int
}

// NewPerlin builds random gradient and permutation tables from random
func NewPerlin(random *rand.Rand) *Perlin {
	p := &Perlin{}
	for i := range p.gradients {
		p.gradients[i] = core.NewVec3(
			2*random.Float64()-1,
			2*random.Float64()-1,
			2*random.Float64()-1,
		).Normalize()
	}
	generatePermutation(&p.permX, random)
	generatePermutation(&p.permY, random)
	generatePermutation(&p.permZ, random)
	return p
}

func generatePermutation(perm *[perlinPointCount]int, random *rand.Rand) {
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		target := random.Intn(i + 1)
		perm[i], perm[target] = perm[target], perm[i]
	}
}

// Noise returns smoothed gradient noise at p, roughly in [-1, 1]
func (p *Perlin) Noise(point core.Vec3) float64 {
	fx := math.Floor(point.X)
	fy := math.Floor(point.Y)
	fz := math.Floor(point.Z)
	u := point.X - fx
	v := point.Y - fy
	w := point.Z - fz

	i := int(fx)
	j := int(fy)
	k := int(fz)

	var c [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				c[di][dj][dk] = p.gradients[p.permX[(i+di)&perlinMask]^
					p.permY[(j+dj)&perlinMask]^
					p.permZ[(k+dk)&perlinMask]]
			}
		}
	}

	return trilinearGradient(&c, u, v, w)
}

func trilinearGradient(c *[2][2][2]core.Vec3, u, v, w float64) float64 {
	// Hermite smoothing
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				fi, fj, fk := float64(i), float64(j), float64(k)
				weight := core.NewVec3(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					c[i][j][k].Dot(weight)
			}
		}
	}
	return accum
}

// Turbulence sums depth octaves of noise, halving the weight and doubling the frequency each time
func (p *Perlin) Turbulence(point core.Vec3, depth int) float64 {
	accum := 0.0
	weight := 1.0
	for i := 0; i < depth; i++ {
		accum += weight * p.Noise(point)
		weight *= 0.5
		point = point.Multiply(2)
	}
	return math.Abs(accum)
}

// NoiseTexture is a marbled grayscale texture driven by Perlin turbulence
type NoiseTexture struct {
	Noise *Perlin
	Scale float64
}

// NewNoiseTexture creates a marble texture with the given frequency scale
func NewNoiseTexture(scale float64, random *rand.Rand) *NoiseTexture {
	return &NoiseTexture{Noise: NewPerlin(random), Scale: scale}
}

// Sample returns 0.5·(1 + sin(scale·z + 10·turbulence(p))) as a gray level
func (n *NoiseTexture) Sample(u, v float64, p core.Vec3) core.Vec3 {
	gray := 0.5 * (1 + math.Sin(n.Scale*p.Z+10*n.Noise.Turbulence(p, DefaultTurbulenceDepth)))
	return core.NewVec3(gray, gray, gray)
}
