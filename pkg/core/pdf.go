package core

import "math"

// PDF is a probability density over directions
type PDF interface {
	// Value returns the density of sampling direction (solid-angle measure)
	Value(direction Vec3) float64
	// Generate draws a direction distributed according to this PDF
	Generate(sampler Sampler) Vec3
}

// CosinePDF is a cosine-weighted hemisphere density around a normal
type CosinePDF struct {
	uvw ONB
}

// NewCosinePDF creates a cosine density oriented along w
func NewCosinePDF(w Vec3) *CosinePDF {
	return &CosinePDF{uvw: NewONBFromW(w)}
}

// Value returns max(0, cos θ)/π
func (p *CosinePDF) Value(direction Vec3) float64 {
	cosine := direction.Normalize().Dot(p.uvw.W)
	if cosine <= 0 {
		return 0
	}
	return cosine / math.Pi
}

// Generate draws a cosine-weighted direction in the hemisphere around w
func (p *CosinePDF) Generate(sampler Sampler) Vec3 {
	return p.uvw.Local(RandomCosineDirection(sampler.Get2D()))
}

// MixturePDF is the equal-weight average of two densities
type MixturePDF struct {
	pdfs [2]PDF
}

// NewMixturePDF mixes a and b with weight 0.5 each
func NewMixturePDF(a, b PDF) *MixturePDF {
	return &MixturePDF{pdfs: [2]PDF{a, b}}
}

// Value averages the two component densities
func (p *MixturePDF) Value(direction Vec3) float64 {
	return 0.5*p.pdfs[0].Value(direction) + 0.5*p.pdfs[1].Value(direction)
}

// Generate picks one component with probability 0.5 and samples it
func (p *MixturePDF) Generate(sampler Sampler) Vec3 {
	if sampler.Get1D() < 0.5 {
		return p.pdfs[0].Generate(sampler)
	}
	return p.pdfs[1].Generate(sampler)
}
