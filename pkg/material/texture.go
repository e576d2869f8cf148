package material

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
)

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Sample returns color at surface coordinates (u, v) and 3D point p.
	// UV is used for image textures, point for procedural textures
	Sample(u, v float64, p core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Sample returns the solid color regardless of UV or position
func (s *SolidColor) Sample(u, v float64, p core.Vec3) core.Vec3 {
	return s.Color
}

// Checker is a 3D checker pattern selecting between two textures by the sign of
// sin(10x)·sin(10y)·sin(10z)
type Checker struct {
	Even Texture
	Odd  Texture
}

// NewChecker creates a checker pattern from two textures
func NewChecker(even, odd Texture) *Checker {
	return &Checker{Even: even, Odd: odd}
}

// NewCheckerColors creates a checker pattern from two solid colors
func NewCheckerColors(even, odd core.Vec3) *Checker {
	return NewChecker(NewSolidColor(even), NewSolidColor(odd))
}

// Sample picks the odd texture where the sine product is negative
func (c *Checker) Sample(u, v float64, p core.Vec3) core.Vec3 {
	sines := math.Sin(10*p.X) * math.Sin(10*p.Y) * math.Sin(10*p.Z)
	if sines < 0 {
		return c.Odd.Sample(u, v, p)
	}
	return c.Even.Sample(u, v, p)
}
