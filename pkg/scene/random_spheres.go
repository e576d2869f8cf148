package scene

import (
	"math/rand"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

var skyBackground = core.NewVec3(0.70, 0.80, 1.00)

// NewRandomSpheresScene creates the classic field of small random spheres around three large ones.
// Diffuse spheres bounce during the shutter interval to show motion blur.
func NewRandomSpheresScene(opts Options) (*Scene, error) {
	random := rand.New(rand.NewSource(opts.seed()))

	cameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   opts.aspect(16.0 / 9.0),
		Aperture:      0.1,
		FocusDistance: 10.0,
		Time0:         0,
		Time1:         1,
	}

	checker := material.NewCheckerColors(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	objects := []geometry.Hittable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)),
	}

	anchor := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMaterial := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
			if center.Subtract(anchor).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMaterial < 0.8:
				// Diffuse
				albedo := randomColor(random).MultiplyVec(randomColor(random))
				center1 := center.Add(core.NewVec3(0, 0.5*random.Float64(), 0))
				objects = append(objects, geometry.NewMovingSphere(center, center1, 0, 1, 0.2, material.NewLambertian(albedo)))
			case chooseMaterial < 0.95:
				// Metal
				albedo := randomColor(random).Multiply(0.5).Add(core.NewVec3(0.5, 0.5, 0.5))
				fuzz := 0.5 * random.Float64()
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				// Glass
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	objects = append(objects,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	sampling := renderer.DefaultSamplingConfig()
	sampling.Seed = opts.seed()

	// Lit by the sky alone, so there is nothing to importance sample
	return New("random-spheres", objects, nil, skyBackground, cameraConfig, sampling, opts.logger())
}

func randomColor(random *rand.Rand) core.Vec3 {
	return core.NewVec3(random.Float64(), random.Float64(), random.Float64())
}
