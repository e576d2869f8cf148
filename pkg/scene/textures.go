package scene

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/loaders"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

func lookAtOrigin(from core.Vec3, aspect float64) geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:      from,
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        20.0,
		AspectRatio: aspect,
	}
}

// NewPerlinScene creates a marble sphere resting on a marble ground under a blue sky
func NewPerlinScene(opts Options) (*Scene, error) {
	random := rand.New(rand.NewSource(opts.seed()))
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, random))

	objects := []geometry.Hittable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	}

	sampling := renderer.DefaultSamplingConfig()
	sampling.Seed = opts.seed()

	cameraConfig := lookAtOrigin(core.NewVec3(13, 2, 3), opts.aspect(16.0/9.0))
	return New("perlin", objects, nil, skyBackground, cameraConfig, sampling, opts.logger())
}

// NewEarthScene creates a globe wrapped in an image texture.
// Without opts.TexturePath a procedural land and ocean map is used.
func NewEarthScene(opts Options) (*Scene, error) {
	texture, err := earthTexture(opts)
	if err != nil {
		return nil, err
	}

	objects := []geometry.Hittable{
		geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(texture)),
	}

	sampling := renderer.DefaultSamplingConfig()
	sampling.Seed = opts.seed()

	cameraConfig := lookAtOrigin(core.NewVec3(0, 0, 12), opts.aspect(16.0/9.0))
	return New("earth", objects, nil, skyBackground, cameraConfig, sampling, opts.logger())
}

func earthTexture(opts Options) (*material.ImageTexture, error) {
	if opts.TexturePath != "" {
		width, height, pixels, err := loaders.LoadImage(opts.TexturePath)
		if err != nil {
			return nil, fmt.Errorf("earth texture: %w", err)
		}
		return material.NewImageTexture(width, height, pixels), nil
	}
	return proceduralEarth(256, 128, opts.seed()), nil
}

// proceduralEarth paints an equirectangular map where turbulence above a threshold becomes land.
// Latitudes near the poles are white.
func proceduralEarth(width, height int, seed int64) *material.ImageTexture {
	perlin := material.NewPerlin(rand.New(rand.NewSource(seed)))
	ocean := core.NewVec3(0.05, 0.2, 0.55)
	land := core.NewVec3(0.25, 0.5, 0.15)
	ice := core.NewVec3(0.95, 0.95, 0.95)

	pixels := make([]byte, 0, width*height*3)
	for j := 0; j < height; j++ {
		// Row 0 is the north pole
		theta := math.Pi * (float64(j) + 0.5) / float64(height)
		for i := 0; i < width; i++ {
			phi := 2 * math.Pi * (float64(i) + 0.5) / float64(width)
			p := core.NewVec3(math.Sin(theta)*math.Cos(phi), math.Cos(theta), math.Sin(theta)*math.Sin(phi)).Multiply(3)

			color := ocean
			if perlin.Turbulence(p, material.DefaultTurbulenceDepth) > 0.35 {
				color = land
			}
			if math.Abs(math.Cos(theta)) > 0.92 {
				color = ice
			}
			pixels = append(pixels, byte(255*color.X), byte(255*color.Y), byte(255*color.Z))
		}
	}
	return material.NewImageTexture(width, height, pixels)
}

// NewSimpleLightScene creates two marble spheres lit only by a rectangle and a small sphere light
func NewSimpleLightScene(opts Options) (*Scene, error) {
	random := rand.New(rand.NewSource(opts.seed()))
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, random))
	diffuseLight := material.NewDiffuseLight(core.NewVec3(4, 4, 4))

	// The rectangle faces +Z toward the spheres
	rectLight := geometry.NewXYRect(3, 5, 1, 3, -2, diffuseLight)
	sphereLight := geometry.NewSphere(core.NewVec3(0, 7, 0), 2, diffuseLight)

	objects := []geometry.Hittable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
		rectLight,
		sphereLight,
	}

	sampling := renderer.DefaultSamplingConfig()
	sampling.SamplesPerPixel = 400
	sampling.Seed = opts.seed()

	cameraConfig := lookAtOrigin(core.NewVec3(26, 3, 6), opts.aspect(16.0/9.0))
	cameraConfig.LookAt = core.NewVec3(0, 2, 0)
	return New("simple-light", objects, geometry.NewHittableList(rectLight, sphereLight),
		core.NewVec3(0, 0, 0), cameraConfig, sampling, opts.logger())
}
