package scene

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// NewFinalScene creates the showcase scene: a field of ground blocks, a moving sphere,
// glass, metal, subsurface-like media, global fog, textured spheres and a rotated cluster
func NewFinalScene(opts Options) (*Scene, error) {
	random := rand.New(rand.NewSource(opts.seed()))

	// Ground: a 20x20 grid of boxes of random height, gathered in their own BVH
	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	const boxesPerSide = 20
	blocks := make([]geometry.Hittable, 0, boxesPerSide*boxesPerSide)
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			w := 100.0
			x0 := -1000.0 + float64(i)*w
			z0 := -1000.0 + float64(j)*w
			y1 := 1 + 100*random.Float64()
			blocks = append(blocks, geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground))
		}
	}
	groundBVH, err := geometry.NewBVH(blocks, 0, 1, random)
	if err != nil {
		return nil, fmt.Errorf("final ground: %w", err)
	}

	light := geometry.NewFlipFace(geometry.NewXZRect(123, 423, 147, 412, 554, material.NewDiffuseLight(core.NewVec3(7, 7, 7))))

	center0 := core.NewVec3(400, 400, 200)
	center1 := center0.Add(core.NewVec3(30, 0, 0))
	movingSphere := geometry.NewMovingSphere(center0, center1, 0, 1, 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1)))

	// Blue subsurface: a glass shell filled with a dense medium
	subsurfaceShell := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	subsurface := geometry.NewConstantMedium(subsurfaceShell, 0.2, core.NewVec3(0.2, 0.4, 0.9))

	// Thin fog over the whole scene
	fog := geometry.NewConstantMedium(
		geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5)),
		0.0001, core.NewVec3(1, 1, 1))

	earthTex, err := earthTexture(opts)
	if err != nil {
		return nil, err
	}
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(0.1, random))

	// A cluster of small white spheres, rotated and moved into place as one object
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	cluster := make([]geometry.Hittable, 0, 1000)
	for i := 0; i < 1000; i++ {
		center := core.NewVec3(165*random.Float64(), 165*random.Float64(), 165*random.Float64())
		cluster = append(cluster, geometry.NewSphere(center, 10, white))
	}
	clusterBVH, err := geometry.NewBVH(cluster, 0, 1, random)
	if err != nil {
		return nil, fmt.Errorf("final cluster: %w", err)
	}

	objects := []geometry.Hittable{
		groundBVH,
		light,
		movingSphere,
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)),
		subsurfaceShell,
		subsurface,
		fog,
		geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(earthTex)),
		geometry.NewSphere(core.NewVec3(220, 280, 300), 80, marble),
		geometry.NewTranslate(geometry.NewRotateY(clusterBVH, 15, 0, 1), core.NewVec3(-100, 270, 395)),
	}

	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(478, 278, -600),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: opts.aspect(1.0),
		Time0:       0,
		Time1:       1,
	}

	sampling := renderer.DefaultSamplingConfig()
	sampling.SamplesPerPixel = 1000
	sampling.Seed = opts.seed()

	return New("final", objects, geometry.NewHittableList(light),
		core.NewVec3(0, 0, 0), cameraConfig, sampling, opts.logger())
}
