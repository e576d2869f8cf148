package scene

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

func cornellCamera(opts Options) geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:      core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:      core.NewVec3(278, 278, 0),    // Look at the center of the box
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: opts.aspect(1.0), // Square aspect ratio for Cornell box
		Aperture:    0.0,              // No depth of field for Cornell box
	}
}

// cornellWalls returns the five walls of an open-front Cornell box.
// The light is added separately, flipped to face down into the box.
func cornellWalls() []geometry.Hittable {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	return []geometry.Hittable{
		geometry.NewYZRect(0, boxSize, 0, boxSize, boxSize, green), // x=555, left in the image
		geometry.NewYZRect(0, boxSize, 0, boxSize, 0, red),         // x=0, right in the image
		geometry.NewXZRect(0, boxSize, 0, boxSize, 0, white),       // Floor
		geometry.NewXZRect(0, boxSize, 0, boxSize, boxSize, white), // Ceiling
		geometry.NewXYRect(0, boxSize, 0, boxSize, boxSize, white), // Back wall
	}
}

// rotatedBox places a box with its min corner at the origin, rotated about Y then moved by offset
func rotatedBox(size core.Vec3, angle float64, offset core.Vec3, mat material.Material) geometry.Hittable {
	box := geometry.NewBox(core.NewVec3(0, 0, 0), size, mat)
	return geometry.NewTranslate(geometry.NewRotateY(box, angle, 0, 1), offset)
}

// NewCornellScene creates the Cornell box with a rotated white block and a glass sphere.
// Both the ceiling light and the glass sphere are importance sampled.
func NewCornellScene(opts Options) (*Scene, error) {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	light := geometry.NewFlipFace(geometry.NewXZRect(213, 343, 227, 332, 554, material.NewDiffuseLight(core.NewVec3(15, 15, 15))))
	glassSphere := geometry.NewSphere(core.NewVec3(190, 90, 190), 90, material.NewDielectric(1.5))

	objects := append(cornellWalls(),
		light,
		rotatedBox(core.NewVec3(165, 330, 165), 15, core.NewVec3(265, 0, 295), white),
		glassSphere,
	)

	sampling := renderer.DefaultSamplingConfig()
	sampling.SamplesPerPixel = 200
	sampling.Seed = opts.seed()

	return New("cornell", objects, geometry.NewHittableList(light, glassSphere),
		core.NewVec3(0, 0, 0), cornellCamera(opts), sampling, opts.logger())
}

// NewCornellSmokeScene creates the Cornell box with two blocks of smoke and fog under a large light
func NewCornellSmokeScene(opts Options) (*Scene, error) {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	light := geometry.NewFlipFace(geometry.NewXZRect(113, 443, 127, 432, 554, material.NewDiffuseLight(core.NewVec3(7, 7, 7))))

	tall := rotatedBox(core.NewVec3(165, 330, 165), 15, core.NewVec3(265, 0, 295), white)
	short := rotatedBox(core.NewVec3(165, 165, 165), -18, core.NewVec3(130, 0, 65), white)

	objects := append(cornellWalls(),
		light,
		geometry.NewConstantMedium(tall, 0.01, core.NewVec3(0, 0, 0)),
		geometry.NewConstantMedium(short, 0.01, core.NewVec3(1, 1, 1)),
	)

	sampling := renderer.DefaultSamplingConfig()
	sampling.SamplesPerPixel = 200
	sampling.Seed = opts.seed()

	return New("cornell-smoke", objects, geometry.NewHittableList(light),
		core.NewVec3(0, 0, 0), cornellCamera(opts), sampling, opts.logger())
}
