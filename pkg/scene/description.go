package scene

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/loaders"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// LoadFile builds a scene from a YAML scene description file
func LoadFile(path string, opts Options) (*Scene, error) {
	desc, err := loaders.LoadSceneDescription(path)
	if err != nil {
		return nil, err
	}
	return FromDescription(desc, opts)
}

// builder instantiates a validated description. Textures and materials are built once
// and shared by every object that names them.
type builder struct {
	desc      *loaders.SceneDescription
	random    *rand.Rand
	time0     float64
	time1     float64
	textures  map[string]material.Texture
	materials map[string]material.Material
}

// FromDescription builds a scene from a parsed description.
// Options.AspectRatio overrides the camera's; Options.Seed overrides the description's.
func FromDescription(desc *loaders.SceneDescription, opts Options) (*Scene, error) {
	sampling := renderer.DefaultSamplingConfig()
	if desc.Sampling.SamplesPerPixel > 0 {
		sampling.SamplesPerPixel = desc.Sampling.SamplesPerPixel
	}
	if desc.Sampling.MaxDepth > 0 {
		sampling.MaxDepth = desc.Sampling.MaxDepth
	}
	sampling.Seed = desc.Sampling.Seed
	if opts.Seed != 0 || sampling.Seed == 0 {
		sampling.Seed = opts.seed()
	}

	cameraConfig := cameraFromDescription(desc.Camera, opts)

	b := &builder{
		desc:      desc,
		random:    rand.New(rand.NewSource(sampling.Seed)),
		time0:     cameraConfig.Time0,
		time1:     cameraConfig.Time1,
		textures:  make(map[string]material.Texture),
		materials: make(map[string]material.Material),
	}

	objects := make([]geometry.Hittable, 0, len(desc.Objects))
	named := make(map[string]geometry.Hittable)
	for i, obj := range desc.Objects {
		hittable, err := b.object(obj)
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, obj.Type, err)
		}
		objects = append(objects, hittable)
		if obj.Name != "" {
			named[obj.Name] = hittable
		}
	}

	lights := geometry.NewHittableList()
	for _, name := range desc.Lights {
		light, ok := named[name]
		if !ok {
			return nil, fmt.Errorf("light %q does not name an object", name)
		}
		if !geometry.IsSampleable(light) {
			return nil, fmt.Errorf("light %q cannot be sampled; use a sphere or a rectangle, optionally translated or flipped", name)
		}
		lights.Add(light)
	}

	name := desc.Name
	if name == "" {
		name = "custom"
	}
	return New(name, objects, lights, desc.Background.Core(), cameraConfig, sampling, opts.logger())
}

func cameraFromDescription(cam loaders.CameraDescription, opts Options) geometry.CameraConfig {
	up := core.NewVec3(0, 1, 0)
	if cam.Up != nil {
		up = cam.Up.Core()
	}
	aspect := cam.AspectRatio
	if aspect <= 0 {
		aspect = 16.0 / 9.0
	}
	vfov := cam.VFov
	if vfov <= 0 {
		vfov = 40
	}
	return geometry.CameraConfig{
		Center:        cam.LookFrom.Core(),
		LookAt:        cam.LookAt.Core(),
		Up:            up,
		VFov:          vfov,
		AspectRatio:   opts.aspect(aspect),
		Aperture:      cam.Aperture,
		FocusDistance: cam.FocusDistance,
		Time0:         cam.Time0,
		Time1:         cam.Time1,
	}
}

func (b *builder) texture(name string) (material.Texture, error) {
	if tex, ok := b.textures[name]; ok {
		return tex, nil
	}
	desc, ok := b.desc.Textures[name]
	if !ok {
		return nil, fmt.Errorf("undefined texture %q", name)
	}

	var tex material.Texture
	switch desc.Type {
	case loaders.TextureSolid:
		tex = material.NewSolidColor(desc.Color.Core())
	case loaders.TextureChecker:
		tex = material.NewCheckerColors(desc.Even.Core(), desc.Odd.Core())
	case loaders.TextureNoise:
		scale := desc.Scale
		if scale == 0 {
			scale = 1
		}
		tex = material.NewNoiseTexture(scale, b.random)
	case loaders.TextureImage:
		width, height, pixels, err := loaders.LoadImage(b.desc.ResolvePath(desc.Path))
		if err != nil {
			return nil, fmt.Errorf("texture %q: %w", name, err)
		}
		tex = material.NewImageTexture(width, height, pixels)
	default:
		return nil, fmt.Errorf("unknown texture type %q", desc.Type)
	}

	b.textures[name] = tex
	return tex, nil
}

// colorSource returns the texture named by texture, or a solid texture of color
func (b *builder) colorSource(color *loaders.Vec3, texture string) (material.Texture, error) {
	if texture != "" {
		return b.texture(texture)
	}
	if color == nil {
		return nil, fmt.Errorf("missing color")
	}
	return material.NewSolidColor(color.Core()), nil
}

func (b *builder) material(name string) (material.Material, error) {
	if mat, ok := b.materials[name]; ok {
		return mat, nil
	}
	desc, ok := b.desc.Materials[name]
	if !ok {
		return nil, fmt.Errorf("undefined material %q", name)
	}

	var mat material.Material
	switch desc.Type {
	case loaders.MaterialLambertian:
		tex, err := b.colorSource(desc.Albedo, desc.Texture)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		mat = material.NewTexturedLambertian(tex)
	case loaders.MaterialMetal:
		mat = material.NewMetal(desc.Albedo.Core(), desc.Fuzz)
	case loaders.MaterialDielectric:
		mat = material.NewDielectric(desc.IOR)
	case loaders.MaterialDiffuseLight:
		tex, err := b.colorSource(desc.Emit, desc.Texture)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		mat = material.NewTexturedDiffuseLight(tex)
	case loaders.MaterialIsotropic:
		tex, err := b.colorSource(desc.Albedo, desc.Texture)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		mat = material.NewTexturedIsotropic(tex)
	default:
		return nil, fmt.Errorf("unknown material type %q", desc.Type)
	}

	b.materials[name] = mat
	return mat, nil
}

// object builds a hittable with its flip and transform steps applied
func (b *builder) object(obj loaders.ObjectDescription) (geometry.Hittable, error) {
	hittable, err := b.shape(obj)
	if err != nil {
		return nil, err
	}

	if obj.Flip {
		hittable = geometry.NewFlipFace(hittable)
	}
	for _, step := range obj.Transform {
		switch {
		case step.Translate != nil:
			hittable = geometry.NewTranslate(hittable, step.Translate.Core())
		case step.RotateY != nil:
			hittable = geometry.NewRotateY(hittable, *step.RotateY, b.time0, b.time1)
		}
	}
	return hittable, nil
}

func (b *builder) shape(obj loaders.ObjectDescription) (geometry.Hittable, error) {
	// Medium boundaries and groups carry no material of their own
	var mat material.Material
	if obj.Material != "" {
		var err error
		if mat, err = b.material(obj.Material); err != nil {
			return nil, err
		}
	}

	switch obj.Type {
	case loaders.ObjectSphere:
		return geometry.NewSphere(obj.Center.Core(), obj.Radius, mat), nil
	case loaders.ObjectMovingSphere:
		return geometry.NewMovingSphere(obj.Center.Core(), obj.Center1.Core(), obj.Time0, obj.Time1, obj.Radius, mat), nil
	case loaders.ObjectXYRect:
		return geometry.NewXYRect(obj.X0, obj.X1, obj.Y0, obj.Y1, obj.K, mat), nil
	case loaders.ObjectXZRect:
		return geometry.NewXZRect(obj.X0, obj.X1, obj.Z0, obj.Z1, obj.K, mat), nil
	case loaders.ObjectYZRect:
		return geometry.NewYZRect(obj.Y0, obj.Y1, obj.Z0, obj.Z1, obj.K, mat), nil
	case loaders.ObjectBox:
		return geometry.NewBox(obj.Min.Core(), obj.Max.Core(), mat), nil
	case loaders.ObjectConstantMedium:
		boundary, err := b.object(*obj.Boundary)
		if err != nil {
			return nil, fmt.Errorf("boundary: %w", err)
		}
		albedo, err := b.colorSource(obj.Albedo, obj.Texture)
		if err != nil {
			return nil, err
		}
		return geometry.NewTexturedConstantMedium(boundary, obj.Density, albedo), nil
	case loaders.ObjectGroup:
		members := make([]geometry.Hittable, 0, len(obj.Objects))
		for i, child := range obj.Objects {
			member, err := b.object(child)
			if err != nil {
				return nil, fmt.Errorf("member %d (%s): %w", i, child.Type, err)
			}
			members = append(members, member)
		}
		return geometry.NewBVH(members, b.time0, b.time1, b.random)
	default:
		return nil, fmt.Errorf("unknown object type %q", obj.Type)
	}
}
