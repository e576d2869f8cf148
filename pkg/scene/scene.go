package scene

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering.
// It is read-only once built and may be rendered concurrently.
type Scene struct {
	Name           string
	World          geometry.Hittable      // Root of the acceleration structure
	Lights         *geometry.HittableList // Shapes sampled for direct lighting (may be empty)
	Background     core.Vec3              // Radiance of escaping rays
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	SamplingConfig renderer.SamplingConfig
	BVHStats       geometry.BVHStats

	logger core.Logger
}

// Options controls how built-in scenes are constructed
type Options struct {
	AspectRatio float64     // Camera aspect ratio; 0 uses the scene default
	TexturePath string      // Image used by textured scenes; empty uses a procedural fallback
	Seed        int64       // Seed for scene randomness and the BVH axis choice; 0 uses the default
	Logger      core.Logger // nil logs to stdout
}

func (o Options) logger() core.Logger {
	if o.Logger == nil {
		return renderer.NewDefaultLogger()
	}
	return o.Logger
}

func (o Options) seed() int64 {
	if o.Seed == 0 {
		return renderer.DefaultSamplingConfig().Seed
	}
	return o.Seed
}

func (o Options) aspect(defaultAspect float64) float64 {
	if o.AspectRatio > 0 {
		return o.AspectRatio
	}
	return defaultAspect
}

// New builds a scene: objects are gathered into a BVH over the camera's shutter interval.
// lights may be nil. Every object must have a bounding box.
func New(name string, objects []geometry.Hittable, lights *geometry.HittableList, background core.Vec3,
	cameraConfig geometry.CameraConfig, sampling renderer.SamplingConfig, logger core.Logger) (*Scene, error) {
	if logger == nil {
		logger = renderer.NewDefaultLogger()
	}
	if lights == nil {
		lights = geometry.NewHittableList()
	}

	s := &Scene{
		Name:           name,
		Lights:         lights,
		Background:     background,
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		SamplingConfig: sampling,
		logger:         logger,
	}

	if len(objects) == 0 {
		s.World = geometry.NewHittableList()
		return s, nil
	}

	random := rand.New(rand.NewSource(sampling.Seed))
	bvh, err := geometry.NewBVH(objects, cameraConfig.Time0, cameraConfig.Time1, random)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", name, err)
	}
	s.World = bvh
	s.BVHStats = bvh.Stats()
	logger.Printf("Scene %s: %d objects, BVH %d nodes, max depth %d, avg depth %.1f\n",
		name, len(objects), s.BVHStats.TotalNodes, s.BVHStats.MaxDepth, s.BVHStats.AvgDepth)

	return s, nil
}

// GetWorld returns the root hittable
func (s *Scene) GetWorld() geometry.Hittable { return s.World }

// GetLights returns the light aggregate
func (s *Scene) GetLights() *geometry.HittableList { return s.Lights }

// GetBackground returns the background radiance
func (s *Scene) GetBackground() core.Vec3 { return s.Background }

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *geometry.Camera { return s.Camera }

// Render renders the scene with the given sampling parameters and returns
// width*height*3 gamma-encoded RGB bytes, top row first
func (s *Scene) Render(width, height, samplesPerPixel, maxDepth int) []byte {
	config := s.SamplingConfig
	config.SamplesPerPixel = samplesPerPixel
	config.MaxDepth = maxDepth
	frame, _ := s.RenderFrame(width, height, config)
	return frame.Bytes()
}

// RenderFrame renders the scene with a full sampling configuration and keeps the
// linear radiance. The camera is re-fitted when the output aspect differs from its own.
func (s *Scene) RenderFrame(width, height int, config renderer.SamplingConfig) (*renderer.Frame, renderer.RenderStats) {
	rt := renderer.NewRaytracer(s.viewFor(width, height), width, height, config, s.logger)
	return rt.Render()
}

// view overrides the camera of a shared scene without mutating it
type view struct {
	*Scene
	camera *geometry.Camera
}

func (v view) GetCamera() *geometry.Camera { return v.camera }

func (s *Scene) viewFor(width, height int) renderer.Scene {
	if width <= 0 || height <= 0 {
		return s
	}
	aspect := float64(width) / float64(height)
	if aspect == s.CameraConfig.AspectRatio {
		return s
	}
	config := s.CameraConfig
	config.AspectRatio = aspect
	return view{Scene: s, camera: geometry.NewCamera(config)}
}
