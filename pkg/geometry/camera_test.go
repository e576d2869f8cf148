package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

func TestCameraCenterRay(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 2,
	})
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	ray := camera.GetRay(0.5, 0.5, sampler)
	if ray.Origin != core.NewVec3(0, 0, 0) {
		t.Errorf("Expected pinhole origin, got %v", ray.Origin)
	}
	if ray.Direction.Normalize().Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-9 {
		t.Errorf("Expected center ray toward -Z, got %v", ray.Direction)
	}

	// 90° vertical FOV: top edge is 45° up
	top := camera.GetRay(0.5, 1, sampler).Direction.Normalize()
	if math.Abs(top.Y-math.Sqrt2/2) > 1e-9 {
		t.Errorf("Expected top ray at 45°, got %v", top)
	}

	// Aspect ratio 2: right edge is at x = 2·tan(45°) at unit distance
	right := camera.GetRay(1, 0.5, sampler).Direction
	if math.Abs(right.X/-right.Z-2) > 1e-9 {
		t.Errorf("Expected right edge slope 2, got %v", right)
	}
}

func TestCameraDepthOfField(t *testing.T) {
	config := CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -10),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: 1,
		Aperture:    2,
	}
	camera := NewCamera(config)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	// Auto focus: every ray through the image center converges at the look-at point
	for i := 0; i < 100; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)
		if ray.Origin.Length() > 1+1e-9 {
			t.Fatalf("Lens offset %v exceeds aperture radius", ray.Origin)
		}
		if ray.Origin.Z != 0 {
			t.Fatalf("Lens offset %v should lie in the lens plane", ray.Origin)
		}
		if p := ray.At(1); p.Subtract(config.LookAt).Length() > 1e-9 {
			t.Fatalf("Ray does not pass through focus point: %v", p)
		}
	}
}

func TestCameraShutterTime(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: 1,
		Time0:       0.25,
		Time1:       0.75,
	})
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 100; i++ {
		ray := camera.GetRay(0.3, 0.6, sampler)
		if ray.Time < 0.25 || ray.Time > 0.75 {
			t.Fatalf("Ray time %f outside shutter interval", ray.Time)
		}
	}
}
