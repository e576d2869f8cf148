package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
)

type testScene struct {
	world      geometry.Hittable
	lights     *geometry.HittableList
	background core.Vec3
	camera     *geometry.Camera
}

func (s *testScene) GetWorld() geometry.Hittable       { return s.world }
func (s *testScene) GetLights() *geometry.HittableList { return s.lights }
func (s *testScene) GetBackground() core.Vec3          { return s.background }
func (s *testScene) GetCamera() *geometry.Camera       { return s.camera }

type silentLogger struct{}

func (silentLogger) Printf(format string, args ...interface{}) {}

// createLitSphereScene builds a white sphere lit by a downward-facing rectangle overhead
func createLitSphereScene() *testScene {
	light := geometry.NewFlipFace(geometry.NewXZRect(-1, 1, -1, 1, 3, material.NewDiffuseLight(core.NewVec3(8, 8, 8))))
	sphere := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.8)))
	camera := geometry.NewCamera(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 4),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: 1,
	})
	return &testScene{
		world:  geometry.NewHittableList(sphere, light),
		lights: geometry.NewHittableList(light),
		camera: camera,
	}
}

func bandLuminance(frame *Frame, y0, y1 int) float64 {
	sum := 0.0
	count := 0
	for y := y0; y < y1; y++ {
		for x := 0; x < frame.Width; x++ {
			sum += frame.At(x, y).Luminance()
			count++
		}
	}
	return sum / float64(count)
}

func TestRenderLitSphere(t *testing.T) {
	config := SamplingConfig{SamplesPerPixel: 256, MaxDepth: 10, NumWorkers: 4, PixelChunk: 8, Seed: 1}
	rt := NewRaytracer(createLitSphereScene(), 20, 20, config, silentLogger{})
	frame, stats := rt.Render()

	if stats.TotalPixels != 400 {
		t.Errorf("Expected 400 pixels, got %d", stats.TotalPixels)
	}
	if stats.TotalSamples != 400*256 {
		t.Errorf("Expected %d samples, got %d", 400*256, stats.TotalSamples)
	}
	if rt.Progress() != 400 {
		t.Errorf("Expected progress 400, got %d", rt.Progress())
	}

	top := bandLuminance(frame, 4, 8)
	bottom := bandLuminance(frame, 12, 16)
	if top <= bottom {
		t.Errorf("Expected the lit top of the sphere to be brighter: top=%f bottom=%f", top, bottom)
	}

	for i, p := range frame.Pixels {
		if !p.IsFinite() {
			t.Fatalf("Pixel %d is not finite: %v", i, p)
		}
	}
}

// createSkyLitSphereScene builds a pale diffuse sphere under a uniform white sky
func createSkyLitSphereScene() *testScene {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewLambertian(core.NewVec3(0.9, 0.85, 0.8)))
	camera := geometry.NewCamera(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 4),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: 1,
	})
	return &testScene{
		world:      geometry.NewHittableList(sphere),
		lights:     geometry.NewHittableList(),
		background: core.NewVec3(1, 1, 1),
		camera:     camera,
	}
}

func maxChannelDiff(a, b []byte) int {
	worst := 0
	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < 0 {
			d = -d
		}
		worst = max(worst, d)
	}
	return worst
}

func TestRenderSeedsConverge(t *testing.T) {
	scene := createSkyLitSphereScene()
	render := func(seed int64) []byte {
		config := SamplingConfig{SamplesPerPixel: 4096, MaxDepth: 4, Seed: seed}
		frame, _ := NewRaytracer(scene, 12, 12, config, silentLogger{}).Render()
		return frame.Bytes()
	}

	a := render(1)
	b := render(2)
	if worst := maxChannelDiff(a, b); worst > 2 {
		t.Errorf("Expected independent seeds to agree within 2 per channel, got %d", worst)
	}
}

func TestRenderLitSceneSeedsAgree(t *testing.T) {
	scene := createLitSphereScene()
	render := func(seed int64) []byte {
		config := SamplingConfig{SamplesPerPixel: 256, MaxDepth: 10, NumWorkers: 2, Seed: seed}
		frame, _ := NewRaytracer(scene, 20, 20, config, silentLogger{}).Render()
		return frame.Bytes()
	}

	a := render(1)
	b := render(2)
	diff := 0.0
	for i := range a {
		diff += math.Abs(float64(a[i]) - float64(b[i]))
	}

	// A small area light leaves visible noise at this sample count, so only the average is bounded
	if mean := diff / float64(len(a)); mean > 4 {
		t.Errorf("Expected independent seeds to agree on average within 4, got %f", mean)
	}
}

func TestRenderStatsLuminance(t *testing.T) {
	scene := createSkyLitSphereScene()
	scene.world = geometry.NewHittableList()
	scene.background = core.NewVec3(1, 0.5, 0)

	_, stats := NewRaytracer(scene, 4, 4, SamplingConfig{SamplesPerPixel: 2, MaxDepth: 2}, silentLogger{}).Render()
	expected := core.NewVec3(1, 0.5, 0).Luminance()
	if math.Abs(stats.MeanLuminance()-expected) > 1e-12 {
		t.Errorf("Expected mean luminance %f, got %f", expected, stats.MeanLuminance())
	}
	if (RenderStats{}).MeanLuminance() != 0 {
		t.Error("Expected zero mean luminance for an empty render")
	}
}

func TestRenderDeterministic(t *testing.T) {
	scene := createLitSphereScene()
	config := SamplingConfig{SamplesPerPixel: 8, MaxDepth: 5, Seed: 7}

	// Different worker counts must not change the image
	config.NumWorkers = 1
	first, _ := NewRaytracer(scene, 16, 12, config, silentLogger{}).Render()
	config.NumWorkers = 5
	second, _ := NewRaytracer(scene, 16, 12, config, silentLogger{}).Render()

	for i := range first.Pixels {
		if first.Pixels[i] != second.Pixels[i] {
			t.Fatalf("Pixel %d differs between renders: %v vs %v", i, first.Pixels[i], second.Pixels[i])
		}
	}
}

func TestRenderEmptyFrame(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"both zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := NewRaytracer(createLitSphereScene(), tt.width, tt.height, DefaultSamplingConfig(), silentLogger{})
			frame, stats := rt.Render()
			if len(frame.Bytes()) != 0 {
				t.Errorf("Expected empty buffer, got %d bytes", len(frame.Bytes()))
			}
			if stats.TotalSamples != 0 {
				t.Errorf("Expected no samples, got %d", stats.TotalSamples)
			}
		})
	}
}

func TestRenderBackgroundOnly(t *testing.T) {
	camera := geometry.NewCamera(geometry.CameraConfig{
		Center: core.NewVec3(0, 0, 0), LookAt: core.NewVec3(0, 0, -1), Up: core.NewVec3(0, 1, 0),
		VFov: 90, AspectRatio: 2,
	})
	scene := &testScene{
		world:      geometry.NewHittableList(),
		background: core.NewVec3(0.25, 1, 0),
		camera:     camera,
	}
	frame, _ := NewRaytracer(scene, 6, 3, SamplingConfig{SamplesPerPixel: 2, MaxDepth: 3}, silentLogger{}).Render()
	buf := frame.Bytes()

	if len(buf) != 6*3*3 {
		t.Fatalf("Expected %d bytes, got %d", 6*3*3, len(buf))
	}
	for i := 0; i < len(buf); i += 3 {
		// sqrt(0.25)=0.5 -> 127, 1 clamps to 0.999 -> 254
		if buf[i] != 127 || buf[i+1] != 254 || buf[i+2] != 0 {
			t.Fatalf("Unexpected pixel at %d: %v", i/3, buf[i:i+3])
		}
	}
}

func TestGammaEncode(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{0, 0},
		{-1, 0},
		{math.NaN(), 0},
		{1, 254},
		{100, 254},
		{0.25, 127},
		{math.Inf(1), 254},
	}

	for _, tt := range tests {
		if got := GammaEncode(tt.in); got != tt.want {
			t.Errorf("GammaEncode(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFrameImageMatchesBytes(t *testing.T) {
	frame := NewFrame(2, 2)
	frame.Pixels[0] = core.NewVec3(1, 0, 0)
	frame.Pixels[3] = core.NewVec3(0, 0, 0.25)

	buf := frame.Bytes()
	img := frame.Image()
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			c := img.RGBAAt(x, y)
			i := (y*2 + x) * 3
			if c.R != buf[i] || c.G != buf[i+1] || c.B != buf[i+2] || c.A != 255 {
				t.Errorf("Pixel (%d,%d) mismatch: image %v bytes %v", x, y, c, buf[i:i+3])
			}
		}
	}
}

func TestWorkerPoolDefaults(t *testing.T) {
	rt := NewRaytracer(createLitSphereScene(), 4, 4, DefaultSamplingConfig(), silentLogger{})
	pool := NewWorkerPool(rt, NewFrame(4, 4), 4, 0)
	if pool.GetNumWorkers() <= 0 {
		t.Errorf("Expected a positive default worker count, got %d", pool.GetNumWorkers())
	}
	pool = NewWorkerPool(rt, NewFrame(4, 4), 4, 3)
	if pool.GetNumWorkers() != 3 {
		t.Errorf("Expected 3 workers, got %d", pool.GetNumWorkers())
	}
}

func TestChunkSeedDistinct(t *testing.T) {
	seen := make(map[int64]bool)
	for row := 0; row < 50; row++ {
		for chunk := 0; chunk < 50; chunk++ {
			s := chunkSeed(42, row, chunk)
			if seen[s] {
				t.Fatalf("Duplicate seed for row %d chunk %d", row, chunk)
			}
			seen[s] = true
		}
	}
}
