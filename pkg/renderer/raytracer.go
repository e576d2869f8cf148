package renderer

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	NumWorkers      int   // Row workers (0 = use CPU count)
	PixelChunk      int   // Pixels per inner task within a row (0 = default)
	Seed            int64 // Base seed; renders are deterministic for a fixed seed
}

const defaultPixelChunk = 16

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		NumWorkers:      0,
		PixelChunk:      defaultPixelChunk,
		Seed:            42,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	integrator.Scene
	GetCamera() *geometry.Camera
}

// Raytracer renders a scene into a Frame using a pool of row workers, each of
// which fans out over chunks of pixels within its row
type Raytracer struct {
	scene      Scene
	width      int
	height     int
	config     SamplingConfig
	integrator integrator.Integrator
	logger     core.Logger

	progress atomic.Int64 // Pixels finished, shared by all tasks
}

// NewRaytracer creates a new raytracer. A nil logger logs to stdout.
func NewRaytracer(scene Scene, width, height int, config SamplingConfig, logger core.Logger) *Raytracer {
	if config.PixelChunk <= 0 {
		config.PixelChunk = defaultPixelChunk
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		scene:      scene,
		width:      width,
		height:     height,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(config.MaxDepth),
		logger:     logger,
	}
}

// Progress returns the number of pixels finished so far
func (rt *Raytracer) Progress() int64 {
	return rt.progress.Load()
}

// Render estimates every pixel and returns the frame with its statistics.
// The scene must not be modified while rendering.
func (rt *Raytracer) Render() (*Frame, RenderStats) {
	start := time.Now()
	frame := NewFrame(rt.width, rt.height)
	rt.progress.Store(0)

	if rt.width <= 0 || rt.height <= 0 {
		return frame, RenderStats{}
	}

	pool := NewWorkerPool(rt, frame, rt.height, rt.config.NumWorkers)
	rt.logger.Printf("Rendering %dx%d, %d spp, depth %d, %d workers\n",
		rt.width, rt.height, rt.config.SamplesPerPixel, rt.config.MaxDepth, pool.GetNumWorkers())

	pool.Start()
	for row := 0; row < rt.height; row++ {
		pool.SubmitTask(RowTask{Row: row})
	}
	pool.Stop()

	stats := RenderStats{}
	for result, ok := pool.GetResult(); ok; result, ok = pool.GetResult() {
		stats.add(result.Stats)
	}
	stats.Elapsed = time.Since(start)

	rt.logger.Printf("Render complete in %v (%d samples, %d degenerate, mean luminance %.4f)\n",
		stats.Elapsed, stats.TotalSamples, stats.DegenerateSamples, stats.MeanLuminance())
	return frame, stats
}

// renderRow renders one row by splitting it into pixel chunks rendered concurrently.
// Each chunk owns a random generator seeded from (seed, row, chunk).
func (rt *Raytracer) renderRow(row int, frame *Frame) RenderStats {
	chunkSize := rt.config.PixelChunk
	numChunks := (rt.width + chunkSize - 1) / chunkSize
	chunkStats := make([]RenderStats, numChunks)

	var wg sync.WaitGroup
	for chunk := 0; chunk < numChunks; chunk++ {
		wg.Add(1)
		go func(chunk int) {
			defer wg.Done()
			x0 := chunk * chunkSize
			x1 := min(x0+chunkSize, rt.width)
			random := rand.New(rand.NewSource(chunkSeed(rt.config.Seed, row, chunk)))
			chunkStats[chunk] = rt.renderPixels(row, x0, x1, frame, core.NewRandomSampler(random))
		}(chunk)
	}
	wg.Wait()

	stats := RenderStats{}
	for _, s := range chunkStats {
		stats.add(s)
	}
	return stats
}

// renderPixels renders pixels [x0, x1) of a row into the frame
func (rt *Raytracer) renderPixels(row, x0, x1 int, frame *Frame, sampler core.Sampler) RenderStats {
	camera := rt.scene.GetCamera()
	samples := max(rt.config.SamplesPerPixel, 1)
	stats := RenderStats{}

	// Rows are stored top to bottom while camera t grows upward
	j := rt.height - 1 - row

	for i := x0; i < x1; i++ {
		colorAccum := core.Vec3{}
		for sample := 0; sample < samples; sample++ {
			// Convert pixel coordinates to normalized coordinates with jitter
			jitter := sampler.Get2D()
			s := (float64(i) + jitter.X) / float64(rt.width)
			t := (float64(j) + jitter.Y) / float64(rt.height)

			ray := camera.GetRay(s, t, sampler)
			color := rt.integrator.RayColor(ray, rt.scene, sampler)
			if !color.IsFinite() {
				stats.DegenerateSamples++
				color = color.Sanitize()
			}
			colorAccum = colorAccum.Add(color)
		}

		pixel := colorAccum.Divide(float64(samples))
		frame.Pixels[row*rt.width+i] = pixel
		stats.LuminanceSum += pixel.Luminance()
		stats.TotalPixels++
		stats.TotalSamples += samples
		rt.reportProgress()
	}
	return stats
}

// reportProgress bumps the shared pixel counter and logs every 10%
func (rt *Raytracer) reportProgress() {
	total := int64(rt.width * rt.height)
	done := rt.progress.Add(1)
	step := max(total/10, 1)
	if done%step == 0 || done == total {
		rt.logger.Printf("Progress: %d/%d pixels (%.0f%%)\n", done, total, 100*float64(done)/float64(total))
	}
}

// chunkSeed derives an independent seed for a pixel chunk with a splitmix64 finalizer
func chunkSeed(seed int64, row, chunk int) int64 {
	z := uint64(seed) + 0x9E3779B97F4A7C15*(uint64(row)<<20|uint64(chunk)+1)
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}
