package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels       int           // Total number of pixels rendered
	TotalSamples      int           // Total number of samples taken
	DegenerateSamples int           // Samples with NaN/Inf radiance that were replaced by zero
	LuminanceSum      float64       // Sum of pixel luminance, for the mean brightness
	Elapsed           time.Duration // Wall-clock render time
}

// add accumulates another set of counters into s
func (s *RenderStats) add(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.DegenerateSamples += other.DegenerateSamples
	s.LuminanceSum += other.LuminanceSum
}

// MeanLuminance returns the average linear luminance of the rendered pixels
func (s RenderStats) MeanLuminance() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return s.LuminanceSum / float64(s.TotalPixels)
}

// SamplesPerSecond returns the sampling throughput of the render
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Elapsed.Seconds()
}
