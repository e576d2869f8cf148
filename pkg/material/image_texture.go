package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

const bytesPerPixel = 3

// ImageTexture provides color from a decoded 8-bit RGB image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []byte // Row-major RGB, top row first
}

// NewImageTexture creates a new image texture from a width*height*3 RGB buffer
func NewImageTexture(width, height int, pixels []byte) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Sample looks up the texel at (u·width, (1−v)·height) using nearest-neighbor filtering.
// An empty texture samples as cyan so missing assets stand out.
func (t *ImageTexture) Sample(u, v float64, p core.Vec3) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height*bytesPerPixel {
		return core.NewVec3(0, 1, 1)
	}

	u = clamp01(u)
	v = 1.0 - clamp01(v) // V=0 is bottom, image rows start at the top

	x := int(u * float64(t.Width))
	y := int(v * float64(t.Height))

	// Clamp to image bounds
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}

	const scale = 1.0 / 255.0
	offset := (y*t.Width + x) * bytesPerPixel
	return core.NewVec3(
		float64(t.Pixels[offset])*scale,
		float64(t.Pixels[offset+1])*scale,
		float64(t.Pixels[offset+2])*scale,
	)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
