package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-raytracer/pkg/core"
)

// Frame holds the linear radiance of a rendered image, row-major with the top row first
type Frame struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the linear radiance of pixel (x, y), y counted from the top
func (f *Frame) At(x, y int) core.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// GammaEncode converts a linear channel value to 8 bits with gamma 2:
// 255·clamp(sqrt(c), 0, 0.999)
func GammaEncode(c float64) uint8 {
	if !(c > 0) { // Also catches NaN
		return 0
	}
	v := math.Sqrt(c)
	if v > 0.999 {
		v = 0.999
	}
	return uint8(255 * v)
}

// Bytes returns the gamma-encoded image as width*height*3 RGB bytes, top row first
func (f *Frame) Bytes() []byte {
	buf := make([]byte, 0, len(f.Pixels)*3)
	for _, p := range f.Pixels {
		buf = append(buf, GammaEncode(p.X), GammaEncode(p.Y), GammaEncode(p.Z))
	}
	return buf
}

// Image converts the frame to an RGBA image using the same encoding as Bytes
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			p := f.At(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: GammaEncode(p.X),
				G: GammaEncode(p.Y),
				B: GammaEncode(p.Z),
				A: 255,
			})
		}
	}
	return img
}
