package output

import (
	"fmt"
	"image"

	"github.com/mrjoshuak/go-openexr/exr"

	"github.com/df07/go-raytracer/pkg/renderer"
)

// WriteEXR writes the frame's linear radiance as a half-float OpenEXR file.
// Non-finite values are written as zero.
func WriteEXR(path string, frame *renderer.Frame) error {
	img := exr.NewRGBAImage(image.Rect(0, 0, frame.Width, frame.Height))
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			c := frame.At(x, y).Sanitize()
			img.SetRGBA(x, y, float32(c.X), float32(c.Y), float32(c.Z), 1)
		}
	}

	if err := exr.EncodeFile(path, img); err != nil {
		return fmt.Errorf("failed to write EXR %s: %w", path, err)
	}
	return nil
}
