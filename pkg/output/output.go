// Package output encodes rendered frames to files and uploads them
package output

import (
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/df07/go-raytracer/pkg/renderer"
)

// Write encodes frame to path, choosing the format from the extension:
// .exr keeps linear radiance, .zst stores the raw gamma-encoded buffer,
// and anything imaging can save (.png, .jpg, .gif, .tif, .bmp) is written 8-bit.
func Write(path string, frame *renderer.Frame) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".exr":
		return WriteEXR(path, frame)
	case ".zst":
		return WriteRaw(path, frame)
	}

	if err := imaging.Save(frame.Image(), path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// EncodePNG writes an image as a PNG stream
func EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

// ContentType returns the MIME type for an output path
func ContentType(path string) string {
	name := strings.ToLower(path)
	switch {
	case strings.HasSuffix(name, ".png"):
		return "image/png"
	case strings.HasSuffix(name, ".jpg"), strings.HasSuffix(name, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(name, ".exr"):
		return "image/x-exr"
	case strings.HasSuffix(name, ".zst"):
		return "application/zstd"
	default:
		return "application/octet-stream"
	}
}
