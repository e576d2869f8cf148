package loaders

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/mrjoshuak/go-openexr/exr"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder
)

// LoadImage loads an image file as width, height and a row-major RGB byte buffer, top row first.
// PNG, JPEG, GIF, BMP, TIFF and WebP are decoded with EXIF orientation applied; OpenEXR
// files are clamped to [0, 1] and quantized to 8 bits.
func LoadImage(filename string) (int, int, []byte, error) {
	var img image.Image
	var err error

	if strings.EqualFold(filepath.Ext(filename), ".exr") {
		img, err = exr.DecodeFile(filename)
	} else {
		img, err = imaging.Open(filename, imaging.AutoOrientation(true))
	}
	if err != nil {
		return 0, 0, nil, fmt.Errorf("failed to load image %s: %w", filename, err)
	}

	width, height, pixels := toRGB(img)
	return width, height, pixels, nil
}

// toRGB flattens any image into 8-bit RGB, dropping alpha
func toRGB(img image.Image) (int, int, []byte) {
	bounds := img.Bounds()
	rgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 0, width*height*3)
	for i := 0; i < len(rgba.Pix); i += 4 {
		pixels = append(pixels, rgba.Pix[i], rgba.Pix[i+1], rgba.Pix[i+2])
	}
	return width, height, pixels
}
