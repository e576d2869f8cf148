package output

import (
	"image"

	"github.com/nfnt/resize"
)

// Thumbnail scales img down to maxWidth pixels wide, keeping its aspect ratio.
// Images already narrower than maxWidth are returned unchanged.
func Thumbnail(img image.Image, maxWidth uint) image.Image {
	if maxWidth == 0 || uint(img.Bounds().Dx()) <= maxWidth {
		return img
	}
	return resize.Resize(maxWidth, 0, img, resize.Bilinear)
}
