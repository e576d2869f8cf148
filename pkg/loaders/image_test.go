package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/mrjoshuak/go-openexr/exr"
)

// TestLoadImage creates a test PNG and verifies loading
func TestLoadImage(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.png")

	// Create a simple 2x2 test image
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255}) // Top-left: white
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})     // Top-right: red
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})     // Bottom-left: green
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})     // Bottom-right: blue

	f, err := os.Create(testFile)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	f.Close()

	width, height, pixels, err := LoadImage(testFile)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	if width != 2 || height != 2 {
		t.Errorf("Expected 2x2 image, got %dx%d", width, height)
	}

	expected := []byte{
		255, 255, 255, 255, 0, 0,
		0, 255, 0, 0, 0, 255,
	}
	if len(pixels) != len(expected) {
		t.Fatalf("Expected %d bytes, got %d", len(expected), len(pixels))
	}
	for i := range expected {
		if pixels[i] != expected[i] {
			t.Errorf("Byte %d: expected %d, got %d", i, expected[i], pixels[i])
		}
	}
}

func TestLoadImageEXR(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.exr")

	img := exr.NewRGBAImage(image.Rect(0, 0, 3, 1))
	img.SetRGBA(0, 0, 0.5, 0, 0, 1)
	img.SetRGBA(1, 0, 0, 4.0, 0, 1) // HDR value clamps to 255
	img.SetRGBA(2, 0, 0, 0, 1, 1)
	if err := exr.EncodeFile(testFile, img); err != nil {
		t.Fatalf("Failed to encode EXR: %v", err)
	}

	width, height, pixels, err := LoadImage(testFile)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if width != 3 || height != 1 {
		t.Fatalf("Expected 3x1 image, got %dx%d", width, height)
	}

	expected := []byte{127, 0, 0, 0, 255, 0, 0, 0, 255}
	for i := range expected {
		if pixels[i] != expected[i] {
			t.Errorf("Byte %d: expected %d, got %d", i, expected[i], pixels[i])
		}
	}
}

func TestLoadImageErrors(t *testing.T) {
	tmpDir := t.TempDir()
	garbage := filepath.Join(tmpDir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(tmpDir, "missing.png")},
		{"missing exr", filepath.Join(tmpDir, "missing.exr")},
		{"undecodable", garbage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, err := LoadImage(tt.path); err == nil {
				t.Errorf("Expected an error for %s", tt.path)
			}
		})
	}
}
