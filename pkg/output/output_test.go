package output

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"math"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/klauspost/compress/zstd"
	"github.com/mrjoshuak/go-openexr/exr"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/loaders"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// createTestFrame returns a 3x2 frame with a few distinct pixels
func createTestFrame() *renderer.Frame {
	frame := renderer.NewFrame(3, 2)
	frame.Pixels[0] = core.NewVec3(1, 0, 0)
	frame.Pixels[1] = core.NewVec3(0.25, 0.25, 0.25)
	frame.Pixels[2] = core.NewVec3(4, 2, 0.5) // HDR
	frame.Pixels[4] = core.NewVec3(math.NaN(), 0, math.Inf(1))
	return frame
}

func TestWriteImageFormats(t *testing.T) {
	frame := createTestFrame()
	want := frame.Bytes()

	for _, ext := range []string{".png", ".bmp", ".tif"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out"+ext)
			if err := Write(path, frame); err != nil {
				t.Fatalf("Write failed: %v", err)
			}

			// Lossless formats read back as the gamma-encoded buffer
			width, height, pixels, err := loaders.LoadImage(path)
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}
			if width != 3 || height != 2 {
				t.Fatalf("Expected 3x2, got %dx%d", width, height)
			}
			if !bytes.Equal(pixels, want) {
				t.Errorf("Pixels differ:\n got  %v\n want %v", pixels, want)
			}
		})
	}
}

func TestWriteUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xyz")
	if err := Write(path, createTestFrame()); err == nil {
		t.Error("Expected an error for an unknown extension")
	}
}

func TestEncodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, createTestFrame().Image()); err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("Unexpected bounds %v", img.Bounds())
	}
}

func TestWriteEXR(t *testing.T) {
	frame := createTestFrame()
	path := filepath.Join(t.TempDir(), "out.exr")
	if err := Write(path, frame); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	img, err := exr.DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile failed: %v", err)
	}

	tests := []struct {
		x, y    int
		r, g, b float32
	}{
		{0, 0, 1, 0, 0},
		{1, 0, 0.25, 0.25, 0.25},
		{2, 0, 4, 2, 0.5}, // Linear HDR values survive
		{1, 1, 0, 0, 0},   // Non-finite values become zero
	}
	for _, tt := range tests {
		r, g, b, a := img.RGBA(tt.x, tt.y)
		if r != tt.r || g != tt.g || b != tt.b || a != 1 {
			t.Errorf("Pixel (%d,%d): got (%v,%v,%v,%v), want (%v,%v,%v,1)", tt.x, tt.y, r, g, b, a, tt.r, tt.g, tt.b)
		}
	}
}

func TestRawRoundTrip(t *testing.T) {
	frame := createTestFrame()
	path := filepath.Join(t.TempDir(), "out.rgb.zst")
	if err := Write(path, frame); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	width, height, pixels, err := ReadRaw(path)
	if err != nil {
		t.Fatalf("ReadRaw failed: %v", err)
	}
	if width != 3 || height != 2 {
		t.Errorf("Expected 3x2, got %dx%d", width, height)
	}
	if !bytes.Equal(pixels, frame.Bytes()) {
		t.Errorf("Pixels differ:\n got  %v\n want %v", pixels, frame.Bytes())
	}
}

func TestDecodeRawErrors(t *testing.T) {
	valid, err := EncodeRaw(createTestFrame())
	if err != nil {
		t.Fatalf("EncodeRaw failed: %v", err)
	}

	t.Run("not zstd", func(t *testing.T) {
		if _, _, _, err := DecodeRaw([]byte("plain bytes")); err == nil {
			t.Error("Expected an error")
		}
	})

	t.Run("truncated", func(t *testing.T) {
		if _, _, _, err := DecodeRaw(valid[:len(valid)/2]); err == nil {
			t.Error("Expected an error")
		}
	})

	corrupt := func(header []byte, pixels int) []byte {
		encoder, err := zstd.NewWriter(nil)
		if err != nil {
			t.Fatal(err)
		}
		defer encoder.Close()
		return encoder.EncodeAll(append(header, make([]byte, pixels)...), nil)
	}

	t.Run("bad magic", func(t *testing.T) {
		data := corrupt([]byte{'P', 'N', 'G', '8', 1, 0, 0, 0, 1, 0, 0, 0}, 3)
		if _, _, _, err := DecodeRaw(data); !errors.Is(err, ErrBadRaw) {
			t.Errorf("Expected ErrBadRaw, got %v", err)
		}
	})

	t.Run("bad length", func(t *testing.T) {
		// Header claims 10x10 but only one pixel follows
		data := corrupt([]byte{'R', 'G', 'B', '8', 10, 0, 0, 0, 10, 0, 0, 0}, 3)
		if _, _, _, err := DecodeRaw(data); !errors.Is(err, ErrBadRaw) {
			t.Errorf("Expected ErrBadRaw, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, _, _, err := ReadRaw(filepath.Join(t.TempDir(), "missing.rgb.zst")); err == nil {
			t.Error("Expected an error")
		}
	})
}

func TestThumbnail(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 200))

	thumb := Thumbnail(img, 100)
	if thumb.Bounds().Dx() != 100 || thumb.Bounds().Dy() != 50 {
		t.Errorf("Expected 100x50, got %v", thumb.Bounds())
	}

	if Thumbnail(img, 0) != image.Image(img) {
		t.Error("Expected a zero width to leave the image unchanged")
	}
	if Thumbnail(img, 800) != image.Image(img) {
		t.Error("Expected a larger width to leave the image unchanged")
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"a.png":     "image/png",
		"a.JPG":     "image/jpeg",
		"a.exr":     "image/x-exr",
		"a.rgb.zst": "application/zstd",
		"a.bin":     "application/octet-stream",
	}
	for path, want := range tests {
		if got := ContentType(path); got != want {
			t.Errorf("ContentType(%s) = %s, want %s", path, got, want)
		}
	}
}

// fakeS3 records PutObject calls
type fakeS3 struct {
	s3iface.S3API
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, input)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Upload(t *testing.T) {
	client := &fakeS3{}
	uploader := NewS3UploaderWithClient(client, "renders", "public-read")

	data := []byte("image bytes")
	if err := uploader.Upload(context.Background(), "cornell.png", data, "image/png"); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if len(client.inputs) != 1 {
		t.Fatalf("Expected 1 upload, got %d", len(client.inputs))
	}
	input := client.inputs[0]
	if aws.StringValue(input.Bucket) != "renders" || aws.StringValue(input.Key) != "cornell.png" {
		t.Errorf("Unexpected destination %s/%s", aws.StringValue(input.Bucket), aws.StringValue(input.Key))
	}
	if aws.StringValue(input.ContentType) != "image/png" || aws.StringValue(input.ACL) != "public-read" {
		t.Errorf("Unexpected metadata %s %s", aws.StringValue(input.ContentType), aws.StringValue(input.ACL))
	}
	if aws.Int64Value(input.ContentLength) != int64(len(data)) || !bytes.Equal(client.bodies[0], data) {
		t.Errorf("Unexpected body %q", client.bodies[0])
	}
}

func TestS3UploadError(t *testing.T) {
	failure := errors.New("access denied")
	uploader := NewS3UploaderWithClient(&fakeS3{err: failure}, "renders", "")
	err := uploader.Upload(context.Background(), "a.png", []byte{1}, "image/png")
	if !errors.Is(err, failure) {
		t.Errorf("Expected the client error to be wrapped, got %v", err)
	}
}

func TestNewS3UploaderRequiresBucket(t *testing.T) {
	if _, err := NewS3Uploader(S3Config{Region: "us-east-1"}); err == nil {
		t.Error("Expected an error without a bucket")
	}
	uploader, err := NewS3Uploader(S3Config{Region: "us-east-1", Bucket: "b", Endpoint: "http://localhost:9000"})
	if err != nil {
		t.Fatalf("NewS3Uploader failed: %v", err)
	}
	if uploader.bucket != "b" {
		t.Errorf("Expected bucket b, got %s", uploader.bucket)
	}
}
