package output

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/df07/go-raytracer/pkg/renderer"
)

// rawMagic starts every raw buffer, followed by little-endian uint32 width and height
var rawMagic = [4]byte{'R', 'G', 'B', '8'}

const rawHeaderSize = 12

// ErrBadRaw is returned for raw files with a bad header or length
var ErrBadRaw = errors.New("malformed raw buffer")

// EncodeRaw compresses the frame's gamma-encoded RGB bytes with zstd
func EncodeRaw(frame *renderer.Frame) ([]byte, error) {
	pixels := frame.Bytes()
	payload := make([]byte, rawHeaderSize, rawHeaderSize+len(pixels))
	copy(payload, rawMagic[:])
	binary.LittleEndian.PutUint32(payload[4:8], uint32(frame.Width))
	binary.LittleEndian.PutUint32(payload[8:12], uint32(frame.Height))
	payload = append(payload, pixels...)

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	defer encoder.Close()
	return encoder.EncodeAll(payload, nil), nil
}

// DecodeRaw reverses EncodeRaw, returning width, height and the RGB bytes
func DecodeRaw(data []byte) (int, int, []byte, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer decoder.Close()

	payload, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("failed to decompress raw buffer: %w", err)
	}
	if len(payload) < rawHeaderSize || !bytes.Equal(payload[:4], rawMagic[:]) {
		return 0, 0, nil, fmt.Errorf("%w: bad header", ErrBadRaw)
	}

	width := int(binary.LittleEndian.Uint32(payload[4:8]))
	height := int(binary.LittleEndian.Uint32(payload[8:12]))
	pixels := payload[rawHeaderSize:]
	if len(pixels) != width*height*3 {
		return 0, 0, nil, fmt.Errorf("%w: %dx%d needs %d bytes, have %d", ErrBadRaw, width, height, width*height*3, len(pixels))
	}
	return width, height, pixels, nil
}

// WriteRaw writes the zstd-compressed RGB buffer to path (conventionally .rgb.zst)
func WriteRaw(path string, frame *renderer.Frame) error {
	data, err := EncodeRaw(frame)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadRaw reads a file written by WriteRaw
func ReadRaw(path string) (int, int, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return DecodeRaw(data)
}
