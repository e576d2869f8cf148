package server

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-raytracer/pkg/output"
	"github.com/df07/go-raytracer/pkg/renderer"
	"github.com/df07/go-raytracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string // Built-in scene ID or scene file ID
	Width   int
	Height  int
	Samples int    // Samples per pixel
	Depth   int    // Maximum bounce depth
	Seed    int64  // 0 keeps the scene's seed
	Thumb   int    // Downscale the result to this width; 0 keeps full size
	Format  string // "png" or "json"
	Upload  bool   // Store the PNG in the configured bucket
}

// RenderResponse is the JSON form of a finished render
type RenderResponse struct {
	Scene     string           `json:"scene"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
	UploadKey string           `json:"uploadKey,omitempty"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels       int     `json:"totalPixels"`
	TotalSamples      int     `json:"totalSamples"`
	DegenerateSamples int     `json:"degenerateSamples"`
	ElapsedMs         int64   `json:"elapsedMs"`
	SamplesPerSecond  float64 `json:"samplesPerSecond"`
	MeanLuminance     float64 `json:"meanLuminance"`
}

// handleRender renders a scene synchronously and returns a PNG or a JSON envelope
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}
	if req.Upload && s.uploader == nil {
		http.Error(w, "Uploads are not configured", http.StatusBadRequest)
		return
	}

	renderID := fmt.Sprintf("%s-%d", sanitizeKey(req.Scene), time.Now().UnixNano())
	logger := NewWebLogger(renderID)

	sceneObj, err := s.resolveScene(req.Scene, scene.Options{
		AspectRatio: float64(req.Width) / float64(req.Height),
		Seed:        req.Seed,
		Logger:      logger,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, scene.ErrUnknownScene) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	config := sceneObj.SamplingConfig
	config.SamplesPerPixel = req.Samples
	config.MaxDepth = req.Depth
	frame, stats := sceneObj.RenderFrame(req.Width, req.Height, config)

	img := output.Thumbnail(frame.Image(), uint(req.Thumb))
	var buf bytes.Buffer
	if err := output.EncodePNG(&buf, img); err != nil {
		http.Error(w, fmt.Sprintf("Failed to encode image: %v", err), http.StatusInternalServerError)
		return
	}

	var uploadKey string
	if req.Upload {
		uploadKey = fmt.Sprintf("renders/%s.png", renderID)
		if err := s.uploader.Upload(r.Context(), uploadKey, buf.Bytes(), "image/png"); err != nil {
			log.Printf("Render upload failed: %v", err)
			http.Error(w, "Upload failed", http.StatusBadGateway)
			return
		}
	}

	log.Printf("Render %s finished in %v (%d samples)", renderID, stats.Elapsed, stats.TotalSamples)

	if req.Format == "json" {
		writeJSON(w, http.StatusOK, RenderResponse{
			Scene:     req.Scene,
			Width:     img.Bounds().Dx(),
			Height:    img.Bounds().Dy(),
			ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
			Stats:     toStats(stats),
			Console:   logger.Messages(),
			UploadKey: uploadKey,
		})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	if uploadKey != "" {
		w.Header().Set("X-Upload-Key", uploadKey)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Failed to write image: %v", err)
	}
}

// parseRenderRequest parses request parameters
func parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene"), Format: query.Get("format")}
	if req.Scene == "" {
		req.Scene = "cornell" // Default scene
	}
	switch req.Format {
	case "":
		req.Format = "png"
	case "png", "json":
	default:
		return nil, fmt.Errorf("format must be png or json, got: %s", req.Format)
	}
	req.Upload = query.Get("upload") == "1" || query.Get("upload") == "true"

	var err error
	if req.Width, err = parseIntParam(query, "width", 200, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 200, 1, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 16, 1, 10000); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", 20, 1, 200); err != nil {
		return nil, err
	}
	if req.Thumb, err = parseIntParam(query, "thumb", 0, 0, 2000); err != nil {
		return nil, err
	}
	if req.Seed, err = parseInt64Param(query, "seed", 0); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}
	return req, nil
}

func toStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:       stats.TotalPixels,
		TotalSamples:      stats.TotalSamples,
		DegenerateSamples: stats.DegenerateSamples,
		ElapsedMs:         stats.Elapsed.Milliseconds(),
		SamplesPerSecond:  stats.SamplesPerSecond(),
		MeanLuminance:     stats.MeanLuminance(),
	}
}

// sanitizeKey keeps object keys to letters, digits, dashes and underscores
func sanitizeKey(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
