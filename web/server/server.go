package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-raytracer/pkg/output"
	"github.com/df07/go-raytracer/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string             // Directory of YAML scenes offered alongside the built-ins
	uploader  *output.S3Uploader // Optional; enables upload=1 on renders
	mux       *http.ServeMux
}

// NewServer creates a new web server. uploader may be nil.
func NewServer(port int, scenesDir string, uploader *output.S3Uploader) *Server {
	s := &Server{port: port, scenesDir: scenesDir, uploader: uploader, mux: http.NewServeMux()}

	// Serve static files
	s.mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	return s
}

// Handler returns the HTTP handler serving all routes
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and file scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list scenes: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// resolveScene accepts a built-in ID or the ID of a scene file in the scenes directory.
// Other paths are rejected so clients cannot read arbitrary files.
func (s *Server) resolveScene(name string, opts scene.Options) (*scene.Scene, error) {
	for _, builtin := range scene.Names() {
		if name == builtin {
			return scene.Lookup(name, opts)
		}
	}

	files, err := scene.ListSceneFiles(s.scenesDir)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if f.ID == name {
			return scene.LoadFile(f.FilePath, opts)
		}
	}
	return nil, fmt.Errorf("%w: %q", scene.ErrUnknownScene, name)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseInt64Param parses an unbounded 64-bit integer parameter
func parseInt64Param(values url.Values, key string, defaultValue int64) (int64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
