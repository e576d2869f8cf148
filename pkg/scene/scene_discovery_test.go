package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type silentLogger struct{}

func (silentLogger) Printf(format string, args ...interface{}) {}

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-empty", "Cornell Empty"},
		{"dragon_gold", "Dragon Gold"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

const miniSceneYAML = `
name: Mini
description: One lit sphere
camera: {look_from: [0, 0, 5], look_at: [0, 0, 0], vfov: 40, aspect_ratio: 1}
materials:
  white: {type: lambertian, albedo: [0.8, 0.8, 0.8]}
  light: {type: diffuse_light, emit: [4, 4, 4]}
objects:
  - {type: sphere, center: [0, 0, 0], radius: 1, material: white}
  - {name: lamp, type: xz_rect, x0: -1, x1: 1, z0: -1, z1: 1, k: 3, material: light, flip: true}
lights: [lamp]
`

func writeScene(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestListSceneFiles(t *testing.T) {
	dir := t.TempDir()
	writeScene(t, dir, "mini.yaml", miniSceneYAML)
	writeScene(t, dir, "unnamed_scene.yml", "materials: {}\nobjects: []\n")
	writeScene(t, dir, "broken.yaml", "objects: [{type: torus}]\n")
	writeScene(t, dir, "notes.txt", "not a scene")

	scenes, err := ListSceneFiles(dir)
	if err != nil {
		t.Fatalf("ListSceneFiles failed: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d: %+v", len(scenes), scenes)
	}

	// Sorted by display name
	if scenes[0].DisplayName != "Mini" || scenes[0].Description != "One lit sphere" {
		t.Errorf("Unexpected first scene %+v", scenes[0])
	}
	if scenes[1].DisplayName != "Unnamed Scene" {
		t.Errorf("Expected filename-derived name, got %q", scenes[1].DisplayName)
	}
	for _, s := range scenes {
		if s.Type != "yaml" || s.ID != s.FilePath {
			t.Errorf("Unexpected scene info %+v", s)
		}
	}
}

func TestListSceneFilesMissingDir(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(scenes) != 0 {
		t.Errorf("Expected no scenes, got %d", len(scenes))
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeScene(t, dir, "mini.yaml", miniSceneYAML)

	scenes, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes failed: %v", err)
	}
	if len(scenes) != len(Names())+1 {
		t.Fatalf("Expected %d scenes, got %d", len(Names())+1, len(scenes))
	}
	for i, name := range Names() {
		if scenes[i].ID != name || scenes[i].Type != "builtin" {
			t.Errorf("Scene %d: expected builtin %s, got %+v", i, name, scenes[i])
		}
	}
	if scenes[len(scenes)-1].Type != "yaml" {
		t.Errorf("Expected scene files after the built-ins")
	}
}

func TestLookup(t *testing.T) {
	opts := Options{Logger: silentLogger{}}

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Lookup(name, opts)
			if err != nil {
				t.Fatalf("Lookup(%s) failed: %v", name, err)
			}
			if s.Name != name {
				t.Errorf("Expected scene name %s, got %s", name, s.Name)
			}
			if s.World == nil || s.Camera == nil || s.Lights == nil {
				t.Fatalf("Scene %s is incomplete: %+v", name, s)
			}
			if _, ok := s.World.BoundingBox(0, 1); !ok {
				t.Errorf("Scene %s world has no bounding box", name)
			}
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := Lookup("teapot", opts)
		if !errors.Is(err, ErrUnknownScene) {
			t.Errorf("Expected ErrUnknownScene, got %v", err)
		}
	})

	t.Run("yaml file", func(t *testing.T) {
		path := writeScene(t, t.TempDir(), "mini.yaml", miniSceneYAML)
		s, err := Lookup(path, opts)
		if err != nil {
			t.Fatalf("Lookup(%s) failed: %v", path, err)
		}
		if s.Name != "Mini" || s.Lights.Len() != 1 {
			t.Errorf("Unexpected scene %s with %d lights", s.Name, s.Lights.Len())
		}
	})

	t.Run("missing yaml file", func(t *testing.T) {
		if _, err := Lookup(filepath.Join(t.TempDir(), "missing.yaml"), opts); err == nil {
			t.Error("Expected an error for a missing scene file")
		}
	})
}

func TestBundledSceneFiles(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join("..", "..", "scenes"))
	if err != nil {
		t.Fatalf("ListSceneFiles failed: %v", err)
	}
	if len(scenes) < 2 {
		t.Fatalf("Expected the bundled scenes, got %d", len(scenes))
	}

	for _, info := range scenes {
		t.Run(info.ID, func(t *testing.T) {
			s, err := LoadFile(info.FilePath, Options{Logger: silentLogger{}})
			if err != nil {
				t.Fatalf("LoadFile failed: %v", err)
			}
			config := s.SamplingConfig
			config.SamplesPerPixel = 1
			config.MaxDepth = 3
			frame, _ := s.RenderFrame(4, 4, config)
			if frame.Width != 4 || frame.Height != 4 {
				t.Errorf("Expected a 4x4 frame, got %dx%d", frame.Width, frame.Height)
			}
		})
	}
}
