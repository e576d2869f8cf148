package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-raytracer/pkg/loaders"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, accepted by Lookup
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "yaml"
	FilePath    string `json:"filePath"`    // Path to the scene file (yaml type only)
}

// Builder constructs a built-in scene
type Builder func(opts Options) (*Scene, error)

type builtinScene struct {
	info  SceneInfo
	build Builder
}

// ErrUnknownScene is returned by Lookup for names that are neither built in nor a scene file
var ErrUnknownScene = errors.New("unknown scene")

var builtinScenes = []builtinScene{
	{SceneInfo{ID: "cornell", DisplayName: "Cornell Box", Description: "Cornell box with a rotated block and a glass sphere"}, NewCornellScene},
	{SceneInfo{ID: "cornell-smoke", DisplayName: "Cornell Smoke", Description: "Cornell box with two blocks of smoke"}, NewCornellSmokeScene},
	{SceneInfo{ID: "random-spheres", DisplayName: "Random Spheres", Description: "Field of random spheres with motion blur and depth of field"}, NewRandomSpheresScene},
	{SceneInfo{ID: "perlin", DisplayName: "Perlin Noise", Description: "Marble spheres from Perlin turbulence"}, NewPerlinScene},
	{SceneInfo{ID: "earth", DisplayName: "Earth", Description: "Image-textured globe"}, NewEarthScene},
	{SceneInfo{ID: "simple-light", DisplayName: "Simple Light", Description: "Marble spheres lit by a rectangle and a sphere light"}, NewSimpleLightScene},
	{SceneInfo{ID: "final", DisplayName: "Final Scene", Description: "Every primitive, material, texture and medium together"}, NewFinalScene},
}

// Names returns the IDs of the built-in scenes in display order
func Names() []string {
	names := make([]string, len(builtinScenes))
	for i, s := range builtinScenes {
		names[i] = s.info.ID
	}
	return names
}

// Lookup builds the scene with the given ID, or loads it from a .yaml/.yml path
func Lookup(name string, opts Options) (*Scene, error) {
	if isSceneFile(name) {
		return LoadFile(name, opts)
	}
	for _, s := range builtinScenes {
		if s.info.ID == name {
			return s.build(opts)
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
}

func isSceneFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// ListSceneFiles scans dir for YAML scene descriptions. A missing directory yields no scenes.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		desc, err := loaders.LoadSceneDescription(filePath)
		if err != nil {
			// Skip broken files but keep the rest
			fmt.Printf("Warning: skipping scene %s: %v\n", filePath, err)
			continue
		}

		filename := filepath.Base(filePath)
		displayName := desc.Name
		if displayName == "" {
			displayName = titleCase(strings.TrimSuffix(filename, filepath.Ext(filename)))
		}
		scenes = append(scenes, SceneInfo{
			ID:          filePath,
			DisplayName: displayName,
			Description: desc.Description,
			Type:        "yaml",
			FilePath:    filePath,
		})
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ListAllScenes returns the built-in scenes followed by the scene files found in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	all := make([]SceneInfo, 0, len(builtinScenes))
	for _, s := range builtinScenes {
		info := s.info
		info.Type = "builtin"
		all = append(all, info)
	}

	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, err
	}
	return append(all, files...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
