package loaders

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-raytracer/pkg/core"
)

// Vec3 is a YAML triple such as [0.73, 0.73, 0.73]
type Vec3 [3]float64

// Core converts the triple to a core vector
func (v Vec3) Core() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// SceneDescription is the YAML form of a scene
type SceneDescription struct {
	Name        string                         `yaml:"name"`
	Description string                         `yaml:"description,omitempty"`
	Camera      CameraDescription              `yaml:"camera"`
	Background  Vec3                           `yaml:"background,omitempty"`
	Sampling    SamplingDescription            `yaml:"sampling,omitempty"`
	Textures    map[string]TextureDescription  `yaml:"textures,omitempty"`
	Materials   map[string]MaterialDescription `yaml:"materials"`
	Objects     []ObjectDescription            `yaml:"objects"`
	Lights      []string                       `yaml:"lights,omitempty"` // Names of objects sampled as lights

	BaseDir string `yaml:"-"` // Directory that relative texture paths resolve against
}

// CameraDescription mirrors geometry.CameraConfig
type CameraDescription struct {
	LookFrom      Vec3    `yaml:"look_from"`
	LookAt        Vec3    `yaml:"look_at"`
	Up            *Vec3   `yaml:"up,omitempty"` // Defaults to +Y
	VFov          float64 `yaml:"vfov"`
	AspectRatio   float64 `yaml:"aspect_ratio,omitempty"`
	Aperture      float64 `yaml:"aperture,omitempty"`
	FocusDistance float64 `yaml:"focus_distance,omitempty"`
	Time0         float64 `yaml:"time0,omitempty"`
	Time1         float64 `yaml:"time1,omitempty"`
}

// SamplingDescription holds recommended render settings; zero values keep the defaults
type SamplingDescription struct {
	SamplesPerPixel int   `yaml:"samples_per_pixel,omitempty"`
	MaxDepth        int   `yaml:"max_depth,omitempty"`
	Seed            int64 `yaml:"seed,omitempty"`
}

// Texture kinds
const (
	TextureSolid   = "solid"
	TextureChecker = "checker"
	TextureNoise   = "noise"
	TextureImage   = "image"
)

// TextureDescription defines a named texture
type TextureDescription struct {
	Type  string  `yaml:"type"`
	Color *Vec3   `yaml:"color,omitempty"` // solid
	Even  *Vec3   `yaml:"even,omitempty"`  // checker
	Odd   *Vec3   `yaml:"odd,omitempty"`   // checker
	Scale float64 `yaml:"scale,omitempty"` // noise frequency
	Path  string  `yaml:"path,omitempty"`  // image file, relative to the scene file
}

// Material kinds
const (
	MaterialLambertian   = "lambertian"
	MaterialMetal        = "metal"
	MaterialDielectric   = "dielectric"
	MaterialDiffuseLight = "diffuse_light"
	MaterialIsotropic    = "isotropic"
)

// MaterialDescription defines a named material.
// Color-driven kinds take either Albedo (Emit for lights) or a Texture name.
type MaterialDescription struct {
	Type    string  `yaml:"type"`
	Albedo  *Vec3   `yaml:"albedo,omitempty"`
	Texture string  `yaml:"texture,omitempty"`
	Fuzz    float64 `yaml:"fuzz,omitempty"`
	IOR     float64 `yaml:"ior,omitempty"`
	Emit    *Vec3   `yaml:"emit,omitempty"`
}

// Object kinds
const (
	ObjectSphere         = "sphere"
	ObjectMovingSphere   = "moving_sphere"
	ObjectXYRect         = "xy_rect"
	ObjectXZRect         = "xz_rect"
	ObjectYZRect         = "yz_rect"
	ObjectBox            = "box"
	ObjectConstantMedium = "constant_medium"
	ObjectGroup          = "group"
)

// ObjectDescription defines one hittable. Which fields apply depends on Type.
type ObjectDescription struct {
	Name     string `yaml:"name,omitempty"`
	Type     string `yaml:"type"`
	Material string `yaml:"material,omitempty"`

	// sphere, moving_sphere
	Center  *Vec3   `yaml:"center,omitempty"`
	Center1 *Vec3   `yaml:"center1,omitempty"`
	Time0   float64 `yaml:"time0,omitempty"`
	Time1   float64 `yaml:"time1,omitempty"`
	Radius  float64 `yaml:"radius,omitempty"`

	// Rectangles span two of these ranges and sit at K on the third axis
	X0 float64 `yaml:"x0,omitempty"`
	X1 float64 `yaml:"x1,omitempty"`
	Y0 float64 `yaml:"y0,omitempty"`
	Y1 float64 `yaml:"y1,omitempty"`
	Z0 float64 `yaml:"z0,omitempty"`
	Z1 float64 `yaml:"z1,omitempty"`
	K  float64 `yaml:"k,omitempty"`

	// box
	Min *Vec3 `yaml:"min,omitempty"`
	Max *Vec3 `yaml:"max,omitempty"`

	// constant_medium: the phase function color comes from Albedo or Texture
	Boundary *ObjectDescription `yaml:"boundary,omitempty"`
	Density  float64            `yaml:"density,omitempty"`
	Albedo   *Vec3              `yaml:"albedo,omitempty"`
	Texture  string             `yaml:"texture,omitempty"`

	// group members are gathered into their own BVH
	Objects []ObjectDescription `yaml:"objects,omitempty"`

	Flip      bool                   `yaml:"flip,omitempty"`      // Invert the front face, applied before Transform
	Transform []TransformDescription `yaml:"transform,omitempty"` // Applied in order
}

// TransformDescription is a single step; exactly one field is set
type TransformDescription struct {
	Translate *Vec3    `yaml:"translate,omitempty"`
	RotateY   *float64 `yaml:"rotate_y,omitempty"` // Degrees
}

// ErrInvalidScene is wrapped by every validation error
var ErrInvalidScene = errors.New("invalid scene description")

// LoadSceneDescription reads and validates a YAML scene file.
// Relative texture paths resolve against the file's directory.
func LoadSceneDescription(path string) (*SceneDescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	desc, err := ParseSceneDescription(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	desc.BaseDir = filepath.Dir(path)
	return desc, nil
}

// ParseSceneDescription decodes and validates YAML scene data. Unknown keys are rejected.
func ParseSceneDescription(data []byte) (*SceneDescription, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var desc SceneDescription
	if err := decoder.Decode(&desc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidScene)
		}
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &desc, nil
}

// ResolvePath returns path relative to the scene file's directory unless it is absolute
func (d *SceneDescription) ResolvePath(path string) string {
	if filepath.IsAbs(path) || d.BaseDir == "" {
		return path
	}
	return filepath.Join(d.BaseDir, path)
}

// Validate checks kinds, required fields and name references
func (d *SceneDescription) Validate() error {
	for name, tex := range d.Textures {
		if err := validateTexture(tex); err != nil {
			return fmt.Errorf("%w: texture %q: %v", ErrInvalidScene, name, err)
		}
	}
	for name, mat := range d.Materials {
		if err := d.validateMaterial(mat); err != nil {
			return fmt.Errorf("%w: material %q: %v", ErrInvalidScene, name, err)
		}
	}

	names := make(map[string]bool)
	for i, obj := range d.Objects {
		if err := d.validateObject(obj, false); err != nil {
			return fmt.Errorf("%w: object %d (%s): %v", ErrInvalidScene, i, obj.Type, err)
		}
		if obj.Name != "" {
			if names[obj.Name] {
				return fmt.Errorf("%w: duplicate object name %q", ErrInvalidScene, obj.Name)
			}
			names[obj.Name] = true
		}
	}

	for _, light := range d.Lights {
		if !names[light] {
			return fmt.Errorf("%w: light %q does not name a top-level object", ErrInvalidScene, light)
		}
	}
	return nil
}

func validateTexture(tex TextureDescription) error {
	switch tex.Type {
	case TextureSolid:
		if tex.Color == nil {
			return errors.New("solid texture needs color")
		}
	case TextureChecker:
		if tex.Even == nil || tex.Odd == nil {
			return errors.New("checker texture needs even and odd")
		}
	case TextureNoise:
	case TextureImage:
		if tex.Path == "" {
			return errors.New("image texture needs path")
		}
	default:
		return fmt.Errorf("unknown texture type %q", tex.Type)
	}
	return nil
}

// validateColorSource checks that exactly one of a color and a texture name is given
func (d *SceneDescription) validateColorSource(field string, color *Vec3, texture string) error {
	if color != nil && texture != "" {
		return fmt.Errorf("both %s and texture given", field)
	}
	if color == nil && texture == "" {
		return fmt.Errorf("needs %s or texture", field)
	}
	if texture != "" {
		if _, ok := d.Textures[texture]; !ok {
			return fmt.Errorf("undefined texture %q", texture)
		}
	}
	return nil
}

func (d *SceneDescription) validateMaterial(mat MaterialDescription) error {
	switch mat.Type {
	case MaterialLambertian, MaterialIsotropic:
		return d.validateColorSource("albedo", mat.Albedo, mat.Texture)
	case MaterialMetal:
		if mat.Albedo == nil {
			return errors.New("metal needs albedo")
		}
	case MaterialDielectric:
		if mat.IOR <= 0 {
			return errors.New("dielectric needs a positive ior")
		}
	case MaterialDiffuseLight:
		return d.validateColorSource("emit", mat.Emit, mat.Texture)
	default:
		return fmt.Errorf("unknown material type %q", mat.Type)
	}
	return nil
}

// validateObject checks obj. Medium boundaries may omit their material.
func (d *SceneDescription) validateObject(obj ObjectDescription, boundary bool) error {
	needsMaterial := !boundary
	switch obj.Type {
	case ObjectSphere:
		if obj.Center == nil {
			return errors.New("sphere needs center")
		}
	case ObjectMovingSphere:
		if obj.Center == nil || obj.Center1 == nil {
			return errors.New("moving sphere needs center and center1")
		}
	case ObjectXYRect, ObjectXZRect, ObjectYZRect:
	case ObjectBox:
		if obj.Min == nil || obj.Max == nil {
			return errors.New("box needs min and max")
		}
	case ObjectConstantMedium:
		needsMaterial = false
		if obj.Boundary == nil {
			return errors.New("constant medium needs boundary")
		}
		if err := d.validateColorSource("albedo", obj.Albedo, obj.Texture); err != nil {
			return err
		}
		if err := d.validateObject(*obj.Boundary, true); err != nil {
			return fmt.Errorf("boundary: %v", err)
		}
	case ObjectGroup:
		needsMaterial = false
		if len(obj.Objects) == 0 {
			return errors.New("group needs objects")
		}
		for i, child := range obj.Objects {
			if err := d.validateObject(child, boundary); err != nil {
				return fmt.Errorf("member %d (%s): %v", i, child.Type, err)
			}
		}
	default:
		return fmt.Errorf("unknown object type %q", obj.Type)
	}

	if needsMaterial || obj.Material != "" {
		if _, ok := d.Materials[obj.Material]; !ok {
			return fmt.Errorf("undefined material %q", obj.Material)
		}
	}

	for i, step := range obj.Transform {
		if (step.Translate == nil) == (step.RotateY == nil) {
			return fmt.Errorf("transform %d must set exactly one of translate and rotate_y", i)
		}
	}
	return nil
}
