package server

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net/http"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	UV           [2]float64             `json:"uv"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo extracts material information, sampling textures at the hit
func extractMaterialInfo(mat material.Material, hit *material.HitRecord) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		albedo := m.Albedo.Sample(hit.U, hit.V, hit.Point)
		properties["albedo"] = toArray(albedo)
		properties["color"] = hexColor(albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = toArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	case *material.DiffuseLight:
		emission := m.Emit.Sample(hit.U, hit.V, hit.Point)
		properties["emission"] = toArray(emission)
		properties["color"] = hexColor(emission)
		return "diffuse_light", properties

	case *material.Isotropic:
		albedo := m.Albedo.Sample(hit.U, hit.V, hit.Point)
		properties["albedo"] = toArray(albedo)
		return "isotropic", properties

	case nil:
		return "none", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts a ray through the center of pixel (x, y), y counted from the top
func inspectPixel(sceneObj *scene.Scene, width, height, x, y int) InspectResponse {
	// A fixed seed keeps lens sampling repeatable
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(0)))
	s := (float64(x) + 0.5) / float64(width)
	t := (float64(height-1-y) + 0.5) / float64(height)
	ray := sceneObj.Camera.GetRay(s, t, sampler)

	hit, ok := sceneObj.World.Hit(ray, 0.001, math.Inf(1), sampler)
	if !ok {
		return InspectResponse{Hit: false}
	}

	materialType, properties := extractMaterialInfo(hit.Material, hit)
	return InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		Point:        toArray(hit.Point),
		Normal:       toArray(hit.Normal),
		Distance:     hit.T * ray.Direction.Length(),
		FrontFace:    hit.FrontFace,
		UV:           [2]float64{hit.U, hit.V},
		Properties:   properties,
	}
}

// handleInspect reports what the camera sees through one pixel
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sceneName := query.Get("scene")
	if sceneName == "" {
		sceneName = "cornell"
	}

	width, err := parseIntParam(query, "width", 200, 1, 2000)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	height, err := parseIntParam(query, "height", 200, 1, 2000)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	x, err := parseIntParam(query, "x", 0, 0, width-1)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	y, err := parseIntParam(query, "y", 0, 0, height-1)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sceneObj, err := s.resolveScene(sceneName, scene.Options{
		AspectRatio: float64(width) / float64(height),
		Logger:      NewWebLogger("inspect"),
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, scene.ErrUnknownScene) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, width, height, x, y))
}
