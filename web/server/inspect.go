package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// pixelCenter aims camera rays through the pixel center and the lens center
type pixelCenter struct{}

func (pixelCenter) Get1D() float64   { return 0.5 }
func (pixelCenter) Get2D() core.Vec2 { return core.NewVec2(0.5, 0.5) }

func triple(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo extracts detailed material information with type assertions
func (s *Server) extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = triple(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = triple(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractionIndex"] = m.RefractionIndex
		properties["color"] = "#ffffff"
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

// InspectResult describes the first object hit by an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Sphere    *geometry.Sphere // nil when the hit object is not a top-level sphere
}

// inspectPixel casts an unjittered ray through the pixel center
func inspectPixel(pipeline *RenderingPipeline, pixelX, pixelY int) InspectResult {
	ray := pipeline.Camera.GetRay(pixelX, pixelY, pixelCenter{})
	world := pipeline.Scene.World

	hit, isHit := world.Hit(ray, core.NewInterval(integrator.ShadowAcneEpsilon, math.Inf(1)))
	if !isHit {
		return InspectResult{Hit: false}
	}

	// The list only reports the hit record, so find the sphere that produced it
	for _, object := range world.Objects {
		sphere, ok := object.(*geometry.Sphere)
		if !ok {
			continue
		}
		if sphereHit, ok := sphere.Hit(ray, core.NewInterval(integrator.ShadowAcneEpsilon, hit.T+integrator.ShadowAcneEpsilon)); ok && sphereHit.T == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, Sphere: sphere}
		}
	}

	return InspectResult{Hit: true, HitRecord: hit}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pipeline, err := s.setupRenderingPipeline(req, nil)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	width, height := pipeline.Camera.ImageSize()

	query := r.URL.Query()
	pixelX, err := parseIntParam(query, "x", -1, 0, width-1)
	if err != nil || pixelX < 0 {
		s.writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := parseIntParam(query, "y", -1, 0, height-1)
	if err != nil || pixelY < 0 {
		s.writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	result := inspectPixel(pipeline, pixelX, pixelY)
	if !result.Hit {
		s.writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := s.extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := "unknown", map[string]interface{}{}
	if result.Sphere != nil {
		geometryType = "sphere"
		geometryProps["center"] = triple(result.Sphere.Center)
		geometryProps["radius"] = result.Sphere.Radius
	}

	s.writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        triple(result.HitRecord.Point),
		Normal:       triple(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		FrontFace:    result.HitRecord.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
