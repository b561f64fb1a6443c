package server

import (
	"encoding/json"
	"math"
	"net/http"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

func TestHandleInspect(t *testing.T) {
	s := NewServer(0)

	tests := []struct {
		name         string
		target       string
		hit          bool
		materialType string
		radius       float64
	}{
		{"Center pixel hits the diffuse sphere", "/api/inspect?scene=simple&width=16&x=8&y=4", true, "lambertian", 0.5},
		{"Bottom row hits the ground", "/api/inspect?scene=simple&width=16&x=1&y=8", true, "lambertian", 100},
		{"Top corner sees the sky", "/api/inspect?scene=simple&width=16&x=0&y=0", false, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target)
			if rec.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
			}

			var resp InspectResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("Decoding response: %v", err)
			}
			if resp.Hit != tt.hit {
				t.Fatalf("Expected hit=%v, got %+v", tt.hit, resp)
			}
			if !tt.hit {
				return
			}

			if resp.MaterialType != tt.materialType || resp.GeometryType != "sphere" {
				t.Errorf("Expected %s sphere, got %s %s", tt.materialType, resp.MaterialType, resp.GeometryType)
			}
			if !resp.FrontFace {
				t.Error("Camera rays should hit the outside of the sphere")
			}
			geometry := resp.Properties["geometry"].(map[string]interface{})
			if r := geometry["radius"].(float64); math.Abs(r-tt.radius) > 1e-9 {
				t.Errorf("Expected radius %v, got %v", tt.radius, r)
			}
		})
	}
}

func TestHandleInspect_OutOfBounds(t *testing.T) {
	s := NewServer(0)

	for _, target := range []string{
		"/api/inspect?scene=simple&width=16&x=16&y=0",
		"/api/inspect?scene=simple&width=16&x=0&y=9",
		"/api/inspect?scene=simple&width=16&y=0",
		"/api/inspect?scene=simple&width=16&x=-1&y=0",
	} {
		if rec := get(t, s, target); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestExtractMaterialInfo(t *testing.T) {
	s := NewServer(0)

	kind, props := s.extractMaterialInfo(material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.3))
	if kind != "metal" || props["fuzzness"] != 0.3 {
		t.Errorf("Unexpected metal info %s %v", kind, props)
	}

	kind, props = s.extractMaterialInfo(material.NewDielectric(1.5))
	if kind != "dielectric" || props["refractionIndex"] != 1.5 {
		t.Errorf("Unexpected dielectric info %s %v", kind, props)
	}
}
