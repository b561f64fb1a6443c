package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name        string
	Description string
	Camera      renderer.CameraConfig // Recommended camera; CLI flags override it
	World       *geometry.HittableList
	Background  integrator.Background
}

// newScene creates an empty scene lit by the default sky
func newScene(name, description string, camera renderer.CameraConfig) *Scene {
	return &Scene{
		Name:        name,
		Description: description,
		Camera:      camera,
		World:       geometry.NewHittableList(),
		Background:  integrator.DefaultSky(),
	}
}

// Add appends objects to the scene world
func (s *Scene) Add(objects ...geometry.Hittable) {
	for _, object := range objects {
		s.World.Add(object)
	}
}

// NewGroundSphere creates a huge sphere whose top touches the plane y = height
func NewGroundSphere(height float64, mat material.Material) *geometry.Sphere {
	const radius = 1000.0
	return geometry.NewSphere(core.NewVec3(0, height-radius, 0), radius, mat)
}

// GetPrimitiveCount returns the number of objects in the scene world
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}
