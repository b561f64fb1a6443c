package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// NewSimpleScene creates a single diffuse sphere resting on a large ground sphere
func NewSimpleScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		VFov:            90,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
		FocusDist:       1,
	}

	s := newScene("simple", "Diffuse sphere on a ground sphere", cameraConfig)

	gray := material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, gray),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, gray),
	)

	return s
}

// NewMaterialsScene creates three spheres showing each material over a yellow ground:
// a hollow glass sphere on the left, diffuse blue in the center and fuzzy gold metal on the right
func NewMaterialsScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		VFov:            20,
		LookFrom:        core.NewVec3(-2, 2, 1),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
		FocusDist:       3.4,
	}

	s := newScene("materials", "Glass, diffuse and metal spheres", cameraConfig)
	addMaterialSpheres(s)
	return s
}

// NewDefocusScene renders the materials scene with a wide aperture focused on the center sphere
func NewDefocusScene() *Scene {
	s := NewMaterialsScene()
	s.Name = "defocus"
	s.Description = "Materials scene with depth of field"
	s.Camera.DefocusAngle = 10.0
	s.Camera.FocusDist = 3.4
	return s
}

func addMaterialSpheres(s *Scene) {
	materialGround := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))
	materialLeft := material.NewDielectric(1.50)
	materialBubble := material.NewDielectric(1.00 / 1.50) // Air inside glass
	materialRight := material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 1.0)

	s.Add(
		geometry.NewSphere(core.NewVec3(0.0, -100.5, -1.0), 100.0, materialGround),
		geometry.NewSphere(core.NewVec3(0.0, 0.0, -1.2), 0.5, materialCenter),
		geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.5, materialLeft),
		geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.4, materialBubble),
		geometry.NewSphere(core.NewVec3(1.0, 0.0, -1.0), 0.5, materialRight),
	)
}
