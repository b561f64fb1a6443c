package scene

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// oklchToRGB maps lightness (0-1), chroma (0-0.4) and hue (degrees) to a linear
// sRGB color clamped to [0, 1]
func oklchToRGB(lightness, chroma, hue float64) core.Color {
	hRad := core.DegreesToRadians(hue)
	a := chroma * math.Cos(hRad)
	b := chroma * math.Sin(hRad)

	// OKLAB -> cone responses
	lc := lightness + 0.3963377774*a + 0.2158037573*b
	mc := lightness - 0.1055613458*a - 0.0638541728*b
	sc := lightness - 0.0894841775*a - 1.2914855480*b
	lc, mc, sc = lc*lc*lc, mc*mc*mc, sc*sc*sc

	unit := core.NewInterval(0, 1)
	return core.NewColor(
		unit.Clamp(+4.0767416621*lc-3.3077115913*mc+0.2309699292*sc),
		unit.Clamp(-1.2684380046*lc+2.6097574011*mc-0.3413193965*sc),
		unit.Clamp(-0.0041960863*lc-0.7034186147*mc+1.7076147010*sc),
	)
}

// NewSphereGridScene creates a grid of rainbow-colored metal spheres on a gray ground
func NewSphereGridScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      800,
		SamplesPerPixel: 100,
		MaxDepth:        40,
		VFov:            40.0,
		LookFrom:        core.NewVec3(4.5, 6, 18),    // Farther back and slightly above the grid
		LookAt:          core.NewVec3(4.5, 0.8, 4.5), // Center of grid, slightly lower
		Up:              core.NewVec3(0, 1, 0),
		DefocusAngle:    0.3,
		FocusDist:       14.4,
	}

	s := newScene("spheregrid", "Grid of rainbow-colored metallic spheres", cameraConfig)

	s.Add(NewGroundSphere(0, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))))

	gridSize := 20

	// Fit the grid in a roughly 9x9 unit area
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)

	// Scale sphere radius based on spacing, but keep reasonable minimum/maximum
	sphereRadius := spacing * 0.35
	minRadius := 0.02
	maxRadius := 0.35
	sphereRadius = math.Max(minRadius, math.Min(maxRadius, sphereRadius))

	// OKLCH parameters for color variation
	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5 // Center around x=4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5 // Center around z=4.5
			position := core.NewVec3(x, sphereRadius, z)

			// Hue varies across X, chroma across Z
			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			color := oklchToRGB(lightness, chroma, hue)
			roughness := 0.05 + 0.1*float64((i+j)%3)/2.0
			s.Add(geometry.NewSphere(position, sphereRadius, material.NewMetal(color, roughness)))
		}
	}

	return s
}
