package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// absorbingMaterial never scatters
type absorbingMaterial struct{}

func (absorbingMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	return material.ScatterResult{}, false
}

// createTestWorld creates the three-sphere scene used across integrator tests
func createTestWorld() *geometry.HittableList {
	return geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))),
		geometry.NewSphere(core.NewVec3(0, 0, -1.2), 0.5, material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.3)),
	)
}

// recursiveRayColor is the textbook recursive formulation, kept as a reference
func recursiveRayColor(ray core.Ray, world geometry.Hittable, depth int, sampler core.Sampler, background Background) core.Color {
	if depth <= 0 {
		return core.Color{}
	}
	hit, isHit := world.Hit(ray, core.NewInterval(0.001, math.Inf(1)))
	if !isHit {
		return background.Emit(ray)
	}
	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Color{}
	}
	return scatter.Attenuation.MultiplyVec(recursiveRayColor(scatter.Scattered, world, depth-1, sampler, background))
}

func TestPathTracingDepthZeroIsBlack(t *testing.T) {
	world := createTestWorld()
	integrator := NewPathTracingIntegrator(nil)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	rays := []core.Ray{
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), // hits the center sphere
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)),  // escapes to the sky
	}

	for _, ray := range rays {
		for _, depth := range []int{0, -1, -50} {
			color := integrator.RayColor(ray, world, depth, sampler)
			if color != (core.Color{}) {
				t.Errorf("Expected black for depth %d, got %v", depth, color)
			}
		}
	}
}

func TestPathTracingSkyGradient(t *testing.T) {
	integrator := NewPathTracingIntegrator(nil)
	empty := geometry.NewHittableList()
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Color
	}{
		{"Straight up", core.NewVec3(0, 1, 0), core.NewColor(0.5, 0.7, 1.0)},
		{"Straight down", core.NewVec3(0, -3, 0), core.NewColor(1, 1, 1)},
		{"Horizon", core.NewVec3(0, 0, -1), core.NewColor(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), tt.direction), empty, 10, sampler)
			if color.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, color)
			}
		})
	}
}

func TestPathTracingAbsorptionIsBlack(t *testing.T) {
	world := geometry.NewHittableList(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, absorbingMaterial{}))
	integrator := NewPathTracingIntegrator(nil)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(3)))

	color := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world, 10, sampler)
	if color != (core.Color{}) {
		t.Errorf("Expected black for absorbed ray, got %v", color)
	}
}

func TestPathTracingMirrorAttenuatesSky(t *testing.T) {
	// A perfect mirror facing the camera reflects the ray back toward +z, which sees the horizon
	albedo := core.NewColor(0.8, 0.5, 0.25)
	world := geometry.NewHittableList(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewMetal(albedo, 0)))
	integrator := NewPathTracingIntegrator(nil)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(5)))

	color := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world, 10, sampler)
	expected := albedo.MultiplyVec(core.NewColor(0.75, 0.85, 1.0))
	if color.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, color)
	}

	// With a single bounce of budget the reflected ray is never traced
	if color := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world, 1, sampler); color != (core.Color{}) {
		t.Errorf("Expected black once the bounce budget is spent, got %v", color)
	}
}

func TestPathTracingMatchesRecursiveFormulation(t *testing.T) {
	world := createTestWorld()
	integrator := NewPathTracingIntegrator(nil)
	background := DefaultSky()
	random := rand.New(rand.NewSource(2024))

	for i := 0; i < 500; i++ {
		direction := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, -1)
		ray := core.NewRay(core.NewVec3(0, 0, 0), direction)
		depth := 1 + random.Intn(20)
		seed := random.Int63()

		iterative := integrator.RayColor(ray, world, depth, core.NewSeededSampler(seed, 0))
		recursive := recursiveRayColor(ray, world, depth, core.NewSeededSampler(seed, 0), background)

		if iterative.Subtract(recursive).Length() > 1e-12 {
			t.Fatalf("Ray %d depth %d: iterative %v != recursive %v", i, depth, iterative, recursive)
		}
	}
}

func TestPathTracingEnergyBounded(t *testing.T) {
	world := createTestWorld()
	integrator := NewPathTracingIntegrator(nil)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(77)))

	// Albedos and the sky never exceed 1, so no path can gain energy
	for i := 0; i < 1000; i++ {
		ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -0.2, -1))
		c := integrator.RayColor(ray, world, 50, sampler)
		if c.X < 0 || c.Y < 0 || c.Z < 0 || c.X > 1 || c.Y > 1 || c.Z > 1 || c.HasNaN() {
			t.Fatalf("Radiance out of range: %v", c)
		}
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		expectError bool
	}{
		{PathTracing, false},
		{Normals, false},
		{"", false},
		{"bdpt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integrator, err := New(tt.name, nil)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for integrator %q", tt.name)
				}
				return
			}
			if err != nil || integrator == nil {
				t.Errorf("Expected integrator for %q, got error %v", tt.name, err)
			}
		})
	}
}
