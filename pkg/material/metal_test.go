package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
		{"Clamp large positive", 10.0, 1.0},
	}

	albedo := core.NewColor(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewColor(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	// Incident (0, -1, -1) reflects to (0, -1, 1), normalized
	expected := core.NewVec3(0, -1, 1).Normalize()
	if scatter.Scattered.Direction.Subtract(expected).Length() > 1e-10 {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, scatter.Scattered.Direction)
	}

	if !scatter.Attenuation.Equals(albedo) {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
	}
}

func TestMetal_NeverScattersIntoSurface(t *testing.T) {
	metal := NewMetal(core.NewColor(0.8, 0.6, 0.2), 1.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(123)))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
	}

	directions := []core.Vec3{
		core.NewVec3(0, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(1, -0.05, 0.3),
		core.NewVec3(-2, -0.01, 1),
	}

	absorbed := 0
	for _, dir := range directions {
		rayIn := core.NewRay(core.NewVec3(0, 1, 0), dir)
		for i := 0; i < 500; i++ {
			scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
			if !didScatter {
				absorbed++
				continue
			}
			if scatter.Scattered.Direction.Dot(hit.Normal) <= 0 {
				t.Fatalf("Scattered direction %v points into the surface", scatter.Scattered.Direction)
			}
		}
	}

	if absorbed == 0 {
		t.Error("Expected some grazing rays to be absorbed with maximum fuzz")
	}
}

func TestMetal_ScatterAbsorption(t *testing.T) {
	metal := NewMetal(core.NewColor(0.8, 0.8, 0.8), 1.0)

	// Grazing ray whose reflection is nearly tangent to the surface
	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
	}

	// (0.5, 0.75) maps to the unit vector (0, -1, 0), pushing the reflection below the surface
	sampler := newSequenceSampler(0.5, 0.75)
	if _, didScatter := metal.Scatter(rayIn, hit, sampler); didScatter {
		t.Error("Metal should absorb a reflection perturbed below the surface")
	}
}

func TestReflect(t *testing.T) {
	v := core.NewVec3(1, -1, 0)
	n := core.NewVec3(0, 1, 0)
	r := Reflect(v, n)
	if !r.Equals(core.NewVec3(1, 1, 0)) {
		t.Errorf("Expected (1, 1, 0), got %v", r)
	}
}
