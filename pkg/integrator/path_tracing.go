package integrator

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// PathTracingIntegrator implements unidirectional path tracing lit only by the background
type PathTracingIntegrator struct {
	background Background
}

// NewPathTracingIntegrator creates a new path tracing integrator.
// A nil background falls back to the default sky.
func NewPathTracingIntegrator(background Background) *PathTracingIntegrator {
	if background == nil {
		background = DefaultSky()
	}
	return &PathTracingIntegrator{background: background}
}

// RayColor computes the color for a single ray.
//
// The bounce recursion is unrolled into a loop carrying the path throughput, so
// stack usage stays constant for any depth. Each bounce multiplies the material
// attenuation into the throughput; the path ends when it escapes to the
// background, is absorbed, or runs out of depth.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, depth int, sampler core.Sampler) core.Color {
	throughput := core.NewColor(1, 1, 1)
	current := ray

	for remaining := depth; remaining > 0; remaining-- {
		hit, isHit := world.Hit(current, sceneRange())
		if !isHit {
			return throughput.MultiplyVec(pt.background.Emit(current))
		}

		if hit.Material == nil {
			return core.Color{}
		}

		scatter, didScatter := hit.Material.Scatter(current, *hit, sampler)
		if !didScatter {
			return core.Color{} // Material absorbed the ray
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		current = scatter.Scattered
	}

	// Bounce limit reached, no more light is gathered
	return core.Color{}
}
