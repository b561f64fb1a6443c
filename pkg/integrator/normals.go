package integrator

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// NormalIntegrator shades each primary hit by its surface normal.
// Useful for checking geometry and camera setup without noise.
type NormalIntegrator struct {
	background Background
}

// NewNormalIntegrator creates a normal-visualizing integrator
func NewNormalIntegrator(background Background) *NormalIntegrator {
	if background == nil {
		background = DefaultSky()
	}
	return &NormalIntegrator{background: background}
}

// RayColor maps the normal at the first hit from [-1,1] into [0,1] per channel
func (n *NormalIntegrator) RayColor(ray core.Ray, world geometry.Hittable, depth int, sampler core.Sampler) core.Color {
	if depth <= 0 {
		return core.Color{}
	}

	hit, isHit := world.Hit(ray, sceneRange())
	if !isHit {
		return n.background.Emit(ray)
	}

	return hit.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
}
