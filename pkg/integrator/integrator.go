package integrator

import (
	"fmt"
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// ShadowAcneEpsilon is the lower bound of the intersection range.
// It keeps a freshly scattered ray from re-hitting its own origin.
const ShadowAcneEpsilon = 0.001

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the radiance arriving along ray, following at most depth bounces
	RayColor(ray core.Ray, world geometry.Hittable, depth int, sampler core.Sampler) core.Color
}

// Names of the integrators selectable by New
const (
	PathTracing = "path"
	Normals     = "normals"
)

// New creates an integrator by name
func New(name string, background Background) (Integrator, error) {
	switch name {
	case PathTracing, "":
		return NewPathTracingIntegrator(background), nil
	case Normals:
		return NewNormalIntegrator(background), nil
	default:
		return nil, fmt.Errorf("unknown integrator %q", name)
	}
}

// sceneRange is the open t range searched for every bounce
func sceneRange() core.Interval {
	return core.NewInterval(ShadowAcneEpsilon, math.Inf(1))
}
