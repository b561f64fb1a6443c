package integrator

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
)

// Background supplies the radiance of rays that escape the scene
type Background interface {
	Emit(rayIn core.Ray) core.Color
}

// SkyGradient is a vertical gradient standing in for environment lighting
type SkyGradient struct {
	Top    core.Color // Color seen looking straight up
	Bottom core.Color // Color seen looking straight down
}

// NewSkyGradient creates a new gradient background
func NewSkyGradient(top, bottom core.Color) *SkyGradient {
	return &SkyGradient{Top: top, Bottom: bottom}
}

// DefaultSky returns the white to sky-blue gradient
func DefaultSky() *SkyGradient {
	return NewSkyGradient(core.NewColor(0.5, 0.7, 1.0), core.NewColor(1.0, 1.0, 1.0))
}

// Emit returns the gradient color along the ray direction
func (s *SkyGradient) Emit(rayIn core.Ray) core.Color {
	direction := rayIn.Direction.Normalize()
	a := 0.5 * (direction.Y + 1.0) // Map Y from [-1,1] to [0,1]
	return s.Bottom.Lerp(s.Top, a)
}

// SolidBackground emits the same color in every direction
type SolidBackground struct {
	Color core.Color
}

// NewSolidBackground creates a new uniform background
func NewSolidBackground(color core.Color) *SolidBackground {
	return &SolidBackground{Color: color}
}

// Emit returns the constant background color
func (s *SolidBackground) Emit(rayIn core.Ray) core.Color {
	return s.Color
}
