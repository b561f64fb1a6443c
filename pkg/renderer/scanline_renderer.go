package renderer

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
)

// ScanlineRenderer renders whole image rows using an integrator
type ScanlineRenderer struct {
	camera     *Camera
	world      geometry.Hittable
	integrator integrator.Integrator
	samplers   SamplerSource
}

// SamplerSource returns the sampler that drives every random decision of one row
type SamplerSource func(row int) core.Sampler

// SeededSamplers gives each row an independent stream derived from seed
func SeededSamplers(seed int64) SamplerSource {
	return func(row int) core.Sampler {
		return core.NewSeededSampler(seed, row)
	}
}

// NewScanlineRenderer creates a scanline renderer for one render of world
func NewScanlineRenderer(camera *Camera, world geometry.Hittable, integratorInst integrator.Integrator, samplers SamplerSource) *ScanlineRenderer {
	return &ScanlineRenderer{
		camera:     camera,
		world:      world,
		integrator: integratorInst,
		samplers:   samplers,
	}
}

// RenderRow returns the averaged linear color of every pixel in row j, left to right.
// Each row draws from its own sampler, so rows can be rendered in any order.
func (sr *ScanlineRenderer) RenderRow(j int) ([]core.Color, int) {
	width, _ := sr.camera.ImageSize()
	config := sr.camera.Config()
	sampler := sr.samplers(j)

	pixels := make([]core.Color, width)
	samples := 0
	for i := 0; i < width; i++ {
		var ps PixelStats
		sr.samplePixel(i, j, &ps, sampler, config)
		pixels[i] = ps.GetColor()
		samples += ps.SampleCount
	}
	return pixels, samples
}

// samplePixel accumulates SamplesPerPixel primary ray evaluations
func (sr *ScanlineRenderer) samplePixel(i, j int, ps *PixelStats, sampler core.Sampler, config CameraConfig) {
	for ps.SampleCount < config.SamplesPerPixel {
		ray := sr.camera.GetRay(i, j, sampler)
		ps.AddSample(sr.integrator.RayColor(ray, sr.world, config.MaxDepth, sampler))
	}
}
