package renderer

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/log"
	"github.com/df07/go-sphere-tracer/pkg/output"
)

// RenderConfig controls how a render is scheduled
type RenderConfig struct {
	Workers int   // Number of parallel scanline workers (0 = use CPU count)
	Seed    int64 // Base seed; each scanline derives its own sampler stream
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Workers: 0,
		Seed:    42,
	}
}

// Raytracer drives the render loop: it traces every pixel through the integrator
// and streams the result to a frame writer in raster order
type Raytracer struct {
	camera     *Camera
	integrator integrator.Integrator
	logger     core.Logger
	config     RenderConfig
	samplers   SamplerSource // Overrides the seeded per-row samplers when set
}

// NewRaytracer creates a new raytracer. A nil logger logs under the "renderer" module.
func NewRaytracer(camera *Camera, integratorInst integrator.Integrator, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = log.New("renderer")
	}
	return &Raytracer{
		camera:     camera,
		integrator: integratorInst,
		logger:     logger,
		config:     DefaultRenderConfig(),
	}
}

// SetRenderConfig updates the scheduling configuration
func (rt *Raytracer) SetRenderConfig(config RenderConfig) {
	rt.config = config
}

// Render traces world and writes the frame to out, top row first and left to right.
// Output is identical for any worker count. out is closed after the last pixel.
// Cancelling ctx aborts the render with ErrInterrupted; write errors abort it as well.
func (rt *Raytracer) Render(ctx context.Context, world geometry.Hittable, out output.FrameWriter) (RenderStats, error) {
	rt.camera.Initialize()
	width, height := rt.camera.ImageSize()

	stats := RenderStats{
		Width:       width,
		Height:      height,
		TotalPixels: width * height,
		Workers:     rt.workerCount(height),
	}
	start := time.Now()

	if err := out.WriteHeader(width, height); err != nil {
		return stats, fmt.Errorf("writing header: %w", err)
	}

	samplers := rt.samplers
	if samplers == nil {
		samplers = SeededSamplers(rt.config.Seed)
	}
	scanlines := NewScanlineRenderer(rt.camera, world, rt.integrator, samplers)

	var err error
	if stats.Workers == 1 {
		err = rt.renderSequential(ctx, scanlines, out, &stats)
	} else {
		err = rt.renderParallel(ctx, scanlines, out, &stats)
	}
	if err != nil {
		return stats, err
	}

	if err := out.Close(); err != nil {
		return stats, fmt.Errorf("closing frame: %w", err)
	}
	stats.Elapsed = time.Since(start)
	rt.logger.Infof("done")
	return stats, nil
}

func (rt *Raytracer) workerCount(height int) int {
	workers := rt.config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return min(workers, height)
}

// renderSequential renders and emits rows inline on the calling goroutine
func (rt *Raytracer) renderSequential(ctx context.Context, scanlines *ScanlineRenderer, out output.FrameWriter, stats *RenderStats) error {
	_, height := rt.camera.ImageSize()

	for j := 0; j < height; j++ {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %d of %d scanlines written", ErrInterrupted, j, height)
		}
		rt.logger.Infof("%d scanlines remaining", height-j)

		pixels, samples := scanlines.RenderRow(j)
		stats.TotalSamples += samples
		if err := emitRow(out, j, pixels); err != nil {
			return err
		}
	}
	return nil
}

// renderParallel fans rows out to a worker pool and re-imposes raster order on the way out
func (rt *Raytracer) renderParallel(ctx context.Context, scanlines *ScanlineRenderer, out output.FrameWriter, stats *RenderStats) error {
	_, height := rt.camera.ImageSize()

	renderCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := NewWorkerPool(scanlines, height, stats.Workers)
	for j := 0; j < height; j++ {
		pool.SubmitTask(ScanlineTask{Row: j})
	}
	pool.Start(renderCtx)
	go pool.Stop()

	rt.logger.Debugf("rendering %d scanlines with %d workers", height, pool.GetNumWorkers())

	reorder := newReorderBuffer()
	var writeErr error
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if writeErr != nil {
			continue // drain
		}

		for _, row := range reorder.push(result) {
			rt.logger.Infof("%d scanlines remaining", height-row.Row)
			stats.TotalSamples += row.Samples
			if err := emitRow(out, row.Row, row.Pixels); err != nil {
				writeErr = err
				cancel()
				break
			}
		}
	}

	if writeErr != nil {
		return writeErr
	}
	if reorder.next < height {
		return fmt.Errorf("%w: %d of %d scanlines written", ErrInterrupted, reorder.next, height)
	}
	return nil
}

func emitRow(out output.FrameWriter, row int, pixels []core.Color) error {
	for i, pixel := range pixels {
		if err := out.WritePixel(pixel); err != nil {
			return fmt.Errorf("writing pixel (%d, %d): %w", i, row, err)
		}
	}
	return nil
}
