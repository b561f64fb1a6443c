package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/log"
	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

var renderFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "scene, s",
		Value:  scene.DefaultSceneID,
		Usage:  "built-in scene to render (see the scenes command)",
		EnvVar: "TRACER_SCENE",
	},
	cli.IntFlag{
		Name:   "width",
		Usage:  "image width in pixels",
		EnvVar: "TRACER_WIDTH",
	},
	cli.Float64Flag{
		Name:   "aspect",
		Usage:  "image aspect ratio (width over height)",
		EnvVar: "TRACER_ASPECT",
	},
	cli.IntFlag{
		Name:   "spp",
		Usage:  "samples per pixel",
		EnvVar: "TRACER_SPP",
	},
	cli.IntFlag{
		Name:   "depth",
		Usage:  "maximum number of ray bounces",
		EnvVar: "TRACER_DEPTH",
	},
	cli.Float64Flag{
		Name:   "vfov",
		Usage:  "vertical field of view in degrees",
		EnvVar: "TRACER_VFOV",
	},
	cli.Float64Flag{
		Name:   "defocus-angle",
		Usage:  "defocus cone angle in degrees (0 for a pinhole camera)",
		EnvVar: "TRACER_DEFOCUS_ANGLE",
	},
	cli.Float64Flag{
		Name:   "focus-dist",
		Usage:  "distance to the plane of perfect focus",
		EnvVar: "TRACER_FOCUS_DIST",
	},
	cli.IntFlag{
		Name:   "workers",
		Usage:  "parallel scanline workers (0 uses every CPU)",
		EnvVar: "TRACER_WORKERS",
	},
	cli.Int64Flag{
		Name:   "seed",
		Value:  renderer.DefaultRenderConfig().Seed,
		Usage:  "base random seed",
		EnvVar: "TRACER_SEED",
	},
	cli.StringFlag{
		Name:   "integrator",
		Value:  integrator.PathTracing,
		Usage:  "light transport: path or normals",
		EnvVar: "TRACER_INTEGRATOR",
	},
	cli.StringFlag{
		Name:   "format",
		Usage:  "output format (ppm or png); guessed from --out when empty",
		EnvVar: "TRACER_FORMAT",
	},
	cli.StringFlag{
		Name:   "out, o",
		Value:  "-",
		Usage:  "image filename, or - for stdout",
		EnvVar: "TRACER_OUT",
	},
}

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	sc, err := scene.Lookup(ctx.String("scene"))
	if err != nil {
		return err
	}

	cameraConfig, err := applyCameraFlags(ctx, sc.Camera)
	if err != nil {
		return err
	}
	camera, err := renderer.NewCamera(cameraConfig)
	if err != nil {
		return err
	}
	u, v, w := camera.Basis()
	logger.Debugf("camera basis u=%v v=%v w=%v", u, v, w)

	integratorInst, err := integrator.New(ctx.String("integrator"), sc.Background)
	if err != nil {
		return err
	}

	sink, closeSink, err := openOutput(ctx.String("out"), ctx.App.Writer)
	if err != nil {
		return err
	}
	defer closeSink()

	frame, err := output.NewFrameWriter(outputFormat(ctx), sink)
	if err != nil {
		return err
	}

	rt := renderer.NewRaytracer(camera, integratorInst, logger)
	rt.SetRenderConfig(renderer.RenderConfig{
		Workers: ctx.Int("workers"),
		Seed:    ctx.Int64("seed"),
	})

	width, height := camera.ImageSize()
	logger.Noticef("rendering scene %q at %dx%d, %d spp", sc.Name, width, height, camera.Config().SamplesPerPixel)

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stats, err := rt.Render(renderCtx, sc.World, frame)
	if err != nil {
		return err
	}

	displayFrameStats(stats)
	return nil
}

// applyCameraFlags overrides the scene camera with every explicitly set flag.
// Zero means "use the default" in a camera config, so explicit zeros are rejected
// for every option except the defocus angle.
func applyCameraFlags(ctx *cli.Context, config renderer.CameraConfig) (renderer.CameraConfig, error) {
	ints := []struct {
		flag  string
		value *int
	}{
		{"width", &config.ImageWidth},
		{"spp", &config.SamplesPerPixel},
		{"depth", &config.MaxDepth},
	}
	for _, f := range ints {
		if !ctx.IsSet(f.flag) {
			continue
		}
		v := ctx.Int(f.flag)
		if v <= 0 {
			return config, fmt.Errorf("%w: --%s must be positive, got %d", renderer.ErrInvalidCamera, f.flag, v)
		}
		*f.value = v
	}

	floats := []struct {
		flag  string
		value *float64
	}{
		{"aspect", &config.AspectRatio},
		{"vfov", &config.VFov},
		{"focus-dist", &config.FocusDist},
	}
	for _, f := range floats {
		if !ctx.IsSet(f.flag) {
			continue
		}
		v := ctx.Float64(f.flag)
		if v <= 0 {
			return config, fmt.Errorf("%w: --%s must be positive, got %g", renderer.ErrInvalidCamera, f.flag, v)
		}
		*f.value = v
	}

	if ctx.IsSet("defocus-angle") {
		config.DefocusAngle = ctx.Float64("defocus-angle")
	}
	return config, nil
}

func outputFormat(ctx *cli.Context) string {
	if format := ctx.String("format"); format != "" {
		return format
	}
	return output.FormatFromFilename(ctx.String("out"))
}

// openOutput opens the named file, or returns stdout for "-"
func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "-" || path == "" {
		return stdout, func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			logger.Errorf("closing %s: %v", path, err)
		}
	}, nil
}

// Write a horizontal red and vertical green ramp.
func WriteGradient(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	sink, closeSink, err := openOutput(ctx.String("out"), ctx.App.Writer)
	if err != nil {
		return err
	}
	defer closeSink()

	frame, err := output.NewFrameWriter(outputFormat(ctx), sink)
	if err != nil {
		return err
	}

	return output.WriteTestPattern(frame, ctx.Int("width"), ctx.Int("height"))
}

func displayFrameStats(stats renderer.RenderStats) {
	if !log.Enabled(logModule, log.Notice) {
		return
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Size", "Pixels", "Samples", "Workers", "Samples/s", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		fmt.Sprintf("%d", stats.TotalPixels),
		fmt.Sprintf("%d", stats.TotalSamples),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%.0f", stats.SamplesPerSecond()),
		stats.Elapsed.String(),
	})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
