package cmd

import (
	"github.com/df07/go-sphere-tracer/pkg/log"
	"github.com/urfave/cli"
)

// NewApp assembles the command line application
func NewApp() *cli.App {
	// The default "version, v" flag would shadow the global -v verbosity flag
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "tracer"
	app.Usage = "render sphere scenes using Monte Carlo path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:   "log-level",
			Value:  log.Notice.String(),
			Usage:  "default log level: debug, info, notice, warning or error",
			EnvVar: "TRACER_LOG_LEVEL",
		},
		cli.StringSliceFlag{
			Name:  "log-module",
			Usage: "per-module log level as module=level (e.g. renderer=info); repeatable",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a built-in scene",
			Description: `
Trace a built-in scene and write the frame as an ASCII PPM (P3) or PNG image.

The scene supplies a recommended camera; any camera flag given explicitly (or
through its environment variable) overrides the scene's value. Rendering is
deterministic for a given seed regardless of the number of workers.`,
			Flags:  renderFlags,
			Action: RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list the built-in scenes",
			Action: ListScenes,
		},
		{
			Name:  "gradient",
			Usage: "write a test gradient image to check the output pipeline",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 256,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 256,
					Usage: "frame height",
				},
				cli.StringFlag{
					Name:  "format",
					Usage: "output format (ppm or png); guessed from --out when empty",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "-",
					Usage: "image filename, or - for stdout",
				},
			},
			Action: WriteGradient,
		},
		{
			Name:      "compare",
			Usage:     "compare two PPM frames",
			ArgsUsage: "<a.ppm> <b.ppm>",
			Description: `
Report the mean and largest absolute component difference between two frames of
equal size. Exits with an error when the mean exceeds --threshold.`,
			Flags:  compareFlags,
			Action: CompareFrames,
		},
		{
			Name:  "serve",
			Usage: "serve scene previews over HTTP",
			Description: `
Start a web server exposing the scene catalog (/api/scenes), single frame
renders (/api/image), renders streamed as server-sent events with progress
(/api/render) and per-pixel object inspection (/api/inspect).`,
			Flags:  serveFlags,
			Action: ServeScenes,
		},
	}

	return app
}
