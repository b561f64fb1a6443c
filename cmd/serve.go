package cmd

import (
	"github.com/df07/go-sphere-tracer/web/server"
	"github.com/urfave/cli"
)

var serveFlags = []cli.Flag{
	cli.IntFlag{
		Name:   "port, p",
		Value:  8080,
		Usage:  "port to listen on",
		EnvVar: "TRACER_PORT",
	},
}

// Serve scene previews over HTTP.
func ServeScenes(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	return server.NewServer(ctx.Int("port")).Start()
}
