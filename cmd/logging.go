package cmd

import (
	"github.com/df07/go-sphere-tracer/pkg/log"
	"github.com/urfave/cli"
)

const logModule = "tracer"

var logger = log.New(logModule)

// setupLogging applies --log-level, then -v/-vv, then every --log-module override
func setupLogging(ctx *cli.Context) error {
	level, err := log.ParseLevel(ctx.GlobalString("log-level"))
	if err != nil {
		return err
	}
	if ctx.GlobalBool("v") {
		level = log.Info
	}
	if ctx.GlobalBool("vv") {
		level = log.Debug
	}
	log.SetLevel(level)

	log.ResetModuleLevels()
	for _, override := range ctx.GlobalStringSlice("log-module") {
		module, moduleLevel, err := log.ParseModuleLevel(override)
		if err != nil {
			return err
		}
		log.SetModuleLevel(module, moduleLevel)
	}
	return nil
}
