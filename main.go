package main

import (
	"os"

	"github.com/df07/go-sphere-tracer/cmd"
	"github.com/df07/go-sphere-tracer/pkg/log"
)

func main() {
	if err := cmd.NewApp().Run(os.Args); err != nil {
		log.New("tracer").Errorf("%v", err)
		os.Exit(1)
	}
}
