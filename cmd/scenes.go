package cmd

import (
	"fmt"

	"github.com/df07/go-sphere-tracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List the built-in scenes with their recommended camera settings.
func ListScenes(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Name", "Description", "Objects", "Size", "SPP"})
	for _, info := range scene.List() {
		table.Append([]string{
			info.ID,
			info.DisplayName,
			info.Description,
			fmt.Sprintf("%d", info.Objects),
			fmt.Sprintf("%dx%d", info.Width, info.Height),
			fmt.Sprintf("%d", info.Samples),
		})
	}
	table.Render()

	return nil
}
