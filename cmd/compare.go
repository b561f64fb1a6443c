package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

var ErrImagesDiffer = errors.New("images differ")

var compareFlags = []cli.Flag{
	cli.Float64Flag{
		Name:  "threshold, t",
		Value: 0,
		Usage: "largest mean absolute component difference (0-255) still treated as a match",
	},
}

// Compare two PPM frames, e.g. renders of the same scene with different worker counts.
func CompareFrames(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 2 {
		return fmt.Errorf("compare expects two PPM files, got %d arguments", ctx.NArg())
	}
	threshold := ctx.Float64("threshold")
	if threshold < 0 {
		return fmt.Errorf("--threshold must not be negative, got %g", threshold)
	}

	a, err := readPPMFile(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	b, err := readPPMFile(ctx.Args().Get(1))
	if err != nil {
		return err
	}

	mean, err := output.MeanAbsoluteDifference(a, b)
	if err != nil {
		return err
	}

	worstX, worstY, worst := 0, 0, 0
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			pa, pb := a.At(x, y), b.At(x, y)
			for c := 0; c < 3; c++ {
				diff := pa[c] - pb[c]
				if diff < 0 {
					diff = -diff
				}
				if diff > worst {
					worstX, worstY, worst = x, y, diff
				}
			}
		}
	}
	logger.Debugf("largest difference %d at (%d, %d)", worst, worstX, worstY)

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Size", "Mean abs diff", "Max abs diff", "At", "Threshold"})
	table.Append([]string{
		fmt.Sprintf("%dx%d", a.Width, a.Height),
		fmt.Sprintf("%.4f", mean),
		fmt.Sprintf("%d", worst),
		fmt.Sprintf("(%d, %d)", worstX, worstY),
		fmt.Sprintf("%g", threshold),
	})
	table.Render()

	if mean > threshold {
		return fmt.Errorf("%w: mean absolute difference %.4f exceeds %g", ErrImagesDiffer, mean, threshold)
	}
	return nil
}

func readPPMFile(path string) (*output.ImageData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := output.ReadPPM(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}
