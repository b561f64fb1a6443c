package output

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
)

// WriteTestPattern writes a frame whose red channel ramps left to right and whose
// green channel ramps top to bottom, then closes the writer
func WriteTestPattern(w FrameWriter, width, height int) error {
	if err := w.WriteHeader(width, height); err != nil {
		return err
	}

	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			pixel := core.NewColor(ramp(i, width), ramp(j, height), 0)
			if err := w.WritePixel(pixel); err != nil {
				return err
			}
		}
	}
	return w.Close()
}

// ramp maps index 0..n-1 onto [0, 1]
func ramp(index, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(index) / float64(n-1)
}
