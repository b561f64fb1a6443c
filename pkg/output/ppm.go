package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// PPMWriter streams an ASCII "P3" image, one "r g b" line per pixel
type PPMWriter struct {
	w       *bufio.Writer
	counter frameCounter
}

// NewPPMWriter creates a PPM writer over w
func NewPPMWriter(w io.Writer) *PPMWriter {
	return &PPMWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the P3 magic, the dimensions and the max value
func (p *PPMWriter) WriteHeader(width, height int) error {
	if err := p.counter.begin(width, height); err != nil {
		return err
	}
	_, err := fmt.Fprintf(p.w, "P3\n%d %d\n255\n", width, height)
	return err
}

// WritePixel writes one quantized color triple
func (p *PPMWriter) WritePixel(pixelColor core.Color) error {
	if err := p.counter.advance(); err != nil {
		return err
	}
	r, g, b := ToBytes(pixelColor)
	_, err := fmt.Fprintf(p.w, "%d %d %d\n", r, g, b)
	return err
}

// Close flushes buffered output
func (p *PPMWriter) Close() error {
	if err := p.w.Flush(); err != nil {
		return err
	}
	if p.counter.started && !p.counter.complete() {
		return ErrIncompleteFrame
	}
	return nil
}
