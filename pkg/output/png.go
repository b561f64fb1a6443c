package output

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// PNGWriter collects pixels into an RGBA image and encodes it on Close
type PNGWriter struct {
	w       io.Writer
	img     *image.RGBA
	counter frameCounter
}

// NewPNGWriter creates a PNG writer over w
func NewPNGWriter(w io.Writer) *PNGWriter {
	return &PNGWriter{w: w}
}

// WriteHeader allocates the image buffer
func (p *PNGWriter) WriteHeader(width, height int) error {
	if err := p.counter.begin(width, height); err != nil {
		return err
	}
	p.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

// WritePixel stores the next pixel in raster order
func (p *PNGWriter) WritePixel(pixelColor core.Color) error {
	index := p.counter.written
	if err := p.counter.advance(); err != nil {
		return err
	}
	r, g, b := ToBytes(pixelColor)
	p.img.SetRGBA(index%p.counter.width, index/p.counter.width, color.RGBA{R: r, G: g, B: b, A: 255})
	return nil
}

// Close encodes the collected frame
func (p *PNGWriter) Close() error {
	if !p.counter.started {
		return nil
	}
	if !p.counter.complete() {
		return ErrIncompleteFrame
	}
	return png.Encode(p.w, p.img)
}
