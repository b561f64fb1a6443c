package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

var (
	ErrUnknownFormat   = errors.New("output: unknown image format")
	ErrHeaderRequired  = errors.New("output: header must be written before pixels")
	ErrTooManyPixels   = errors.New("output: more pixels written than the header declared")
	ErrIncompleteFrame = errors.New("output: frame closed before every pixel was written")
)

// Supported output formats
const (
	FormatPPM = "ppm"
	FormatPNG = "png"
)

// FrameWriter receives a rendered frame one pixel at a time in raster order
type FrameWriter interface {
	// WriteHeader declares the frame size and must be called once before any pixel
	WriteHeader(width, height int) error
	// WritePixel emits the next pixel's averaged linear color
	WritePixel(pixelColor core.Color) error
	// Close flushes any buffered output. It does not close the underlying writer.
	Close() error
}

// NewFrameWriter creates a frame writer for the named format
func NewFrameWriter(format string, w io.Writer) (FrameWriter, error) {
	switch strings.ToLower(format) {
	case FormatPPM, "":
		return NewPPMWriter(w), nil
	case FormatPNG:
		return NewPNGWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// FormatFromFilename guesses the output format from a file extension
func FormatFromFilename(filename string) string {
	if strings.HasSuffix(strings.ToLower(filename), ".png") {
		return FormatPNG
	}
	return FormatPPM
}

// frameCounter tracks header state and the number of pixels written
type frameCounter struct {
	width, height int
	written       int
	started       bool
}

func (fc *frameCounter) begin(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("output: invalid frame size %dx%d", width, height)
	}
	fc.width, fc.height = width, height
	fc.written = 0
	fc.started = true
	return nil
}

func (fc *frameCounter) advance() error {
	if !fc.started {
		return ErrHeaderRequired
	}
	if fc.written >= fc.width*fc.height {
		return ErrTooManyPixels
	}
	fc.written++
	return nil
}

func (fc *frameCounter) complete() bool {
	return fc.started && fc.written == fc.width*fc.height
}
