package output

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// failingWriter rejects every write
type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errDiskFull
}

func TestPPMWriter_Format(t *testing.T) {
	var buf bytes.Buffer
	w := NewPPMWriter(&buf)

	if err := w.WriteHeader(2, 1); err != nil {
		t.Fatalf("WriteHeader failed: %v", err)
	}
	if err := w.WritePixel(core.NewColor(1.0, 0.0, 0.25)); err != nil {
		t.Fatalf("WritePixel failed: %v", err)
	}
	if err := w.WritePixel(core.NewColor(0, 0, 0)); err != nil {
		t.Fatalf("WritePixel failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	expected := "P3\n2 1\n255\n255 0 128\n0 0 0\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestPPMWriter_Errors(t *testing.T) {
	t.Run("pixel before header", func(t *testing.T) {
		w := NewPPMWriter(&bytes.Buffer{})
		if err := w.WritePixel(core.Color{}); !errors.Is(err, ErrHeaderRequired) {
			t.Errorf("Expected ErrHeaderRequired, got %v", err)
		}
	})

	t.Run("too many pixels", func(t *testing.T) {
		w := NewPPMWriter(&bytes.Buffer{})
		_ = w.WriteHeader(1, 1)
		_ = w.WritePixel(core.Color{})
		if err := w.WritePixel(core.Color{}); !errors.Is(err, ErrTooManyPixels) {
			t.Errorf("Expected ErrTooManyPixels, got %v", err)
		}
	})

	t.Run("incomplete frame", func(t *testing.T) {
		w := NewPPMWriter(&bytes.Buffer{})
		_ = w.WriteHeader(2, 2)
		_ = w.WritePixel(core.Color{})
		if err := w.Close(); !errors.Is(err, ErrIncompleteFrame) {
			t.Errorf("Expected ErrIncompleteFrame, got %v", err)
		}
	})

	t.Run("invalid size", func(t *testing.T) {
		w := NewPPMWriter(&bytes.Buffer{})
		if err := w.WriteHeader(0, 5); err == nil {
			t.Error("Expected error for zero width")
		}
	})

	t.Run("io failure propagates", func(t *testing.T) {
		w := NewPPMWriter(failingWriter{})
		_ = w.WriteHeader(1, 1)
		_ = w.WritePixel(core.Color{})
		if err := w.Close(); !errors.Is(err, errDiskFull) {
			t.Errorf("Expected the write error to propagate, got %v", err)
		}
	})
}

func TestReadPPM_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewPPMWriter(&buf)
	colors := []core.Color{
		core.NewColor(1.0, 0.0, 0.25),
		core.NewColor(0.5, 0.5, 0.5),
		core.NewColor(0, 1, 0),
		core.NewColor(0.01, 0.04, 0.09),
	}
	_ = w.WriteHeader(2, 2)
	for _, c := range colors {
		_ = w.WritePixel(c)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	img, err := ReadPPM(&buf)
	if err != nil {
		t.Fatalf("ReadPPM failed: %v", err)
	}
	if img.Width != 2 || img.Height != 2 || img.MaxValue != 255 {
		t.Fatalf("Unexpected header %dx%d max %d", img.Width, img.Height, img.MaxValue)
	}

	for i, c := range colors {
		r, g, b := ToBytes(c)
		got := img.At(i%2, i/2)
		if got != [3]int{int(r), int(g), int(b)} {
			t.Errorf("Pixel %d: expected (%d, %d, %d), got %v", i, r, g, b, got)
		}
	}

	diff, err := MeanAbsoluteDifference(img, img)
	if err != nil || diff != 0 {
		t.Errorf("Image should not differ from itself: diff=%f err=%v", diff, err)
	}
}

func TestReadPPM_Malformed(t *testing.T) {
	inputs := map[string]string{
		"wrong magic":  "P6\n1 1\n255\n0 0 0\n",
		"truncated":    "P3\n2 1\n255\n0 0 0\n",
		"out of range": "P3\n1 1\n255\n0 300 0\n",
		"non-numeric":  "P3\n1 x\n255\n",
		"zero width":   "P3\n0 1\n255\n",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadPPM(strings.NewReader(input)); !errors.Is(err, ErrMalformedPPM) {
				t.Errorf("Expected ErrMalformedPPM, got %v", err)
			}
		})
	}
}

func TestPNGWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewFrameWriter("PNG", &buf)
	if err != nil {
		t.Fatalf("NewFrameWriter failed: %v", err)
	}

	_ = w.WriteHeader(2, 1)
	_ = w.WritePixel(core.NewColor(1.0, 0.0, 0.25))
	_ = w.WritePixel(core.NewColor(0, 0, 0))
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Output is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Fatalf("Unexpected bounds %v", img.Bounds())
	}

	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 128 {
		t.Errorf("Expected (255, 0, 128), got (%d, %d, %d)", r>>8, g>>8, b>>8)
	}
}

func TestNewFrameWriter_UnknownFormat(t *testing.T) {
	if _, err := NewFrameWriter("exr", &bytes.Buffer{}); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestFormatFromFilename(t *testing.T) {
	tests := map[string]string{
		"render.png": FormatPNG,
		"RENDER.PNG": FormatPNG,
		"render.ppm": FormatPPM,
		"-":          FormatPPM,
	}
	for filename, expected := range tests {
		if got := FormatFromFilename(filename); got != expected {
			t.Errorf("FormatFromFilename(%q) = %q, expected %q", filename, got, expected)
		}
	}
}
