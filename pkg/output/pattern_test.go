package output

import (
	"bytes"
	"testing"
)

func TestWriteTestPattern(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTestPattern(NewPPMWriter(&buf), 3, 2); err != nil {
		t.Fatalf("WriteTestPattern failed: %v", err)
	}

	img, err := ReadPPM(&buf)
	if err != nil {
		t.Fatalf("ReadPPM failed: %v", err)
	}

	// Red ramps 0, 0.5, 1 across; green ramps 0, 1 down
	expected := [][3]int{
		{0, 0, 0}, {181, 0, 0}, {255, 0, 0},
		{0, 255, 0}, {181, 255, 0}, {255, 255, 0},
	}
	for i, want := range expected {
		if img.Pixels[i] != want {
			t.Errorf("Pixel %d: expected %v, got %v", i, want, img.Pixels[i])
		}
	}
}

func TestWriteTestPattern_SinglePixel(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTestPattern(NewPPMWriter(&buf), 1, 1); err != nil {
		t.Fatalf("WriteTestPattern failed: %v", err)
	}
	if buf.String() != "P3\n1 1\n255\n0 0 0\n" {
		t.Errorf("Unexpected single pixel pattern %q", buf.String())
	}
}
