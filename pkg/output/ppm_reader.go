package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var ErrMalformedPPM = errors.New("output: malformed P3 image")

// ImageData is a decoded 8-bit image in raster order
type ImageData struct {
	Width    int
	Height   int
	MaxValue int
	Pixels   [][3]int
}

// ReadPPM decodes an ASCII "P3" image as written by PPMWriter
func ReadPPM(r io.Reader) (*ImageData, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	nextToken := func() (string, error) {
		if scanner.Scan() {
			return scanner.Text(), nil
		}
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	nextInt := func(what string) (int, error) {
		token, err := nextToken()
		if err != nil {
			return 0, fmt.Errorf("%w: reading %s: %v", ErrMalformedPPM, what, err)
		}
		value, err := strconv.Atoi(token)
		if err != nil {
			return 0, fmt.Errorf("%w: %s %q is not an integer", ErrMalformedPPM, what, token)
		}
		return value, nil
	}

	magic, err := nextToken()
	if err != nil || magic != "P3" {
		return nil, fmt.Errorf("%w: missing P3 magic", ErrMalformedPPM)
	}

	img := &ImageData{}
	if img.Width, err = nextInt("width"); err != nil {
		return nil, err
	}
	if img.Height, err = nextInt("height"); err != nil {
		return nil, err
	}
	if img.MaxValue, err = nextInt("max value"); err != nil {
		return nil, err
	}
	if img.Width <= 0 || img.Height <= 0 || img.MaxValue <= 0 {
		return nil, fmt.Errorf("%w: invalid header %d %d %d", ErrMalformedPPM, img.Width, img.Height, img.MaxValue)
	}

	img.Pixels = make([][3]int, img.Width*img.Height)
	for i := range img.Pixels {
		for c := 0; c < 3; c++ {
			value, err := nextInt("component")
			if err != nil {
				return nil, fmt.Errorf("pixel %d: %w", i, err)
			}
			if value < 0 || value > img.MaxValue {
				return nil, fmt.Errorf("%w: pixel %d component %d out of range", ErrMalformedPPM, i, value)
			}
			img.Pixels[i][c] = value
		}
	}

	return img, nil
}

// At returns the pixel at column x, row y
func (img *ImageData) At(x, y int) [3]int {
	return img.Pixels[y*img.Width+x]
}

// MeanAbsoluteDifference compares two images of equal size component-wise
func MeanAbsoluteDifference(a, b *ImageData) (float64, error) {
	if a.Width != b.Width || a.Height != b.Height {
		return 0, fmt.Errorf("output: image sizes differ: %dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height)
	}

	total := 0
	for i := range a.Pixels {
		for c := 0; c < 3; c++ {
			diff := a.Pixels[i][c] - b.Pixels[i][c]
			if diff < 0 {
				diff = -diff
			}
			total += diff
		}
	}
	return float64(total) / float64(len(a.Pixels)*3), nil
}
