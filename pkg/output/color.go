package output

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// intensity is the displayable range before quantization
var intensity = core.NewInterval(0.000, 0.999)

// LinearToGamma applies the gamma 2 transform. Non-positive and NaN components map to 0.
func LinearToGamma(linearComponent float64) float64 {
	if linearComponent > 0 {
		return math.Sqrt(linearComponent)
	}
	return 0
}

// ToBytes converts a linear color into display-referred 8-bit components
func ToBytes(pixelColor core.Color) (r, g, b uint8) {
	return quantize(pixelColor.X), quantize(pixelColor.Y), quantize(pixelColor.Z)
}

// quantize maps a linear component to [0,255] via floor(256 * clamp(gamma(x)))
func quantize(linearComponent float64) uint8 {
	return uint8(256 * intensity.Clamp(LinearToGamma(linearComponent)))
}
