package output

import (
	"image/color"
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// intensity bounds a gamma-corrected component just below 1 so 256*x fits in a byte
var intensity = core.NewInterval(0.0, 0.999)

// LinearToGamma applies gamma 2 to a linear color component. Non-positive input maps to 0.
func LinearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// Channel converts a linear color component to an 8-bit display value
func Channel(linear float64) uint8 {
	return uint8(256 * intensity.Clamp(LinearToGamma(linear)))
}

// ToRGBA converts a linear color to an opaque display color
func ToRGBA(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: Channel(c.X),
		G: Channel(c.Y),
		B: Channel(c.Z),
		A: 255,
	}
}
