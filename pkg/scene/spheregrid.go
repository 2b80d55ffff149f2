package scene

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to linear RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS, then cube
	lc := l + 0.3963377774*a + 0.2158037573*b
	mc := l - 0.1055613458*a - 0.0638541728*b
	sc := l - 0.0894841775*a - 1.2914855480*b
	lc, mc, sc = lc*lc*lc, mc*mc*mc, sc*sc*sc

	r := +4.0767416621*lc - 3.3077115913*mc + 0.2309699292*sc
	g := -1.2684380046*lc + 2.6097574011*mc - 0.3413193965*sc
	blue := -0.0041960863*lc - 0.7034186147*mc + 1.7076147010*sc

	unit := core.NewInterval(0, 1)
	return core.NewVec3(unit.Clamp(r), unit.Clamp(g), unit.Clamp(blue))
}

// sphereGridSize is the number of spheres along each side of the grid
const sphereGridSize = 10

// NewSphereGridScene creates a grid of colored spheres on a large ground sphere.
// Hue varies along x and chroma along z; every third sphere is glass, the rest
// alternate between metal of varying roughness and diffuse.
func NewSphereGridScene() (*Scene, error) {
	s := NewScene("spheregrid")
	s.CameraConfig.AspectRatio = 16.0 / 9.0
	s.CameraConfig.ImageWidth = 800
	s.CameraConfig.SamplesPerPixel = 100
	s.CameraConfig.MaxDepth = 40
	s.CameraConfig.VFov = 40
	s.CameraConfig.LookFrom = core.NewVec3(4.5, 6, 18)
	s.CameraConfig.LookAt = core.NewVec3(4.5, 0.8, 4.5)
	s.CameraConfig.VUp = core.NewVec3(0, 1, 0)
	s.CameraConfig.DefocusAngle = 0.6
	s.CameraConfig.FocusDist = s.CameraConfig.LookFrom.Subtract(s.CameraConfig.LookAt).Length()

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	if err := s.AddSphere(core.NewVec3(4.5, -1000, 4.5), 1000, ground); err != nil {
		return nil, err
	}

	glass, err := material.NewDielectric(1.5)
	if err != nil {
		return nil, err
	}

	// Fit the grid into a 9x9 area centered on the look-at point
	targetArea := 9.0
	spacing := targetArea / float64(sphereGridSize-1)
	radius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	baseLightness := 0.65
	minChroma, maxChroma := 0.05, 0.25

	for i := 0; i < sphereGridSize; i++ {
		for j := 0; j < sphereGridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5
			center := core.NewVec3(x, radius, z)

			hue := (float64(i) / float64(sphereGridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(sphereGridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			var mat material.Material
			switch {
			case (i+j)%3 == 0:
				mat = glass
			case (i+j)%2 == 0:
				roughness := 0.05 + 0.1*float64((i+j)%3)/2.0
				mat = material.NewMetal(color, roughness)
			default:
				mat = material.NewLambertian(color)
			}

			if err := s.AddSphere(center, radius, mat); err != nil {
				return nil, err
			}
		}
	}

	return s, nil
}
