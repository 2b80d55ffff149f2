package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// ErrInvalidCameraConfig is wrapped by every camera configuration error
var ErrInvalidCameraConfig = errors.New("invalid camera config")

// CameraConfig contains the camera and sampling parameters for one render
type CameraConfig struct {
	AspectRatio     float64   // Ratio of image width over height
	ImageWidth      int       // Rendered image width in pixels
	SamplesPerPixel int       // Number of rays per pixel
	MaxDepth        int       // Maximum ray bounce depth
	VFov            float64   // Vertical field of view in degrees
	LookFrom        core.Vec3 // Camera position
	LookAt          core.Vec3 // Point the camera looks at
	VUp             core.Vec3 // Camera-relative "up" direction
	DefocusAngle    float64   // Variation angle of rays through each pixel in degrees, 0 disables depth of field
	FocusDist       float64   // Distance from LookFrom to the plane of perfect focus
}

// DefaultCameraConfig returns the camera looking down -z from the origin
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:     1.0,
		ImageWidth:      100,
		SamplesPerPixel: 10,
		MaxDepth:        10,
		VFov:            90,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		VUp:             core.NewVec3(0, 1, 0),
		DefocusAngle:    0,
		FocusDist:       10,
	}
}

// ImageHeight returns the image height implied by the width and aspect ratio, never below 1
func (c CameraConfig) ImageHeight() int {
	return max(1, int(math.Round(float64(c.ImageWidth)/c.AspectRatio)))
}

// Validate reports the first configuration problem that would make the camera undefined
func (c CameraConfig) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidCameraConfig, fmt.Sprintf(format, args...))
	}

	switch {
	case !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0):
		return invalid("aspect ratio must be positive, got %v", c.AspectRatio)
	case c.ImageWidth <= 0:
		return invalid("image width must be positive, got %d", c.ImageWidth)
	case c.SamplesPerPixel <= 0:
		return invalid("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return invalid("max depth must not be negative, got %d", c.MaxDepth)
	case !(c.VFov > 0 && c.VFov < 180):
		return invalid("vertical field of view must be in (0, 180) degrees, got %v", c.VFov)
	case !(c.DefocusAngle >= 0 && c.DefocusAngle < 180):
		return invalid("defocus angle must be in [0, 180) degrees, got %v", c.DefocusAngle)
	case !(c.FocusDist > 0) || math.IsInf(c.FocusDist, 0):
		return invalid("focus distance must be positive, got %v", c.FocusDist)
	}

	viewDir := c.LookFrom.Subtract(c.LookAt)
	if viewDir.LengthSquared() == 0 {
		return invalid("look-from and look-at are the same point %v", c.LookFrom)
	}
	if c.VUp.Cross(viewDir).Length() <= 1e-9*c.VUp.Length()*viewDir.Length() {
		return invalid("up vector %v is parallel to the view direction", c.VUp)
	}
	return nil
}

// Camera generates rays for rendering. All fields are derived once from the
// configuration and are read-only afterwards.
type Camera struct {
	config      CameraConfig
	imageHeight int

	center      core.Vec3 // Camera center
	pixel00     core.Vec3 // Location of pixel (0, 0) center
	pixelDeltaU core.Vec3 // Offset to pixel to the right
	pixelDeltaV core.Vec3 // Offset to pixel below

	u, v, w core.Vec3 // Camera frame basis vectors

	defocusDiskU core.Vec3 // Defocus disk horizontal radius
	defocusDiskV core.Vec3 // Defocus disk vertical radius
}

// NewCamera validates the configuration and derives the viewport geometry
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Camera{
		config:      config,
		imageHeight: config.ImageHeight(),
		center:      config.LookFrom,
	}

	theta := degreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * config.FocusDist
	// Use the real ratio: the height was rounded to whole pixels
	viewportWidth := viewportHeight * (float64(config.ImageWidth) / float64(c.imageHeight))

	c.w = config.LookFrom.Subtract(config.LookAt).Normalize()
	c.u = config.VUp.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)

	viewportU := c.u.Multiply(viewportWidth)           // Across the horizontal edge
	viewportV := c.v.Negate().Multiply(viewportHeight) // Down the vertical edge

	c.pixelDeltaU = viewportU.Divide(float64(config.ImageWidth))
	c.pixelDeltaV = viewportV.Divide(float64(c.imageHeight))

	viewportUpperLeft := c.center.
		Subtract(c.w.Multiply(config.FocusDist)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	c.pixel00 = viewportUpperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Multiply(0.5))

	defocusRadius := config.FocusDist * math.Tan(degreesToRadians(config.DefocusAngle/2))
	c.defocusDiskU = c.u.Multiply(defocusRadius)
	c.defocusDiskV = c.v.Multiply(defocusRadius)

	return c, nil
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// ImageWidth returns the image width in pixels
func (c *Camera) ImageWidth() int {
	return c.config.ImageWidth
}

// ImageHeight returns the image height in pixels
func (c *Camera) ImageHeight() int {
	return c.imageHeight
}

// Center returns the camera position
func (c *Camera) Center() core.Vec3 {
	return c.center
}

// Basis returns the orthonormal camera frame: u points right, v up, w backwards
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

// PixelCenter returns the point on the focus plane at the center of pixel (i, j)
func (c *Camera) PixelCenter(i, j int) core.Vec3 {
	return c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i))).
		Add(c.pixelDeltaV.Multiply(float64(j)))
}

// GetRay returns a ray toward a random point inside pixel (i, j), where i is the
// column and j the row. With depth of field enabled the origin lies on the defocus disk.
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := core.SampleSquare(sampler)
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		origin = c.defocusDiskSample(sampler)
	}

	return core.NewRay(origin, pixelSample.Subtract(origin))
}

// defocusDiskSample returns a random point on the camera defocus disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
