package output

import (
	"errors"
	"fmt"
	"image"

	"github.com/fogleman/gg"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// ImageSink collects pixels into an in-memory RGBA image
type ImageSink struct {
	img  *image.RGBA
	x, y int
}

// NewImageSink creates an empty image sink
func NewImageSink() *ImageSink {
	return &ImageSink{}
}

// Begin allocates the image
func (s *ImageSink) Begin(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.x, s.y = 0, 0
	return nil
}

// WritePixel stores the next pixel in row-major order
func (s *ImageSink) WritePixel(c core.Vec3) error {
	if s.img == nil {
		return errors.New("image sink not started")
	}
	bounds := s.img.Bounds()
	if s.y >= bounds.Dy() {
		return errors.New("more pixels than the image holds")
	}

	s.img.SetRGBA(s.x, s.y, ToRGBA(c))
	s.x++
	if s.x == bounds.Dx() {
		s.x = 0
		s.y++
	}
	return nil
}

// End checks the image is complete
func (s *ImageSink) End() error {
	if s.img == nil || s.y != s.img.Bounds().Dy() {
		return errors.New("image incomplete")
	}
	return nil
}

// Image returns the collected image
func (s *ImageSink) Image() *image.RGBA {
	return s.img
}

// SavePNG writes the image to path as a PNG
func SavePNG(path string, img image.Image) error {
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("save png %s: %w", path, err)
	}
	return nil
}
