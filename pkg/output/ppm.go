package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// PPMWriter streams pixels as a plain-text P3 image
type PPMWriter struct {
	w       *bufio.Writer
	width   int
	height  int
	written int
}

// NewPPMWriter creates a P3 writer on top of w
func NewPPMWriter(w io.Writer) *PPMWriter {
	return &PPMWriter{w: bufio.NewWriter(w)}
}

// Begin writes the P3 header
func (p *PPMWriter) Begin(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	p.width, p.height, p.written = width, height, 0
	_, err := fmt.Fprintf(p.w, "P3\n%d %d\n255\n", width, height)
	return err
}

// WritePixel writes one "r g b" line
func (p *PPMWriter) WritePixel(c core.Vec3) error {
	if p.written >= p.width*p.height {
		return errors.New("more pixels than the image holds")
	}
	p.written++
	_, err := fmt.Fprintf(p.w, "%d %d %d\n", Channel(c.X), Channel(c.Y), Channel(c.Z))
	return err
}

// End flushes buffered output after checking the image is complete
func (p *PPMWriter) End() error {
	if p.written != p.width*p.height {
		return fmt.Errorf("image incomplete: wrote %d of %d pixels", p.written, p.width*p.height)
	}
	return p.w.Flush()
}
