package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
)

// DefaultSeed seeds the random stream when none is set
const DefaultSeed int64 = 42

// PixelSink receives the rendered image one pixel at a time, top row first,
// each row left to right. Colors are linear and not yet gamma corrected.
type PixelSink interface {
	Begin(width, height int) error
	WritePixel(color core.Vec3) error
	End() error
}

// Raytracer handles the rendering process
type Raytracer struct {
	camera     *Camera
	integrator integrator.Integrator
	seed       int64
	logger     core.Logger
}

// NewRaytracer creates a new raytracer, failing if the camera configuration is invalid.
// A nil logger discards progress output.
func NewRaytracer(config CameraConfig, integ integrator.Integrator, logger core.Logger) (*Raytracer, error) {
	camera, err := NewCamera(config)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NopLogger{}
	}
	return &Raytracer{
		camera:     camera,
		integrator: integ,
		seed:       DefaultSeed,
		logger:     logger,
	}, nil
}

// SetSeed sets the seed of the random stream used by subsequent renders
func (rt *Raytracer) SetSeed(seed int64) {
	rt.seed = seed
}

// Camera returns the camera used for rendering
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// Render traces every pixel of the image and streams the averaged colors to sink.
// Each call starts a fresh random stream from the seed, so equal seeds give equal images.
// Cancellation is checked once per scanline.
func (rt *Raytracer) Render(ctx context.Context, world geometry.Hittable, sink PixelSink) (RenderStats, error) {
	startTime := time.Now()
	width, height := rt.camera.ImageWidth(), rt.camera.ImageHeight()
	samplesPerPixel := rt.camera.Config().SamplesPerPixel
	sampler := core.NewSeededSampler(rt.seed)

	stats := RenderStats{
		Width:           width,
		Height:          height,
		SamplesPerPixel: samplesPerPixel,
	}

	if err := sink.Begin(width, height); err != nil {
		return stats, fmt.Errorf("begin image: %w", err)
	}

	for j := 0; j < height; j++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		rt.logger.Printf("Scanlines remaining: %d\n", height-j)

		for i := 0; i < width; i++ {
			pixel := rt.renderPixel(i, j, world, sampler)
			if err := sink.WritePixel(pixel.GetColor()); err != nil {
				return stats, fmt.Errorf("write pixel (%d, %d): %w", i, j, err)
			}
			stats.TotalPixels++
			stats.TotalSamples += pixel.SampleCount
		}
	}

	if err := sink.End(); err != nil {
		return stats, fmt.Errorf("end image: %w", err)
	}

	stats.Duration = time.Since(startTime)
	rt.logger.Printf("Done: %d pixels, %d samples in %v\n", stats.TotalPixels, stats.TotalSamples, stats.Duration)
	return stats, nil
}

// renderPixel accumulates the configured number of independent samples for pixel (i, j)
func (rt *Raytracer) renderPixel(i, j int, world geometry.Hittable, sampler core.Sampler) PixelStats {
	config := rt.camera.Config()

	var pixel PixelStats
	for sample := 0; sample < config.SamplesPerPixel; sample++ {
		ray := rt.camera.GetRay(i, j, sampler)
		pixel.AddSample(rt.integrator.RayColor(ray, world, sampler, config.MaxDepth))
	}
	return pixel
}
