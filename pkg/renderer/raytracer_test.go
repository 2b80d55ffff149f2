package renderer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// recordingSink keeps every pixel it receives
type recordingSink struct {
	width, height int
	pixels        []core.Vec3
	ended         bool
	failAfter     int // fail WritePixel once this many pixels are written, 0 = never
}

func (s *recordingSink) Begin(width, height int) error {
	s.width, s.height = width, height
	return nil
}

func (s *recordingSink) WritePixel(color core.Vec3) error {
	if s.failAfter > 0 && len(s.pixels) >= s.failAfter {
		return errors.New("sink full")
	}
	s.pixels = append(s.pixels, color)
	return nil
}

func (s *recordingSink) End() error {
	s.ended = true
	return nil
}

func createTestWorld(t *testing.T) *geometry.HittableList {
	t.Helper()
	sphere, err := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}
	return geometry.NewHittableList(sphere)
}

func smallConfig() CameraConfig {
	config := DefaultCameraConfig()
	config.ImageWidth = 8
	config.AspectRatio = 2
	config.SamplesPerPixel = 4
	config.MaxDepth = 5
	return config
}

func TestNewRaytracer_RejectsInvalidConfig(t *testing.T) {
	config := smallConfig()
	config.SamplesPerPixel = 0
	if _, err := NewRaytracer(config, integrator.NewPathTracingIntegrator(integrator.DefaultSky()), nil); !errors.Is(err, ErrInvalidCameraConfig) {
		t.Errorf("Expected ErrInvalidCameraConfig, got %v", err)
	}
}

func TestRaytracer_RenderOrderAndStats(t *testing.T) {
	rt, err := NewRaytracer(smallConfig(), integrator.NewPathTracingIntegrator(integrator.DefaultSky()), nil)
	if err != nil {
		t.Fatal(err)
	}

	sink := &recordingSink{}
	stats, err := rt.Render(context.Background(), createTestWorld(t), sink)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if sink.width != 8 || sink.height != 4 {
		t.Errorf("Expected 8x4 image, got %dx%d", sink.width, sink.height)
	}
	if len(sink.pixels) != 32 || !sink.ended {
		t.Fatalf("Expected 32 pixels and a closed sink, got %d pixels ended=%t", len(sink.pixels), sink.ended)
	}
	if stats.TotalPixels != 32 || stats.TotalSamples != 32*4 || stats.SamplesPerPixel != 4 {
		t.Errorf("Unexpected stats %+v", stats)
	}

	// The top row sees the sky above the sphere, which is bluer than the bottom row's horizon
	topLeft := sink.pixels[0]
	bottomLeft := sink.pixels[len(sink.pixels)-8]
	if topLeft.X >= bottomLeft.X {
		t.Errorf("Expected the top row (%v) to be bluer than the bottom row (%v)", topLeft, bottomLeft)
	}
}

func TestRaytracer_SameSeedSameImage(t *testing.T) {
	world := createTestWorld(t)
	render := func(seed int64) []core.Vec3 {
		rt, err := NewRaytracer(smallConfig(), integrator.NewPathTracingIntegrator(integrator.DefaultSky()), nil)
		if err != nil {
			t.Fatal(err)
		}
		rt.SetSeed(seed)
		sink := &recordingSink{}
		if _, err := rt.Render(context.Background(), world, sink); err != nil {
			t.Fatal(err)
		}
		return sink.pixels
	}

	first, second, other := render(7), render(7), render(8)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Pixel %d differs between renders with the same seed: %v vs %v", i, first[i], second[i])
		}
	}

	differs := false
	for i := range first {
		if first[i] != other[i] {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("Expected a different seed to change the image")
	}
}

func TestRaytracer_DepthZeroRendersBlack(t *testing.T) {
	config := smallConfig()
	config.MaxDepth = 0
	rt, err := NewRaytracer(config, integrator.NewPathTracingIntegrator(integrator.DefaultSky()), nil)
	if err != nil {
		t.Fatal(err)
	}

	sink := &recordingSink{}
	if _, err := rt.Render(context.Background(), createTestWorld(t), sink); err != nil {
		t.Fatal(err)
	}
	for i, p := range sink.pixels {
		if p != (core.Vec3{}) {
			t.Fatalf("Pixel %d should be black, got %v", i, p)
		}
	}
}

func TestRaytracer_Cancellation(t *testing.T) {
	rt, err := NewRaytracer(smallConfig(), integrator.NewPathTracingIntegrator(integrator.DefaultSky()), nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &recordingSink{}
	_, err = rt.Render(ctx, createTestWorld(t), sink)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if len(sink.pixels) != 0 {
		t.Errorf("Expected no pixels after cancellation, got %d", len(sink.pixels))
	}
}

func TestRaytracer_SinkErrorStopsRender(t *testing.T) {
	rt, err := NewRaytracer(smallConfig(), integrator.NewPathTracingIntegrator(integrator.DefaultSky()), nil)
	if err != nil {
		t.Fatal(err)
	}

	sink := &recordingSink{failAfter: 3}
	if _, err := rt.Render(context.Background(), createTestWorld(t), sink); err == nil {
		t.Fatal("Expected sink error to propagate")
	}
	if sink.ended {
		t.Error("Sink should not be ended after a write failure")
	}
}

func TestRaytracer_LogsProgress(t *testing.T) {
	var buf bytes.Buffer
	rt, err := NewRaytracer(smallConfig(), integrator.NewPathTracingIntegrator(integrator.DefaultSky()), NewDefaultLogger(&buf))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := rt.Render(context.Background(), createTestWorld(t), &recordingSink{}); err != nil {
		t.Fatal(err)
	}

	log := buf.String()
	if strings.Count(log, "Scanlines remaining:") != 4 {
		t.Errorf("Expected one progress line per scanline, got:\n%s", log)
	}
	if !strings.Contains(log, "Scanlines remaining: 4") || !strings.Contains(log, "Done:") {
		t.Errorf("Unexpected progress output:\n%s", log)
	}
}
