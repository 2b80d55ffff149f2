package output

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

func TestPPMWriter_Format(t *testing.T) {
	var buf bytes.Buffer
	w := NewPPMWriter(&buf)

	if err := w.Begin(2, 1); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := w.WritePixel(core.NewVec3(1.5, 0, 0.25)); err != nil {
		t.Fatalf("WritePixel: %v", err)
	}
	if err := w.WritePixel(core.NewVec3(0, 1, -1)); err != nil {
		t.Fatalf("WritePixel: %v", err)
	}
	if err := w.End(); err != nil {
		t.Fatalf("End: %v", err)
	}

	expected := "P3\n2 1\n255\n255 0 128\n0 255 0\n"
	if buf.String() != expected {
		t.Errorf("output = %q, expected %q", buf.String(), expected)
	}
}

func TestPPMWriter_RejectsWrongPixelCount(t *testing.T) {
	var buf bytes.Buffer
	w := NewPPMWriter(&buf)
	if err := w.Begin(1, 1); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := w.End(); err == nil {
		t.Error("expected error ending an incomplete image")
	}

	if err := w.Begin(1, 1); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := w.WritePixel(core.Vec3{}); err != nil {
		t.Fatalf("WritePixel: %v", err)
	}
	if err := w.WritePixel(core.Vec3{}); err == nil {
		t.Error("expected error writing past the last pixel")
	}
}

func TestPPMWriter_RejectsEmptyImage(t *testing.T) {
	w := NewPPMWriter(&bytes.Buffer{})
	if err := w.Begin(0, 1); err == nil {
		t.Error("expected error for zero width")
	}
}

func renderPPM(t *testing.T, seed int64) string {
	t.Helper()
	sphere, err := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}
	world := geometry.NewHittableList(sphere)

	config := renderer.DefaultCameraConfig()
	config.ImageWidth = 2
	config.AspectRatio = 2
	config.SamplesPerPixel = 1

	rt, err := renderer.NewRaytracer(config, integrator.NewPathTracingIntegrator(integrator.DefaultSky()), nil)
	if err != nil {
		t.Fatalf("NewRaytracer: %v", err)
	}
	rt.SetSeed(seed)

	var buf bytes.Buffer
	if _, err := rt.Render(context.Background(), world, NewPPMWriter(&buf)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestRenderToPPM_Deterministic(t *testing.T) {
	first := renderPPM(t, 7)
	second := renderPPM(t, 7)

	if first != second {
		t.Fatalf("same seed produced different output:\n%s\n%s", first, second)
	}
	if !strings.HasPrefix(first, "P3\n2 1\n255\n") {
		t.Errorf("unexpected header in %q", first)
	}

	lines := strings.Split(strings.TrimSuffix(first, "\n"), "\n")
	if len(lines) != 5 {
		t.Errorf("expected 3 header lines and 2 pixel lines, got %d lines", len(lines))
	}
	for _, line := range lines[3:] {
		if len(strings.Fields(line)) != 3 {
			t.Errorf("pixel line %q should have three components", line)
		}
	}
}
