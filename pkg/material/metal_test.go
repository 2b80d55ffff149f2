package material

import (
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewSeededSampler(42)

	tests := []struct {
		name     string
		incident core.Vec3
		expected core.Vec3
	}{
		{"normal incidence", core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1)},
		{"normal incidence, unnormalized", core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1)},
		{"45 degrees", core.NewVec3(0, -1, -1), core.NewVec3(0, -1, 1).Normalize()},
	}

	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rayIn := core.NewRay(core.NewVec3(0, 1, 1), tt.incident)
			scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
			if !didScatter {
				t.Fatal("Metal should scatter")
			}

			if scatter.Scattered.Direction.Subtract(tt.expected).Length() > 1e-10 {
				t.Errorf("Expected mirrored direction %v, got %v", tt.expected, scatter.Scattered.Direction)
			}
			if scatter.Attenuation != albedo {
				t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
			}
		})
	}
}

func TestMetal_FuzzBelowSurfaceIsAbsorbed(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	// Grazing incidence reflects just above the surface; a perturbation of
	// (0,0,-1) then drags the direction below it.
	rayIn := core.NewRay(core.NewVec3(-1, 0, 0.1), core.NewVec3(1, 0, -0.1))
	_, didScatter := metal.Scatter(rayIn, hit, fixedSampler{twoD: core.NewVec2(1, 0)})
	if didScatter {
		t.Error("Expected metal to absorb a ray perturbed below the surface")
	}

	// Perturbation pointing along the normal keeps it above
	scatter, didScatter := metal.Scatter(rayIn, hit, fixedSampler{twoD: core.NewVec2(0, 0)})
	if !didScatter {
		t.Fatal("Expected metal to scatter a ray perturbed away from the surface")
	}
	if scatter.Scattered.Direction.Dot(hit.Normal) <= 0 {
		t.Errorf("Scattered direction %v should be above the surface", scatter.Scattered.Direction)
	}
}

func TestMetal_FuzzyReflectionStaysInHemisphere(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.5)
	sampler := core.NewSeededSampler(42)
	hit := HitRecord{Normal: core.NewVec3(0, 1, 0)}
	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))

	for i := 0; i < 500; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		if didScatter && scatter.Scattered.Direction.Dot(hit.Normal) <= 0 {
			t.Fatalf("Scattered ray %v must point away from the surface", scatter.Scattered.Direction)
		}
	}
}
