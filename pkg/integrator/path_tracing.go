package integrator

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// ShadowAcneEpsilon is the lower bound on hit distances, so a scattered ray
// does not re-hit the surface it leaves due to floating point error
const ShadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	sky SkyGradient
}

// NewPathTracingIntegrator creates a new path tracing integrator lit by the given sky
func NewPathTracingIntegrator(sky SkyGradient) *PathTracingIntegrator {
	return &PathTracingIntegrator{sky: sky}
}

// Sky returns the background the integrator shades escaping rays with
func (pt *PathTracingIntegrator) Sky() SkyGradient {
	return pt.sky
}

// RayColor computes the color for a single ray.
// Each bounce multiplies the running throughput by the material attenuation, which is
// the recursive product attenuation * RayColor(scattered, depth-1) unrolled into a loop.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler, depth int) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)
	searchRange := core.NewInterval(ShadowAcneEpsilon, math.Inf(1))

	for ; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, searchRange)
		if !isHit {
			return throughput.MultiplyVec(pt.sky.Emit(ray))
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			// Material absorbed the ray
			return core.Vec3{X: 0, Y: 0, Z: 0}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Exceeded the ray bounce limit, no more light is gathered
	return core.Vec3{X: 0, Y: 0, Z: 0}
}
