package integrator

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// SkyGradient is the radiance seen by rays that escape the scene,
// blended vertically from Bottom (looking down) to Top (looking up)
type SkyGradient struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// DefaultSky returns a white horizon fading to light blue overhead
func DefaultSky() SkyGradient {
	return SkyGradient{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Emit returns the sky color in the direction of the ray
func (s SkyGradient) Emit(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0) // Map Y from [-1,1] to [0,1]
	return s.Bottom.Multiply(1.0 - a).Add(s.Top.Multiply(a))
}
