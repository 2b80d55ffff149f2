package geometry

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// Hittable is implemented by objects that can be hit by rays: *Sphere and *HittableList.
type Hittable interface {
	// Hit returns the nearest intersection whose t lies strictly inside rayT
	Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool)

	isHittable()
}
