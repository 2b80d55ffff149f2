package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// NewDefaultScene creates the ground, diffuse, glass, bubble and metal sphere scene
// viewed from above and to the left with a shallow depth of field
func NewDefaultScene() (*Scene, error) {
	s := NewScene("default")
	s.CameraConfig.AspectRatio = 16.0 / 9.0
	s.CameraConfig.ImageWidth = 400
	s.CameraConfig.SamplesPerPixel = 100
	s.CameraConfig.MaxDepth = 50
	s.CameraConfig.VFov = 70
	s.CameraConfig.LookFrom = core.NewVec3(-2, 2, 1)
	s.CameraConfig.LookAt = core.NewVec3(0, 0, -1)
	s.CameraConfig.VUp = core.NewVec3(0, 1, 0)
	s.CameraConfig.DefocusAngle = 10.0
	s.CameraConfig.FocusDist = 3.4

	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	glass, err := material.NewDielectric(1.50)
	if err != nil {
		return nil, err
	}
	// Air inside glass: the inverse index turns the inner sphere into a hollow bubble
	bubble, err := material.NewDielectric(1.00 / 1.50)
	if err != nil {
		return nil, err
	}
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	spheres := []struct {
		center core.Vec3
		radius float64
		mat    material.Material
	}{
		{core.NewVec3(0, -100.5, -1), 100, ground},
		{core.NewVec3(0, 0, -1.2), 0.5, center},
		{core.NewVec3(-1, 0, -1), 0.5, glass},
		{core.NewVec3(-1, 0, -1), 0.4, bubble},
		{core.NewVec3(1, 0, -1), 0.5, gold},
	}
	for _, sp := range spheres {
		if err := s.AddSphere(sp.center, sp.radius, sp.mat); err != nil {
			return nil, err
		}
	}
	return s, nil
}
