package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// NewSimpleScene creates a single diffuse sphere resting on a large ground sphere
func NewSimpleScene() (*Scene, error) {
	s := NewScene("simple")
	s.CameraConfig.AspectRatio = 16.0 / 9.0
	s.CameraConfig.ImageWidth = 400

	gray := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	if err := s.AddSphere(core.NewVec3(0, 0, -1), 0.5, gray); err != nil {
		return nil, err
	}
	if err := s.AddSphere(core.NewVec3(0, -100.5, -1), 100, gray); err != nil {
		return nil, err
	}
	return s, nil
}
