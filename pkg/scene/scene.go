package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// ErrUnknownScene is returned when a scene name matches no built-in scene
var ErrUnknownScene = errors.New("unknown scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	World        *geometry.HittableList // Spheres in the scene
	CameraConfig renderer.CameraConfig  // Camera and sampling settings
	Sky          integrator.SkyGradient // Background seen by escaping rays
}

// NewScene creates an empty scene with the default camera and sky
func NewScene(name string) *Scene {
	return &Scene{
		Name:         name,
		World:        geometry.NewHittableList(),
		CameraConfig: renderer.DefaultCameraConfig(),
		Sky:          integrator.DefaultSky(),
	}
}

// AddSphere adds a sphere to the world
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) error {
	sphere, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		return err
	}
	s.World.Add(sphere)
	return nil
}

// builtins maps scene names to their constructors
var builtins = map[string]func() (*Scene, error){
	"simple":     NewSimpleScene,
	"default":    NewDefaultScene,
	"spheregrid": NewSphereGridScene,
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName builds the built-in scene with the given name
func ByName(name string) (*Scene, error) {
	create, ok := builtins[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
	}
	return create()
}

// Open returns the built-in scene called nameOrPath, or loads it as a
// JSON scene file when it names a .json file
func Open(nameOrPath string) (*Scene, error) {
	if strings.EqualFold(filepath.Ext(nameOrPath), ".json") {
		return Load(nameOrPath)
	}
	return ByName(nameOrPath)
}
