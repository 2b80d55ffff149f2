package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// ErrInvalidSceneFile is wrapped by every scene file decoding or validation error
var ErrInvalidSceneFile = errors.New("invalid scene file")

// sceneFile is the JSON layout of a scene description
type sceneFile struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Camera      cameraFile              `json:"camera"`
	Sky         *skyFile                `json:"sky"`
	Materials   map[string]materialFile `json:"materials"`
	Spheres     []sphereFile            `json:"spheres"`
}

type cameraFile struct {
	AspectRatio     float64   `json:"aspect_ratio"`
	ImageWidth      int       `json:"image_width"`
	SamplesPerPixel int       `json:"samples_per_pixel"`
	MaxDepth        int       `json:"max_depth"`
	VFov            float64   `json:"vfov"`
	LookFrom        []float64 `json:"lookfrom"`
	LookAt          []float64 `json:"lookat"`
	VUp             []float64 `json:"vup"`
	DefocusAngle    float64   `json:"defocus_angle"`
	FocusDist       float64   `json:"focus_dist"`
}

type skyFile struct {
	Top    []float64 `json:"top"`
	Bottom []float64 `json:"bottom"`
}

type materialFile struct {
	Type            string    `json:"type"` // lambertian, metal or dielectric
	Albedo          []float64 `json:"albedo"`
	Fuzz            float64   `json:"fuzz"`
	RefractionIndex float64   `json:"refraction_index"`
}

type sphereFile struct {
	Center   []float64 `json:"center"`
	Radius   float64   `json:"radius"`
	Material string    `json:"material"`
}

func toVec3(field string, v []float64) (core.Vec3, error) {
	if len(v) != 3 {
		return core.Vec3{}, fmt.Errorf("%w: %s must have 3 components, got %d", ErrInvalidSceneFile, field, len(v))
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

func fromVec3(v core.Vec3) []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// Load reads a JSON scene description from path
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes a JSON scene description. Camera fields left out keep their
// default values. Materials are declared once by name and shared by every
// sphere that refers to them.
func Parse(r io.Reader) (*Scene, error) {
	defaults := NewScene("")
	cfg := defaults.CameraConfig
	file := sceneFile{
		Camera: cameraFile{
			AspectRatio:     cfg.AspectRatio,
			ImageWidth:      cfg.ImageWidth,
			SamplesPerPixel: cfg.SamplesPerPixel,
			MaxDepth:        cfg.MaxDepth,
			VFov:            cfg.VFov,
			LookFrom:        fromVec3(cfg.LookFrom),
			LookAt:          fromVec3(cfg.LookAt),
			VUp:             fromVec3(cfg.VUp),
			DefocusAngle:    cfg.DefocusAngle,
			FocusDist:       cfg.FocusDist,
		},
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSceneFile, err)
	}

	s := NewScene(file.Name)
	if err := file.Camera.apply(s); err != nil {
		return nil, err
	}
	if err := s.CameraConfig.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSceneFile, err)
	}

	if file.Sky != nil {
		if err := file.Sky.apply(s); err != nil {
			return nil, err
		}
	}

	materials, err := buildMaterials(file.Materials)
	if err != nil {
		return nil, err
	}

	for i, sp := range file.Spheres {
		center, err := toVec3(fmt.Sprintf("spheres[%d].center", i), sp.Center)
		if err != nil {
			return nil, err
		}
		mat, ok := materials[sp.Material]
		if !ok {
			return nil, fmt.Errorf("%w: spheres[%d] refers to unknown material %q", ErrInvalidSceneFile, i, sp.Material)
		}
		if err := s.AddSphere(center, sp.Radius, mat); err != nil {
			return nil, fmt.Errorf("%w: spheres[%d]: %w", ErrInvalidSceneFile, i, err)
		}
	}

	return s, nil
}

func (c cameraFile) apply(s *Scene) error {
	lookFrom, err := toVec3("camera.lookfrom", c.LookFrom)
	if err != nil {
		return err
	}
	lookAt, err := toVec3("camera.lookat", c.LookAt)
	if err != nil {
		return err
	}
	vup, err := toVec3("camera.vup", c.VUp)
	if err != nil {
		return err
	}

	s.CameraConfig.AspectRatio = c.AspectRatio
	s.CameraConfig.ImageWidth = c.ImageWidth
	s.CameraConfig.SamplesPerPixel = c.SamplesPerPixel
	s.CameraConfig.MaxDepth = c.MaxDepth
	s.CameraConfig.VFov = c.VFov
	s.CameraConfig.LookFrom = lookFrom
	s.CameraConfig.LookAt = lookAt
	s.CameraConfig.VUp = vup
	s.CameraConfig.DefocusAngle = c.DefocusAngle
	s.CameraConfig.FocusDist = c.FocusDist
	return nil
}

func (k skyFile) apply(s *Scene) error {
	sky := integrator.DefaultSky()
	var err error
	if k.Top != nil {
		if sky.Top, err = toVec3("sky.top", k.Top); err != nil {
			return err
		}
	}
	if k.Bottom != nil {
		if sky.Bottom, err = toVec3("sky.bottom", k.Bottom); err != nil {
			return err
		}
	}
	s.Sky = sky
	return nil
}

func buildMaterials(defs map[string]materialFile) (map[string]material.Material, error) {
	// Sorted so the first reported error does not depend on map order
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	materials := make(map[string]material.Material, len(defs))
	for _, name := range names {
		def := defs[name]
		field := fmt.Sprintf("materials.%s", name)

		switch strings.ToLower(def.Type) {
		case "lambertian":
			albedo, err := toVec3(field+".albedo", def.Albedo)
			if err != nil {
				return nil, err
			}
			materials[name] = material.NewLambertian(albedo)
		case "metal":
			albedo, err := toVec3(field+".albedo", def.Albedo)
			if err != nil {
				return nil, err
			}
			materials[name] = material.NewMetal(albedo, def.Fuzz)
		case "dielectric":
			mat, err := material.NewDielectric(def.RefractionIndex)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSceneFile, field, err)
			}
			materials[name] = mat
		default:
			return nil, fmt.Errorf("%w: %s has unknown type %q", ErrInvalidSceneFile, field, def.Type)
		}
	}
	return materials, nil
}
