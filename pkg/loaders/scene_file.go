package loaders

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-raycast-tracer/pkg/core"
	"github.com/df07/go-raycast-tracer/pkg/geometry"
	"github.com/df07/go-raycast-tracer/pkg/material"
	"github.com/df07/go-raycast-tracer/pkg/scene"
)

// ErrInvalidSceneID is returned by LoadSceneID for ids that name a path
var ErrInvalidSceneID = errors.New("invalid scene id")

// ErrUnknownPrimitive is returned for a primitive type tag that is not recognized
var ErrUnknownPrimitive = errors.New("unknown primitive type")

// Vec3Cfg is a vector written as a JSON array [x, y, z]
type Vec3Cfg [3]float64

func (v Vec3Cfg) Vec3() core.Vec3 { return core.NewVec3(v[0], v[1], v[2]) }

type CameraCfg struct {
	Position    Vec3Cfg `json:"position"`
	Direction   Vec3Cfg `json:"direction"`
	Up          Vec3Cfg `json:"up"`
	FocalLength float64 `json:"focalLength,omitempty"`
}

type LightCfg struct {
	Direction Vec3Cfg `json:"direction"`
	Color     Vec3Cfg `json:"color"`
}

type FogCfg struct {
	Color    Vec3Cfg `json:"color"`
	Distance float64 `json:"distance"`
}

type RenderCfg struct {
	Width      int `json:"width,omitempty"`
	Height     int `json:"height,omitempty"`
	Samples    int `json:"samples,omitempty"`
	MaxBounces int `json:"maxBounces,omitempty"`
}

type MaterialCfg struct {
	Color     Vec3Cfg  `json:"color"`
	Specular  float64  `json:"specular,omitempty"`
	Roughness *float64 `json:"roughness,omitempty"` // defaults 1
	Glow      float64  `json:"glow,omitempty"`

	Transparent     bool    `json:"transparent,omitempty"`
	RefractionRatio float64 `json:"refractionRatio,omitempty"`
}

// PrimitiveCfg describes one primitive. Type selects which geometry fields apply:
// plane (point, normal), sphere (center, radius), capsule (a, b, radius) or
// box (center, size as half-extents).
type PrimitiveCfg struct {
	Type   string  `json:"type"`
	Name   string  `json:"name,omitempty"`
	Point  Vec3Cfg `json:"point"`
	Normal Vec3Cfg `json:"normal"`
	Center Vec3Cfg `json:"center"`
	Radius float64 `json:"radius,omitempty"`
	A      Vec3Cfg `json:"a"`
	B      Vec3Cfg `json:"b"`
	Size   Vec3Cfg `json:"size"`

	Material MaterialCfg `json:"material"`
}

// SceneFile is the JSON scene description
type SceneFile struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Group       string         `json:"group,omitempty"`
	Camera      *CameraCfg     `json:"camera,omitempty"`
	Light       *LightCfg      `json:"light,omitempty"`
	Fog         *FogCfg        `json:"fog,omitempty"`
	Sky         string         `json:"sky,omitempty"` // image path, relative to the scene file
	SkyColor    *Vec3Cfg       `json:"skyColor,omitempty"`
	Render      *RenderCfg     `json:"render,omitempty"`
	Primitives  []PrimitiveCfg `json:"primitives"`
}

// Build validates the material block. A missing roughness means fully diffuse.
func (m MaterialCfg) Build() (material.Material, error) {
	roughness := 1.0
	if m.Roughness != nil {
		roughness = *m.Roughness
	}
	mat := material.Material{
		Diffuse:         m.Color.Vec3(),
		Specular:        m.Specular,
		Roughness:       roughness,
		Glow:            m.Glow,
		Transparent:     m.Transparent,
		RefractionRatio: m.RefractionRatio,
	}
	if err := mat.Validate(); err != nil {
		return material.Material{}, err
	}
	return mat, nil
}

// Build validates and constructs the shape
func (p PrimitiveCfg) Build() (geometry.Shape, error) {
	switch strings.ToLower(p.Type) {
	case "plane":
		if p.Normal.Vec3().IsZero() {
			return nil, errors.New("plane normal must be non-zero")
		}
		return geometry.NewPlane(p.Point.Vec3(), p.Normal.Vec3()), nil
	case "sphere":
		if p.Radius <= 0 {
			return nil, fmt.Errorf("sphere radius must be > 0, got %g", p.Radius)
		}
		return geometry.NewSphere(p.Center.Vec3(), p.Radius), nil
	case "capsule":
		if p.Radius <= 0 {
			return nil, fmt.Errorf("capsule radius must be > 0, got %g", p.Radius)
		}
		if p.A == p.B {
			return nil, errors.New("capsule end points must differ")
		}
		return geometry.NewCapsule(p.A.Vec3(), p.B.Vec3(), p.Radius), nil
	case "box":
		size := p.Size.Vec3().Abs()
		if size.MinComponent() <= 0 {
			return nil, fmt.Errorf("box size must be > 0 on all axes, got %v", p.Size)
		}
		return geometry.NewBox(p.Center.Vec3(), size), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrimitive, p.Type)
	}
}

// Build constructs the scene. Relative sky paths are resolved against baseDir.
func (f SceneFile) Build(baseDir string) (*scene.Scene, error) {
	s := scene.New(f.Name)

	if f.Camera != nil {
		s.CameraConfig = geometry.CameraConfig{
			Position:    f.Camera.Position.Vec3(),
			Direction:   f.Camera.Direction.Vec3(),
			Up:          f.Camera.Up.Vec3(),
			FocalLength: f.Camera.FocalLength,
		}
	}
	if f.Light != nil {
		s.Light = scene.DirectionalLight{Direction: f.Light.Direction.Vec3(), Color: f.Light.Color.Vec3()}
	}
	if f.Fog != nil {
		s.Fog = scene.Fog{Color: f.Fog.Color.Vec3(), Distance: f.Fog.Distance}
	}
	if f.SkyColor != nil {
		s.SkyColor = f.SkyColor.Vec3()
	}
	if f.Render != nil {
		if f.Render.Width > 0 && f.Render.Height > 0 {
			s.SamplingConfig.Width = f.Render.Width
			s.SamplingConfig.Height = f.Render.Height
		}
		if f.Render.Samples > 0 {
			s.SamplingConfig.SamplesPerPixel = f.Render.Samples
		}
		if f.Render.MaxBounces > 0 {
			s.SamplingConfig.MaxDepth = f.Render.MaxBounces
		}
	}

	for i, p := range f.Primitives {
		shape, err := p.Build()
		if err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
		mat, err := p.Material.Build()
		if err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("%s-%d", strings.ToLower(p.Type), i)
		}
		s.Add(name, shape, mat)
	}

	if f.Sky != "" {
		skyPath := f.Sky
		if !filepath.IsAbs(skyPath) {
			skyPath = filepath.Join(baseDir, skyPath)
		}
		sky, err := LoadImage(skyPath)
		if err != nil {
			return nil, fmt.Errorf("sky: %w", err)
		}
		s.Sky = sky
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ParseSceneFile decodes a JSON scene description. Unknown fields are errors.
func ParseSceneFile(data []byte) (SceneFile, error) {
	var f SceneFile
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return SceneFile{}, fmt.Errorf("invalid scene file: %w", err)
	}
	return f, nil
}

// LoadSceneFile reads and builds the scene described by a JSON file
func LoadSceneFile(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	f, err := ParseSceneFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	s, err := f.Build(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadScene resolves a scene id for local use: a path ending in .json loads that
// file, anything else goes through LoadSceneID.
func LoadScene(id, sceneDir string, seed int64) (*scene.Scene, error) {
	if strings.EqualFold(filepath.Ext(id), ".json") {
		return LoadSceneFile(id)
	}
	return LoadSceneID(id, sceneDir, seed)
}

// LoadSceneID resolves ids that never name a file directly: "file:<name>" loads
// <name>.json from sceneDir and anything else is a built-in scene. Ids that look
// like paths are rejected with ErrInvalidSceneID.
func LoadSceneID(id, sceneDir string, seed int64) (*scene.Scene, error) {
	if strings.HasPrefix(id, "file:") {
		name := strings.TrimPrefix(id, "file:")
		if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSceneID, id)
		}
		return LoadSceneFile(filepath.Join(sceneDir, name+".json"))
	}
	if strings.ContainsAny(id, `/\`) || strings.EqualFold(filepath.Ext(id), ".json") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSceneID, id)
	}
	return scene.Builtin(id, seed)
}
