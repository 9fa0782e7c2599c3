package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/df07/go-photon-mapper/pkg/material"
)

// Config is the top-level run configuration
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Photons PhotonConfig  `yaml:"photons"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig controls the gather pass and image output
type RenderConfig struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	MaxDepth int     `yaml:"max_depth"` // Mirror bounces followed before shading
	Gamma    float64 `yaml:"gamma"`
	Workers  int     `yaml:"workers"` // 0 means runtime.NumCPU()
	Output   string  `yaml:"output"`  // .png or .ppm, empty picks output/<scene>/render_<time>.png
	Exposure float64 `yaml:"exposure"`
}

// PhotonConfig controls emission and the irradiance estimate
type PhotonConfig struct {
	Count           int     `yaml:"count"`
	Capacity        int     `yaml:"capacity"` // Photon map size, 0 means 4x count
	Seed            int64   `yaml:"seed"`
	MaxBounces      int     `yaml:"max_bounces"` // 0 means unlimited
	LightSelection  string  `yaml:"light_selection"`
	ScaleByEmitted  bool    `yaml:"scale_by_emitted"`
	EstimateRadius  float64 `yaml:"estimate_radius"`
	EstimatePhotons int     `yaml:"estimate_photons"`
	MinPhotons      int     `yaml:"min_photons"`
}

// SceneConfig either names a built-in scene or describes one inline.
// An inline description is used when it contains any spheres.
type SceneConfig struct {
	Builtin   string           `yaml:"builtin"`
	Name      string           `yaml:"name"`
	Camera    *CameraConfig    `yaml:"camera,omitempty"`
	Materials []MaterialConfig `yaml:"materials,omitempty"`
	Spheres   []SphereConfig   `yaml:"spheres,omitempty"`
	Lights    []LightConfig    `yaml:"lights,omitempty"`
}

// CameraConfig places the pinhole camera
type CameraConfig struct {
	Position     [3]float64 `yaml:"position"`
	Direction    [3]float64 `yaml:"direction"`
	Up           [3]float64 `yaml:"up"`
	SensorHeight float64    `yaml:"sensor_height"`
	SensorDist   float64    `yaml:"sensor_dist"`
}

// MaterialConfig is a named material referenced by spheres
type MaterialConfig struct {
	Name        string     `yaml:"name"`
	Type        string     `yaml:"type"` // diffuse or mirror
	Reflectance [3]float64 `yaml:"reflectance"`
}

// SphereConfig is a sphere referencing a material by name
type SphereConfig struct {
	Center   [3]float64 `yaml:"center"`
	Radius   float64    `yaml:"radius"`
	Material string     `yaml:"material"`
}

// LightConfig is a point light
type LightConfig struct {
	Position [3]float64 `yaml:"position"`
	Power    [3]float64 `yaml:"power"`
}

// LoggingConfig selects the log level and an optional log file
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the settings of the reference Cornell render
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Width:    480,
			Height:   270,
			MaxDepth: 5,
			Gamma:    2.2,
			Workers:  0,
			Exposure: 1.0,
		},
		Photons: PhotonConfig{
			Count:           1000000,
			Seed:            42,
			MaxBounces:      0,
			LightSelection:  "uniform",
			ScaleByEmitted:  true,
			EstimateRadius:  20.0,
			EstimatePhotons: 100,
			MinPhotons:      8,
		},
		Scene: SceneConfig{
			Builtin: "cornell",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads a YAML file over the defaults.
// On a read error the defaults are returned together with the error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg as YAML
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("serializing config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// MapCapacity returns the photon map size to allocate
func (p PhotonConfig) MapCapacity() int {
	if p.Capacity > 0 {
		return p.Capacity
	}
	return 4 * p.Count
}

// HasInlineScene reports whether the scene is described in the file rather than built in
func (s SceneConfig) HasInlineScene() bool {
	return len(s.Spheres) > 0
}

// Validate checks the configuration for values the renderer cannot use
func (c *Config) Validate() error {
	var errs []error

	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height))
	}
	if c.Render.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("render max_depth must not be negative, got %d", c.Render.MaxDepth))
	}
	if c.Render.Gamma <= 0 {
		errs = append(errs, fmt.Errorf("render gamma must be positive, got %g", c.Render.Gamma))
	}
	if c.Render.Workers < 0 {
		errs = append(errs, fmt.Errorf("render workers must not be negative, got %d", c.Render.Workers))
	}
	if c.Photons.Count < 0 {
		errs = append(errs, fmt.Errorf("photon count must not be negative, got %d", c.Photons.Count))
	}
	if c.Photons.Capacity < 0 {
		errs = append(errs, fmt.Errorf("photon capacity must not be negative, got %d", c.Photons.Capacity))
	}
	if c.Photons.MaxBounces < 0 {
		errs = append(errs, fmt.Errorf("photon max_bounces must not be negative, got %d", c.Photons.MaxBounces))
	}
	if c.Photons.EstimateRadius <= 0 {
		errs = append(errs, fmt.Errorf("estimate_radius must be positive, got %g", c.Photons.EstimateRadius))
	}
	if c.Photons.EstimatePhotons <= 0 {
		errs = append(errs, fmt.Errorf("estimate_photons must be positive, got %d", c.Photons.EstimatePhotons))
	}
	if c.Photons.MinPhotons < 0 {
		errs = append(errs, fmt.Errorf("min_photons must not be negative, got %d", c.Photons.MinPhotons))
	}
	if c.Photons.EstimatePhotons > 0 && c.Photons.EstimatePhotons < c.Photons.MinPhotons {
		errs = append(errs, fmt.Errorf("estimate_photons %d is below min_photons %d, every estimate would be zero",
			c.Photons.EstimatePhotons, c.Photons.MinPhotons))
	}
	switch c.Photons.LightSelection {
	case "", "uniform", "power":
	default:
		errs = append(errs, fmt.Errorf("unknown light_selection %q", c.Photons.LightSelection))
	}

	if err := c.Scene.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Validate checks an inline scene description. Built-in scenes are checked when they are created.
func (s SceneConfig) Validate() error {
	if !s.HasInlineScene() {
		if s.Builtin == "" {
			return errors.New("scene: either builtin or spheres must be set")
		}
		return nil
	}

	var errs []error
	if len(s.Lights) == 0 {
		errs = append(errs, errors.New("scene: at least one light is required"))
	}

	names := make(map[string]bool, len(s.Materials))
	for i, m := range s.Materials {
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("scene: material %d has no name", i))
		}
		if names[m.Name] {
			errs = append(errs, fmt.Errorf("scene: duplicate material %q", m.Name))
		}
		names[m.Name] = true
		if _, err := material.ParseType(m.Type); err != nil {
			errs = append(errs, fmt.Errorf("scene: material %q: %w", m.Name, err))
		}
	}

	for i, sp := range s.Spheres {
		if sp.Radius <= 0 {
			errs = append(errs, fmt.Errorf("scene: sphere %d radius must be positive, got %g", i, sp.Radius))
		}
		if !names[sp.Material] {
			errs = append(errs, fmt.Errorf("scene: sphere %d references unknown material %q", i, sp.Material))
		}
	}

	if s.Camera != nil && s.Camera.SensorDist <= 0 {
		errs = append(errs, fmt.Errorf("scene: camera sensor_dist must be positive, got %g", s.Camera.SensorDist))
	}
	return errors.Join(errs...)
}
