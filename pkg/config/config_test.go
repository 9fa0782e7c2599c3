package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should validate, got %v", err)
	}
	if cfg.Render.Width != 480 || cfg.Render.Height != 270 {
		t.Errorf("Expected 480x270 default image, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Photons.EstimateRadius != 20 || cfg.Photons.EstimatePhotons != 100 {
		t.Errorf("Unexpected estimate defaults: radius %g photons %d", cfg.Photons.EstimateRadius, cfg.Photons.EstimatePhotons)
	}
	if cfg.Photons.MinPhotons != 8 {
		t.Errorf("Expected MinPhotons 8, got %d", cfg.Photons.MinPhotons)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	content := `
render:
  width: 64
  height: 32
photons:
  count: 5000
  seed: 7
  light_selection: power
scene:
  name: box
  materials:
    - name: white
      type: diffuse
      reflectance: [0.5, 0.5, 0.5]
    - name: chrome
      type: mirror
      reflectance: [0.9, 0.9, 0.9]
  spheres:
    - center: [0, 0, 0]
      radius: 100
      material: white
    - center: [10, 0, 0]
      radius: 5
      material: chrome
  lights:
    - position: [0, 50, 0]
      power: [1, 1, 1]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Render.Width != 64 || cfg.Render.Height != 32 {
		t.Errorf("Expected 64x32, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	// Unset fields keep their defaults
	if cfg.Render.Gamma != 2.2 {
		t.Errorf("Expected default gamma 2.2, got %g", cfg.Render.Gamma)
	}
	if cfg.Photons.Count != 5000 || cfg.Photons.Seed != 7 || cfg.Photons.LightSelection != "power" {
		t.Errorf("Unexpected photon settings: %+v", cfg.Photons)
	}
	if !cfg.Scene.HasInlineScene() {
		t.Fatal("Expected an inline scene")
	}
	if len(cfg.Scene.Spheres) != 2 || cfg.Scene.Spheres[1].Material != "chrome" {
		t.Errorf("Unexpected spheres: %+v", cfg.Scene.Spheres)
	}
	if cfg.Scene.Materials[0].Reflectance != [3]float64{0.5, 0.5, 0.5} {
		t.Errorf("Unexpected reflectance: %v", cfg.Scene.Materials[0].Reflectance)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Loaded config should validate, got %v", err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Expected wrapped fs.ErrNotExist, got %v", err)
		}
		if cfg == nil || cfg.Render.Width != 480 {
			t.Errorf("Expected defaults alongside the error, got %+v", cfg)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("render: [unclosed"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadConfig(path)
		if err == nil || !strings.Contains(err.Error(), "parsing config") {
			t.Errorf("Expected parse error, got %v", err)
		}
	})
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Photons.Count = 1234
	cfg.Scene.Builtin = "spheregrid"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Photons.Count != 1234 || loaded.Scene.Builtin != "spheregrid" {
		t.Errorf("Saved values not restored: %+v", loaded)
	}
}

func TestValidate(t *testing.T) {
	inline := func() SceneConfig {
		return SceneConfig{
			Materials: []MaterialConfig{{Name: "white", Type: "diffuse", Reflectance: [3]float64{0.5, 0.5, 0.5}}},
			Spheres:   []SphereConfig{{Radius: 10, Material: "white"}},
			Lights:    []LightConfig{{Power: [3]float64{1, 1, 1}}},
		}
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"valid inline scene", func(c *Config) { c.Scene = inline() }, ""},
		{"zero width", func(c *Config) { c.Render.Width = 0 }, "render size"},
		{"negative photons", func(c *Config) { c.Photons.Count = -1 }, "photon count"},
		{"zero radius estimate", func(c *Config) { c.Photons.EstimateRadius = 0 }, "estimate_radius"},
		{"estimate below min photons", func(c *Config) { c.Photons.EstimatePhotons = 4 }, "below min_photons"},
		{"estimate equal to min photons", func(c *Config) { c.Photons.EstimatePhotons = c.Photons.MinPhotons }, ""},
		{"unknown selection", func(c *Config) { c.Photons.LightSelection = "random" }, "light_selection"},
		{"no scene", func(c *Config) { c.Scene = SceneConfig{} }, "either builtin or spheres"},
		{"no lights", func(c *Config) {
			c.Scene = inline()
			c.Scene.Lights = nil
		}, "at least one light"},
		{"non-positive radius", func(c *Config) {
			c.Scene = inline()
			c.Scene.Spheres[0].Radius = 0
		}, "radius must be positive"},
		{"unknown material type", func(c *Config) {
			c.Scene = inline()
			c.Scene.Materials[0].Type = "glass"
		}, "unknown material type"},
		{"unknown material reference", func(c *Config) {
			c.Scene = inline()
			c.Scene.Spheres[0].Material = "gold"
		}, "unknown material \"gold\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMapCapacity(t *testing.T) {
	p := PhotonConfig{Count: 100}
	if p.MapCapacity() != 400 {
		t.Errorf("Expected 4x count, got %d", p.MapCapacity())
	}
	p.Capacity = 150
	if p.MapCapacity() != 150 {
		t.Errorf("Expected explicit capacity, got %d", p.MapCapacity())
	}
}
