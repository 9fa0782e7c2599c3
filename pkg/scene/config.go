package scene

import (
	"fmt"

	"github.com/df07/go-photon-mapper/pkg/config"
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/material"
)

func vec3(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// FromConfig builds a scene from its configuration: a built-in scene when
// no spheres are listed, otherwise the inline description.
func FromConfig(cfg config.SceneConfig) (*Scene, error) {
	if !cfg.HasInlineScene() {
		return NewBuiltinScene(cfg.Builtin)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	name := cfg.Name
	if name == "" {
		name = "custom"
	}
	s := NewScene(name)
	s.Camera = cornellCamera()
	if cfg.Camera != nil {
		s.Camera = CameraConfig{
			Position:     vec3(cfg.Camera.Position),
			Direction:    vec3(cfg.Camera.Direction).Normalize(),
			Up:           vec3(cfg.Camera.Up),
			SensorHeight: cfg.Camera.SensorHeight,
			SensorDist:   cfg.Camera.SensorDist,
		}
	}

	materials := make(map[string]int, len(cfg.Materials))
	for _, mc := range cfg.Materials {
		t, err := material.ParseType(mc.Type)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", mc.Name, err)
		}
		materials[mc.Name] = s.AddMaterial(material.Material{Type: t, Reflectance: vec3(mc.Reflectance)})
	}

	for _, sc := range cfg.Spheres {
		s.AddSphere(vec3(sc.Center), sc.Radius, materials[sc.Material])
	}
	for _, lc := range cfg.Lights {
		s.AddPointLight(vec3(lc.Position), vec3(lc.Power))
	}
	return s, nil
}
