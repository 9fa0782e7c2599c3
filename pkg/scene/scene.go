package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
	"github.com/df07/go-photon-mapper/pkg/lights"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// ErrNoLights is returned when a scene without lights is prepared for photon tracing
var ErrNoLights = errors.New("scene has no lights")

// Primitive pairs a sphere with the index of its material in the scene arena
type Primitive struct {
	Sphere   *geometry.Sphere
	Material int
}

// CameraConfig describes the pinhole camera used by the gather pass
type CameraConfig struct {
	Position     core.Vec3
	Direction    core.Vec3
	Up           core.Vec3
	SensorHeight float64 // Sensor height in scene units, width follows the aspect ratio
	SensorDist   float64 // Distance from the camera position to the sensor plane
}

// Scene contains all the elements needed for photon tracing and rendering.
// It is built once and used read-only by both passes.
type Scene struct {
	Name         string
	Primitives   []Primitive         // Spheres in the scene
	Materials    []material.Material // Material arena referenced by Primitive.Material
	Lights       []lights.Light      // Lights in the scene
	LightSampler lights.LightSampler // Light selection policy for photon emission
	Camera       CameraConfig
}

// NewScene creates an empty scene
func NewScene(name string) *Scene {
	return &Scene{Name: name}
}

// AddMaterial appends a material to the arena and returns its index
func (s *Scene) AddMaterial(m material.Material) int {
	s.Materials = append(s.Materials, m)
	return len(s.Materials) - 1
}

// AddSphere adds a sphere referencing the material at materialIndex
func (s *Scene) AddSphere(center core.Vec3, radius float64, materialIndex int) {
	s.Primitives = append(s.Primitives, Primitive{
		Sphere:   geometry.NewSphere(center, radius),
		Material: materialIndex,
	})
}

// AddPointLight adds a point light to the scene
func (s *Scene) AddPointLight(position, emission core.Vec3) {
	s.Lights = append(s.Lights, lights.NewPointLight(position, emission))
}

// Preprocess validates the scene and creates the light sampler for policy
func (s *Scene) Preprocess(policy lights.SelectionPolicy) error {
	if len(s.Lights) == 0 {
		return ErrNoLights
	}
	for i, p := range s.Primitives {
		if p.Sphere == nil || p.Sphere.Radius <= 0 {
			return fmt.Errorf("primitive %d: sphere radius must be positive", i)
		}
		if p.Material < 0 || p.Material >= len(s.Materials) {
			return fmt.Errorf("primitive %d: material index %d out of range", i, p.Material)
		}
	}

	sampler, err := lights.NewLightSampler(policy, s.Lights)
	if err != nil {
		return err
	}
	s.LightSampler = sampler
	return nil
}

// Intersect returns the nearest hit over all primitives, tagged with the primitive index
func (s *Scene) Intersect(ray core.Ray) (geometry.SurfaceInteraction, bool) {
	closest := geometry.NewSurfaceInteraction()
	hitAnything := false

	for i, p := range s.Primitives {
		hit, isHit := p.Sphere.Hit(ray)
		if isHit && hit.T < closest.T {
			closest = hit
			closest.Primitive = i
			hitAnything = true
		}
	}

	return closest, hitAnything
}

// Material returns the material of the primitive that produced hit
func (s *Scene) Material(hit geometry.SurfaceInteraction) material.Material {
	return s.Materials[s.Primitives[hit.Primitive].Material]
}

// EmitPhotonRay selects a light and samples a photon leaving it.
// The flux is divided by the selection probability so multi-light emission stays unbiased.
func (s *Scene) EmitPhotonRay(sampler core.Sampler) (core.PhotonRay, bool) {
	lightSampler := s.LightSampler
	if lightSampler == nil {
		if len(s.Lights) == 0 {
			return core.PhotonRay{}, false
		}
		lightSampler = lights.NewUniformLightSampler(s.Lights)
	}

	light, probability, _ := lightSampler.SampleLightEmission(sampler.Get1D())
	if light == nil || probability <= 0 {
		return core.PhotonRay{}, false
	}

	ray := light.EmitPhotonRay(sampler)
	ray.Flux = ray.Flux.Multiply(1.0 / probability)
	return ray, true
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Primitives)
}
