package material

import (
	"fmt"
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// Type tags the closed set of supported materials
type Type int

const (
	// Diffuse is a Lambertian (matte) surface
	Diffuse Type = iota
	// Mirror is a perfect specular reflector
	Mirror
)

// String returns the name used in scene descriptions
func (t Type) String() string {
	switch t {
	case Diffuse:
		return "diffuse"
	case Mirror:
		return "mirror"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType converts a scene description name into a Type
func ParseType(name string) (Type, error) {
	switch name {
	case "diffuse", "matte", "lambertian":
		return Diffuse, nil
	case "mirror", "specular":
		return Mirror, nil
	default:
		return 0, fmt.Errorf("unknown material type %q", name)
	}
}

// Material is a tagged variant over the supported reflectance models
type Material struct {
	Type        Type
	Reflectance core.Vec3
}

// SampleResult contains the result of sampling an incident direction
type SampleResult struct {
	Incident core.Vec3 // Sampled direction leaving the surface
	PDF      float64   // Probability density (0 for specular materials)
	BRDF     core.Vec3 // BRDF value for the sampled pair
	Specular bool      // Delta distribution, PDF not evaluated
}

// NewDiffuse creates a Lambertian material
func NewDiffuse(reflectance core.Vec3) Material {
	return Material{Type: Diffuse, Reflectance: reflectance}
}

// NewMirror creates a perfect mirror material
func NewMirror(reflectance core.Vec3) Material {
	return Material{Type: Mirror, Reflectance: reflectance}
}

// IsDiffuse reports whether photons are stored on this material
func (m Material) IsDiffuse() bool {
	return m.Type == Diffuse
}

// BRDF returns the constant BRDF term: reflectance/π for diffuse, reflectance for mirror
func (m Material) BRDF() core.Vec3 {
	if m.Type == Diffuse {
		return m.Reflectance.Multiply(1.0 / math.Pi)
	}
	return m.Reflectance
}

// SurvivalProbability is the Russian roulette continuation probability.
// It uses the green channel of the reflectance clamped to [0, 1].
func (m Material) SurvivalProbability() float64 {
	return max(0, min(1, m.Reflectance.Y))
}

// Sample draws an incident direction for the given outgoing direction and normal.
// Both vectors are expected to be normalized and on the same side of the surface.
func (m Material) Sample(outgoing, normal core.Vec3, sampler core.Sampler) SampleResult {
	switch m.Type {
	case Diffuse:
		return m.sampleDiffuse(normal, sampler)
	case Mirror:
		return m.sampleMirror(outgoing, normal)
	default:
		panic(fmt.Sprintf("material: unhandled type %v", m.Type))
	}
}
