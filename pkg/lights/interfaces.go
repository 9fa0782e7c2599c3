package lights

import "github.com/df07/go-photon-mapper/pkg/core"

// LightType names a kind of light
type LightType string

const (
	LightTypePoint LightType = "point"
)

// Light interface for photon-emitting light sources
type Light interface {
	Type() LightType

	// EmitPhotonRay samples a photon leaving the light, flux set to the light's power
	EmitPhotonRay(sampler core.Sampler) core.PhotonRay

	// Power returns the total emitted power (RGB)
	Power() core.Vec3
}

// LightSampler interface for different light selection strategies
type LightSampler interface {
	// SampleLightEmission selects a light for photon emission and returns the light, selection probability, and light index
	SampleLightEmission(u float64) (Light, float64, int)

	// GetLightProbability returns the selection probability for the light at index
	GetLightProbability(lightIndex int) float64

	// GetLightCount returns the number of lights in this sampler
	GetLightCount() int
}
