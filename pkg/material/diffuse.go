package material

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// sampleDiffuse generates a cosine-weighted direction around the normal
func (m Material) sampleDiffuse(normal core.Vec3, sampler core.Sampler) SampleResult {
	incident := core.SampleCosineHemisphere(normal, sampler.Get2D())

	// PDF: cos(θ) / π where θ is angle from normal
	cosTheta := incident.Dot(normal)
	if cosTheta < 0 {
		cosTheta = 0
	}

	return SampleResult{
		Incident: incident,
		PDF:      cosTheta / math.Pi,
		BRDF:     m.BRDF(),
	}
}
