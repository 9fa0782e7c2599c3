package lights

import "github.com/df07/go-photon-mapper/pkg/core"

// PointLight emits photons uniformly in all directions from a single point
type PointLight struct {
	Position core.Vec3
	Emission core.Vec3 // Total emitted power
}

// NewPointLight creates a point light
func NewPointLight(position, emission core.Vec3) *PointLight {
	return &PointLight{Position: position, Emission: emission}
}

// Type returns LightTypePoint
func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Power returns the light's emission
func (pl *PointLight) Power() core.Vec3 {
	return pl.Emission
}

// EmitPhotonRay samples a uniformly distributed direction on the unit sphere
func (pl *PointLight) EmitPhotonRay(sampler core.Sampler) core.PhotonRay {
	direction := core.SampleOnUnitSphere(sampler.Get2D())
	return core.NewPhotonRay(pl.Position, direction, pl.Emission)
}
