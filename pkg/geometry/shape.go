package geometry

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// SurfaceInteraction contains information about a ray-surface intersection
type SurfaceInteraction struct {
	Point          core.Vec3 // Point of intersection
	Normal         core.Vec3 // Outward geometric normal
	OrientedNormal core.Vec3 // Normal flipped to face the incoming ray
	Outgoing       core.Vec3 // Normalized negated ray direction
	T              float64   // Parameter t along the ray
	FrontFace      bool      // Whether ray hit the front face
	Primitive      int       // Index of the hit primitive in the scene, -1 if none
}

// NewSurfaceInteraction returns an interaction that any real hit will beat
func NewSurfaceInteraction() SurfaceInteraction {
	return SurfaceInteraction{T: math.Inf(1), Primitive: -1}
}

// SetFaceNormal sets the normals and determines front/back face
func (si *SurfaceInteraction) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	si.Normal = outwardNormal
	si.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if si.FrontFace {
		si.OrientedNormal = outwardNormal
	} else {
		si.OrientedNormal = outwardNormal.Negate()
	}
}
