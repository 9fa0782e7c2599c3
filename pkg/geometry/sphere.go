package geometry

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// SphereEpsilon rejects hits this close to the ray origin (self-intersection guard)
const SphereEpsilon = 1e-5

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// Hit returns the nearest intersection beyond SphereEpsilon.
// The ray direction must be normalized.
func (s *Sphere) Hit(ray core.Ray) (SurfaceInteraction, bool) {
	// Vector from ray origin to sphere center
	oc := s.Center.Subtract(ray.Origin)
	b := oc.Dot(ray.Direction)
	c := b*b - oc.Dot(oc) + s.Radius*s.Radius

	// No intersection if discriminant is negative
	if c < 0 {
		return SurfaceInteraction{}, false
	}

	sqrtC := math.Sqrt(c)
	t1 := b - sqrtC
	t2 := b + sqrtC
	if t1 < SphereEpsilon && t2 < SphereEpsilon {
		return SurfaceInteraction{}, false
	}

	// Prefer the nearer root unless it is behind the epsilon
	t := t2
	if t1 > SphereEpsilon {
		t = t1
	}

	hit := SurfaceInteraction{
		Point:     ray.At(t),
		Outgoing:  ray.Direction.Negate().Normalize(),
		T:         t,
		Primitive: -1,
	}
	hit.SetFaceNormal(ray, hit.Point.Subtract(s.Center).Normalize())

	return hit, true
}
