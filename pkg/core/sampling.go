package core

import (
	"math"
	"math/rand"
)

// Vec2 holds a pair of sample values
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Sampler provides random sampling for the photon and gather passes
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// BuildOrthonormalBasis returns a tangent and binormal perpendicular to normal.
// It branches on the sign of normal.Z so the divisor 1 +/- Z never approaches zero.
// A zero or non-finite normal yields the canonical X/Y axes.
func BuildOrthonormalBasis(normal Vec3) (tangent, binormal Vec3) {
	n := normal.Normalize()
	if n.IsZero() {
		return NewVec3(1, 0, 0), NewVec3(0, 1, 0)
	}

	if n.Z < 0 {
		a := 1.0 / (1.0 - n.Z)
		b := n.X * n.Y * a
		tangent = NewVec3(1.0-n.X*n.X*a, -b, n.X)
		binormal = NewVec3(b, n.Y*n.Y*a-1.0, -n.Y)
	} else {
		a := 1.0 / (1.0 + n.Z)
		b := -n.X * n.Y * a
		tangent = NewVec3(1.0-n.X*n.X*a, b, -n.X)
		binormal = NewVec3(b, 1.0-n.Y*n.Y*a, -n.Y)
	}
	return tangent.Normalize(), binormal.Normalize()
}

// SampleCosineHemisphere generates a cosine-weighted random direction in hemisphere around normal
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	tangent, binormal := BuildOrthonormalBasis(normal)

	phi := 2.0 * math.Pi * sample.X
	r2 := sample.Y
	r := math.Sqrt(r2)

	x := r * math.Cos(phi)
	y := r * math.Sin(phi)
	z := math.Sqrt(1.0 - r2)

	// Transform to world space
	return normal.Normalize().Multiply(z).Add(tangent.Multiply(x)).Add(binormal.Multiply(y))
}

// SampleOnUnitSphere generates a uniform random direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	x := r * math.Cos(phi)
	y := r * math.Sin(phi)
	return NewVec3(x, y, z)
}
