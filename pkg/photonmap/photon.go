package photonmap

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// Photon is a single deposit of light flux on a diffuse surface
type Photon struct {
	Position core.Vec3
	Power    core.Vec3 // RGB flux
	Theta    uint8     // Quantized polar angle of the travel direction
	Phi      uint8     // Quantized azimuth of the travel direction
	Plane    uint8     // Split axis assigned during balancing: 0=x, 1=y, 2=z
}

// NewPhoton creates a photon with its direction quantized to two bytes
func NewPhoton(position, power, direction core.Vec3) Photon {
	theta, phi := EncodeDirection(direction)
	return Photon{Position: position, Power: power, Theta: theta, Phi: phi}
}

// EncodeDirection quantizes a unit direction into polar angle and azimuth bytes.
// Theta covers [0, π] and phi covers (-π, π] in 256 steps each.
func EncodeDirection(direction core.Vec3) (theta, phi uint8) {
	dz := math.Max(-1, math.Min(1, direction.Z))

	t := int(math.Acos(dz) * 256.0 / math.Pi)
	if t > 255 {
		t = 255
	}

	p := int(math.Atan2(direction.Y, direction.X) * 256.0 / (2.0 * math.Pi))
	if p > 255 {
		p = 255
	}
	if p < 0 {
		p += 256
	}

	return uint8(t), uint8(p)
}

// angleTables decodes quantized directions without trigonometry at query time
type angleTables struct {
	cosTheta [256]float64
	sinTheta [256]float64
	cosPhi   [256]float64
	sinPhi   [256]float64
}

func newAngleTables() *angleTables {
	t := &angleTables{}
	for i := 0; i < 256; i++ {
		angle := float64(i) * (1.0 / 256.0) * math.Pi
		t.cosTheta[i] = math.Cos(angle)
		t.sinTheta[i] = math.Sin(angle)
		t.cosPhi[i] = math.Cos(2.0 * angle)
		t.sinPhi[i] = math.Sin(2.0 * angle)
	}
	return t
}

func (t *angleTables) direction(theta, phi uint8) core.Vec3 {
	return core.NewVec3(
		t.sinTheta[theta]*t.cosPhi[phi],
		t.sinTheta[theta]*t.sinPhi[phi],
		t.cosTheta[theta],
	)
}
