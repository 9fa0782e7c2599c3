package scene

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// oklchToRGB converts OKLCH color space to RGB
// L: lightness (0-1), C: chroma (0-0.4), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLab to linear RGB
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a grid of small spheres on a ground sphere.
// Every fourth sphere is a mirror, the rest are matte with hues around the color wheel.
func NewSphereGridScene() *Scene {
	const gridSize = 8
	const spacing = 10.0
	const radius = 3.5

	s := NewScene("spheregrid")
	s.Camera = CameraConfig{
		Position:     core.NewVec3(35, 60, 130),
		Direction:    core.NewVec3(0, -0.55, -1).Normalize(),
		Up:           core.NewVec3(0, 1, 0),
		SensorHeight: 30.0,
		SensorDist:   40.0,
	}

	ground := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddSphere(core.NewVec3(35, -1e4, 35), 1e4, ground)

	mirror := s.AddMaterial(material.NewMirror(core.NewVec3(0.95, 0.95, 0.95)))
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			center := core.NewVec3(float64(i)*spacing, radius, float64(j)*spacing)
			index := i*gridSize + j
			if index%4 == 3 {
				s.AddSphere(center, radius, mirror)
				continue
			}
			hue := 360.0 * float64(index) / float64(gridSize*gridSize)
			color := s.AddMaterial(material.NewDiffuse(oklchToRGB(0.7, 0.15, hue)))
			s.AddSphere(center, radius, color)
		}
	}

	s.AddPointLight(core.NewVec3(35, 80, 35), core.NewVec3(4, 4, 4))
	return s
}
