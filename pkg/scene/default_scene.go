package scene

import (
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// NewDefaultScene creates a room with two colored lights over a mirror and a matte sphere
func NewDefaultScene() *Scene {
	s := NewScene("default")
	s.Camera = cornellCamera()
	addCornellRoom(s)

	mirror := s.AddMaterial(material.NewMirror(core.NewVec3(0.9, 0.9, 0.9)))
	matte := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.65, 0.6, 0.2)))
	s.AddSphere(core.NewVec3(35.0, 14.0, 60), 14.0, mirror)
	s.AddSphere(core.NewVec3(70.0, 10.0, 90), 10.0, matte)

	// Warm key light and a dimmer cool fill light
	s.AddPointLight(core.NewVec3(30, 70, 80), core.NewVec3(1.0, 0.85, 0.7))
	s.AddPointLight(core.NewVec3(80, 50, 120), core.NewVec3(0.2, 0.3, 0.5))
	return s
}
