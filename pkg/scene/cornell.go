package scene

import (
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// cornellCamera looks into the room from the open front
func cornellCamera() CameraConfig {
	return CameraConfig{
		Position:     core.NewVec3(50.0, 52.0, 220.0),
		Direction:    core.NewVec3(0, -0.04, -1.0).Normalize(),
		Up:           core.NewVec3(0, 1, 0),
		SensorHeight: 30.0,
		SensorDist:   40.0,
	}
}

// addCornellRoom adds the six huge wall spheres enclosing the room (x in [1,99], y in [0,81.6])
func addCornellRoom(s *Scene) {
	red := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.75, 0.25, 0.25)))
	blue := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.25, 0.25, 0.75)))
	white := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.75, 0.75, 0.75)))
	black := s.AddMaterial(material.NewDiffuse(core.NewVec3(0, 0, 0)))

	s.AddSphere(core.NewVec3(1e5+1, 40.8, 81.6), 1e5, red)        // left
	s.AddSphere(core.NewVec3(-1e5+99, 40.8, 81.6), 1e5, blue)     // right
	s.AddSphere(core.NewVec3(50.0, 40.8, 1e5), 1e5, white)        // back
	s.AddSphere(core.NewVec3(50.0, 40.8, -1e5+250.0), 1e5, black) // front
	s.AddSphere(core.NewVec3(50.0, 1e5, 81.6), 1e5, white)        // floor
	s.AddSphere(core.NewVec3(50.0, -1e5+81.6, 81.6), 1e5, white)  // ceiling
}

// NewCornellScene creates the sphere-walled Cornell box lit by a single point light
func NewCornellScene() *Scene {
	s := NewScene("cornell")
	s.Camera = cornellCamera()
	addCornellRoom(s)
	s.AddPointLight(core.NewVec3(50, 60, 70.0), core.NewVec3(1, 1, 1))
	return s
}

// NewCornellSpheresScene adds a mirror ball and a green matte ball to the Cornell box
func NewCornellSpheresScene() *Scene {
	s := NewScene("cornell-spheres")
	s.Camera = cornellCamera()
	addCornellRoom(s)

	mirror := s.AddMaterial(material.NewMirror(core.NewVec3(0.99, 0.99, 0.99)))
	green := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.25, 0.75, 0.25)))
	s.AddSphere(core.NewVec3(27.0, 16.5, 47), 16.5, mirror)
	s.AddSphere(core.NewVec3(73.0, 16.5, 78), 16.5, green)

	s.AddPointLight(core.NewVec3(50, 60, 70.0), core.NewVec3(1, 1, 1))
	return s
}
