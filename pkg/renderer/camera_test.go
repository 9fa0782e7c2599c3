package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/scene"
)

func lookDownZ() scene.CameraConfig {
	return scene.CameraConfig{
		Position:     core.NewVec3(0, 0, 0),
		Direction:    core.NewVec3(0, 0, -1),
		Up:           core.NewVec3(0, 1, 0),
		SensorHeight: 30,
		SensorDist:   40,
	}
}

func TestCameraCenterRay(t *testing.T) {
	camera := NewCamera(lookDownZ(), 3, 3)
	ray := camera.GetRay(1, 1)

	if ray.Origin != core.NewVec3(0, 0, 0) {
		t.Errorf("Expected origin at camera position, got %v", ray.Origin)
	}
	if ray.Direction.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-12 {
		t.Errorf("Center pixel should look along the view direction, got %v", ray.Direction)
	}
}

func TestCameraOrientation(t *testing.T) {
	camera := NewCamera(lookDownZ(), 4, 2)

	topLeft := camera.GetRay(0, 0).Direction
	bottomRight := camera.GetRay(3, 1).Direction

	if topLeft.X >= 0 || topLeft.Y <= 0 {
		t.Errorf("Top-left pixel should look left and up, got %v", topLeft)
	}
	if bottomRight.X <= 0 || bottomRight.Y >= 0 {
		t.Errorf("Bottom-right pixel should look right and down, got %v", bottomRight)
	}
	for _, d := range []core.Vec3{topLeft, bottomRight} {
		if math.Abs(d.Length()-1) > 1e-12 {
			t.Errorf("Ray direction not normalized: %v", d)
		}
	}
}

func TestCameraAspectRatio(t *testing.T) {
	// Sensor width follows the aspect ratio: 30 * 4/2 = 60 wide at distance 40
	camera := NewCamera(lookDownZ(), 4, 2)
	d := camera.GetRay(3, 0).Direction
	// Pixel 3 of 4 is centered at u = 0.375, row 0 of 2 at v = 0.25
	expected := core.NewVec3(60*0.375, 30*0.25, -40).Normalize()
	if d.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, d)
	}
}
