package renderer

import (
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/scene"
)

// Camera is a pinhole camera with a flat sensor in front of the eye
type Camera struct {
	position     core.Vec3
	screenCenter core.Vec3
	screenX      core.Vec3 // Full sensor width, pointing right
	screenY      core.Vec3 // Full sensor height, pointing up
	width        int
	height       int
}

// NewCamera creates a camera for an image of width x height pixels.
// The sensor width follows the image aspect ratio.
func NewCamera(config scene.CameraConfig, width, height int) *Camera {
	direction := config.Direction.Normalize()
	sensorHeight := config.SensorHeight
	sensorWidth := sensorHeight * float64(width) / float64(height)

	screenX := direction.Cross(config.Up).Normalize().Multiply(sensorWidth)
	screenY := screenX.Cross(direction).Normalize().Multiply(sensorHeight)

	return &Camera{
		position:     config.Position,
		screenCenter: config.Position.Add(direction.Multiply(config.SensorDist)),
		screenX:      screenX,
		screenY:      screenY,
		width:        width,
		height:       height,
	}
}

// GetRay returns the ray through the center of pixel (i, j), with j = 0 the top row
func (c *Camera) GetRay(i, j int) core.Ray {
	u := (float64(i)+0.5)/float64(c.width) - 0.5
	v := (float64(c.height-1-j)+0.5)/float64(c.height) - 0.5

	target := c.screenCenter.Add(c.screenX.Multiply(u)).Add(c.screenY.Multiply(v))
	return core.NewRay(c.position, target.Subtract(c.position).Normalize())
}
