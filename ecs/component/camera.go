package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera orbits a target on the ground plane. It doubles as the movement
// CameraBasis of the entities that follow it.
type Camera struct {
	TargetName string
	// Yaw and Pitch are in degrees. Yaw 0 looks along +Z.
	Yaw        float64
	Pitch      float64
	Zoom       float64
	Smoothness float64
	// Center is the smoothed look-at point.
	Center mgl64.Vec3
}

var CameraComponent = NewComponent[Camera]()

func (c *Camera) Forward() mgl64.Vec3 {
	yaw := mgl64.DegToRad(c.Yaw)
	return mgl64.Vec3{math.Sin(yaw), 0, math.Cos(yaw)}
}

func (c *Camera) Right() mgl64.Vec3 {
	yaw := mgl64.DegToRad(c.Yaw)
	return mgl64.Vec3{math.Cos(yaw), 0, -math.Sin(yaw)}
}
