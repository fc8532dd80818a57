package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is a world pose. Position is at the feet, y up.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

var TransformComponent = NewComponent[Transform]()
