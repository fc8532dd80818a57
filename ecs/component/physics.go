package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/touchmove/physics"
)

// Body links an entity to its physics agent.
type Body struct {
	Agent *physics.Agent
}

var BodyComponent = NewComponent[Body]()

// Space is the level's collision space. One per world.
type Space struct {
	Space *physics.Space
	// KillPlane sends movers below this height back to their spawn.
	KillPlane float64
}

var SpaceComponent = NewComponent[Space]()

// Respawn is where a mover returns after falling out of the level.
type Respawn struct {
	Position mgl64.Vec3
	Heading  mgl64.Quat
	Count    int
}

var RespawnComponent = NewComponent[Respawn]()
