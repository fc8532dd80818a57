package system

import "github.com/milk9111/touchmove/ecs"

// MovementSystems returns the per-tick schedule. The probe runs once before
// jump gating, which runs before locomotion.
func MovementSystems() []ecs.System {
	return []ecs.System{
		NewInputSystem(),
		NewGroundProbeSystem(),
		NewJumpSystem(),
		NewLocomotionSystem(),
		NewPoseApplySystem(),
		NewPhysicsSystem(),
		NewRespawnSystem(),
		NewCameraSystem(),
		NewAnimationSystem(),
		NewTimerSystem(),
	}
}
