package system

import (
	"github.com/milk9111/touchmove/ecs"
	"github.com/milk9111/touchmove/ecs/component"
	"github.com/milk9111/touchmove/logger"
)

type RespawnSystem struct{}

func NewRespawnSystem() *RespawnSystem { return &RespawnSystem{} }

// Update returns movers that fell below the level's kill plane to their
// spawn. It runs after PhysicsSystem so transforms hold this tick's
// position.
func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	sc := levelSpaceComponent(w)
	if sc == nil {
		return
	}

	ecs.ForEach2(w, component.RespawnComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, r *component.Respawn, t *component.Transform) {
		if t.Position[1] >= sc.KillPlane {
			return
		}

		t.Position = r.Position
		t.Rotation = r.Heading
		r.Count++

		if body, ok := ecs.Get(w, e, component.BodyComponent.Kind()); ok && body.Agent != nil {
			body.Agent.Teleport(r.Position)
		}
		if m, ok := ecs.Get(w, e, component.MoverComponent.Kind()); ok && m.Controller != nil {
			if m.Controller.Jump.Cancel() {
				w.Events().Push(ecs.Event{Type: ecs.EventJumpCanceled, Entity: e})
			}
			loco := m.Controller.Locomotion
			loco.SetPosition(r.Position)
			loco.SetHeading(r.Heading)
			loco.SetVerticalVelocity(0)
			loco.Stop()
		}
		logger.L().Info("respawn: fell out of level", "entity", e, "count", r.Count)
	})
}
