package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/touchmove/ecs"
	"github.com/milk9111/touchmove/ecs/component"
	"github.com/milk9111/touchmove/movement"
	"github.com/milk9111/touchmove/physics"
)

// PoseApplySystem writes each mover's pose delta to its transform. Agent
// driven movers only take the rotation here; PhysicsSystem copies their
// position after the step. Kinematic movers are snapped to the ground and
// handed to their agent so walls still block them.
type PoseApplySystem struct{}

func NewPoseApplySystem() *PoseApplySystem {
	return &PoseApplySystem{}
}

func (s *PoseApplySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	space := levelSpace(w)
	dt := w.Delta()
	ecs.ForEach2(w, component.MoverComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, m *component.Mover, t *component.Transform) {
		if m.Controller == nil {
			return
		}
		t.Rotation = m.Delta.Rotation

		var agent *physics.Agent
		if body, ok := ecs.Get(w, e, component.BodyComponent.Kind()); ok {
			agent = body.Agent
		}
		kinematic := m.Controller.Config().Locomotion.Integration == movement.IntegrateKinematic
		if agent != nil && !kinematic {
			agent.SetKinematic(false)
			return
		}

		pos := m.Delta.Position
		if space != nil {
			if snapped, ok := snapToGround(space, m, pos); ok {
				pos = snapped
				m.Controller.Locomotion.SetPosition(pos)
				if !m.Grounded {
					m.Controller.Locomotion.SetVerticalVelocity(0)
				}
			}
		}
		t.Position = pos
		if agent != nil {
			agent.SetKinematic(true)
			agent.Slide(m.Delta.Displacement[0], m.Delta.Displacement[2], pos[1], dt)
		}
	})
}

// snapToGround puts grounded feet on the surface and catches a falling mover
// that sank through a surface within this tick's drop.
func snapToGround(space *physics.Space, m *component.Mover, pos mgl64.Vec3) (mgl64.Vec3, bool) {
	if m.Delta.Velocity[1] > 0 {
		return pos, false
	}
	cfg := m.Controller.Config().Jump
	reach := cfg.ProbeLift
	if !m.Grounded {
		reach -= m.Delta.Displacement[1]
	}
	top, ok := space.GroundBelow(pos, reach, physics.CategoryGround)
	if !ok {
		return pos, false
	}
	if m.Grounded {
		if pos[1]-top > cfg.GroundCheckDistance {
			return pos, false
		}
	} else if pos[1] >= top {
		return pos, false
	}
	pos[1] = top
	return pos, true
}

func levelSpace(w *ecs.World) *physics.Space {
	sc := levelSpaceComponent(w)
	if sc == nil {
		return nil
	}
	return sc.Space
}

func levelSpaceComponent(w *ecs.World) *component.Space {
	e, ok := w.First(component.SpaceComponent.Kind())
	if !ok {
		return nil
	}
	sc, ok := ecs.Get(w, e, component.SpaceComponent.Kind())
	if !ok || sc.Space == nil {
		return nil
	}
	return sc
}
