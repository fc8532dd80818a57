package system

import (
	"github.com/milk9111/touchmove/ecs"
	"github.com/milk9111/touchmove/ecs/component"
)

// PhysicsSystem steps the level space and copies agent positions back to
// transforms. Kinematic movers also take the wall-resolved position.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

func (p *PhysicsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	space := levelSpace(w)
	if space == nil {
		return
	}
	space.Step(w.Delta())

	ecs.ForEach2(w, component.BodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.Body, t *component.Transform) {
		if b.Agent == nil {
			return
		}
		t.Position = b.Agent.Position()
		if !b.Agent.Kinematic() {
			return
		}
		if m, ok := ecs.Get(w, e, component.MoverComponent.Kind()); ok && m.Controller != nil {
			m.Controller.Locomotion.SetPosition(t.Position)
		}
	})
}
