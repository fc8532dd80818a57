package system

import (
	"github.com/milk9111/touchmove/ecs"
	"github.com/milk9111/touchmove/ecs/component"
)

// LocomotionSystem runs each mover's locomotion step and publishes its
// stop and landing edges.
type LocomotionSystem struct{}

func NewLocomotionSystem() *LocomotionSystem {
	return &LocomotionSystem{}
}

func (s *LocomotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	ecs.ForEach(w, component.MoverComponent.Kind(), func(e ecs.Entity, m *component.Mover) {
		if m.Controller == nil {
			return
		}
		m.Delta = m.Controller.StepLocomotion(dt, m.Grounded)
		if m.Delta.Stopped {
			w.Events().Push(ecs.Event{Type: ecs.EventStopped, Entity: e})
		}
		if m.Delta.Landed {
			w.Events().Push(ecs.Event{Type: ecs.EventLanded, Entity: e})
		}
	})
}
