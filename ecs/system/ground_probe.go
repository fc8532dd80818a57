package system

import (
	"github.com/milk9111/touchmove/ecs"
	"github.com/milk9111/touchmove/ecs/component"
)

// GroundProbeSystem evaluates every mover's ground probe exactly once per
// tick. Jump and locomotion read the stored result.
type GroundProbeSystem struct{}

func NewGroundProbeSystem() *GroundProbeSystem {
	return &GroundProbeSystem{}
}

func (s *GroundProbeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.MoverComponent.Kind(), func(e ecs.Entity, m *component.Mover) {
		if m.Controller == nil {
			return
		}
		m.Grounded = m.Controller.Probe()
	})
}
