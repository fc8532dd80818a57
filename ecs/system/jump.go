package system

import (
	"github.com/milk9111/touchmove/ecs"
	"github.com/milk9111/touchmove/ecs/component"
	"github.com/milk9111/touchmove/logger"
)

// JumpSystem advances jump gating and consumes pending jump requests.
type JumpSystem struct{}

func NewJumpSystem() *JumpSystem {
	return &JumpSystem{}
}

func (s *JumpSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	ecs.ForEach(w, component.MoverComponent.Kind(), func(e ecs.Entity, m *component.Mover) {
		if m.Controller == nil {
			return
		}
		if m.Controller.StepJump(dt, m.Grounded) {
			logger.L().Debug("jump: accepted", "entity", e, "tick", w.Tick())
			w.Events().Push(ecs.Event{Type: ecs.EventJumped, Entity: e})
		}
	})
}
