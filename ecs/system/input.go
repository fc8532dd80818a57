package system

import (
	"github.com/milk9111/touchmove/ecs"
	"github.com/milk9111/touchmove/ecs/component"
	"github.com/milk9111/touchmove/input"
	"github.com/milk9111/touchmove/logger"
)

// InputSystem drains each entity's input source into its controller.
type InputSystem struct {
	warn logger.Sometimes
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (s *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.InputComponent.Kind(), component.MoverComponent.Kind(), func(e ecs.Entity, in *component.Input, m *component.Mover) {
		in.Events = in.Events[:0]
		in.Err = nil
		if in.Source == nil || m.Controller == nil {
			return
		}

		events, err := in.Source.Poll()
		if err != nil {
			in.Err = err
			s.warn.Warn("input: poll failed", "entity", e, "err", err)
			return
		}
		in.Events = append(in.Events, events...)
		if input.Apply(m.Controller.Input, events) {
			m.Controller.RequestJump()
		}
	})
}
