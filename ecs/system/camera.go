package system

import (
	"github.com/milk9111/touchmove/common"
	"github.com/milk9111/touchmove/ecs"
	"github.com/milk9111/touchmove/ecs/component"
)

// CameraSystem eases each camera's center toward the player.
type CameraSystem struct {
	snapped map[ecs.Entity]bool
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{snapped: make(map[ecs.Entity]bool)}
}

func (s *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	target, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, target, component.TransformComponent.Kind())
	if !ok {
		return
	}

	ecs.ForEach(w, component.CameraComponent.Kind(), func(e ecs.Entity, c *component.Camera) {
		if !s.snapped[e] {
			c.Center = t.Position
			s.snapped[e] = true
			return
		}
		smooth := common.Clamp(c.Smoothness, 0, 1)
		if smooth == 0 {
			smooth = 1
		}
		c.Center = c.Center.Add(t.Position.Sub(c.Center).Mul(smooth))
	})
}
