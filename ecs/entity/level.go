package entity

import (
	"fmt"

	"github.com/milk9111/touchmove/ecs"
	"github.com/milk9111/touchmove/ecs/component"
	"github.com/milk9111/touchmove/physics"
	"github.com/milk9111/touchmove/prefabs"
)

// NewLevel builds the level entity: a physics space holding the prefab's
// platforms and walls, plus its banner template.
func NewLevel(w *ecs.World, spec *prefabs.LevelSpec, gravity float64) (ecs.Entity, *physics.Space, error) {
	if spec == nil {
		return 0, nil, fmt.Errorf("level: nil spec")
	}

	space := physics.NewSpace(gravity)
	for _, p := range spec.Platforms {
		layers := uint(physics.CategoryGround)
		if p.Layer != 0 {
			layers = p.Layer
		}
		space.AddPlatform(physics.Platform{
			Name:   p.Name,
			Min:    p.Min.Vec(),
			Max:    p.Max.Vec(),
			Top:    p.Top,
			Layers: layers,
		})
	}
	for _, wall := range spec.Walls {
		space.AddWall(wall.Min.Vec(), wall.Max.Vec())
	}

	level := ecs.CreateEntity(w)
	if err := ecs.Add(w, level, component.LevelTagComponent.Kind(), &component.LevelTag{}); err != nil {
		return 0, nil, fmt.Errorf("level: add level tag: %w", err)
	}
	if err := ecs.Add(w, level, component.SpaceComponent.Kind(), &component.Space{
		Space:     space,
		KillPlane: spec.FallLimit(),
	}); err != nil {
		return 0, nil, fmt.Errorf("level: add space: %w", err)
	}
	if spec.Banner.Text != "" {
		if err := ecs.Add(w, level, component.BannerSourceComponent.Kind(), &component.BannerSource{
			Text:    spec.Banner.Text,
			Seconds: spec.Banner.Seconds,
		}); err != nil {
			return 0, nil, fmt.Errorf("level: add banner source: %w", err)
		}
	}

	return level, space, nil
}
