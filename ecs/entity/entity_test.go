package entity

import (
	"errors"
	"testing"

	"github.com/milk9111/touchmove/ecs"
	"github.com/milk9111/touchmove/ecs/component"
	"github.com/milk9111/touchmove/movement"
	"github.com/milk9111/touchmove/prefabs"
)

func TestNewLevelFromPrefab(t *testing.T) {
	spec, err := prefabs.LoadLevelSpec("level")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	w := ecs.NewWorld()
	level, space, err := NewLevel(w, spec, 9.81)
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	if got := len(space.Platforms()); got != len(spec.Platforms) {
		t.Fatalf("platforms = %d, want %d", got, len(spec.Platforms))
	}
	sc, ok := ecs.Get(w, level, component.SpaceComponent.Kind())
	if !ok || sc.KillPlane != spec.FallLimit() {
		t.Fatalf("space component = %+v", sc)
	}
	if !ecs.Has(w, level, component.BannerSourceComponent.Kind()) {
		t.Fatalf("banner template missing")
	}
	if _, _, err := NewLevel(w, nil, 9.81); err == nil {
		t.Fatalf("nil spec accepted")
	}
}

func TestPlayerBuildAndReload(t *testing.T) {
	w := ecs.NewWorld()
	spec, _ := prefabs.LoadLevelSpec("level")
	_, space, err := NewLevel(w, spec, 9.81)
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	_, cam, err := NewCamera(w)
	if err != nil {
		t.Fatalf("camera: %v", err)
	}

	player, err := NewPlayer(w, PlayerOptions{Preset: "biffo", Spawn: &spec.Spawn, Camera: cam, Space: space})
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	for _, kind := range []component.Kind{
		component.PlayerTagComponent.Kind(),
		component.TransformComponent.Kind(),
		component.MoverComponent.Kind(),
		component.BodyComponent.Kind(),
		component.RespawnComponent.Kind(),
		component.AnimationComponent.Kind(),
	} {
		if !w.HasComponent(player, kind) {
			t.Fatalf("player missing component %d", kind.ID())
		}
	}

	m, _ := ecs.Get(w, player, component.MoverComponent.Kind())
	if m.Preset != "biffo" || m.Controller.Config().Locomotion.Integration != movement.IntegrateKinematic {
		t.Fatalf("mover = %s %v", m.Preset, m.Controller.Config().Locomotion.Integration)
	}
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if tr.Position != spec.Spawn.Position() {
		t.Fatalf("spawn = %v, want %v", tr.Position, spec.Spawn.Position())
	}
	if !m.Controller.Probe() {
		t.Fatalf("player should stand on the floor at spawn")
	}

	playerSpec, _ := prefabs.LoadPlayerSpec()
	if err := ReloadPlayer(w, player, playerSpec, "touch_rb"); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if m.Preset != "touch_rb" || m.Controller.Config().Jump.Strategy != movement.JumpAnimationTrigger {
		t.Fatalf("reload kept %s", m.Preset)
	}

	DestroyPlayer(w, player)
	if err := ReloadPlayer(w, player, playerSpec, ""); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("reload of destroyed player: %v", err)
	}
	if len(space.Platforms()) == 0 {
		t.Fatalf("space lost its platforms")
	}
}
