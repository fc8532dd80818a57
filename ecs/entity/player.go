package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/touchmove/common"
	"github.com/milk9111/touchmove/ecs"
	"github.com/milk9111/touchmove/ecs/component"
	"github.com/milk9111/touchmove/input"
	"github.com/milk9111/touchmove/movement"
	"github.com/milk9111/touchmove/physics"
	"github.com/milk9111/touchmove/prefabs"
)

// PlayerOptions override parts of the player prefab.
type PlayerOptions struct {
	// Preset replaces the prefab's preset when set.
	Preset string
	// Spawn places the player; nil keeps the prefab transform.
	Spawn  *prefabs.TransformSpec
	Source input.Source
	Camera *component.Camera
	Space  *physics.Space
}

func NewPlayer(w *ecs.World, opts PlayerOptions) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}
	return NewPlayerFromSpec(w, spec, opts)
}

func NewPlayerFromSpec(w *ecs.World, spec *prefabs.PlayerSpec, opts PlayerOptions) (ecs.Entity, error) {
	if opts.Preset != "" {
		spec.Preset = opts.Preset
	}
	cfg, err := spec.MovementConfig()
	if err != nil {
		return 0, err
	}

	place := spec.Transform
	if opts.Spawn != nil {
		place = *opts.Spawn
	}
	pos := place.Position()
	heading := common.YawRotation(mgl64.DegToRad(place.Yaw))

	player := ecs.CreateEntity(w)
	if err := ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{
		Position: pos,
		Rotation: heading,
	}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	var deps movement.Deps
	if opts.Camera != nil {
		deps.Camera = opts.Camera
	}
	if opts.Space != nil {
		agent := opts.Space.NewAgent(pos, spec.Collider.Radius)
		deps.Navigator = agent
		deps.Body = agent
		deps.Probe = feetProbe(w, player, opts.Space, cfg.Jump)
		if err := ecs.Add(w, player, component.BodyComponent.Kind(), &component.Body{Agent: agent}); err != nil {
			return 0, fmt.Errorf("player: add body: %w", err)
		}
	}
	animator := movement.NewParamAnimator()
	deps.Animator = animator

	ctrl := movement.NewController(cfg, deps)
	ctrl.Locomotion.SetPosition(pos)
	ctrl.Locomotion.SetHeading(heading)

	if err := ecs.Add(w, player, component.MoverComponent.Kind(), &component.Mover{
		Controller: ctrl,
		Preset:     spec.Preset,
	}); err != nil {
		return 0, fmt.Errorf("player: add mover: %w", err)
	}
	if err := ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{Source: opts.Source}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, player, component.RespawnComponent.Kind(), &component.Respawn{
		Position: pos,
		Heading:  heading,
	}); err != nil {
		return 0, fmt.Errorf("player: add respawn: %w", err)
	}
	if err := ecs.Add(w, player, component.AnimationComponent.Kind(), &component.Animation{
		Params:  animator,
		Defs:    component.DefaultAnimationDefs(),
		Current: component.ClipIdle,
		Playing: true,
	}); err != nil {
		return 0, fmt.Errorf("player: add animation: %w", err)
	}

	return player, nil
}

// ReloadPlayer applies a changed prefab to a live player. The pose and jump
// state are kept.
func ReloadPlayer(w *ecs.World, player ecs.Entity, spec *prefabs.PlayerSpec, preset string) error {
	m, ok := ecs.Get(w, player, component.MoverComponent.Kind())
	if !ok || m.Controller == nil {
		return fmt.Errorf("player: reload %v: %w", player, component.ErrEntityNotAlive)
	}
	if preset != "" {
		spec.Preset = preset
	}
	cfg, err := spec.MovementConfig()
	if err != nil {
		return err
	}
	m.Controller.SetConfig(cfg)
	m.Preset = spec.Preset
	if sc, ok := levelSpace(w); ok {
		m.Controller.SetProbe(feetProbe(w, player, sc, cfg.Jump))
	}
	return nil
}

// DestroyPlayer drops the player's pending jump wait and its agent before
// removing it.
func DestroyPlayer(w *ecs.World, player ecs.Entity) bool {
	if m, ok := ecs.Get(w, player, component.MoverComponent.Kind()); ok && m.Controller != nil {
		if m.Controller.Destroy() {
			w.Events().Push(ecs.Event{Type: ecs.EventJumpCanceled, Entity: player})
		}
	}
	if body, ok := ecs.Get(w, player, component.BodyComponent.Kind()); ok && body.Agent != nil {
		body.Agent.Remove()
	}
	return ecs.DestroyEntity(w, player)
}

// feetProbe casts down from the entity's transform.
func feetProbe(w *ecs.World, e ecs.Entity, space *physics.Space, cfg movement.JumpConfig) *physics.Probe {
	probe := space.NewProbe(func() mgl64.Vec3 {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return mgl64.Vec3{0, -1e9, 0}
		}
		return t.Position
	}, cfg.GroundCheckDistance)
	probe.Lift = cfg.ProbeLift
	return probe
}

func levelSpace(w *ecs.World) (*physics.Space, bool) {
	e, ok := w.First(component.SpaceComponent.Kind())
	if !ok {
		return nil, false
	}
	sc, ok := ecs.Get(w, e, component.SpaceComponent.Kind())
	if !ok || sc.Space == nil {
		return nil, false
	}
	return sc.Space, true
}
