package ecs

import (
	"fmt"

	"github.com/milk9111/touchmove/ecs/component"
)

// DefaultTickRate matches ebiten's default TPS.
const DefaultTickRate = 60

// World owns entities, component stores, the system schedule and the
// per-tick event queue.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	scheduler *Scheduler
	events    EventQueue

	dt   float64
	tick uint64
}

// NewWorld creates an empty ECS world ticking at DefaultTickRate.
func NewWorld() *World {
	return &World{
		stores:    make(map[component.ComponentID]*SparseSet),
		scheduler: NewScheduler(),
		dt:        1.0 / DefaultTickRate,
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and invalidates the handle.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// Systems returns the update order.
func (w *World) Systems() []System {
	if w == nil {
		return nil
	}
	return w.scheduler.Systems()
}

// Timings reports how long each system took on the last tick.
func (w *World) Timings() []SystemTiming {
	if w == nil {
		return nil
	}
	return w.scheduler.Timings()
}

// SetTickRate sets the fixed step used by Update. Non-positive rates are
// ignored.
func (w *World) SetTickRate(tps float64) {
	if w == nil || tps <= 0 {
		return
	}
	w.dt = 1.0 / tps
}

// Delta returns the fixed step in seconds.
func (w *World) Delta() float64 {
	if w == nil {
		return 0
	}
	return w.dt
}

// Tick returns how many updates have started.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// Update runs all systems once. Events from the previous tick that nobody
// drained are dropped first, so callers can read this tick's events after
// Update returns.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.events.flush()
	w.tick++
	w.scheduler.Update(w)
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// AddComponent stores value under kind for e.
func (w *World) AddComponent(e Entity, kind component.Kind, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if kind == nil || !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return fmt.Errorf("%w: %s", component.ErrNilComponent, kind.Name())
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

// GetComponent returns the raw value stored under kind for e.
func (w *World) GetComponent(e Entity, kind component.Kind) (any, bool) {
	if w == nil || kind == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	store := w.store(kind.ID(), false)
	if store == nil {
		return nil, false
	}
	v := store.Get(e)
	return v, v != nil
}

// HasComponent reports whether e has a value under kind.
func (w *World) HasComponent(e Entity, kind component.Kind) bool {
	_, ok := w.GetComponent(e, kind)
	return ok
}

// RemoveComponent drops the value under kind for e.
func (w *World) RemoveComponent(e Entity, kind component.Kind) bool {
	if w == nil || kind == nil {
		return false
	}
	store := w.store(kind.ID(), false)
	if store == nil {
		return false
	}
	return store.Remove(e)
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	store := w.stores[id]
	if store == nil && create {
		store = &SparseSet{}
		w.stores[id] = store
	}
	return store
}
