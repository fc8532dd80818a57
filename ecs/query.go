package ecs

import "github.com/milk9111/touchmove/ecs/component"

// Query returns live entities that hold every kind. It walks the smallest
// store and probes the others.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	stores := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		if k == nil {
			return nil
		}
		store := w.store(k.ID(), false)
		if store == nil || store.Len() == 0 {
			return nil
		}
		stores = append(stores, store)
	}

	smallest := stores[0]
	for _, s := range stores[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}

	out := make([]Entity, 0, smallest.Len())
	for _, e := range smallest.denseEntities {
		if !w.entities.isAlive(e) {
			continue
		}
		match := true
		for _, s := range stores {
			if s != smallest && !s.Has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first live entity holding kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	if w == nil || kind == nil {
		return 0, false
	}
	store := w.store(kind.ID(), false)
	if store == nil {
		return 0, false
	}
	for _, e := range store.denseEntities {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}
