package ecs

import "github.com/milk9111/doggo/ecs/component"

// System updates a world once per stage run.
type System interface {
	Update(w *World)
}

// World owns entities and their component stores.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes the entity and every component attached to it.
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

// First returns the first live entity holding the component kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	store := w.store(kind)
	for _, e := range store.Entities() {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}

// Query returns live entities that hold every listed component kind.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		store := w.store(k)
		if store == nil {
			return nil
		}
		sets = append(sets, store)
	}
	out := intersectEntities(sets)
	live := out[:0]
	for _, e := range out {
		if w.entities.isAlive(e) {
			live = append(live, e)
		}
	}
	return live
}

func (w *World) store(kind component.Kind) *SparseSet {
	if w == nil || w.stores == nil || kind == nil {
		return nil
	}
	return w.stores[kind.ID()]
}

func (w *World) ensureStore(kind component.Kind) *SparseSet {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	store, ok := w.stores[kind.ID()]
	if !ok {
		store = &SparseSet{}
		w.stores[kind.ID()] = store
	}
	return store
}
