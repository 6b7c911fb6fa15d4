package bevi

import (
	"fmt"
	"reflect"
)

// Entity identifies one spawned entity.
type Entity uint32

// ComponentID is a unique identifier for a component type within one
// World. Valid IDs range from 0 to 255.
type ComponentID uint8

// maxComponents is the maximum number of component types per World.
const maxComponents = 256

// Archetype is one distinct combination of component types observed on
// at least one entity. Archetypes exist as a cache-invalidation signal
// for queries; component data itself lives in per-type stores.
type Archetype struct {
	id       int
	mask     Bitmask
	entities []Entity
}

// Mask returns the component mask of the archetype.
func (a *Archetype) Mask() Bitmask { return a.mask }

// Entities returns the live entities currently in this archetype.
// The returned slice is owned by the world and must not be retained.
func (a *Archetype) Entities() []Entity { return a.entities }

// World is the entity/component storage the scheduler is built on.
// All access is single-threaded: at any instant at most one system
// holds the world for the duration of its call.
type World struct {
	nextEntity Entity

	// Component type registry, local to this world.
	compIDs   map[reflect.Type]ComponentID
	compTypes []reflect.Type

	// Primary storage: one map per component type.
	stores [maxComponents]map[Entity]any

	// Archetype bookkeeping. len(archetypes) is the monotonically
	// increasing generation counter.
	archetypes []*Archetype
	archByMask map[Bitmask]int
	entityArch map[Entity]int

	// reserved holds entities handed out by a command buffer that have
	// not been materialized yet.
	reserved map[Entity]bool

	changeTick uint64
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{
		compIDs:    make(map[reflect.Type]ComponentID),
		archByMask: make(map[Bitmask]int),
		entityArch: make(map[Entity]int),
		reserved:   make(map[Entity]bool),
	}
}

// componentID returns the ID for a component type, registering it on
// first use.
func (w *World) componentID(t reflect.Type) ComponentID {
	if id, ok := w.compIDs[t]; ok {
		return id
	}
	if len(w.compTypes) >= maxComponents {
		panic(fmt.Sprintf("bevi: component limit exceeded (max %d types)", maxComponents))
	}
	id := ComponentID(len(w.compTypes))
	w.compIDs[t] = id
	w.compTypes = append(w.compTypes, t)
	w.stores[id] = make(map[Entity]any)
	return id
}

// componentKey derives the type identity of a pointer component.
func componentKey(v any) reflect.Type {
	t := reflect.TypeOf(v)
	if t == nil || t.Kind() != reflect.Pointer {
		panic(fmt.Sprintf("bevi: components must be pointers, got %T", v))
	}
	return t.Elem()
}

// reserve allocates an entity ID without materializing it. The entity
// becomes alive when the reserving command buffer flushes.
func (w *World) reserve() Entity {
	w.nextEntity++
	e := w.nextEntity
	w.reserved[e] = true
	return e
}

// Spawn creates an entity with the given components, immediately.
// Components must be pointers. Systems normally spawn through the
// command buffer instead, so structural changes land at the flush point.
func (w *World) Spawn(components ...any) Entity {
	e := w.reserve()
	w.materialize(e, components)
	return e
}

// materialize turns a reserved entity into a live one.
func (w *World) materialize(e Entity, components []any) {
	delete(w.reserved, e)
	var mask Bitmask
	for _, c := range components {
		id := w.componentID(componentKey(c))
		w.stores[id][e] = c
		mask.Set(id)
	}
	w.entityArch[e] = w.archetypeFor(mask)
	arch := w.archetypes[w.entityArch[e]]
	arch.entities = append(arch.entities, e)
}

// Alive reports whether the entity has been spawned and not despawned.
func (w *World) Alive(e Entity) bool {
	_, ok := w.entityArch[e]
	return ok
}

// Insert attaches components to a live entity, replacing any existing
// component of the same type.
func (w *World) Insert(e Entity, components ...any) {
	archID, ok := w.entityArch[e]
	if !ok {
		return
	}
	mask := w.archetypes[archID].mask
	for _, c := range components {
		id := w.componentID(componentKey(c))
		w.stores[id][e] = c
		mask.Set(id)
	}
	w.moveEntity(e, archID, mask)
}

// Remove detaches the component of the given type from the entity.
func (w *World) Remove(e Entity, t reflect.Type) {
	archID, ok := w.entityArch[e]
	if !ok {
		return
	}
	id, registered := w.compIDs[t]
	if !registered {
		return
	}
	delete(w.stores[id], e)
	mask := w.archetypes[archID].mask
	mask.Clear(id)
	w.moveEntity(e, archID, mask)
}

// Despawn removes the entity and all of its components.
func (w *World) Despawn(e Entity) {
	archID, ok := w.entityArch[e]
	if !ok {
		return
	}
	arch := w.archetypes[archID]
	for id := range w.compTypes {
		if arch.mask.Has(ComponentID(id)) {
			delete(w.stores[id], e)
		}
	}
	arch.removeEntity(e)
	delete(w.entityArch, e)
}

// Get returns the component of type t attached to the entity.
func (w *World) Get(e Entity, t reflect.Type) (any, bool) {
	id, ok := w.compIDs[t]
	if !ok {
		return nil, false
	}
	v, ok := w.stores[id][e]
	return v, ok
}

// Component returns the component of type T attached to the entity.
func Component[T any](w *World, e Entity) (*T, bool) {
	v, ok := w.Get(e, reflect.TypeOf((*T)(nil)).Elem())
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// archetypeFor returns the archetype ID for a mask, creating a new
// archetype when the combination is observed for the first time.
func (w *World) archetypeFor(mask Bitmask) int {
	if id, ok := w.archByMask[mask]; ok {
		return id
	}
	id := len(w.archetypes)
	w.archetypes = append(w.archetypes, &Archetype{id: id, mask: mask})
	w.archByMask[mask] = id
	return id
}

// moveEntity relocates an entity to the archetype matching its new mask.
func (w *World) moveEntity(e Entity, fromID int, mask Bitmask) {
	toID := w.archetypeFor(mask)
	if toID == fromID {
		return
	}
	w.archetypes[fromID].removeEntity(e)
	to := w.archetypes[toID]
	to.entities = append(to.entities, e)
	w.entityArch[e] = toID
}

func (a *Archetype) removeEntity(e Entity) {
	for i, other := range a.entities {
		if other == e {
			last := len(a.entities) - 1
			a.entities[i] = a.entities[last]
			a.entities = a.entities[:last]
			return
		}
	}
}

// Generation returns the number of distinct component combinations
// observed so far. It only ever grows; queries compare it against
// their cached value to extend themselves incrementally.
func (w *World) Generation() int { return len(w.archetypes) }

// archetypesSince returns the archetypes created after generation gen.
func (w *World) archetypesSince(gen int) []*Archetype {
	return w.archetypes[gen:]
}

// ChangeTick returns the current change-tracking epoch.
func (w *World) ChangeTick() uint64 { return w.changeTick }

// AdvanceChangeTick advances the change-tracking epoch. The scheduler
// calls this once at the end of every tick.
func (w *World) AdvanceChangeTick() { w.changeTick++ }
