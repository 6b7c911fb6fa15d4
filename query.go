package bevi

import "reflect"

// Query matches entities that carry a required set of component types.
// A query caches the archetypes it matches and extends the cache
// incrementally as new component combinations appear; it never
// rescans all entities.
type Query struct {
	world   *World
	include Bitmask
	exclude Bitmask
	matched []int // archetype IDs
	gen     int   // archetype generation already folded into matched
}

// NewQuery creates a query over the given required component types.
func (w *World) NewQuery(types ...reflect.Type) *Query {
	q := &Query{world: w}
	for _, t := range types {
		q.include.Set(w.componentID(t))
	}
	return q
}

// Without excludes entities carrying the given component type.
func (q *Query) Without(t reflect.Type) *Query {
	q.exclude.Set(q.world.componentID(t))
	q.matched = q.matched[:0]
	q.gen = 0
	return q
}

// TypeOf returns the component type key for T, for use with NewQuery
// and Without.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// sync folds archetypes created since the last call into the cache.
func (q *Query) sync() {
	if q.gen == q.world.Generation() {
		return
	}
	for _, a := range q.world.archetypesSince(q.gen) {
		q.consider(a)
	}
	q.gen = q.world.Generation()
}

// Extend folds any newly observed component combinations into the
// cache. ArchetypeObserver systems call this from their ArchetypeAdded
// hook; queries used without an observer catch up lazily on access.
func (q *Query) Extend() { q.sync() }

// consider extends the cache with a single archetype if it matches.
func (q *Query) consider(a *Archetype) {
	if a.mask.ContainsAll(q.include) && !a.mask.ContainsAny(q.exclude) {
		q.matched = append(q.matched, a.id)
	}
}

// Each calls fn for every matching entity.
func (q *Query) Each(fn func(Entity)) {
	q.sync()
	for _, id := range q.matched {
		for _, e := range q.world.archetypes[id].entities {
			fn(e)
		}
	}
}

// Entities returns all matching entities. The result is a fresh slice.
func (q *Query) Entities() []Entity {
	q.sync()
	var out []Entity
	for _, id := range q.matched {
		out = append(out, q.world.archetypes[id].entities...)
	}
	return out
}

// Single returns the unique matching entity. ok is false when there is
// no match or more than one.
func (q *Query) Single() (Entity, bool) {
	q.sync()
	var found Entity
	count := 0
	for _, id := range q.matched {
		for _, e := range q.world.archetypes[id].entities {
			found = e
			count++
			if count > 1 {
				return 0, false
			}
		}
	}
	return found, count == 1
}

// Count returns the number of matching entities.
func (q *Query) Count() int {
	q.sync()
	n := 0
	for _, id := range q.matched {
		n += len(q.world.archetypes[id].entities)
	}
	return n
}
