package bevi

import "reflect"

// Commands is the deferred-mutation buffer handed to systems.
// Structural changes queued here are applied at a fixed flush point:
// immediately after the queuing system returns and before the next
// system starts. A system therefore always observes the structural
// effects of every system that ran earlier in the same tick.
type Commands struct {
	app   *App
	queue []func(*App)
}

// Spawn queues the creation of an entity with the given components.
// The entity ID is allocated immediately so it can be referenced by
// later commands, but the entity only becomes alive at the flush point.
func (c *Commands) Spawn(components ...any) Entity {
	e := c.app.world.reserve()
	c.queue = append(c.queue, func(a *App) {
		a.world.materialize(e, components)
	})
	return e
}

// Insert queues attaching components to an entity.
func (c *Commands) Insert(e Entity, components ...any) {
	c.queue = append(c.queue, func(a *App) {
		a.world.Insert(e, components...)
	})
}

// Remove queues detaching the component of type T from an entity.
func Remove[T any](c *Commands, e Entity) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	c.queue = append(c.queue, func(a *App) {
		a.world.Remove(e, t)
	})
}

// Despawn queues removal of the entity and all of its components.
func (c *Commands) Despawn(e Entity) {
	c.queue = append(c.queue, func(a *App) {
		a.world.Despawn(e)
	})
}

// InsertResource queues an insert-or-replace of a singleton resource.
func (c *Commands) InsertResource(v any) {
	resourceKey(v) // validate at queue time, where the caller is on the stack
	c.queue = append(c.queue, func(a *App) {
		a.resources.insert(v)
	})
}

// flush applies all queued commands in order and empties the buffer.
func (c *Commands) flush() {
	for i := 0; i < len(c.queue); i++ {
		c.queue[i](c.app)
	}
	c.queue = c.queue[:0]
}
