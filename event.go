package bevi

// EventBuffer is a per-type, append-only event channel with a
// single-tick visibility window. Values emitted during a tick are
// visible to every system scheduled at or after the emission point and
// are cleared by a dedicated system at the EventReset stage, so
// nothing carries over into the next tick unless re-emitted.
type EventBuffer[T any] struct {
	values []T
}

// Emit appends a value to the buffer.
func (b *EventBuffer[T]) Emit(v T) {
	b.values = append(b.values, v)
}

// Read returns the current buffer contents in emission order without
// consuming them; any number of systems may read the same values
// within the visibility window.
func (b *EventBuffer[T]) Read() []T {
	return b.values
}

// Clear empties the buffer.
func (b *EventBuffer[T]) Clear() {
	b.values = b.values[:0]
}

// AddEvent registers the event channel for type T: it inserts an empty
// EventBuffer[T] resource and schedules its clearing system at the
// EventReset stage. Clearing runs exactly once per tick.
func AddEvent[T any](b *Builder) *Builder {
	buf := &EventBuffer[T]{}
	b.InsertResource(buf)
	b.AddSystemToStage(EventReset, SystemFunc(func(*Context) {
		buf.Clear()
	}))
	return b
}

// EmitEvent appends a value to the event channel for type T. The
// channel must have been registered with AddEvent.
func EmitEvent[T any](c *Context, v T) {
	Resource[EventBuffer[T]](c).Emit(v)
}

// ReadEvents returns the values currently visible on the event channel
// for type T, in emission order.
func ReadEvents[T any](c *Context) []T {
	return Resource[EventBuffer[T]](c).Read()
}
