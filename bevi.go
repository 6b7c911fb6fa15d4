// Package bevi is a minimal single-threaded application scheduler: an
// entity/resource runtime that executes registered systems in a
// deterministic per-tick order, manages singleton resources, provides
// event channels with a single-tick visibility window, and drives an
// explicit application-state machine with enter/exit lifecycle hooks.
//
// # Quick Start
//
//	type Count struct{ N int }
//
//	app := bevi.NewApp().
//	    InsertResource(&Count{}).
//	    AddSystem(bevi.SystemFunc(func(c *bevi.Context) {
//	        bevi.Resource[Count](c).N++
//	    })).
//	    Build()
//
//	for i := 0; i < 60; i++ {
//	    app.Update()
//	}
//
// # Ticks
//
// One call to App.Update is one tick. Systems run strictly
// sequentially in ascending Stage order, registration order within a
// stage. Deferred mutations queued on the Commands buffer are flushed
// immediately after each system returns, so a system always observes
// the structural effects of every system that ran earlier in the same
// tick. There is no parallel execution and no suspension point
// anywhere inside a tick.
//
// # Resources
//
// A resource is a singleton addressable by its type; at most one live
// instance per type exists. Looking up a resource that was never
// inserted panics: a forgotten registration is a configuration bug
// that must fail fast at first use, not a runtime condition.
//
// # Events
//
// AddEvent registers a per-type append-only buffer together with a
// clearing system at the EventReset stage. A value emitted during tick
// N is visible to every system scheduled at or after the emission
// point within tick N, and to no system in tick N+1 unless re-emitted.
//
// # States
//
// The application state is a closed set of comparable values with one
// designated initial value. Context.SetState only records intent; at
// most one transition is applied per tick, at a fixed point after the
// stage sweep, always as a full exit(old) then enter(new) sequence,
// including transitions back into the current state. The initial state
// is entered during Build, exactly like any later transition.
package bevi
