package bevi

import (
	"reflect"

	"go.uber.org/zap"
)

// App is a frozen, runnable application produced by Builder.Build. A
// host drives it by calling Update once per frame; everything inside a
// tick is synchronous and single-threaded.
type App struct {
	world     *World
	resources *resourceStore
	systems   []systemEntry // stage-sorted; startup systems excluded
	states    *States       // nil for stateless applications
	logger    *zap.Logger
	ctx       *Context
	runner    func(*App)

	// lastGen is the archetype generation already announced to systems.
	lastGen int
}

// Context is the handle passed to every system call. It carries access
// to the world, the resource store, the command buffer and the state
// machine; there are no hidden globals.
type Context struct {
	app      *App
	commands *Commands
}

// World returns the entity storage.
func (c *Context) World() *World { return c.app.world }

// Commands returns the deferred-mutation buffer. Queued changes are
// applied when the current system returns.
func (c *Context) Commands() *Commands { return c.commands }

// Logger returns the application logger.
func (c *Context) Logger() *zap.Logger { return c.app.logger }

// InsertResource inserts or replaces a singleton resource immediately.
func (c *Context) InsertResource(v any) { c.app.resources.insert(v) }

// State returns the current application state. It panics if the
// application was built without an initial state.
func (c *Context) State() any { return c.app.mustStates().current }

// SetState schedules a state transition. The transition is applied at
// the end of the tick; at most one transition executes per tick.
func (c *Context) SetState(next any) { c.app.mustStates().Set(next) }

// World returns the entity storage.
func (a *App) World() *World { return a.world }

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger { return a.logger }

// Context returns the root context. Hosts use it to emit events and
// reach resources from outside any system, between ticks.
func (a *App) Context() *Context { return a.ctx }

func (a *App) resource(t reflect.Type) any { return a.resources.get(t) }

func (a *App) mustStates() *States {
	if a.states == nil {
		panic("bevi: application was built without an initial state")
	}
	return a.states
}

// Update executes one tick:
//
//  1. The current state is captured once; the snapshot governs
//     stateful-system filtering for the entire tick.
//  2. Every stage-scoped system runs in ascending stage order
//     (registration order within a stage), and its deferred mutations
//     are flushed before the next system starts.
//  3. Systems are notified once per component combination observed for
//     the first time since the previous tick.
//  4. The storage's change-tracking epoch advances.
//  5. At most one pending state transition is applied, as a full
//     exit(old) then enter(new) sequence.
func (a *App) Update() {
	var snapshot any
	if a.states != nil {
		snapshot = a.states.current
	}

	for i := range a.systems {
		e := &a.systems[i]
		switch e.kind {
		case kindStateless:
		case kindStateful:
			if e.state != snapshot {
				continue
			}
		default:
			// Enter and exit listeners never run in this sweep.
			continue
		}
		a.runSystem(e.system)
	}

	a.announceArchetypes()
	a.world.AdvanceChangeTick()
	a.applyTransition()
}

// runSystem invokes one system and immediately flushes its deferred
// mutations. Flushing per system, not per stage or per tick, is what
// guarantees a system observes the structural effects of everything
// that ran before it in the same tick.
func (a *App) runSystem(s System) {
	s.Run(a.ctx)
	a.ctx.commands.flush()
}

// announceArchetypes notifies observer systems once per component
// combination observed since the last tick.
func (a *App) announceArchetypes() {
	gen := a.world.Generation()
	if gen == a.lastGen {
		return
	}
	for _, arch := range a.world.archetypesSince(a.lastGen) {
		for i := range a.systems {
			if obs, ok := a.systems[i].system.(ArchetypeObserver); ok {
				obs.ArchetypeAdded(arch)
			}
		}
	}
	a.logger.Debug("observed new archetypes",
		zap.Int("from", a.lastGen), zap.Int("to", gen))
	a.lastGen = gen
}

// applyTransition applies at most one pending state transition. The
// pending slot is cleared before the listeners run, so a transition
// scheduled from inside a listener lands in the following tick.
func (a *App) applyTransition() {
	if a.states == nil || a.states.pending == nil {
		return
	}
	next := a.states.pending
	a.states.pending = nil
	prev := a.states.current

	a.runListeners(kindOnExit, prev)
	a.states.current = next
	a.runListeners(kindOnEnter, next)

	a.logger.Debug("applied state transition",
		zap.Any("from", prev), zap.Any("to", next))
}

// runListeners runs every enter or exit listener registered for the
// state, in registration order, flushing deferred mutations after each.
func (a *App) runListeners(kind systemKind, state any) {
	for i := range a.systems {
		e := &a.systems[i]
		if e.kind == kind && e.state == state {
			a.runSystem(e.system)
		}
	}
}
