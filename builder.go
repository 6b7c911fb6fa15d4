package bevi

import (
	"reflect"
	"sort"

	"go.uber.org/zap"
)

// Builder accumulates registrations and freezes them into a runnable
// App. Use NewApp to create a builder and chain configuration methods.
// All registration happens before Build; systems are never added or
// removed at runtime.
type Builder struct {
	app     *App
	startup []System
	entries []systemEntry
	initial any
	built   bool
}

// NewApp creates a new application builder.
func NewApp() *Builder {
	app := &App{
		world:     NewWorld(),
		resources: newResourceStore(),
		logger:    zap.NewNop(),
	}
	app.ctx = &Context{app: app, commands: &Commands{app: app}}
	return &Builder{app: app}
}

// AddSystem registers a system at the Update stage that runs every tick.
func (b *Builder) AddSystem(s System) *Builder {
	return b.AddSystemToStage(Update, s)
}

// AddSystemToStage registers a system at the given stage that runs
// every tick.
func (b *Builder) AddSystemToStage(stage Stage, s System) *Builder {
	b.entries = append(b.entries, systemEntry{system: s, stage: stage, kind: kindStateless})
	return b
}

// AddStartupSystem registers a system that runs exactly once, during
// Build, before any ticking.
func (b *Builder) AddStartupSystem(s System) *Builder {
	b.startup = append(b.startup, s)
	return b
}

// AddSystemInState registers a system at the given stage that runs
// only while the current application state equals state.
func (b *Builder) AddSystemInState(stage Stage, state any, s System) *Builder {
	b.entries = append(b.entries, systemEntry{system: s, stage: stage, kind: kindStateful, state: state})
	return b
}

// OnEnterState registers a listener that runs only when state is
// entered, never in the normal per-stage sweep.
func (b *Builder) OnEnterState(state any, s System) *Builder {
	b.entries = append(b.entries, systemEntry{system: s, stage: Update, kind: kindOnEnter, state: state})
	return b
}

// OnExitState registers a listener that runs only when state is
// exited, never in the normal per-stage sweep.
func (b *Builder) OnExitState(state any, s System) *Builder {
	b.entries = append(b.entries, systemEntry{system: s, stage: Update, kind: kindOnExit, state: state})
	return b
}

// InsertResource inserts a singleton resource, replacing any previous
// value of the same type.
func (b *Builder) InsertResource(v any) *Builder {
	b.app.resources.insert(v)
	return b
}

// InitResource inserts a zero-valued resource of type T only if no
// value of that type is present. It is idempotent and never clobbers
// an existing value.
func InitResource[T any](b *Builder) *Builder {
	if !b.app.resources.contains(reflect.TypeOf((*T)(nil)).Elem()) {
		b.app.resources.insert(new(T))
	}
	return b
}

// InitialState designates the initial application state and enables
// the state machine.
func (b *Builder) InitialState(state any) *Builder {
	if state == nil {
		panic("bevi: initial state must not be nil")
	}
	b.initial = state
	return b
}

// WithLogger sets the application logger. The default is a no-op
// logger, keeping the library quiet unless a host opts in.
func (b *Builder) WithLogger(l *zap.Logger) *Builder {
	b.app.logger = l
	return b
}

// SetRunner sets the host loop that Run hands the built App to.
func (b *Builder) SetRunner(runner func(*App)) *Builder {
	b.app.runner = runner
	return b
}

// AddPlugin applies a registration function to the builder, so related
// resources, events and systems can be installed as a unit.
func (b *Builder) AddPlugin(p func(*Builder)) *Builder {
	p(b)
	return b
}

// Build freezes the builder into a runnable App. It executes exactly
// once, in order:
//
//  1. Every startup system runs in registration order, with deferred
//     mutations flushed after each.
//  2. The States resource is inserted with the initial state current
//     and no transition pending.
//  3. Stage-scoped systems are stable-sorted by stage.
//  4. Every enter listener for the initial state runs, flushed after
//     each, so the initial state is entered exactly like any later
//     transition would be.
func (b *Builder) Build() *App {
	if b.built {
		panic("bevi: Build called twice")
	}
	b.built = true
	app := b.app

	for _, s := range b.startup {
		app.runSystem(s)
	}

	if b.initial != nil {
		app.states = &States{current: b.initial}
		app.resources.insert(app.states)
	}

	sort.SliceStable(b.entries, func(i, j int) bool {
		return b.entries[i].stage < b.entries[j].stage
	})
	app.systems = b.entries

	if b.initial != nil {
		app.runListeners(kindOnEnter, b.initial)
		app.logger.Debug("entered initial state", zap.Any("state", b.initial))
	}

	// lastGen stays at zero: combinations observed during startup and
	// initial-enter systems are announced on the first tick.
	return app
}

// Run builds the App and hands it to the configured runner. Without a
// runner, Run is equivalent to Build and returns immediately.
func (b *Builder) Run() {
	app := b.Build()
	if app.runner != nil {
		app.runner(app)
	}
}
