package bevi

// System is the interface implemented by every unit of behavior the
// scheduler executes. Run is called at most once per qualifying tick
// with the application context.
type System interface {
	Run(*Context)
}

// SystemFunc adapts an ordinary function to the System interface.
type SystemFunc func(*Context)

// Run calls f.
func (f SystemFunc) Run(c *Context) { f(c) }

// ArchetypeObserver is an optional extension of System. After the
// per-stage sweep of a tick, the scheduler calls ArchetypeAdded once
// for every component combination observed for the first time since
// the previous tick, so the system can extend its query caches
// incrementally instead of rescanning all entities.
type ArchetypeObserver interface {
	ArchetypeAdded(*Archetype)
}

// systemKind determines when a registered system qualifies to run.
type systemKind uint8

const (
	// kindStateless systems run every tick at their stage.
	kindStateless systemKind = iota

	// kindStateful systems run at their stage only while the
	// application state captured at the start of the tick equals theirs.
	kindStateful

	// kindOnEnter systems run only when their state is entered.
	kindOnEnter

	// kindOnExit systems run only when their state is exited.
	kindOnExit
)

// systemEntry is one registration in the schedule. Entries are
// immutable after registration and never removed at runtime.
type systemEntry struct {
	system System
	stage  Stage
	kind   systemKind
	state  any // nil unless kind is stateful/onEnter/onExit
}
