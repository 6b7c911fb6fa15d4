package bevi

// States is the application state machine resource. It holds the
// current application mode and the pending transition, if any.
//
// Set only records intent; the transition executes at a fixed point at
// the end of the tick, as a full exit(old) then enter(new) sequence.
// At most one transition is applied per tick: a transition requested
// from inside an enter or exit listener is deferred to the following
// tick by design.
type States struct {
	current any
	pending any
}

// Current returns the current application state.
func (s *States) Current() any { return s.current }

// Set schedules a transition to next. It never executes synchronously.
// Scheduling a transition to the state already current still produces
// a full exit and enter sequence; re-entering a state is a complete
// edge traversal, not a no-op.
func (s *States) Set(next any) {
	if next == nil {
		panic("bevi: cannot transition to a nil state")
	}
	s.pending = next
}
