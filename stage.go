package bevi

// Stage represents a scheduling stage for system execution.
// Systems are executed in ascending stage order each tick; within a
// stage, registration order is preserved.
type Stage int

const (
	// First runs before everything else. Use for input snapshots and
	// bookkeeping other systems depend on.
	First Stage = iota

	// AssetLoad integrates finished asset loads into their stores.
	AssetLoad

	// AssetEvents is where asset Added/Removed events are consumed.
	AssetEvents

	// PreUpdate runs before the main Update stage for preparatory logic.
	PreUpdate

	// Update runs the main application logic.
	Update

	// PostUpdate runs after Update for cleanup and derived state.
	PostUpdate

	// PreRender prepares render state from simulation state.
	PreRender

	// Render produces output.
	Render

	// Last is the final ordinary stage of a tick.
	Last

	// EventReset is reserved for event-clearing systems. It runs
	// strictly after Last so every ordinary system of the tick has had
	// a chance to read the events emitted during it.
	EventReset

	// stageCount is the total number of stages.
	stageCount
)

// String returns the string representation of the stage.
func (s Stage) String() string {
	switch s {
	case First:
		return "First"
	case AssetLoad:
		return "AssetLoad"
	case AssetEvents:
		return "AssetEvents"
	case PreUpdate:
		return "PreUpdate"
	case Update:
		return "Update"
	case PostUpdate:
		return "PostUpdate"
	case PreRender:
		return "PreRender"
	case Render:
		return "Render"
	case Last:
		return "Last"
	case EventReset:
		return "EventReset"
	default:
		return "Unknown"
	}
}
