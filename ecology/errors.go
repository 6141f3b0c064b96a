package ecology

import "fmt"

// InvalidConfigurationError reports a rejected construction, seeding or
// state-load request (§7.1): grid dimensions <= 0, a negative population,
// or a saved state whose dimensions differ from the target grid. Nothing is
// partially applied before this is returned. Out-of-range trait values are
// clamped by NewTraits, not rejected.
type InvalidConfigurationError struct {
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

// BoundsViolationError reports a request for a site outside the grid
// (§7.2). Request coordinates are never wrapped, so it applies to any
// coordinate outside the grid whether or not Wrap is set. Query helpers
// like CellAt return an empty result rather than this error: it exists for
// callers that want to distinguish the condition explicitly, via
// RequireCellAt.
type BoundsViolationError struct {
	X, Y, Width, Height int
}

func (e *BoundsViolationError) Error() string {
	return fmt.Sprintf("bounds violation: (%d,%d) outside %dx%d grid", e.X, e.Y, e.Width, e.Height)
}

// CapacityExhaustedError reports that seeding could not place the requested
// population within its retry budget (§7.3). Partial placement is accepted;
// Placed tells the caller how many cells actually landed.
type CapacityExhaustedError struct {
	Requested int
	Placed    int
}

func (e *CapacityExhaustedError) Error() string {
	return fmt.Sprintf("capacity exhausted: placed %d of %d requested", e.Placed, e.Requested)
}

// InternalInvariantError reports an unreachable situation (§7.4): a bug, not
// ordinary control flow. Step returns this instead of panicking and aborts
// the in-progress tick.
type InternalInvariantError struct {
	Reason string
}

func (e *InternalInvariantError) Error() string {
	return fmt.Sprintf("internal invariant breach: %s", e.Reason)
}
