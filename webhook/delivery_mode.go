package webhook

import "fmt"

/* DispatchMode represents how an outgoing webhook call is performed
 * Async hands the call to the background executor and returns at once
 * Sync blocks the caller until the target answers or the timeout expires
 */
type DispatchMode int

const (
	Async DispatchMode = iota + 1
	Sync
)

// String returns the string representation of the dispatch mode
func (d DispatchMode) String() string {
	switch d {
	case Async:
		return "async"
	case Sync:
		return "sync"
	default:
		return "unknown"
	}
}

// NewDispatchMode creates a DispatchMode from the async_mode flag
func NewDispatchMode(async bool) DispatchMode {
	if async {
		return Async
	}
	return Sync
}

// Validate checks if the dispatch mode is valid
func (d DispatchMode) Validate() error {
	if d != Async && d != Sync {
		return fmt.Errorf("invalid dispatch mode: %d", d)
	}
	return nil
}
