package webhook

import "context"

/* Small, focused interfaces following "The Go Way"
 * Interfaces abstract behavior, not things
 * Written for users of the API, not just for testing
 */

// EventReader provides read operations over ingested events
type EventReader interface {
	/* Recent returns the most recent n events in chronological order
	 * n is clamped to the number of events held
	 */
	Recent(n int) []Event
	Len() int
	Cap() int
}

// EventWriter provides write operations over ingested events
type EventWriter interface {
	/* Append stores an event, evicting the oldest when full
	 * Returns the number of events held afterwards
	 */
	Append(ev Event) int
}

/* Interface composition - combining small interfaces into larger ones
 * This is preferred over large monolithic interfaces
 */
type EventStore interface {
	EventReader
	EventWriter
}

// Task is a unit of background work
type Task func(ctx context.Context)

// Scheduler runs tasks off the caller's goroutine
type Scheduler interface {
	/* Submit queues a task without blocking
	 * Returns ErrQueueFull or ErrExecutorClosed when the task was not accepted
	 */
	Submit(task Task) error
	Pending() int64
}

// Relay performs outgoing webhook calls
type Relay interface {
	Dispatch(ctx context.Context, req Request) (Result, error)
	Counts() map[Outcome]int64
}
