package webhook

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

// Executor drains a bounded task queue with a fixed set of workers.
// Tasks run detached from the request that submitted them; a panicking
// task is logged and does not take its worker down.
type Executor struct {
	tasks   chan Task
	base    context.Context
	workers conc.WaitGroup
	pending atomic.Int64
	logger  zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// NewExecutor starts workers goroutines reading from a queue of queueSize tasks.
// Values of ctx reach the tasks, its cancellation does not.
func NewExecutor(ctx context.Context, workers, queueSize int, logger zerolog.Logger) *Executor {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	e := &Executor{
		tasks:  make(chan Task, queueSize),
		base:   context.WithoutCancel(ctx),
		logger: logger.With().Str("component", "dispatch-executor").Logger(),
	}
	for i := 0; i < workers; i++ {
		e.workers.Go(e.work)
	}
	return e
}

// Submit queues task without blocking
func (e *Executor) Submit(task Task) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return ErrExecutorClosed
	}

	e.pending.Add(1)
	select {
	case e.tasks <- task:
		return nil
	default:
		e.pending.Add(-1)
		return ErrQueueFull
	}
}

// Pending returns the number of queued or running tasks
func (e *Executor) Pending() int64 {
	return e.pending.Load()
}

// Close stops accepting tasks and waits for the queued ones to finish
func (e *Executor) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	close(e.tasks)
	e.mu.Unlock()

	e.workers.Wait()
}

func (e *Executor) work() {
	for task := range e.tasks {
		e.run(task)
	}
}

func (e *Executor) run(task Task) {
	defer e.pending.Add(-1)

	var catcher panics.Catcher
	catcher.Try(func() { task(e.base) })
	if r := catcher.Recovered(); r != nil {
		e.logger.Error().Str("panic", r.String()).Msg("dispatch task panicked")
	}
}
