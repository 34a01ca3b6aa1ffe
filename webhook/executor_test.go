package webhook_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/marcelsud/whatsapp-bridge-api/webhook"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExecutor(t *testing.T) *webhook.Executor {
	t.Helper()
	e := webhook.NewExecutor(context.Background(), 2, 16, zerolog.Nop())
	t.Cleanup(e.Close)
	return e
}

func TestExecutor_Submit(t *testing.T) {
	t.Run("runs submitted tasks", func(t *testing.T) {
		e := newTestExecutor(t)

		done := make(chan struct{})
		require.NoError(t, e.Submit(func(ctx context.Context) { close(done) }))

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("task did not run")
		}
	})

	t.Run("task context outlives a cancelled parent", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		e := webhook.NewExecutor(ctx, 1, 1, zerolog.Nop())
		defer e.Close()
		cancel()

		errCh := make(chan error, 1)
		require.NoError(t, e.Submit(func(ctx context.Context) { errCh <- ctx.Err() }))

		select {
		case err := <-errCh:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("task did not run")
		}
	})

	t.Run("queue full", func(t *testing.T) {
		e := webhook.NewExecutor(context.Background(), 1, 1, zerolog.Nop())
		release := make(chan struct{})
		started := make(chan struct{})

		require.NoError(t, e.Submit(func(ctx context.Context) {
			close(started)
			<-release
		}))
		<-started
		require.NoError(t, e.Submit(func(ctx context.Context) {}))

		err := e.Submit(func(ctx context.Context) {})
		assert.ErrorIs(t, err, webhook.ErrQueueFull)
		assert.Equal(t, int64(2), e.Pending())

		close(release)
		e.Close()
		assert.Equal(t, int64(0), e.Pending())
	})

	t.Run("closed executor rejects tasks", func(t *testing.T) {
		e := webhook.NewExecutor(context.Background(), 1, 1, zerolog.Nop())
		e.Close()
		e.Close()

		err := e.Submit(func(ctx context.Context) {})
		assert.ErrorIs(t, err, webhook.ErrExecutorClosed)
	})

	t.Run("close drains queued tasks", func(t *testing.T) {
		e := webhook.NewExecutor(context.Background(), 1, 10, zerolog.Nop())

		var ran atomic.Int32
		for i := 0; i < 5; i++ {
			require.NoError(t, e.Submit(func(ctx context.Context) {
				time.Sleep(5 * time.Millisecond)
				ran.Add(1)
			}))
		}
		e.Close()

		assert.Equal(t, int32(5), ran.Load())
	})

	t.Run("panicking task does not stop the worker", func(t *testing.T) {
		e := webhook.NewExecutor(context.Background(), 1, 4, zerolog.Nop())

		require.NoError(t, e.Submit(func(ctx context.Context) { panic("boom") }))
		done := make(chan struct{})
		require.NoError(t, e.Submit(func(ctx context.Context) { close(done) }))

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("worker stopped after panic")
		}
		e.Close()
	})
}
