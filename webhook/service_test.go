package webhook_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/marcelsud/whatsapp-bridge-api/webhook"
	"github.com/marcelsud/whatsapp-bridge-api/webhook/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrigger(t *testing.T) {
	ctx := context.Background()

	t.Run("success - async mode", func(t *testing.T) {
		relay := mocks.NewRelay(t)
		service := webhook.NewService(relay, webhook.NewBuffer(10), nil)

		relay.On("Dispatch", ctx, webhook.MatchRequest(func(r webhook.Request) bool {
			return r.Mode == webhook.Async && r.TargetURL == "https://example.com/hook"
		})).Return(webhook.Result{Scheduled: true}, nil)

		res, err := service.Trigger(ctx, webhook.Request{
			TargetURL: "https://example.com/hook",
			Mode:      webhook.Async,
		})

		require.NoError(t, err)
		assert.True(t, res.Scheduled)
	})

	t.Run("success - sync mode", func(t *testing.T) {
		relay := mocks.NewRelay(t)
		service := webhook.NewService(relay, webhook.NewBuffer(10), nil)

		relay.On("Dispatch", ctx, webhook.MatchRequest(func(r webhook.Request) bool {
			return r.Mode == webhook.Sync
		})).Return(webhook.Result{StatusCode: 201, OK: true, ResponseExcerpt: "created"}, nil)

		res, err := service.Trigger(ctx, webhook.Request{Mode: webhook.Sync})

		require.NoError(t, err)
		assert.False(t, res.Scheduled)
		assert.Equal(t, 201, res.StatusCode)
		assert.True(t, res.OK)
		assert.Equal(t, "created", res.ResponseExcerpt)
	})

	t.Run("dispatch error keeps its kind", func(t *testing.T) {
		relay := mocks.NewRelay(t)
		service := webhook.NewService(relay, webhook.NewBuffer(10), nil)

		relay.On("Dispatch", ctx, webhook.MatchRequest(func(webhook.Request) bool { return true })).
			Return(webhook.Result{}, webhook.ErrMissingTarget)

		_, err := service.Trigger(ctx, webhook.Request{})

		require.Error(t, err)
		assert.True(t, errors.Is(err, webhook.ErrMissingTarget))
		assert.Contains(t, err.Error(), "dispatching webhook")
	})
}

func TestIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("json body", func(t *testing.T) {
		service := webhook.NewService(mocks.NewRelay(t), webhook.NewBuffer(10), nil)

		count, err := service.Ingest(ctx, map[string]string{"Content-Type": "application/json"}, []byte(`{"event":"msg"}`))
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		events, err := service.Events(ctx, 1)
		require.NoError(t, err)
		require.Len(t, events, 1)

		assert.JSONEq(t, `{"event":"msg"}`, string(events[0].Body))
		assert.Equal(t, "application/json", events[0].Headers["Content-Type"])
		assert.NotEmpty(t, events[0].ID)
		assert.Equal(t, time.UTC, events[0].Timestamp.Location())
	})

	t.Run("non-json body is kept raw", func(t *testing.T) {
		service := webhook.NewService(mocks.NewRelay(t), webhook.NewBuffer(10), nil)

		_, err := service.Ingest(ctx, nil, []byte("plain text"))
		require.NoError(t, err)

		events, err := service.Events(ctx, 1)
		require.NoError(t, err)
		require.Len(t, events, 1)

		var body map[string]string
		require.NoError(t, json.Unmarshal(events[0].Body, &body))
		assert.Equal(t, "plain text", body[webhook.RawBodyKey])
		assert.NotNil(t, events[0].Headers)
	})

	t.Run("binary body is kept base64 encoded", func(t *testing.T) {
		service := webhook.NewService(mocks.NewRelay(t), webhook.NewBuffer(10), nil)
		payload := []byte{0xff, 0xfe, 0x00, 'a'}

		_, err := service.Ingest(ctx, nil, payload)
		require.NoError(t, err)

		events, err := service.Events(ctx, 1)
		require.NoError(t, err)
		require.Len(t, events, 1)

		var body map[string]string
		require.NoError(t, json.Unmarshal(events[0].Body, &body))
		assert.NotContains(t, body, webhook.RawBodyKey)
		decoded, err := base64.StdEncoding.DecodeString(body[webhook.RawBase64Key])
		require.NoError(t, err)
		assert.Equal(t, payload, decoded)
	})

	t.Run("empty body is kept raw", func(t *testing.T) {
		service := webhook.NewService(mocks.NewRelay(t), webhook.NewBuffer(10), nil)

		_, err := service.Ingest(ctx, nil, nil)
		require.NoError(t, err)

		events, err := service.Events(ctx, 1)
		require.NoError(t, err)
		assert.JSONEq(t, `{"_raw":""}`, string(events[0].Body))
	})

	t.Run("count stops at capacity", func(t *testing.T) {
		service := webhook.NewService(mocks.NewRelay(t), webhook.NewBuffer(webhook.DefaultBufferCapacity), nil)

		var count int
		for i := 0; i < webhook.DefaultBufferCapacity+1; i++ {
			var err error
			count, err = service.Ingest(ctx, nil, []byte(fmt.Sprintf(`{"n":%d}`, i)))
			require.NoError(t, err)
		}
		assert.Equal(t, webhook.DefaultBufferCapacity, count)
	})
}

func TestEvents(t *testing.T) {
	ctx := context.Background()
	service := webhook.NewService(mocks.NewRelay(t), webhook.NewBuffer(10), nil)

	for i := 0; i < 10; i++ {
		_, err := service.Ingest(ctx, nil, []byte(fmt.Sprintf(`{"n":%d}`, i)))
		require.NoError(t, err)
	}

	events, err := service.Events(ctx, 5)
	require.NoError(t, err)
	require.Len(t, events, 5)
	for i, ev := range events {
		assert.JSONEq(t, fmt.Sprintf(`{"n":%d}`, i+5), string(ev.Body))
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	relay := mocks.NewRelay(t)
	executor := newTestExecutor(t)
	service := webhook.NewService(relay, webhook.NewBuffer(3), executor)

	relay.On("Counts").Return(map[webhook.Outcome]int64{webhook.Delivered: 2})

	_, err := service.Ingest(ctx, nil, []byte(`{}`))
	require.NoError(t, err)

	stats, err := service.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.BufferedEvents)
	assert.Equal(t, 3, stats.BufferCapacity)
	assert.Equal(t, int64(0), stats.PendingDispatch)
	assert.Equal(t, int64(2), stats.DispatchOutcomes[webhook.Delivered])
}
