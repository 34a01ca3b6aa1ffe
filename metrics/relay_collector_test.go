package metrics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marcelsud/whatsapp-bridge-api/webhook"
	"github.com/marcelsud/whatsapp-bridge-api/webhook/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func relayStats() webhook.Stats {
	return webhook.Stats{
		BufferedEvents:  12,
		BufferCapacity:  200,
		PendingDispatch: 3,
		DispatchOutcomes: map[webhook.Outcome]int64{
			webhook.Scheduled: 7,
			webhook.Delivered: 5,
		},
	}
}

func TestRelayCollector_Collect(t *testing.T) {
	ctx := context.Background()

	t.Run("maps relay stats", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("Stats", ctx).Return(relayStats(), nil)
		c := NewRelayCollector(s)

		m, err := c.Collect(ctx)
		require.NoError(t, err)
		assert.Equal(t, BufferMetrics{Events: 12, Capacity: 200}, m.Buffer)
		assert.Equal(t, int64(3), m.PendingDispatch)
		assert.Equal(t, map[string]int64{
			"scheduled": 7,
			"rejected":  0,
			"delivered": 5,
			"failed":    0,
		}, m.DispatchOutcomes)
		assert.False(t, m.Timestamp.IsZero())
	})

	t.Run("stats fail", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("Stats", ctx).Return(webhook.Stats{}, fmt.Errorf("some error"))
		c := NewRelayCollector(s)

		_, err := c.Collect(ctx)
		assert.Error(t, err)
		_, err = c.GetBuffer(ctx)
		assert.Error(t, err)
		_, err = c.GetPendingDispatch(ctx)
		assert.Error(t, err)
		_, err = c.GetDispatchOutcomes(ctx)
		assert.Error(t, err)
	})
}

func TestOTelExporter_ServeHTTP(t *testing.T) {
	s := mocks.NewUseCase(t)
	s.On("Stats", mock.Anything).Return(relayStats(), nil)
	exporter, err := NewOTelExporter(NewRelayCollector(s))
	require.NoError(t, err)
	defer exporter.Shutdown(context.Background())

	srv := httptest.NewServer(exporter.ServeHTTP())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	for _, name := range []string{
		"webhook_buffer_events",
		"webhook_buffer_capacity",
		"webhook_dispatch_pending",
		"webhook_dispatch_outcomes",
		`webhook_outcome="delivered"`,
	} {
		assert.Contains(t, string(body), name)
	}
}

func TestCollector_Interface(t *testing.T) {
	t.Run("RelayCollector implements Collector interface", func(t *testing.T) {
		var _ Collector = (*RelayCollector)(nil)
	})
}
