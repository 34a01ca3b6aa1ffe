package webhook

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

/* Service represents the business logic layer
 * Uses pointer semantics as it's an API, not data
 */

// UseCase defines the webhook relay operations exposed over HTTP
type UseCase interface {
	Trigger(ctx context.Context, req Request) (Result, error)
	Ingest(ctx context.Context, headers map[string]string, body []byte) (int, error)
	Events(ctx context.Context, limit int) ([]Event, error)
	Stats(ctx context.Context) (Stats, error)
}

type Service struct {
	Relay     Relay
	Store     EventStore
	Scheduler Scheduler
	now       func() time.Time
}

// NewService creates a new webhook service with dependency injection
func NewService(relay Relay, store EventStore, scheduler Scheduler) *Service {
	return &Service{
		Relay:     relay,
		Store:     store,
		Scheduler: scheduler,
		now:       time.Now,
	}
}

// Trigger sends or schedules an outgoing webhook
func (s *Service) Trigger(ctx context.Context, req Request) (Result, error) {
	res, err := s.Relay.Dispatch(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("dispatching webhook: %w", err)
	}
	return res, nil
}

// Ingest records an inbound webhook and returns the number of events held
func (s *Service) Ingest(ctx context.Context, headers map[string]string, body []byte) (int, error) {
	ev := Event{
		ID:        uuid.New().String(),
		Timestamp: s.now().UTC(),
		Headers:   headers,
		Body:      parseBody(body),
	}
	if ev.Headers == nil {
		ev.Headers = map[string]string{}
	}
	return s.Store.Append(ev), nil
}

// Events returns the most recent limit events, oldest first
func (s *Service) Events(ctx context.Context, limit int) ([]Event, error) {
	return s.Store.Recent(limit), nil
}

// Stats reports buffer occupancy and dispatch counters
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{
		BufferedEvents:   s.Store.Len(),
		BufferCapacity:   s.Store.Cap(),
		DispatchOutcomes: s.Relay.Counts(),
	}
	if s.Scheduler != nil {
		stats.PendingDispatch = s.Scheduler.Pending()
	}
	return stats, nil
}

// parseBody keeps valid JSON as is and wraps anything else under RawBodyKey,
// or under RawBase64Key when the bytes are not valid UTF-8
func parseBody(body []byte) json.RawMessage {
	if len(body) > 0 && json.Valid(body) {
		return json.RawMessage(append([]byte(nil), body...))
	}
	wrapped := map[string]string{RawBodyKey: string(body)}
	if !utf8.Valid(body) {
		wrapped = map[string]string{RawBase64Key: base64.StdEncoding.EncodeToString(body)}
	}
	raw, err := json.Marshal(wrapped)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return raw
}
