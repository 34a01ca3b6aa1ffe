package webhook

import (
	"encoding/json"
	"errors"
	"time"
)

// DefaultTimeout bounds an outgoing call when the caller gives no timeout
const DefaultTimeout = 10 * time.Second

// ExcerptLimit is the number of characters of the target's answer kept in a sync Result
const ExcerptLimit = 1000

// RawBodyKey holds the raw content of an ingested body that is not JSON
const RawBodyKey = "_raw"

// RawBase64Key holds, base64 encoded, an ingested body that is not valid UTF-8
const RawBase64Key = "_raw_base64"

var (
	ErrMissingTarget  = errors.New("no target_url provided and OUTGOING_WEBHOOK_URL not set")
	ErrInvalidMethod  = errors.New("method must be GET or POST")
	ErrInvalidTarget  = errors.New("invalid target_url")
	ErrUpstream       = errors.New("webhook request failed")
	ErrQueueFull      = errors.New("dispatch queue is full")
	ErrExecutorClosed = errors.New("dispatch executor is closed")
)

/* Event represents an inbound webhook kept in the ingest buffer
 * Uses value semantics as it represents data, not behavior
 */
type Event struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Headers   map[string]string `json:"headers"`
	Body      json.RawMessage   `json:"body"`
}

// Request is one outgoing webhook call, built per API call and used once
type Request struct {
	TargetURL string
	Method    string
	Payload   json.RawMessage
	Headers   map[string]any
	Query     map[string]any
	Mode      DispatchMode
	Timeout   time.Duration
}

// Result is what the caller learns about an outgoing call
type Result struct {
	Scheduled       bool
	StatusCode      int
	OK              bool
	ResponseExcerpt string
}

// Stats is a point-in-time view of the relay used by the metrics collector
type Stats struct {
	BufferedEvents   int
	BufferCapacity   int
	PendingDispatch  int64
	DispatchOutcomes map[Outcome]int64
}
