package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/marcelsud/whatsapp-bridge-api/webhook"
)

/* HTTP layer DTOs for webhook API
 * Separate from domain entities to avoid leaking internal structure
 */

// maxIngestBody caps the size of an inbound webhook body
const maxIngestBody = 10 << 20

// triggerRequest represents an outgoing webhook call requested by a client
type triggerRequest struct {
	TargetURL      *string         `json:"target_url"`
	Method         *string         `json:"method"`
	Payload        json.RawMessage `json:"payload"`
	Headers        map[string]any  `json:"headers"`
	Query          map[string]any  `json:"query"`
	AsyncMode      *bool           `json:"async_mode"`
	TimeoutSeconds *float64        `json:"timeout_seconds"`
}

func (t triggerRequest) Validate() error {
	if t.Method != nil {
		upper := strings.ToUpper(*t.Method)
		t.Method = &upper
	}
	return validation.ValidateStruct(&t,
		validation.Field(&t.TargetURL, is.URL),
		validation.Field(&t.Method, validation.In(http.MethodGet, http.MethodPost).Error("must be GET or POST")),
		validation.Field(&t.TimeoutSeconds, validation.Min(0.0).Exclusive()),
	)
}

// toRequest applies the defaults: POST, async and 10 seconds. A zero timeout
// means the default
func (t triggerRequest) toRequest() webhook.Request {
	req := webhook.Request{
		Method:  http.MethodPost,
		Headers: t.Headers,
		Query:   t.Query,
		Mode:    webhook.Async,
		Timeout: webhook.DefaultTimeout,
	}
	if t.TargetURL != nil {
		req.TargetURL = *t.TargetURL
	}
	if t.Method != nil {
		req.Method = strings.ToUpper(*t.Method)
	}
	if len(t.Payload) > 0 && string(t.Payload) != "null" {
		req.Payload = t.Payload
	}
	if t.AsyncMode != nil {
		req.Mode = webhook.NewDispatchMode(*t.AsyncMode)
	}
	if t.TimeoutSeconds != nil && *t.TimeoutSeconds > 0 {
		req.Timeout = time.Duration(*t.TimeoutSeconds * float64(time.Second))
	}
	return req
}

// triggerResponse is {scheduled:true} for async calls and the full result for sync ones
type triggerResponse struct {
	Scheduled       bool    `json:"scheduled"`
	StatusCode      *int    `json:"status_code,omitempty"`
	OK              *bool   `json:"ok,omitempty"`
	ResponseExcerpt *string `json:"response_excerpt,omitempty"`
}

type ingestResponse struct {
	Received     bool `json:"received"`
	StoredEvents int  `json:"stored_events"`
}

type eventsResponse struct {
	Events []webhook.Event `json:"events"`
}

// postTrigger handles POST /webhook/trigger
func postTrigger(service webhook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var tr triggerRequest
		if err := json.NewDecoder(r.Body).Decode(&tr); err != nil && !errors.Is(err, io.EOF) {
			writeValidationError(w, err)
			return
		}
		if err := tr.Validate(); err != nil {
			writeValidationError(w, err)
			return
		}

		res, err := service.Trigger(r.Context(), tr.toRequest())
		switch {
		case err == nil:
		case errors.Is(err, webhook.ErrMissingTarget):
			writeDetail(w, http.StatusBadRequest, "No target_url provided and OUTGOING_WEBHOOK_URL not set")
			return
		case errors.Is(err, webhook.ErrInvalidMethod), errors.Is(err, webhook.ErrInvalidTarget):
			writeValidationError(w, err)
			return
		case errors.Is(err, webhook.ErrQueueFull), errors.Is(err, webhook.ErrExecutorClosed):
			writeDetail(w, http.StatusServiceUnavailable, err.Error())
			return
		case errors.Is(err, webhook.ErrUpstream):
			writeDetail(w, http.StatusBadGateway, err.Error())
			return
		default:
			writeServerError(w, r, err)
			return
		}

		if res.Scheduled {
			writeJSON(w, http.StatusOK, triggerResponse{Scheduled: true})
			return
		}
		writeJSON(w, http.StatusOK, triggerResponse{
			StatusCode:      &res.StatusCode,
			OK:              &res.OK,
			ResponseExcerpt: &res.ResponseExcerpt,
		})
	})
}

// postIngest handles POST /webhook/ingest
func postIngest(service webhook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxIngestBody))
		if err != nil {
			writeDetail(w, http.StatusRequestEntityTooLarge, "failed to read request body")
			return
		}
		defer r.Body.Close()

		// Header names are kept lower-case, repeated values joined
		headers := make(map[string]string, len(r.Header)+1)
		for key, values := range r.Header {
			headers[strings.ToLower(key)] = strings.Join(values, ", ")
		}
		// net/http moves Host out of r.Header
		if r.Host != "" {
			headers["host"] = r.Host
		}

		stored, err := service.Ingest(r.Context(), headers, body)
		if err != nil {
			writeServerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, ingestResponse{Received: true, StoredEvents: stored})
	})
}

// getEvents handles GET /webhook/events
func getEvents(service webhook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, err := intParam(r, "limit", 20)
		if err != nil {
			writeValidationError(w, err)
			return
		}
		events, err := service.Events(r.Context(), limit)
		if err != nil {
			writeServerError(w, r, err)
			return
		}
		if events == nil {
			events = []webhook.Event{}
		}
		writeJSON(w, http.StatusOK, eventsResponse{Events: events})
	})
}
