package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/whatsapp-bridge-api/config"
	"github.com/rs/zerolog"
)

// maxResponseRead caps how much of a target's answer is read before the excerpt is cut
const maxResponseRead = 64 * 1024

// DispatcherConfig holds the outgoing webhook settings resolved at startup
type DispatcherConfig struct {
	DefaultURL     string
	DefaultHeaders []config.HeaderPair
	SecretHeader   string
	Secret         string
}

// NewDispatcherConfig resolves the outgoing webhook settings from cfg
func NewDispatcherConfig(cfg *config.Config) DispatcherConfig {
	return DispatcherConfig{
		DefaultURL:     cfg.OutgoingWebhookURL,
		DefaultHeaders: cfg.GetDefaultHeaders(),
		SecretHeader:   cfg.GetOutgoingSecretHeader(),
		Secret:         cfg.GetOutgoingSecret(),
	}
}

/* Dispatcher performs outgoing webhook calls
 * Uses pointer semantics as it's an API, not data
 */
type Dispatcher struct {
	cfg       DispatcherConfig
	client    *http.Client
	scheduler Scheduler
	logger    zerolog.Logger
	outcomes  map[Outcome]*atomic.Int64
}

// NewDispatcher creates a dispatcher that hands async calls to scheduler
func NewDispatcher(cfg DispatcherConfig, client *http.Client, scheduler Scheduler, logger zerolog.Logger) *Dispatcher {
	if client == nil {
		client = &http.Client{}
	}
	outcomes := make(map[Outcome]*atomic.Int64, len(Outcomes))
	for _, o := range Outcomes {
		outcomes[o] = &atomic.Int64{}
	}
	return &Dispatcher{
		cfg:       cfg,
		client:    client,
		scheduler: scheduler,
		logger:    logger.With().Str("component", "webhook-dispatcher").Logger(),
		outcomes:  outcomes,
	}
}

// Dispatch validates req and either schedules it or performs it right away
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (Result, error) {
	req, err := d.resolve(req)
	if err != nil {
		return Result{}, err
	}

	if req.Mode == Async {
		if err := d.schedule(req); err != nil {
			return Result{}, err
		}
		return Result{Scheduled: true}, nil
	}

	res, err := d.send(ctx, req)
	d.record(outcomeFor(res.StatusCode, err))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return res, nil
}

// Counts returns how many calls ended in each outcome since startup
func (d *Dispatcher) Counts() map[Outcome]int64 {
	counts := make(map[Outcome]int64, len(d.outcomes))
	for o, c := range d.outcomes {
		counts[o] = c.Load()
	}
	return counts
}

func (d *Dispatcher) resolve(req Request) (Request, error) {
	if req.TargetURL == "" {
		req.TargetURL = d.cfg.DefaultURL
	}
	if req.TargetURL == "" {
		return req, ErrMissingTarget
	}

	req.Method = strings.ToUpper(req.Method)
	if req.Method == "" {
		req.Method = http.MethodPost
	}
	if req.Method != http.MethodGet && req.Method != http.MethodPost {
		return req, ErrInvalidMethod
	}

	if req.Mode == 0 {
		req.Mode = Async
	}
	if err := req.Mode.Validate(); err != nil {
		return req, fmt.Errorf("validating dispatch mode: %w", err)
	}

	if req.Timeout <= 0 {
		req.Timeout = DefaultTimeout
	}

	u, err := url.Parse(req.TargetURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return req, fmt.Errorf("%w: %s", ErrInvalidTarget, req.TargetURL)
	}
	return req, nil
}

func (d *Dispatcher) schedule(req Request) error {
	taskID := uuid.NewString()
	err := d.scheduler.Submit(func(ctx context.Context) {
		res, err := d.send(ctx, req)
		outcome := outcomeFor(res.StatusCode, err)
		d.record(outcome)

		if err != nil {
			d.logger.Warn().
				Err(err).
				Str("task_id", taskID).
				Str("target_url", req.TargetURL).
				Msg("background webhook failed")
			return
		}
		d.logger.Debug().
			Str("task_id", taskID).
			Str("target_url", req.TargetURL).
			Int("status_code", res.StatusCode).
			Str("outcome", outcome.String()).
			Msg("background webhook completed")
	})
	if err != nil {
		d.record(Rejected)
		return err
	}
	d.record(Scheduled)
	return nil
}

// send performs a single attempt bounded by req.Timeout
func (d *Dispatcher) send(ctx context.Context, req Request) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, req.Timeout)
	defer cancel()

	u, err := url.Parse(req.TargetURL)
	if err != nil {
		return Result{}, fmt.Errorf("parsing target url: %w", err)
	}
	q := u.Query()
	for name, values := range queryValues(req.Query) {
		for _, v := range values {
			q.Add(name, v)
		}
	}
	u.RawQuery = q.Encode()

	var body io.Reader
	if req.Method == http.MethodPost {
		payload := req.Payload
		if len(payload) == 0 || string(payload) == "null" {
			payload = json.RawMessage(`{}`)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), body)
	if err != nil {
		return Result{}, fmt.Errorf("building request: %w", err)
	}
	for name, value := range BuildHeaders(d.cfg.DefaultHeaders, d.cfg.SecretHeader, d.cfg.Secret, req.Headers) {
		httpReq.Header.Set(name, value)
	}

	start := time.Now()
	resp, err := d.client.Do(httpReq)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseRead))
	if err != nil {
		return Result{}, fmt.Errorf("reading response: %w", err)
	}

	d.logger.Debug().
		Str("method", req.Method).
		Str("target_url", req.TargetURL).
		Int("status_code", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("webhook response")

	return Result{
		StatusCode:      resp.StatusCode,
		OK:              isSuccess(resp.StatusCode),
		ResponseExcerpt: excerpt(data, ExcerptLimit),
	}, nil
}

func (d *Dispatcher) record(o Outcome) {
	if c, ok := d.outcomes[o]; ok {
		c.Add(1)
	}
}

// queryValues turns decoded JSON query parameters into URL values.
// Lists become repeated parameters and nulls are skipped.
func queryValues(query map[string]any) url.Values {
	values := url.Values{}
	for name, v := range query {
		switch tv := v.(type) {
		case nil:
		case []any:
			for _, item := range tv {
				if s, ok := queryString(item); ok {
					values.Add(name, s)
				}
			}
		default:
			if s, ok := queryString(tv); ok {
				values.Add(name, s)
			}
		}
	}
	return values
}

func queryString(v any) (string, bool) {
	switch tv := v.(type) {
	case nil:
		return "", false
	case string:
		return tv, true
	case bool:
		return strconv.FormatBool(tv), true
	case float64:
		return strconv.FormatFloat(tv, 'f', -1, 64), true
	case json.Number:
		return tv.String(), true
	default:
		b, err := json.Marshal(tv)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}

// excerpt returns at most limit characters of data
func excerpt(data []byte, limit int) string {
	s := string(data)
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
