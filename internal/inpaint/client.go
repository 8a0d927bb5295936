package inpaint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// TargetURLHeader tells the passthrough proxy where to forward a request.
const TargetURLHeader = "x-fal-target-url"

// Queue states reported by the status endpoint.
const (
	StatusInQueue    = "IN_QUEUE"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

// Config holds the service endpoint settings.
type Config struct {
	// Endpoint is the queue base URL.
	Endpoint string
	// App is the model id, including an optional sub-path.
	App string
	// ProxyURL, when set, receives every call with the real target in
	// TargetURLHeader; the proxy adds credentials.
	ProxyURL string
	// Key is sent as "Authorization: Key ..." when no proxy is used.
	Key string

	PollInterval time.Duration
	// Timeout bounds a whole Subscribe call. Zero means no timeout.
	Timeout time.Duration
}

// DefaultConfig returns the settings the demo page used.
func DefaultConfig() Config {
	return Config{
		Endpoint:     "https://queue.fal.run",
		App:          "fal-ai/fooocus/inpaint",
		PollInterval: 500 * time.Millisecond,
	}
}

// APIError is a non-2xx answer from the service or the proxy.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("inpaint: service returned %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// Request identifies a queued generation.
type Request struct {
	ID          string `json:"request_id"`
	StatusURL   string `json:"status_url,omitempty"`
	ResponseURL string `json:"response_url,omitempty"`
}

// LogLine is one model log entry.
type LogLine struct {
	Message string `json:"message"`
}

// Status is the queue position of a request.
type Status struct {
	Status        string    `json:"status"`
	QueuePosition int       `json:"queue_position,omitempty"`
	Logs          []LogLine `json:"logs,omitempty"`
}

// Client speaks the fal queue protocol.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient builds a client. A nil http client uses http.DefaultClient.
func NewClient(cfg Config, hc *http.Client) *Client {
	def := DefaultConfig()
	if cfg.Endpoint == "" {
		cfg.Endpoint = def.Endpoint
	}
	if cfg.App == "" {
		cfg.App = def.App
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{cfg: cfg, http: hc}
}

// appRoot drops the sub-path of the model id; request urls hang off
// owner/alias only.
func (c *Client) appRoot() string {
	parts := strings.SplitN(strings.Trim(c.cfg.App, "/"), "/", 3)
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, "/")
}

func (c *Client) statusURL(r Request) string {
	if r.StatusURL != "" {
		return r.StatusURL
	}
	return fmt.Sprintf("%s/%s/requests/%s/status", c.cfg.Endpoint, c.appRoot(), r.ID)
}

func (c *Client) responseURL(r Request) string {
	if r.ResponseURL != "" {
		return r.ResponseURL
	}
	return fmt.Sprintf("%s/%s/requests/%s", c.cfg.Endpoint, c.appRoot(), r.ID)
}

// Submit queues input and returns the request handle.
func (c *Client) Submit(ctx context.Context, input Input) (Request, error) {
	var req Request
	target := c.cfg.Endpoint + "/" + strings.Trim(c.cfg.App, "/")
	if err := c.do(ctx, http.MethodPost, target, input, &req); err != nil {
		return Request{}, fmt.Errorf("submit: %w", err)
	}
	if req.ID == "" {
		return Request{}, fmt.Errorf("submit: response carried no request id")
	}
	return req, nil
}

// Status fetches the queue state of r, including model logs.
func (c *Client) Status(ctx context.Context, r Request) (Status, error) {
	var st Status
	if err := c.do(ctx, http.MethodGet, c.statusURL(r)+"?logs=1", nil, &st); err != nil {
		return Status{}, fmt.Errorf("status: %w", err)
	}
	return st, nil
}

// Result fetches the output of a completed request.
func (c *Client) Result(ctx context.Context, r Request) (Output, error) {
	var out Output
	if err := c.do(ctx, http.MethodGet, c.responseURL(r), nil, &out); err != nil {
		return Output{}, fmt.Errorf("result: %w", err)
	}
	return out, nil
}

// Subscribe submits input, polls until the request completes and returns its
// output. Failures are returned as-is; there is no retry.
func (c *Client) Subscribe(ctx context.Context, input Input) (Output, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}
	req, err := c.Submit(ctx, input)
	if err != nil {
		return Output{}, err
	}
	log.Printf("inpaint: queued request %s", req.ID)

	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	seen := 0
	for {
		st, err := c.Status(ctx, req)
		if err != nil {
			return Output{}, err
		}
		for ; seen < len(st.Logs); seen++ {
			log.Printf("inpaint: %s", st.Logs[seen].Message)
		}
		switch st.Status {
		case StatusCompleted:
			return c.Result(ctx, req)
		case StatusInQueue, StatusInProgress:
		default:
			return Output{}, fmt.Errorf("status: unexpected state %q", st.Status)
		}
		select {
		case <-ctx.Done():
			return Output{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) do(ctx context.Context, method, target string, body, out any) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(data)
	}
	endpoint := target
	if c.cfg.ProxyURL != "" {
		endpoint = c.cfg.ProxyURL
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.ProxyURL != "" {
		req.Header.Set(TargetURLHeader, target)
	} else if c.cfg.Key != "" {
		req.Header.Set("Authorization", "Key "+c.cfg.Key)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return &APIError{StatusCode: res.StatusCode, Body: string(msg)}
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
