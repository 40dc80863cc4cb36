// Package api implements the HTTP clients for the user and task services.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tesso57/storyterm/internal/domain/apperr"
	"github.com/tesso57/storyterm/internal/infrastructure/logx"
	"github.com/tesso57/storyterm/internal/infrastructure/metrics"
	"golang.org/x/time/rate"
)

const maxBodyBytes = 1 << 20

// Options configures a Client.
type Options struct {
	Timeout time.Duration
	// RateLimit is the sustained requests per second; zero or less disables pacing.
	RateLimit float64
	RateBurst int
	Jar       http.CookieJar
	Metrics   metrics.Recorder
	Transport http.RoundTripper
}

// Client is the credentialed HTTP client shared by both services.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	metrics metrics.Recorder
}

// NewClient constructs a Client.
func NewClient(opts Options) *Client {
	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	burst := max(opts.RateBurst, 1)

	recorder := opts.Metrics
	if recorder == nil {
		recorder = metrics.Nop{}
	}

	return new(Client{
		http: &http.Client{
			Timeout:   opts.Timeout,
			Jar:       opts.Jar,
			Transport: headerTransport{base: opts.Transport},
		},
		limiter: rate.NewLimiter(limit, burst),
		metrics: recorder,
	})
}

type call struct {
	// endpoint labels metrics and logs, e.g. "tasks.create".
	endpoint string
	method   string
	url      *url.URL
	body     any
	// want is the expected status; zero accepts any 2xx.
	want int
}

func (c *Client) do(ctx context.Context, cl call) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperr.New(apperr.Unknown, 0, "", fmt.Errorf("%s: %w", cl.endpoint, err))
	}

	var reader io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s request: %w", cl.endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, cl.url.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", cl.endpoint, err)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.New().String()
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.RecordRequest(cl.endpoint, 0, time.Since(start))
		logx.Debug("request failed", "endpoint", cl.endpoint, "error", err.Error())
		return nil, apperr.New(apperr.Unknown, 0, "", fmt.Errorf("%s %s: %w", cl.method, cl.endpoint, err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	c.metrics.RecordRequest(cl.endpoint, resp.StatusCode, time.Since(start))
	logx.Debug("request completed",
		"endpoint", cl.endpoint,
		"status", resp.StatusCode,
		"request_id", requestID,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode == http.StatusTooManyRequests {
		c.metrics.RecordRateLimited(cl.endpoint)
		return nil, apperr.RateLimit(fmt.Errorf("%s: %s", cl.endpoint, resp.Status))
	}
	if err != nil {
		return nil, apperr.New(apperr.Unknown, resp.StatusCode, "", fmt.Errorf("failed to read %s response: %w", cl.endpoint, err))
	}
	if !statusOK(resp.StatusCode, cl.want) {
		return nil, apperr.New(apperr.Unknown, resp.StatusCode, errorMessage(body), fmt.Errorf("%s: unexpected status %s", cl.endpoint, resp.Status))
	}
	return body, nil
}

func statusOK(status, want int) bool {
	if want == 0 {
		return status >= 200 && status < 300
	}
	return status == want
}

// errorMessage extracts the server message from an error body:
// "data" when it is a string, else "msg", else "message".
func errorMessage(body []byte) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, key := range []string{"data", "msg", "message"} {
		var s string
		if err := json.Unmarshal(payload[key], &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

func parseBase(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("service url is empty")
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid service url %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid service url %q: scheme and host are required", raw)
	}
	return u, nil
}

func resolve(base *url.URL, ref string, query url.Values) *url.URL {
	u := base.ResolveReference(&url.URL{Path: ref})
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u
}
