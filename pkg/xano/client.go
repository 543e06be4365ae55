package xano

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gojkop/mindpick/internal/analytics"
	"github.com/gojkop/mindpick/internal/config"
	"github.com/gojkop/mindpick/pkg/models"
)

var ErrCircuitOpen = errors.New("xano circuit open")

// package-level logger for pkg/xano; can be replaced by callers
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by pkg/xano. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// Client talks to the upstream Xano workspace that owns question and
// answer records. It adds per-request timeouts, bounded retries, and a
// consecutive-failure circuit breaker on top of net/http, and validates
// plus normalizes every payload before handing records to callers.
type Client struct {
	cfg    config.XanoConfig
	base   *url.URL
	client *http.Client

	// simple circuit breaker state
	failures  int32
	openUntil int64 // unix nano
	closed    int32 // atomic flag for Close()
}

// NewClient creates a new Xano client wrapper.
func NewClient(cfg config.XanoConfig, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	u, err := url.ParseRequestURI(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	c := &Client{cfg: cfg, base: u, client: httpClient}
	logger.Info("xano: client created", slog.String("base_url", cfg.BaseURL), slog.Duration("timeout", cfg.Timeout))
	return c, nil
}

func NewDefaultClient(cfg config.XanoConfig) (*Client, error) {
	defaultClient := &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 15 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	return NewClient(cfg, defaultClient)
}

// Close releases idle connections on the underlying transport. Idempotent.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	if c.client != nil && c.client.Transport != nil {
		if tr, ok := c.client.Transport.(interface{ CloseIdleConnections() }); ok {
			tr.CloseIdleConnections()
		}
	}
	return nil
}

func (c *Client) isCircuitOpen() bool {
	if atomic.LoadInt32(&c.failures) < int32(c.cfg.CircuitFailureThreshold) {
		return false
	}

	if time.Now().UnixNano() < atomic.LoadInt64(&c.openUntil) {
		return true
	}

	// attempt half-open: reset failures and allow a request
	atomic.StoreInt32(&c.failures, 0)
	return false
}

func (c *Client) recordFailure() {
	v := atomic.AddInt32(&c.failures, 1)
	if v >= int32(c.cfg.CircuitFailureThreshold) {
		atomic.StoreInt64(&c.openUntil, time.Now().Add(c.cfg.CircuitReset).UnixNano())
	}
}

// getJSON performs a GET with retries and returns the raw response body.
// 4xx responses are permanent and never retried; network errors and 5xx
// responses retry with linear backoff.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.isCircuitOpen() {
		return nil, ErrCircuitOpen
	}

	u := c.base.ResolveReference(&url.URL{Path: c.base.Path + path})
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.Retries; attempt++ {
		ctxReq, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		body, retryable, err := c.doGet(ctxReq, u.String())
		cancel()
		if err == nil {
			atomic.StoreInt32(&c.failures, 0)
			return body, nil
		}

		lastErr = err
		c.recordFailure()
		if !retryable {
			return nil, err
		}

		time.Sleep(c.cfg.Backoff * time.Duration(attempt+1))
		if c.isCircuitOpen() {
			return nil, ErrCircuitOpen
		}
	}

	return nil, fmt.Errorf("upstream fetch failed after retries: %w", lastErr)
}

func (c *Client) doGet(ctx context.Context, rawURL string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return b, false, nil
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	default:
		return nil, false, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}
}

// ListQuestions fetches, validates, and normalizes the question records of
// one expert. Timestamps in the result are always epoch seconds.
func (c *Client) ListQuestions(ctx context.Context, expertID int64) ([]models.QuestionRecord, error) {
	raw, err := c.getJSON(ctx, "/question", url.Values{"expert_id": {fmt.Sprint(expertID)}})
	if err != nil {
		return nil, err
	}
	if err := analytics.ValidateQuestionsPayload(ctx, raw); err != nil {
		return nil, err
	}
	var qs []models.QuestionRecord
	if err := json.Unmarshal(raw, &qs); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return analytics.NormalizeQuestions(qs), nil
}

// ListAnswers fetches, validates, and normalizes the answer records of one
// expert.
func (c *Client) ListAnswers(ctx context.Context, expertID int64) ([]models.AnswerRecord, error) {
	raw, err := c.getJSON(ctx, "/answer", url.Values{"expert_id": {fmt.Sprint(expertID)}})
	if err != nil {
		return nil, err
	}
	if err := analytics.ValidateAnswersPayload(ctx, raw); err != nil {
		return nil, err
	}
	var as []models.AnswerRecord
	if err := json.Unmarshal(raw, &as); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	return analytics.NormalizeAnswers(as), nil
}

// FetchDashboard runs the question and answer fetches concurrently. The
// two requests have no ordering dependency, but the result is
// all-or-nothing: if either fetch fails the whole fetch fails, and the
// caller substitutes its zeroed fallback instead of aggregating partially.
func (c *Client) FetchDashboard(ctx context.Context, expertID int64) (*models.DashboardData, error) {
	var (
		wg   sync.WaitGroup
		data models.DashboardData
		qErr error
		aErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		data.Questions, qErr = c.ListQuestions(ctx, expertID)
	}()
	go func() {
		defer wg.Done()
		data.Answers, aErr = c.ListAnswers(ctx, expertID)
	}()
	wg.Wait()

	if qErr != nil {
		return nil, fmt.Errorf("fetch questions: %w", qErr)
	}
	if aErr != nil {
		return nil, fmt.Errorf("fetch answers: %w", aErr)
	}
	return &data, nil
}

// Health probes the upstream workspace with a cheap request.
func (c *Client) Health(ctx context.Context) error {
	if _, err := c.getJSON(ctx, "/question", url.Values{"expert_id": {"0"}}); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}
