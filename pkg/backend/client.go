// Package backend talks to the content generation backend: it lists the
// pedagogies on offer and submits generation requests.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/pedagogy-studio/internal/domain"
	"github.com/pedagogy-studio/internal/payload"
	"github.com/pedagogy-studio/internal/pedagogy"
)

const (
	pedagogiesPath = "/available-pedagogies"
	generatePath   = "/generate-content"

	// FallbackMessage is shown when a failure carries no better explanation.
	FallbackMessage = "Failed to generate content. Please try again."

	unavailableMessage = "The content generation service is temporarily unavailable. Please try again shortly."

	maxErrorBody = 64 << 10
)

// Client is the HTTP client for the generation backend. Calls go through a
// rate limiter and a circuit breaker; failed calls are never retried.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     *logrus.Logger
}

// NewClient creates a backend client. A zero Timeout leaves requests bounded
// only by their context.
func NewClient(cfg domain.BackendConfig, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	cb := cfg.CircuitBreaker
	threshold := cb.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "generation-backend",
		MaxRequests: cb.MaxRequests,
		Interval:    cb.Interval,
		Timeout:     cb.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// Client errors mean the backend answered; only outages trip the breaker.
		IsSuccessful: func(err error) bool {
			var gerr *domain.GenerationError
			if errors.As(err, &gerr) && gerr.StatusCode >= 400 && gerr.StatusCode < 500 {
				return true
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	})

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
		breaker:    breaker,
		logger:     logger,
	}
}

// State reports the circuit breaker state.
func (c *Client) State() gobreaker.State {
	return c.breaker.State()
}

// ListPedagogies fetches the backend catalog. Entries keep the order in
// which the backend lists them.
func (c *Client) ListPedagogies(ctx context.Context) (pedagogy.Catalog, error) {
	body, err := c.do(ctx, http.MethodGet, pedagogiesPath, nil)
	if err != nil {
		return nil, err
	}

	doc, err := payload.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pedagogy catalog: %w", err)
	}
	return catalogFromPayload(doc)
}

func catalogFromPayload(doc payload.Value) (pedagogy.Catalog, error) {
	if doc.Type() != payload.Object {
		return nil, fmt.Errorf("pedagogy catalog must be an object, got %s", doc.Type())
	}

	catalog := make(pedagogy.Catalog, 0, doc.Len())
	for _, entry := range doc.Entries() {
		info := pedagogy.Info{
			Name:        entry.Key,
			Description: entry.Value.Get("description").Text(),
		}
		for _, p := range entry.Value.Get("parameters").Entries() {
			info.Parameters = append(info.Parameters, pedagogy.Parameter{Name: p.Key, Hint: p.Value.Text()})
		}
		catalog = append(catalog, info)
	}
	return catalog, nil
}

// Generate submits req and returns the backend's response. Failures are
// *domain.GenerationError values whose Message can be shown to users.
func (c *Client) Generate(ctx context.Context, req *domain.GenerateRequest) (*domain.GenerateResponse, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode generation request: %w", err)
	}

	start := time.Now()
	body, err := c.do(ctx, http.MethodPost, generatePath, reqBody)
	fields := logrus.Fields{
		"pedagogy":    req.Pedagogy,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		c.logger.WithFields(fields).WithError(err).Warn("Content generation failed")
		return nil, err
	}

	var resp domain.GenerateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &domain.GenerationError{
			Message: FallbackMessage,
			Err:     fmt.Errorf("failed to decode generation response: %w", err),
		}
	}

	c.logger.WithFields(fields).Info("Content generated")
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &domain.GenerationError{Message: err.Error(), Err: err}
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.roundTrip(ctx, method, path, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &domain.GenerationError{Message: unavailableMessage, Err: err}
		}
		return nil, err
	}
	return out.([]byte), nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.GenerationError{Message: transportMessage(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, statusError(resp.StatusCode, errBody)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.GenerationError{Message: transportMessage(err), Err: err}
	}
	return data, nil
}

// statusError prefers the backend's "detail" member over the status line.
func statusError(status int, body []byte) error {
	err := fmt.Errorf("backend returned status %d", status)
	msg := fmt.Sprintf("Request failed with status code %d", status)

	if doc, perr := payload.Parse(body); perr == nil {
		if detail := doc.Get("detail"); detail.Truthy() {
			msg = detail.Text()
		}
	}
	return &domain.GenerationError{StatusCode: status, Message: msg, Err: err}
}

func transportMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackMessage
}
