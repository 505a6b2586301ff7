// Package backend is the REST client for the storefront backend that owns
// persistence, pricing, stock and coupon rules.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"victus-storefront/internal/config"
	"victus-storefront/internal/metrics"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

const breakerName = "backend"

type tokenKey struct{}

// WithToken returns a context carrying the bearer token to forward to the
// backend for requests made with it.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the forwarded bearer token, if any.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Client talks JSON over HTTP to the backend. Each call is attempted exactly
// once; failures are reported, never retried.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	logger     zerolog.Logger
}

// New creates a backend client from configuration.
func New(cfg config.BackendConfig, logger zerolog.Logger) *Client {
	return NewWithHTTPClient(cfg, &http.Client{Timeout: cfg.Timeout}, logger)
}

// NewWithHTTPClient creates a backend client using httpClient for transport.
func NewWithHTTPClient(cfg config.BackendConfig, httpClient *http.Client, logger zerolog.Logger) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: httpClient,
		logger:     logger.With().Str("component", "backend-client").Logger(),
	}

	if cfg.BreakerEnabled {
		c.breaker = newBreaker(cfg, c.logger)
	}

	return c
}

func newBreaker(cfg config.BackendConfig, logger zerolog.Logger) *gobreaker.CircuitBreaker[*http.Response] {
	settings := gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.BreakerMinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.BreakerFailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
	return gobreaker.NewCircuitBreaker[*http.Response](settings)
}

func stateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// do sends one request and decodes a 2xx JSON body into out when out is
// non-nil. op names the call in metrics and logs.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := c.tokenFor(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.send(req)
	if err != nil {
		var be *Error
		if errors.As(err, &be) {
			metrics.BackendRequestsTotal.WithLabelValues(op, strconv.Itoa(be.Status)).Inc()
			c.logger.Warn().Str("operation", op).Int("status", be.Status).Str("error", be.Message).Msg("backend request failed")
			return be
		}
		metrics.BackendRequestsTotal.WithLabelValues(op, "error").Inc()
		c.logger.Warn().Str("operation", op).Err(err).Msg("backend request failed")
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}

	metrics.BackendRequestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode >= http.StatusBadRequest {
		err := parseError(resp)
		c.logger.Debug().Str("operation", op).Int("status", resp.StatusCode).Err(err).Msg("backend rejected request")
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// send executes req, through the circuit breaker when one is configured.
// 5xx responses count as breaker failures and come back as *Error.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	exec := func() (*http.Response, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, parseError(resp)
		}
		return resp, nil
	}

	if c.breaker == nil {
		return exec()
	}
	return c.breaker.Execute(exec)
}

func (c *Client) tokenFor(ctx context.Context) string {
	if token := TokenFromContext(ctx); token != "" {
		return token
	}
	return c.token
}

// State reports the circuit breaker state, closed when no breaker is used.
func (c *Client) State() gobreaker.State {
	if c.breaker == nil {
		return gobreaker.StateClosed
	}
	return c.breaker.State()
}
