// Package upstream talks to the hotel backend REST API. It is the single HTTP
// client of the gateway: it injects the caller's bearer token, decodes the
// backend's error payloads, and trips a circuit breaker when the backend is
// down. It performs no retries, caching or batching; the backend stays the
// system of record.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/marina-hms/marina/internal/platform/httpx"
	"github.com/marina-hms/marina/internal/shared"
)

// ErrUnreachable wraps transport-level failures: DNS, refused connections,
// timeouts and an open circuit breaker. Aliased to the httpx sentinel so
// RespondError turns it into a 502 without extra plumbing.
var ErrUnreachable = httpx.ErrUnavailable

// APIError carries the backend's error payload verbatim.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream: %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("upstream: %d %s", e.Status, e.Code)
}

// HTTPStatus implements httpx.StatusError so handlers can pass backend
// failures through with their original status.
func (e *APIError) HTTPStatus() int { return e.Status }

// Detail implements httpx.StatusError.
func (e *APIError) Detail() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// Is maps backend statuses onto the shared sentinels so callers can use
// errors.Is without caring about the wire shape.
func (e *APIError) Is(target error) bool {
	switch target {
	case httpx.ErrNotFound:
		return e.Status == http.StatusNotFound
	case httpx.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case httpx.ErrForbidden:
		return e.Status == http.StatusForbidden
	case httpx.ErrConflict:
		return e.Status == http.StatusConflict
	case httpx.ErrValidation:
		return e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity
	}
	return false
}

// Client is the shared hotel-backend HTTP client.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	breaker      *gobreaker.CircuitBreaker
	serviceToken string
	logger       *slog.Logger
}

// Config collects client construction parameters.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// ServiceToken authenticates calls that run outside a user session,
	// such as background report snapshots.
	ServiceToken string
	Logger       *slog.Logger
}

// NewClient constructs a Client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "hotel-backend",
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("upstream breaker state change", slog.String("name", name), slog.String("from", from.String()), slog.String("to", to.String()))
		},
	})
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:   &http.Client{Timeout: timeout},
		breaker:      breaker,
		serviceToken: cfg.ServiceToken,
		logger:       logger,
	}
}

// Get issues a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("upstream: encode body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("upstream: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	result, err := c.breaker.Execute(func() (any, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = resp.Body.Close()
		}()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 {
			// Count server-side failures against the breaker.
			return nil, decodeAPIError(resp.StatusCode, data)
		}
		return response{status: resp.StatusCode, body: data}, nil
	})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return apiErr
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %s %s: %v", ErrUnreachable, method, path, err)
	}

	resp := result.(response)
	if resp.status >= 400 {
		return decodeAPIError(resp.status, resp.body)
	}
	if out == nil || len(resp.body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("upstream: decode %s %s: %w", method, path, err)
	}
	return nil
}

type response struct {
	status int
	body   []byte
}

// token picks the session's bearer credential when the call runs inside a
// request, falling back to the configured service token.
func (c *Client) token(ctx context.Context) string {
	if id := shared.IdentityFromContext(ctx); id != nil && id.Token != "" {
		return id.Token
	}
	return c.serviceToken
}

func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	if len(body) > 0 {
		_ = json.Unmarshal(body, apiErr)
	}
	if apiErr.Code == "" {
		apiErr.Code = http.StatusText(status)
	}
	return apiErr
}

// IsUnreachable reports whether the error means the backend could not be
// reached at all, as opposed to answering with an error.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable) || errors.Is(err, gobreaker.ErrOpenState)
}
