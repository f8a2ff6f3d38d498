package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"
)

// Client talks to the commerce gateway over HTTP/JSON. Every request
// carries a Bearer token when the token source yields one; a 401 on any
// non-auth path invokes the unauthorized hook (auth paths are exempt so
// a bad-credentials error is not masked as a forced logout).
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger

	tokens         func() string
	onUnauthorized func()

	// breaker guards catalog and order calls against a flapping
	// backend; auth calls bypass it because an open breaker must look
	// like an unreachable host to the demo-mode fallback anyway.
	breaker *gobreaker.CircuitBreaker[[]byte]
	sfg     singleflight.Group
}

func New(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	settings := gobreaker.Settings{
		Name: "gateway",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			// Application rejections below 500 are the backend working
			// as intended; only transport errors and 5xx trip the breaker.
			if err == nil {
				return true
			}
			var se *StatusError
			if errors.As(err, &se) {
				return se.Code < 500
			}
			return false
		},
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

// SetTokenSource registers the session token provider. Registered after
// construction because the session manager itself needs the client to
// log in.
func (c *Client) SetTokenSource(tokens func() string) {
	c.tokens = tokens
}

// SetUnauthorizedHook registers the forced-logout handler for 401
// responses on non-auth paths.
func (c *Client) SetUnauthorizedHook(hook func()) {
	c.onUnauthorized = hook
}

// do issues one request and returns the response body. Non-2xx statuses
// come back as *StatusError; everything else is a transport failure.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	return c.doWithHeader(ctx, method, path, payload, "", "")
}

func (c *Client) doWithHeader(ctx context.Context, method, path string, payload any, headerKey, headerValue string) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if headerKey != "" {
		req.Header.Set(headerKey, headerValue)
	}
	if c.tokens != nil {
		if token := c.tokens(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized && !strings.Contains(path, "/auth/") {
			c.log.Warn("unauthorized response outside auth flow", "path", path)
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
		}
		return nil, newStatusError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// guarded routes a request through the circuit breaker.
func (c *Client) guarded(ctx context.Context, method, path string, payload any) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, method, path, payload)
	})
}
