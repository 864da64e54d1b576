// Copyright © 2018 One Concern

package octopus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/siderolabs/go-retry/retry"
	"go.uber.org/zap"
)

const (
	apiKeyHeader = "X-Octopus-ApiKey"

	defaultRetryAttempts = 3
	defaultRetryInterval = 2 * time.Second
)

// Client queries an Octopus Deploy style server.
type Client struct {
	baseURL       string
	apiKey        string
	hc            *http.Client
	l             *zap.Logger
	retryAttempts int
	retryInterval time.Duration
}

// Option is a functor to build a client with some options
type Option func(*Client)

// HTTPClient overrides the http client used for API calls
func HTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// WithLogger sets a logger on the client (default is no logging)
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.l = l
		}
	}
}

// RetryAttempts bounds how many times a failing request is attempted
func RetryAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.retryAttempts = n
		}
	}
}

// RetryInterval sets the fixed delay between request attempts
func RetryInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.retryInterval = d
		}
	}
}

// New builds a client for the server at serverURL, authenticating every
// request with apiKey.
func New(serverURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(serverURL, "/"),
		apiKey:        apiKey,
		hc:            http.DefaultClient,
		l:             zap.NewNop(),
		retryAttempts: defaultRetryAttempts,
		retryInterval: defaultRetryInterval,
	}
	for _, apply := range opts {
		apply(c)
	}
	return c
}

// withRetry runs attempt with a fixed backoff, giving up after the
// configured number of attempts. Any error from attempt is retryable:
// upstream data is eventually consistent shortly after a pipeline event,
// so transient failures and fresh 404s alike may resolve on a later try.
func (c *Client) withRetry(ctx context.Context, what string, attempt func(context.Context) error) error {
	window := time.Duration(c.retryAttempts) * c.retryInterval
	err := retry.Constant(window, retry.WithUnits(c.retryInterval)).
		RetryWithContext(ctx, func(ctx context.Context) error {
			if attemptErr := attempt(ctx); attemptErr != nil {
				c.l.Debug("request attempt failed",
					zap.String("request", what),
					zap.Error(attemptErr),
				)
				return retry.ExpectedError(attemptErr)
			}
			return nil
		})
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp, nil
}

// getJSON fetches path and decodes the response body into out, with retries.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	return c.withRetry(ctx, "GET "+path, func(ctx context.Context) error {
		resp, err := c.get(ctx, path)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()
		return json.NewDecoder(resp.Body).Decode(out)
	})
}

// getFile fetches path and streams the response body to target, with
// retries. Each attempt rewrites the file from scratch.
func (c *Client) getFile(ctx context.Context, path, target string) error {
	return c.withRetry(ctx, "GET "+path, func(ctx context.Context) error {
		resp, err := c.get(ctx, path)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()
		f, err := os.Create(target)
		if err != nil {
			return err
		}
		if _, err = io.Copy(f, resp.Body); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	})
}
