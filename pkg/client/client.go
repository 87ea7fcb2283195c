// Package client is the Go SDK for the ChemDesc-Engine HTTP API.  It wraps
// the /api/v1 surface with typed methods, unwraps the response envelope and
// converts API error payloads back into *errors.AppError values so callers
// can branch on error codes the same way server-side code does.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
	"github.com/turtacn/ChemDesc-Engine/pkg/types/common"
)

// Version is the SDK version reported in the default User-Agent.
const Version = "0.1.0"

// Logger is the minimal logging interface the client needs.  The default is
// a no-op so importing the SDK does not pull in a logging stack.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(format string, args ...interface{}) {}
func (noopLogger) Infof(format string, args ...interface{})  {}
func (noopLogger) Errorf(format string, args ...interface{}) {}

// Client talks to one ChemDesc-Engine API server.  It is safe for
// concurrent use.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	apiKey       string
	userAgent    string
	logger       Logger
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

// NewClient builds a client for the given base URL, e.g.
// "http://localhost:8080".  An API key is optional; when set it is sent as a
// bearer token.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New(errors.ErrCodeValidation, "base URL must not be empty")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeValidation, "invalid base URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New(errors.ErrCodeValidation, "base URL scheme must be http or https")
	}

	c := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		userAgent:    fmt.Sprintf("chemdesc-go-sdk/%s", Version),
		logger:       noopLogger{},
		retryMax:     3,
		retryWaitMin: 500 * time.Millisecond,
		retryWaitMax: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// errorEnvelope is the failure shape of the API response envelope; Data is
// omitted so one type covers every endpoint.
type errorEnvelope struct {
	Success   bool                `json:"success"`
	Error     *common.ErrorDetail `json:"error"`
	RequestID string              `json:"request_id"`
}

// do performs one HTTP request with retries on network errors and 5xx
// responses.  On an API error it returns an *errors.AppError rebuilt from
// the envelope's error detail; result, when non-nil, receives the decoded
// success body.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeValidation, "encode request body")
		}
	}

	fullURL := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.retryMax; attempt++ {
		if attempt > 0 {
			backoff := c.backoff(attempt)
			c.logger.Debugf("retry %d for %s %s after %v", attempt, method, path, backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "build request")
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Errorf("%s %s failed: %v", method, path, err)
			lastErr = err
			continue
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}
		c.logger.Debugf("%s %s %d (%v)", method, path, resp.StatusCode, time.Since(start))

		if resp.StatusCode >= 500 {
			lastErr = decodeAPIError(resp.StatusCode, respBody)
			continue
		}
		if resp.StatusCode >= 400 {
			return decodeAPIError(resp.StatusCode, respBody)
		}

		if result != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, result); err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "decode response body")
			}
		}
		return nil
	}
	return lastErr
}

// decodeAPIError turns a non-2xx response into an AppError.  A body that is
// not the standard envelope falls back to a generic code keyed off the
// status class.
func decodeAPIError(status int, body []byte) error {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil && env.Error.Code != "" {
		appErr := errors.New(errors.ErrorCode(env.Error.Code), env.Error.Message)
		if env.RequestID != "" {
			appErr = appErr.WithDetailf("request_id=%s", env.RequestID)
		}
		return appErr
	}
	code := errors.ErrCodeValidation
	if status >= 500 {
		code = errors.ErrCodeInternal
	}
	return errors.New(code, fmt.Sprintf("unexpected HTTP %d response", status)).
		WithDetail(strings.TrimSpace(string(body)))
}

func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

// backoff is exponential from retryWaitMin capped at retryWaitMax, with up
// to 25% jitter.
func (c *Client) backoff(attempt int) time.Duration {
	d := c.retryWaitMin * time.Duration(1<<uint(attempt-1))
	if d > c.retryWaitMax {
		d = c.retryWaitMax
	}
	if quarter := int64(d / 4); quarter > 0 {
		d += time.Duration(rand.Int63n(quarter))
	}
	return d
}
