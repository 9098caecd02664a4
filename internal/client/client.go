// Package client is the typed HTTP client for the HomeBite marketplace API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"homebite/internal/auth"
	"homebite/internal/model"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the API root used when none is configured.
const DefaultBaseURL = "http://localhost:8000/api"

// maxErrorBody caps how much of an error response is kept as the message.
const maxErrorBody = 4 << 10

// Config holds client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// RequestsPerSecond paces outgoing calls when positive. Calls wait for
	// a slot; nothing is retried.
	RequestsPerSecond float64
	Burst             int
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// Client performs single fire-once calls against the API. It holds no
// entity state; the only shared resource is the session token.
type Client struct {
	base       *url.URL
	httpClient *http.Client
	session    *auth.Session
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// New creates a client for cfg.BaseURL. sess supplies and receives the
// bearer token; a nil session makes every authorized call unauthorized.
func New(cfg Config, sess *auth.Session, logger zerolog.Logger, opts ...Option) (*Client, error) {
	raw := cfg.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, newError(CodeInvalidEndpoint, raw, err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, newError(CodeInvalidEndpoint, raw, nil)
	}

	c := &Client{
		base: base,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		session: sess,
		logger:  logger.With().Str("component", "api-client").Logger(),
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the resolved API root.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Session returns the credential session the client reads tokens from.
func (c *Client) Session() *auth.Session {
	return c.session
}

// request describes one API call.
type request struct {
	method     string
	path       string
	rawQuery   string
	body       any
	authorized bool
}

func (c *Client) do(ctx context.Context, req request, out any) error {
	ref, err := url.Parse(req.path)
	if err != nil {
		return newError(CodeInvalidEndpoint, req.path, err)
	}
	endpoint := c.base.JoinPath(ref.Path)
	endpoint.RawQuery = req.rawQuery

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return newError(CodeEncodingFailed, "", err)
		}
		body = bytes.NewReader(data)
	}

	var token string
	if req.authorized {
		if c.session == nil {
			return newError(CodeUnauthorized, "no session", nil)
		}
		token, err = c.session.Token(ctx)
		if err != nil {
			if errors.Is(err, auth.ErrNoToken) {
				return newError(CodeUnauthorized, "", err)
			}
			return newError(CodeUnauthorized, "failed to read access token", err)
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint.String(), body)
	if err != nil {
		return newError(CodeInvalidEndpoint, endpoint.String(), err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return newError(CodeTransportFailure, "rate limiter", err)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", req.method).Str("path", req.path).Msg("request failed")
		return newError(CodeTransportFailure, "", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return newError(CodeTransportFailure, "failed to read response body", err)
	}

	c.logger.Debug().
		Str("method", req.method).
		Str("path", req.path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api call")

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return newError(CodeUnauthorized, errorMessage(data), nil)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return serverError(resp.StatusCode, errorMessage(data))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return newError(CodeDecodingFailed, "", err)
	}
	return nil
}

// errorMessage extracts a readable message from an error body: the
// "detail" or "error" field of a JSON object, or the raw text.
func errorMessage(data []byte) string {
	if len(data) > maxErrorBody {
		data = data[:maxErrorBody]
	}
	var payload model.ErrorResponse
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(data))
}
