// Package apiclient is the authenticated HTTP client for the sales API.
//
// Every call joins the configured base URL with the endpoint path, attaches
// the session's bearer token when one is held, encodes the body as JSON
// (multipart for file uploads) and decodes the response into the endpoint's
// declared type. Failures are never retried or swallowed; see errors.go for
// how they are classified.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/sales-intelligence/internal/domain"
	"go.uber.org/zap"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "salesintel/1.0"

	// maxErrorBody bounds how much of a failed response is kept
	maxErrorBody = 64 * 1024
	// maxResponseBody bounds decoded responses
	maxResponseBody = 32 << 20

	headerRequestID = "X-Request-ID"
)

// HTTPClient is satisfied by *http.Client
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Session is the credential holder the client reads on every request and
// writes after login or registration
type Session interface {
	Get() (string, bool)
	Set(ctx context.Context, token string) error
}

// Client is safe for concurrent use
type Client struct {
	baseURL   string
	http      HTTPClient
	session   Session
	logger    *zap.Logger
	userAgent string
	// timeout bounds requests whose context carries no deadline of its own
	timeout time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client
func WithHTTPClient(c HTTPClient) Option {
	return func(cl *Client) { cl.http = c }
}

// WithTimeout sets the deadline applied to requests made without one.
// A caller deadline, such as the longer AI timeout, always wins.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		if ua != "" {
			cl.userAgent = ua
		}
	}
}

// New creates a client for baseURL, e.g. "http://localhost:8000/api"
func New(baseURL string, session Session, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{},
		session:   session,
		logger:    logger,
		userAgent: defaultUserAgent,
		timeout:   defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the address every endpoint path is joined with
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// get issues a GET and decodes the response into out
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

// do signs req, sends it and decodes a 2xx body into out. A nil out discards the body.
func (c *Client) do(req *http.Request, out any) error {
	if _, ok := req.Context().Deadline(); !ok && c.timeout > 0 {
		ctx, cancel := context.WithTimeout(req.Context(), c.timeout)
		defer cancel()
		req = req.WithContext(ctx)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(headerRequestID, requestID)
	if token, ok := c.session.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.logger.With(
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.String("request_id", requestID),
	)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		transportErr := &TransportError{Op: req.Method, URL: req.URL.Redacted(), Err: err}
		if ctxErr := req.Context().Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			transportErr.Err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		log.Warn("request failed",
			zap.Error(err),
			zap.Bool("timeout", transportErr.Timeout()),
			zap.Duration("duration", time.Since(start)),
		)
		return transportErr
	}
	defer resp.Body.Close()

	log = log.With(zap.Int("status", resp.StatusCode), zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		httpErr := &HTTPError{
			Method:     req.Method,
			URL:        req.URL.Redacted(),
			StatusCode: resp.StatusCode,
			Detail:     parseDetail(raw, resp.StatusCode),
			Body:       raw,
		}
		log.Warn("request returned error status",
			zap.String("kind", httpErr.Kind().String()),
			zap.String("detail", httpErr.Detail),
		)
		return httpErr
	}

	log.Debug("request completed")

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return &TransportError{Op: "read " + req.Method, URL: req.URL.Redacted(), Err: err}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Warn("response did not match expected shape", zap.Error(err))
		return &DecodeError{URL: req.URL.Redacted(), Err: err}
	}
	return nil
}

// validate runs the request DTO validation tags before anything is sent
func validate(req any) error {
	if err := domain.Validate(req); err != nil {
		return &RequestValidationError{
			Fields:  domain.ValidationErrors(err),
			Message: domain.ValidationMessage(err),
		}
	}
	return nil
}

func idPath(resource string, id int64) string {
	return fmt.Sprintf("/%s/%d", resource, id)
}
