package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized matches any 401 or 403 response
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound matches a 404 response
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest matches requests rejected before being sent
	ErrInvalidRequest = errors.New("invalid request")
)

// Kind classifies a failed call
type Kind int

const (
	KindUnknown Kind = iota
	KindTransport
	KindAuth
	KindValidation
	KindServer
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	}
	return "unknown"
}

// TransportError means no response was received
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the request ran out of time
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// HTTPError is a non-2xx response. Detail is the server's human-readable message.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Detail     string
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, e.Detail)
}

// Kind classifies the status code
func (e *HTTPError) Kind() Kind {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return KindAuth
	case e.StatusCode >= 400 && e.StatusCode < 500:
		return KindValidation
	case e.StatusCode >= 500:
		return KindServer
	}
	return KindUnknown
}

// Is lets callers match sentinel errors with errors.Is
func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Kind() == KindAuth
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// DecodeError means the body did not match the declared response shape
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// RequestValidationError is returned when a request fails client-side validation.
// No network call is made.
type RequestValidationError struct {
	Fields  map[string]string
	Message string
}

func (e *RequestValidationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidRequest, e.Message)
}

func (e *RequestValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// KindOf classifies any error returned by the client
func KindOf(err error) Kind {
	var httpErr *HTTPError
	var transportErr *TransportError
	var decodeErr *DecodeError
	var validationErr *RequestValidationError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Kind()
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.As(err, &decodeErr):
		return KindDecode
	case errors.As(err, &validationErr):
		return KindValidation
	}
	return KindUnknown
}

// IsAuthError reports whether err is a 401/403 response
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// StatusCode returns the HTTP status carried by err, or 0 when there is none
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

// Detail returns the message a user should see for err
func Detail(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Detail
	}
	var validationErr *RequestValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	return err.Error()
}

type fieldIssue struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// parseDetail extracts the server message from FastAPI-style bodies
// ({"detail": "..."} or {"detail": [{"loc": [...], "msg": "..."}]}) and
// problem-details bodies ({"title": "...", "detail": "..."}).
func parseDetail(body []byte, status int) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
		Title  string          `json:"title"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if len(payload.Detail) > 0 {
			var s string
			if json.Unmarshal(payload.Detail, &s) == nil && s != "" {
				return s
			}
			var issues []fieldIssue
			if json.Unmarshal(payload.Detail, &issues) == nil && len(issues) > 0 {
				msgs := make([]string, 0, len(issues))
				for _, issue := range issues {
					msgs = append(msgs, issue.Msg)
				}
				return strings.Join(msgs, "; ")
			}
		}
		if payload.Title != "" {
			return payload.Title
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}
