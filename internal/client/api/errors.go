package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrUnavailable    = errors.New("server unavailable")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrBadRequest     = errors.New("bad request")
	ErrSessionExpired = errors.New("session expired, please log in again")
)

// APIError is a non-2xx backend response. Message is what the backend
// reported, suitable for showing to the user as is.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrBadRequest
	}
	return nil
}

func newAPIError(resp *Response) *APIError {
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    errorMessage(resp),
		Body:       resp.Body,
	}
}

// errorMessage extracts the backend's message: the "error" or "detail" key,
// else the first field error in key order, else the status text.
func errorMessage(resp *Response) string {
	var body map[string]any
	if err := json.Unmarshal(resp.Body, &body); err == nil {
		for _, key := range []string{"error", "detail", "message"} {
			if s, ok := body[key].(string); ok && s != "" {
				return s
			}
		}

		keys := make([]string, 0, len(body))
		for k := range body {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if msg := firstString(body[k]); msg != "" {
				return k + ": " + msg
			}
		}
	}

	if text := http.StatusText(resp.StatusCode); text != "" {
		return strings.ToLower(text)
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}

func firstString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		for _, item := range t {
			if s := firstString(item); s != "" {
				return s
			}
		}
	}
	return ""
}

// Message returns the user-facing text of err: the backend message for an
// APIError, otherwise err.Error().
func Message(err error) string {
	if errors.Is(err, ErrSessionExpired) {
		return ErrSessionExpired.Error()
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
