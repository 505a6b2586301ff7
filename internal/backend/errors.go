package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrNotFound matches any *Error with a 404 status.
	ErrNotFound = errors.New("backend resource not found")

	// ErrUnavailable wraps transport failures and an open circuit breaker.
	ErrUnavailable = errors.New("backend unavailable")
)

// Error is a non-2xx response from the backend.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// Is lets callers test 404s with errors.Is(err, ErrNotFound).
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var be *Error
	if errors.As(err, &be) {
		return be.Status
	}
	return 0
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// parseError consumes and closes the body of a non-2xx response. The message
// comes from the JSON "message" field, then "error", then the status text.
func parseError(resp *http.Response) error {
	defer func() { _ = resp.Body.Close() }()

	e := &Error{Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil {
		var body errorBody
		if json.Unmarshal(raw, &body) == nil {
			e.Message = body.Message
			if e.Message == "" {
				e.Message = body.Error
			}
		}
	}

	if e.Message == "" {
		e.Message = http.StatusText(resp.StatusCode)
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
	}
	return e
}
