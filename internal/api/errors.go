package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Error is an HTTP error response from the backend. Message holds the
// best-effort extraction chain the screens used: body "message", then
// body "error", then the HTTP status text.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (HTTP %d)", e.Message, e.StatusCode)
}

// Unauthorized reports whether the request was rejected for a missing
// or expired token.
func (e *Error) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

func newError(statusCode int, body []byte) *Error {
	var payload struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	msg := ""
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			msg = payload.Message
		} else if payload.Err != "" {
			msg = payload.Err
		}
	}
	if msg == "" {
		msg = http.StatusText(statusCode)
	}
	return &Error{StatusCode: statusCode, Message: strings.TrimSpace(msg)}
}
