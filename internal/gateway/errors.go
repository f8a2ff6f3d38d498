package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// StatusError is an application-level rejection: the backend was
// reachable and answered with a non-2xx status. Anything else coming
// out of the client is a transport failure.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gateway returned %d: %s", e.Code, e.Message)
}

// newStatusError extracts a readable message from an error body,
// preferring the backend's "message" then "error" fields.
func newStatusError(code int, body []byte) *StatusError {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			msg = payload.Message
		} else if payload.Error != "" {
			msg = payload.Error
		}
	}
	if msg == "" {
		msg = http.StatusText(code)
	}
	return &StatusError{Code: code, Message: msg}
}

// IsTransport reports whether err is a network-class failure
// (unreachable host, timeout, open breaker) rather than a response the
// backend actually produced.
func IsTransport(err error) bool {
	if err == nil {
		return false
	}
	var se *StatusError
	return !errors.As(err, &se)
}
