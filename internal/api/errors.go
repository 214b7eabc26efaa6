package api

import (
	"encoding/json"
	"fmt"
)

// Error is a non-2xx backend response. Message carries the backend's
// structured error or detail text when one was returned.
type Error struct {
	Status  int
	Message string
}

// Error renders the response status and any backend message.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("http %d", e.Status)
}

// decodeError builds an Error from a non-2xx response body, preferring the
// backend's structured {error | detail} message verbatim.
func decodeError(status int, body []byte) error {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return &Error{Status: status, Message: payload.Error}
		}
		if payload.Detail != "" {
			return &Error{Status: status, Message: payload.Detail}
		}
	}
	return &Error{Status: status}
}
