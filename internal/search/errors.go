package search

import (
	"errors"
	"fmt"
	"net/http"
)

// TransportError means the call never produced an HTTP response
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("search service unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError means the service answered but rejected the call
type StatusError struct {
	StatusCode int
	Message    string // taken from an {"error": "..."} body when present
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("search service returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("search service returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// MalformedResponseError means the body was not a JSON array of results
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed search response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// Reason turns a search error into the one-line message shown to the user
func Reason(err error) string {
	var transport *TransportError
	var status *StatusError
	var malformed *MalformedResponseError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &status):
		if status.Message != "" {
			return status.Message
		}
		return fmt.Sprintf("Search service rejected the request (%d %s)", status.StatusCode, http.StatusText(status.StatusCode))
	case errors.As(err, &malformed):
		return "Search service sent a response that could not be read"
	case errors.As(err, &transport):
		return "Could not reach the search service"
	default:
		return err.Error()
	}
}
