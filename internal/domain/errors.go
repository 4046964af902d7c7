package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUpstream signals any failed call to the taste graph.
	ErrUpstream = errors.New("taste graph request failed")
	// ErrInvalidRequest signals caller input that cannot be turned into a query.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNarratorProvider signals a failed call to the LLM narrator.
	ErrNarratorProvider = errors.New("narrator provider error")
)

// HTTPError is a non-2xx response from the taste graph.
type HTTPError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: %s returned %d: %s", ErrUpstream.Error(), e.Endpoint, e.StatusCode, e.Body)
}

func (e *HTTPError) Unwrap() error { return ErrUpstream }

// Unauthorized reports whether the upstream rejected the credentials.
func (e *HTTPError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// NetworkError is a transport-level failure reaching the taste graph.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrUpstream.Error(), e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() []error { return []error{ErrUpstream, e.Err} }
