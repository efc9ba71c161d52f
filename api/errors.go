package api

import (
	"errors"
	"fmt"
)

var (
	// ErrURLConstruction means the base URL constant failed to parse.
	// The base is fixed at compile time, so hitting this is a bug.
	ErrURLConstruction = errors.New("base URL construction failed")

	// ErrClientConstruction means the client could not be built,
	// an empty API key being the only way to trigger it.
	ErrClientConstruction = errors.New("client construction failed, API key is required")
)

// RequestError wraps a transport failure (connection, TLS, timeout).
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ResponseParsingError means the response body was not valid JSON in
// the expected shape. Body holds the raw text for diagnosis, the API
// returns plain-text error pages for some failure modes.
type ResponseParsingError struct {
	Body string
}

func (e *ResponseParsingError) Error() string {
	return fmt.Sprintf("cannot parse response body: %s", e.Body)
}
