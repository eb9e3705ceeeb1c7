package client

import "fmt"

// TransportError wraps a failure to reach the server at all: connection
// refused, DNS failure, timeout.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError means the server answered with an unexpected HTTP status.
// Body carries the raw response for the diagnostic output.
type ProtocolError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *ProtocolError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected HTTP status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected HTTP status %d: %s", e.Op, e.StatusCode, e.Body)
}

// ShapeError means the response decoded but did not have the expected
// shape. Raw preserves the payload so the operator can see what the
// server actually said.
type ShapeError struct {
	Op     string
	Reason string
	Raw    string
}

func (e *ShapeError) Error() string {
	if e.Raw == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s: %s (raw response: %s)", e.Op, e.Reason, e.Raw)
}
