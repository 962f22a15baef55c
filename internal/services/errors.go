package services

import (
	"errors"
	"fmt"
)

var (
	// ErrResponseNotOK is wrapped by StatusError.
	ErrResponseNotOK = errors.New("distance service response status is not OK")
	// ErrMalformedResponse reports a response whose shape does not match the request.
	ErrMalformedResponse = errors.New("malformed distance service response")
	// ErrPointCountMismatch is wrapped by CountMismatchError.
	ErrPointCountMismatch = errors.New("point count mismatch")
)

// StatusError is returned when the distance service reports a non-OK
// top-level status. It is not retried.
type StatusError struct {
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("distance service status %q: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("distance service status %q", e.Status)
}

func (e *StatusError) Unwrap() error { return ErrResponseNotOK }

// CountMismatchError is returned when the filtered point count drifts from
// the expected value, which usually means the exclusion list is stale.
type CountMismatchError struct {
	Got  int
	Want int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("got %d points after filtering, want %d", e.Got, e.Want)
}

func (e *CountMismatchError) Unwrap() error { return ErrPointCountMismatch }
