package noise

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest marks a request with a missing, non-numeric or
	// non-positive field.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrAllocation marks a buffer length that cannot be materialized.
	ErrAllocation = errors.New("allocation failure")
)

// RequestError names one offending request field.
type RequestError struct {
	Field  string
	Value  string
	Reason string // defaults to "must be a positive integer"
}

func (e *RequestError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must be a positive integer"
	}
	return fmt.Sprintf("invalid request: %s %s, got %q", e.Field, reason, e.Value)
}

func (e *RequestError) Is(target error) bool { return target == ErrInvalidRequest }

// AllocationError reports the buffer length that could not be obtained.
type AllocationError struct {
	Length int // -1 when the length overflows int
	Limit  int
}

func (e *AllocationError) Error() string {
	if e.Length < 0 {
		return "allocation failure: sample count overflows"
	}
	return fmt.Sprintf("allocation failure: %d samples requested, limit is %d", e.Length, e.Limit)
}

func (e *AllocationError) Is(target error) bool { return target == ErrAllocation }
