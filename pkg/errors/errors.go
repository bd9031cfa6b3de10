package errors

import "fmt"

// ErrNotFound is returned when a requested resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUpstream is returned when an external service fails or answers with a non-ok status
type ErrUpstream struct {
	Service string
	Method  string
	Err     error
}

func (e *ErrUpstream) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Service, e.Method, e.Err)
}

func (e *ErrUpstream) Unwrap() error {
	return e.Err
}

// ErrMalformedDate is returned when a load-bearing date matches none of the accepted formats
type ErrMalformedDate struct {
	Field string
	Value string
}

func (e *ErrMalformedDate) Error() string {
	return fmt.Sprintf("malformed %s: %q", e.Field, e.Value)
}

// ErrUnavailable is returned when the only source of a resource cannot be reached
type ErrUnavailable struct {
	Resource string
	Err      error
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Resource, e.Err)
}

func (e *ErrUnavailable) Unwrap() error {
	return e.Err
}
