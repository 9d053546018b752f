package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalid         = errors.New("invalid")
	ErrFetch           = errors.New("remote fetch failed")
	ErrDeserialization = errors.New("malformed remote response")
	ErrFetchInProgress = errors.New("fetch already in progress")
)

// FetchKind tells apart the ways a remote call can fail.
type FetchKind string

const (
	FetchKindTransport       FetchKind = "transport"
	FetchKindStatus          FetchKind = "status"
	FetchKindDeserialization FetchKind = "deserialization"
)

// FetchError is returned when a remote call fails. Every FetchError matches
// ErrFetch; deserialization failures also match ErrDeserialization.
type FetchError struct {
	Resource   string
	URL        string
	Kind       FetchKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchKindStatus:
		return fmt.Sprintf("fetch %s: HTTP %d", e.Resource, e.StatusCode)
	case FetchKindDeserialization:
		return fmt.Sprintf("fetch %s: malformed response: %v", e.Resource, e.Err)
	default:
		return fmt.Sprintf("fetch %s: %v", e.Resource, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	if target == ErrFetch {
		return true
	}
	return target == ErrDeserialization && e.Kind == FetchKindDeserialization
}
