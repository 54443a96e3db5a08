package catalog

import (
	"errors"
	"fmt"
)

// ErrFetch matches every catalog fetch failure via errors.Is.
var ErrFetch = errors.New("catalog fetch failed")

// Kind classifies a fetch failure.
type Kind string

const (
	// KindNetwork covers transport failures, timeouts and an open circuit breaker.
	KindNetwork Kind = "network"
	// KindStatus is a non-2xx response from the catalog API.
	KindStatus Kind = "status"
	// KindMalformed is a payload that could not be decoded or failed validation.
	KindMalformed Kind = "malformed"
)

// FetchError is returned by Fetcher implementations.
type FetchError struct {
	Kind   Kind
	Status int // HTTP status for KindStatus, 0 otherwise
	Err    error
}

func (e *FetchError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("catalog fetch failed (%s %d): %v", e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("catalog fetch failed (%s): %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrFetch) true for any *FetchError.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// KindOf returns the failure kind of err, or "" if err is not a *FetchError.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
