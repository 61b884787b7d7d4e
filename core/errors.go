package core

import (
	"errors"
	"fmt"
)

// Pipeline errors. Stages wrap these with context; callers test with errors.Is.
var (
	// ErrFetch indicates the remote resource was unreachable or answered with a
	// non-success status.
	ErrFetch = errors.New("fetch failed")

	// ErrDecode indicates fetched content could not be interpreted as text.
	ErrDecode = errors.New("content is not decodable text")

	// ErrModelUnavailable indicates the linguistic model could not be loaded.
	// Only linguistic tokenization is affected.
	ErrModelUnavailable = errors.New("linguistic model unavailable")

	// ErrReferenceUnavailable indicates a level reference table is missing or corrupt.
	ErrReferenceUnavailable = errors.New("level reference data unavailable")

	// ErrInvalidLevel indicates a level label outside A1..C2.
	ErrInvalidLevel = errors.New("invalid level")
)

// FetchError describes a failed fetch. It matches ErrFetch under errors.Is.
type FetchError struct {
	URL        string
	StatusCode int // 0 when the request never got a response
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

// Unwrap exposes the underlying transport error.
func (e *FetchError) Unwrap() error { return e.Err }

// Is reports ErrFetch as a match so callers need not know the concrete type.
func (e *FetchError) Is(target error) bool { return target == ErrFetch }
