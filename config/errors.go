package config

import "errors"

// Validation errors returned by Config.Validate, checked with errors.Is.
var (
	// ErrInvalidTimeout is returned when fetch.timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid fetch timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when fetch.max_body_bytes is not positive.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be positive")

	// ErrInvalidCleanMode is returned for a clean.mode other than text or markdown.
	ErrInvalidCleanMode = errors.New("invalid clean mode: want text or markdown")

	// ErrInvalidTokenizeMode is returned for a tokenize.mode other than pattern or linguistic.
	ErrInvalidTokenizeMode = errors.New("invalid tokenize mode: want pattern or linguistic")

	// ErrInvalidPOS is returned for a tokenize.pos other than NOUN, ADJ or VERB.
	ErrInvalidPOS = errors.New("invalid part of speech: want NOUN, ADJ or VERB")

	// ErrInvalidPreview is returned when output.preview is negative.
	// Zero shows every row.
	ErrInvalidPreview = errors.New("invalid preview size: must be non-negative")

	// ErrInvalidWorkers is returned when site.workers is not positive.
	ErrInvalidWorkers = errors.New("invalid worker count: must be positive")

	// ErrInvalidRate is returned when site.rps is negative. Zero disables the limit.
	ErrInvalidRate = errors.New("invalid request rate: must be non-negative")

	// ErrInvalidMaxPages is returned when site.max_pages is not positive.
	ErrInvalidMaxPages = errors.New("invalid page limit: must be positive")
)
