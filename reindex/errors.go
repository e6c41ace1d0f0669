package reindex

import "errors"

var (
	// ErrInvalidMaxAttempts indicates a retry attempt count below one.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than zero")

	// ErrSourceRequired indicates a nil unit source was provided.
	ErrSourceRequired = errors.New("unit source is required")

	// ErrEmbedderRequired indicates a nil embedder was provided.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrCacheRequired indicates a nil vector cache was provided.
	ErrCacheRequired = errors.New("vector cache is required")
)
