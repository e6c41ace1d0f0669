package ai

import "errors"

var (
	// ErrGenerationTimeout indicates a generation attempt exceeded the
	// configured timeout and the backend was terminated.
	ErrGenerationTimeout = errors.New("generation timed out")

	// ErrEmptyPrompt is returned when Generate is called with an empty prompt.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)
