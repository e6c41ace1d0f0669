package ai

// GenerationResult is the outcome of a successful generation attempt.
type GenerationResult struct {
	// Output is the generated text with surrounding whitespace trimmed.
	Output string

	// Diagnostics carries any advisory messages the backend emitted while
	// producing Output (for a subprocess backend, trimmed stderr). A non-empty
	// value does not indicate failure.
	Diagnostics string
}
