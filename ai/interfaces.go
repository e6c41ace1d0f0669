package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use and deterministic for
// identical input and model version.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder and TextGenerator
// instances, ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Generator returns the text generation service.
	Generator() TextGenerator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}

// TextGenerator produces free-form text from a prompt via an external
// generation backend. A single call covers a single attempt; retry policy
// belongs to the caller.
//
// Implementations enforce their configured timeout and surface its expiry as
// an error wrapping ErrGenerationTimeout. They must not attempt to validate
// the quality of generated output.
type TextGenerator interface {
	// Generate runs one generation attempt for prompt.
	// On success the result carries the trimmed output and any advisory
	// diagnostics the backend emitted alongside it.
	Generate(ctx context.Context, prompt string) (*GenerationResult, error)
}
