// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.TextGenerator,
// and ai.Provider for use in unit tests. The mocks allow tests to run without
// external model dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockGenerator := mock.NewMockGenerator()
//	mockGenerator.GenerateFunc = func(ctx context.Context, prompt string) (*ai.GenerationResult, error) {
//	    return nil, ai.ErrGenerationTimeout
//	}
//
//	// Check call counts
//	count := mockGenerator.CallCount()
//
// # Default Behavior
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockGenerator: Echoes a fixed summary string for any prompt
//   - MockProvider: Aggregates mock embedder and generator
package mock
