package mock

import (
	"github.com/poiesic/chronicle/ai"
)

// MockProvider is a test double for ai.Provider.
// It aggregates MockEmbedder and MockGenerator instances.
type MockProvider struct {
	embedder  *MockEmbedder
	generator *MockGenerator
}

// NewMockProvider creates a mock provider with default mock services.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		embedder:  NewMockEmbedder(),
		generator: NewMockGenerator(),
	}
}

// Embedder returns the mock embedding service.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Generator returns the mock generation service.
func (p *MockProvider) Generator() ai.TextGenerator {
	return p.generator
}

// Close is a no-op for the mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the concrete mock embedder for test assertions
// and behavior injection.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockGenerator returns the concrete mock generator for test assertions
// and behavior injection.
func (p *MockProvider) GetMockGenerator() *MockGenerator {
	return p.generator
}
