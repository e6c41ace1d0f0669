package mock

import (
	"context"

	"github.com/poiesic/chronicle/ai"
)

// MockGenerator is a test double for ai.TextGenerator.
// It allows custom behavior injection via function fields and can script a
// sequence of per-attempt outcomes for retry tests.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, scripted responses (if any) are consumed, then the default
	// fixed summary is returned.
	GenerateFunc func(ctx context.Context, prompt string) (*ai.GenerationResult, error)

	// Responses are consumed in order, one per Generate call. Each entry is
	// either a result or an error.
	Responses []ScriptedResponse

	callCount int
	prompts   []string
}

// ScriptedResponse is one pre-arranged outcome of a Generate call.
type ScriptedResponse struct {
	Result *ai.GenerationResult
	Err    error
}

// NewMockGenerator creates a mock generator with default behavior.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate returns the injected, scripted, or default response.
func (m *MockGenerator) Generate(ctx context.Context, prompt string) (*ai.GenerationResult, error) {
	m.callCount++
	m.prompts = append(m.prompts, prompt)

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}

	if len(m.Responses) > 0 {
		next := m.Responses[0]
		m.Responses = m.Responses[1:]
		return next.Result, next.Err
	}

	return &ai.GenerationResult{Output: "mock generated text"}, nil
}

// CallCount returns the number of Generate calls.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Prompts returns the prompts passed to Generate, in call order.
func (m *MockGenerator) Prompts() []string {
	return m.prompts
}

// Reset clears call history and injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.prompts = nil
	m.GenerateFunc = nil
	m.Responses = nil
}
