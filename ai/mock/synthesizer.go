package mock

import (
	"context"
	"fmt"

	"github.com/candorlabs/expertscope/ai"
)

// MockSynthesizer is a test double for ai.Synthesizer.
// It allows custom behavior injection via function fields.
type MockSynthesizer struct {
	// SynthesizeFunc is called by Synthesize if set.
	// If nil, returns a canned summary naming the exchange count.
	SynthesizeFunc func(ctx context.Context, req ai.SynthesisRequest) (string, error)

	callCount int
}

// NewMockSynthesizer creates a mock synthesizer with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockSynthesizer() *MockSynthesizer {
	return &MockSynthesizer{}
}

// Synthesize returns a deterministic placeholder summary.
func (m *MockSynthesizer) Synthesize(ctx context.Context, req ai.SynthesisRequest) (string, error) {
	m.callCount++

	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, req)
	}

	return fmt.Sprintf("Synthesized findings across %d exchanges.", len(req.Exchanges)), nil
}

// CallCount returns the number of times Synthesize was called.
func (m *MockSynthesizer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockSynthesizer) Reset() {
	m.callCount = 0
	m.SynthesizeFunc = nil
}

var _ ai.Synthesizer = (*MockSynthesizer)(nil)
