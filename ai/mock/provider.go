// Copyright 2025 Candor Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mock

import "github.com/candorlabs/expertscope/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock generator, expander, and synthesizer instances.
type MockProvider struct {
	generator   *MockCriteriaGenerator
	expander    *MockTopicExpander
	synthesizer *MockSynthesizer
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use GetMockGenerator()/GetMockExpander()/GetMockSynthesizer() to access
// concrete types for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		generator:   NewMockCriteriaGenerator(),
		expander:    NewMockTopicExpander(),
		synthesizer: NewMockSynthesizer(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock
// services. This allows full control over the behavior of each service.
func NewMockProviderWithServices(generator *MockCriteriaGenerator, expander *MockTopicExpander, synthesizer *MockSynthesizer) ai.Provider {
	return &MockProvider{
		generator:   generator,
		expander:    expander,
		synthesizer: synthesizer,
	}
}

// CriteriaGenerator returns the mock generator.
func (p *MockProvider) CriteriaGenerator() ai.CriteriaGenerator {
	return p.generator
}

// TopicExpander returns the mock expander.
func (p *MockProvider) TopicExpander() ai.TopicExpander {
	return p.expander
}

// Synthesizer returns the mock synthesizer.
func (p *MockProvider) Synthesizer() ai.Synthesizer {
	return p.synthesizer
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockGenerator returns the underlying mock generator for test assertions.
func (p *MockProvider) GetMockGenerator() *MockCriteriaGenerator {
	return p.generator
}

// GetMockExpander returns the underlying mock expander for test assertions.
func (p *MockProvider) GetMockExpander() *MockTopicExpander {
	return p.expander
}

// GetMockSynthesizer returns the underlying mock synthesizer for test assertions.
func (p *MockProvider) GetMockSynthesizer() *MockSynthesizer {
	return p.synthesizer
}
