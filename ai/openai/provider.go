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


package openai

import (
	"log/slog"

	"github.com/candorlabs/expertscope/ai"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// It manages criteria generator, topic expander, and synthesizer instances.
type Provider struct {
	config      *ai.Config
	generator   *CriteriaGenerator
	expander    *TopicExpander
	synthesizer *Synthesizer
	logger      *slog.Logger
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction and
// prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	generator, err := newCriteriaGenerator(config)
	if err != nil {
		return nil, err
	}

	expander, err := newTopicExpander(config)
	if err != nil {
		return nil, err
	}

	synthesizer, err := newSynthesizer(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:      config,
		generator:   generator,
		expander:    expander,
		synthesizer: synthesizer,
		logger:      slog.Default().With("component", "openai-provider"),
	}, nil
}

// CriteriaGenerator returns the criteria generation service.
func (p *Provider) CriteriaGenerator() ai.CriteriaGenerator {
	return p.generator
}

// TopicExpander returns the topic expansion service.
func (p *Provider) TopicExpander() ai.TopicExpander {
	return p.expander
}

// Synthesizer returns the findings synthesis service.
func (p *Provider) Synthesizer() ai.Synthesizer {
	return p.synthesizer
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}

// tokenOrNone substitutes the placeholder token expected by local
// OpenAI-compatible services that don't require authentication.
func tokenOrNone(token string) string {
	if token == "" {
		return "none"
	}
	return token
}
