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


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// Host is the base URL for the OpenAI-compatible chat API.
	// Example: "http://localhost:11434/v1" for a local server
	Host string

	// Token is the API key. Leave empty for local services that don't
	// require authentication.
	Token string

	// GeneratorModel is the model identifier used for criteria generation.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	GeneratorModel string

	// ExpanderModel is the model identifier used for topic expansion.
	ExpanderModel string

	// SynthesisModel is the model identifier used for findings synthesis.
	SynthesisModel string

	// MaxSynthesisRecords caps how many interview records are passed into a
	// single synthesis prompt. Default: 40
	MaxSynthesisRecords int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the chat API host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithToken sets the API key.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithGeneratorModel sets the criteria generation model identifier.
func WithGeneratorModel(model string) ConfigOption {
	return func(c *Config) {
		c.GeneratorModel = model
	}
}

// WithExpanderModel sets the topic expansion model identifier.
func WithExpanderModel(model string) ConfigOption {
	return func(c *Config) {
		c.ExpanderModel = model
	}
}

// WithSynthesisModel sets the findings synthesis model identifier.
func WithSynthesisModel(model string) ConfigOption {
	return func(c *Config) {
		c.SynthesisModel = model
	}
}

// WithModel sets all three model identifiers to the same value.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.GeneratorModel = model
		c.ExpanderModel = model
		c.SynthesisModel = model
	}
}

// WithMaxSynthesisRecords sets the synthesis record cap.
func WithMaxSynthesisRecords(max int) ConfigOption {
	return func(c *Config) {
		c.MaxSynthesisRecords = max
	}
}

// DefaultConfig returns a Config with sensible defaults for local
// OpenAI-compatible services.
func DefaultConfig() *Config {
	return &Config{
		Host:                "http://localhost:11434/v1",
		GeneratorModel:      "qwen2.5:3b",
		ExpanderModel:       "qwen2.5:3b",
		SynthesisModel:      "qwen2.5:3b",
		MaxSynthesisRecords: 40,
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options. This is the recommended way to create a Config with custom settings.
//
// Example:
//   cfg := NewConfig(
//       WithHost("https://api.openai.com/v1"),
//       WithToken(os.Getenv("EXPERTSCOPE_API_TOKEN")),
//       WithModel("gpt-4o-mini"),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to the host if missing, which is
// required by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/")
		c.Host = c.Host + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.GeneratorModel == "" {
		return errors.New("ai config: GeneratorModel is required")
	}
	if c.ExpanderModel == "" {
		return errors.New("ai config: ExpanderModel is required")
	}
	if c.SynthesisModel == "" {
		return errors.New("ai config: SynthesisModel is required")
	}
	if c.MaxSynthesisRecords < 1 || c.MaxSynthesisRecords > 200 {
		return errors.New("ai config: MaxSynthesisRecords must be between 1 and 200")
	}
	return nil
}
