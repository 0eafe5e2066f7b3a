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


// Package ai provides abstractions for the AI services used in Expertscope.
//
// The query interpretation engine treats its AI backend as an unreliable
// external oracle: every capability here has a deterministic stand-in
// elsewhere in the repository, and a failed or absent implementation is a
// degraded mode, never an error surfaced to the end user.
//
// # Capabilities
//
//   - CriteriaGenerator: query text -> five diversified criteria variants
//   - TopicExpander: topic text -> related search terms
//   - Synthesizer: interview record set -> cross-record findings narrative
//   - Provider: aggregates the three for initialization and lifecycle
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without network access
//
// # Constructor Return Type Pattern
//
// Production constructors (openai.NewProvider and friends) return INTERFACE
// types to enforce abstraction and prevent coupling to implementation
// details. Mock constructors return CONCRETE types so tests can inject
// behavior via function fields and assert on call counts.
//
//	provider, err := openai.NewProvider(config)   // returns ai.Provider
//	gen := mock.NewMockCriteriaGenerator()        // returns *mock.MockCriteriaGenerator
//
// # Usage
//
//	cfg := ai.NewConfig(ai.WithHost(host), ai.WithToken(token))
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    // run without AI: extraction and normalization fall back to their
//	    // deterministic strategies
//	}
package ai
