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


// Package openai provides AI service implementations using OpenAI-compatible
// APIs.
//
// This package works with any OpenAI-compatible endpoint: the hosted OpenAI
// API, Ollama, LocalAI, vLLM, and similar services. Criteria generation uses
// JSON mode with a schema-bearing prompt; malformed responses go through a
// light repair pass before parsing. Each capability makes exactly one model
// call per request - retry-on-failure belongs to nobody here, because the
// engine's contract is to fall back to deterministic strategies instead.
package openai
