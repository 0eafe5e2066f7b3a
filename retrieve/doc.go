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

// Package retrieve orchestrates query interpretation and ranked retrieval.
//
// The Retriever type ties the pipeline together:
//   - Criteria extraction turns a free-text people query into structured
//     search criteria (AI-backed with a deterministic fallback)
//   - Topic normalization turns verbose interview questions into
//     substring-matchable search terms
//   - Ranked profile search and filtered interview search against storage
//
// Interpretation failures degrade silently to deterministic strategies;
// storage failures are surfaced to the caller.
package retrieve
