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

package retrieve

import "errors"

var (
	// ErrProfileRepositoryRequired is returned when a profile repository is not provided.
	ErrProfileRepositoryRequired = errors.New("profile repository required")

	// ErrInterviewRepositoryRequired is returned when an interview repository is not provided.
	ErrInterviewRepositoryRequired = errors.New("interview repository required")

	// ErrExtractorRequired is returned when a criteria extractor is not provided.
	ErrExtractorRequired = errors.New("criteria extractor required")

	// ErrNormalizerRequired is returned when a topic normalizer is not provided.
	ErrNormalizerRequired = errors.New("topic normalizer required")

	// ErrEmptyTopic is returned when an interview search topic is blank.
	ErrEmptyTopic = errors.New("empty topic")

	// ErrStoreFailure wraps storage errors surfaced during retrieval.
	ErrStoreFailure = errors.New("store failure")
)
