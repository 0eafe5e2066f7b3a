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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidInterviewRecord indicates an InterviewRecord failed validation.
	ErrInvalidInterviewRecord = errors.New("invalid interview record")

	// ErrInvalidProfileRecord indicates a ProfileRecord failed validation.
	ErrInvalidProfileRecord = errors.New("invalid profile record")

	// ErrInvalidCriteria indicates a SearchCriteria failed validation.
	ErrInvalidCriteria = errors.New("invalid search criteria")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrEmptyQuestion indicates the Question field is empty.
	ErrEmptyQuestion = errors.New("question cannot be empty")

	// ErrEmptyAnswer indicates the Answer field is empty.
	ErrEmptyAnswer = errors.New("answer cannot be empty")

	// ErrEmptyName indicates the profile Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrScoreOutOfRange indicates a score is outside its allowed range.
	ErrScoreOutOfRange = errors.New("score out of range")

	// ErrDegenerateCriteria indicates criteria with neither companies nor
	// role keywords.
	ErrDegenerateCriteria = errors.New("criteria have no companies and no role keywords")

	// ErrInvalidEmploymentStatus indicates an invalid EmploymentStatus value.
	ErrInvalidEmploymentStatus = errors.New("invalid employment status")
)
