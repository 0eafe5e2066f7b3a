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

import (
	"fmt"
	"time"
)

// ValidateInterviewRecord validates an InterviewRecord according to domain rules.
//
// Validation rules:
//   - Question and Answer must not be empty
//   - Credibility and Consensus, when present, must be in [0, 10]
//   - Completion, when present, must be in [0, 1]
//   - Timestamp must not be in the future
//
// NOT validated:
//   - ID and MeetingId (0 is valid from database sequences)
//   - Score pointers may be nil (score never recorded)
func ValidateInterviewRecord(record *InterviewRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidInterviewRecord)
	}

	if record.Question == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInterviewRecord, ErrEmptyQuestion)
	}
	if record.Answer == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInterviewRecord, ErrEmptyAnswer)
	}

	if err := validateScore(record.Credibility, 0, 10, "credibility"); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInterviewRecord, err)
	}
	if err := validateScore(record.Consensus, 0, 10, "consensus"); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInterviewRecord, err)
	}
	if err := validateScore(record.Completion, 0, 1, "completion"); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInterviewRecord, err)
	}

	if !IsValidTimestamp(record.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidInterviewRecord, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateProfileRecord validates a ProfileRecord according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//
// NOT validated:
//   - ID (0 is valid from database sequences)
//   - History may be empty (no known prior employment)
func ValidateProfileRecord(record *ProfileRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidProfileRecord)
	}

	if record.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProfileRecord, ErrEmptyName)
	}

	return nil
}

// ValidateCriteria validates a SearchCriteria tuple before retrieval.
// Degenerate criteria (no companies and no role keywords) are rejected.
func ValidateCriteria(criteria *SearchCriteria) error {
	if criteria == nil {
		return fmt.Errorf("%w: criteria is nil", ErrInvalidCriteria)
	}

	if criteria.Degenerate() {
		return fmt.Errorf("%w: %w", ErrInvalidCriteria, ErrDegenerateCriteria)
	}

	if err := ValidateEmploymentStatus(criteria.EmploymentStatus); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCriteria, err)
	}

	return nil
}

// ValidateEmploymentStatus validates that an EmploymentStatus has a valid value.
func ValidateEmploymentStatus(status EmploymentStatus) error {
	if status != EmploymentAny && status != EmploymentCurrent && status != EmploymentFormer {
		return fmt.Errorf("%w: value %d", ErrInvalidEmploymentStatus, status)
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}

func validateScore(score *float64, lo, hi float64, name string) error {
	if score == nil {
		return nil
	}
	if *score < lo || *score > hi {
		return fmt.Errorf("%w: %s %g not in [%g, %g]", ErrScoreOutOfRange, name, *score, lo, hi)
	}
	return nil
}
