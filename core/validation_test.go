package core

import (
	"errors"
	"testing"
	"time"
)

func score(v float64) *float64 { return &v }

func TestValidateInterviewRecord(t *testing.T) {
	validTime := time.Now().Add(-1 * time.Hour)
	futureTime := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name    string
		record  *InterviewRecord
		wantErr error
	}{
		{
			name: "valid record",
			record: &InterviewRecord{
				Id:          1,
				MeetingId:   10,
				Question:    "How do you evaluate vendors?",
				Answer:      "Mostly on support quality.",
				Credibility: score(8),
				Consensus:   score(6),
				Completion:  score(0.9),
				Timestamp:   validTime,
			},
			wantErr: nil,
		},
		{
			name: "valid record with no scores",
			record: &InterviewRecord{
				Question:  "Question?",
				Answer:    "Answer.",
				Timestamp: validTime,
			},
			wantErr: nil,
		},
		{
			name: "valid record with ID 0",
			record: &InterviewRecord{
				Id:        0,
				Question:  "Question?",
				Answer:    "Answer.",
				Timestamp: validTime,
			},
			wantErr: nil,
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidInterviewRecord,
		},
		{
			name: "empty question",
			record: &InterviewRecord{
				Answer:    "Answer.",
				Timestamp: validTime,
			},
			wantErr: ErrEmptyQuestion,
		},
		{
			name: "empty answer",
			record: &InterviewRecord{
				Question:  "Question?",
				Timestamp: validTime,
			},
			wantErr: ErrEmptyAnswer,
		},
		{
			name: "credibility above range",
			record: &InterviewRecord{
				Question:    "Question?",
				Answer:      "Answer.",
				Credibility: score(10.5),
				Timestamp:   validTime,
			},
			wantErr: ErrScoreOutOfRange,
		},
		{
			name: "negative consensus",
			record: &InterviewRecord{
				Question:  "Question?",
				Answer:    "Answer.",
				Consensus: score(-1),
				Timestamp: validTime,
			},
			wantErr: ErrScoreOutOfRange,
		},
		{
			name: "completion above one",
			record: &InterviewRecord{
				Question:   "Question?",
				Answer:     "Answer.",
				Completion: score(1.2),
				Timestamp:  validTime,
			},
			wantErr: ErrScoreOutOfRange,
		},
		{
			name: "future timestamp",
			record: &InterviewRecord{
				Question:  "Question?",
				Answer:    "Answer.",
				Timestamp: futureTime,
			},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInterviewRecord(tt.record)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateInterviewRecord() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateInterviewRecord() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateProfileRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  *ProfileRecord
		wantErr error
	}{
		{
			name: "valid record",
			record: &ProfileRecord{
				Name:           "Dana Whitfield",
				CurrentCompany: "Acme Corp",
				CurrentTitle:   "VP Engineering",
				Active:         true,
			},
			wantErr: nil,
		},
		{
			name: "valid record with no history",
			record: &ProfileRecord{
				Name: "Sam Ortiz",
			},
			wantErr: nil,
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidProfileRecord,
		},
		{
			name:    "empty name",
			record:  &ProfileRecord{CurrentCompany: "Acme Corp"},
			wantErr: ErrEmptyName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfileRecord(tt.record)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateProfileRecord() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateProfileRecord() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCriteria(t *testing.T) {
	tests := []struct {
		name     string
		criteria *SearchCriteria
		wantErr  error
	}{
		{
			name: "valid criteria",
			criteria: &SearchCriteria{
				Companies:        []string{"Acme Corp"},
				RoleKeywords:     []string{"Director"},
				EmploymentStatus: EmploymentAny,
			},
			wantErr: nil,
		},
		{
			name:     "nil criteria",
			criteria: nil,
			wantErr:  ErrInvalidCriteria,
		},
		{
			name:     "degenerate criteria",
			criteria: &SearchCriteria{EmploymentStatus: EmploymentAny},
			wantErr:  ErrDegenerateCriteria,
		},
		{
			name: "invalid employment status",
			criteria: &SearchCriteria{
				Companies:        []string{"Acme Corp"},
				EmploymentStatus: 99,
			},
			wantErr: ErrInvalidEmploymentStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCriteria(tt.criteria)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateCriteria() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCriteria() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
