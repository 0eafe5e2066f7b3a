package storage

import (
	"context"
	"time"

	"github.com/candorlabs/expertscope/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ProfileRepository provides operations for managing expert profiles.
type ProfileRepository interface {
	Repository
	// AddProfiles adds one or more profile records to storage.
	// For records with Id=0, generates new IDs from sequence.
	// Sets InsertedAt timestamp if not already set.
	// Returns the records with generated IDs and timestamps populated.
	AddProfiles(ctx context.Context, records ...*core.ProfileRecord) ([]*core.ProfileRecord, error)

	// UpdateProfiles updates existing profile records.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any record doesn't exist.
	UpdateProfiles(ctx context.Context, records ...*core.ProfileRecord) ([]*core.ProfileRecord, error)

	// DeleteProfiles removes profile records by their IDs.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteProfiles(ctx context.Context, ids ...core.ID) error

	// GetProfile retrieves a single profile record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetProfile(ctx context.Context, id core.ID) (*core.ProfileRecord, error)

	// GetProfiles retrieves multiple profile records by their IDs.
	// Returns only the records that exist (no error for missing records).
	GetProfiles(ctx context.Context, ids ...core.ID) ([]*core.ProfileRecord, error)

	// SearchRanked finds profiles matching the given companies and role
	// keywords, scored by match quality and ordered by score descending.
	// The employment status is a hard filter: EmploymentCurrent requires a
	// company match in the current position, EmploymentFormer requires a
	// company match in historical positions only. Profiles with zero score
	// are excluded. Returns up to limit results; an empty result is valid.
	SearchRanked(ctx context.Context, companies, roleKeywords []string, status core.EmploymentStatus, limit int) ([]*core.ProfileMatch, error)
}

// InterviewFilter narrows a topic search. Zero values skip the corresponding
// condition; set conditions combine conjunctively.
type InterviewFilter struct {
	// ExpertName restricts to records whose expert name contains this
	// value, case-insensitively.
	ExpertName string

	// From and To bound the interview timestamp: From <= Timestamp < To.
	From time.Time
	To   time.Time

	// MinCredibility and MinConsensus drop records whose score is below the
	// threshold. Records without the score are dropped too.
	MinCredibility float64
	MinConsensus   float64
}

// InterviewRepository provides operations for managing interview records.
type InterviewRepository interface {
	Repository
	// AddInterviewRecords adds one or more interview records to storage.
	// For records with Id=0, generates new IDs from sequence.
	// Sets InsertedAt timestamp if not already set.
	// Returns the records with generated IDs and timestamps populated.
	AddInterviewRecords(ctx context.Context, records ...*core.InterviewRecord) ([]*core.InterviewRecord, error)

	// DeleteInterviewRecords removes interview records by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteInterviewRecords(ctx context.Context, ids ...core.ID) error

	// GetInterviewRecord retrieves a single interview record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetInterviewRecord(ctx context.Context, id core.ID) (*core.InterviewRecord, error)

	// GetInterviewRecords retrieves multiple interview records by their IDs.
	// Returns only the records that exist (no error for missing records).
	GetInterviewRecords(ctx context.Context, ids ...core.ID) ([]*core.InterviewRecord, error)

	// SearchTopic finds interview records whose question or answer contains
	// any token of the topic, case-insensitively, newest first. The filter
	// conditions apply conjunctively on top of the topic match. Returns up
	// to limit records; an empty result is valid.
	SearchTopic(ctx context.Context, topic string, filter InterviewFilter, limit int) ([]*core.InterviewRecord, error)

	// GetByMeeting retrieves every interview record belonging to a meeting,
	// ordered by timestamp ascending.
	GetByMeeting(ctx context.Context, meetingID core.ID) ([]*core.InterviewRecord, error)

	// GetRecentInterviewRecords retrieves the N most recent interview
	// records, ordered by timestamp descending.
	GetRecentInterviewRecords(ctx context.Context, limit int) ([]*core.InterviewRecord, error)
}
