package ingest

import "errors"

var (
	// ErrProfileRepositoryRequired is returned when a profile repository is not provided.
	ErrProfileRepositoryRequired = errors.New("profile repository required")

	// ErrInterviewRepositoryRequired is returned when an interview repository is not provided.
	ErrInterviewRepositoryRequired = errors.New("interview repository required")

	// ErrNoRecords is returned when a load is attempted with no records.
	ErrNoRecords = errors.New("no records to load")
)
