package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// EmploymentStatus constrains a people search to current employees,
// former employees, or both.
type EmploymentStatus int

const (
	// EmploymentAny matches both current and former employees.
	EmploymentAny EmploymentStatus = iota + 1
	// EmploymentCurrent matches only people currently employed at a criteria company.
	EmploymentCurrent
	// EmploymentFormer matches only people who have left a criteria company.
	EmploymentFormer
)

// String returns the wire representation used in prompts and CLI output.
func (s EmploymentStatus) String() string {
	switch s {
	case EmploymentCurrent:
		return "current"
	case EmploymentFormer:
		return "former"
	default:
		return "any"
	}
}

// ParseEmploymentStatus maps a textual status to its enum value.
// Unknown values map to EmploymentAny.
func ParseEmploymentStatus(s string) EmploymentStatus {
	switch s {
	case "current":
		return EmploymentCurrent
	case "former":
		return EmploymentFormer
	default:
		return EmploymentAny
	}
}

// SearchCriteria is one candidate (companies, role keywords, employment status)
// tuple produced by the criteria extractor. Companies may deliberately contain
// name variants of the same organization; whether those are deduplicated before
// retrieval is the retriever's policy, not a property of the criteria.
type SearchCriteria struct {
	Companies        []string
	RoleKeywords     []string
	EmploymentStatus EmploymentStatus
	Reasoning        string // diagnostic only, never used in ranking
}

// Degenerate reports whether the criteria carry nothing searchable.
// A degenerate variant must not be submitted to the profile store as the
// primary choice.
func (c *SearchCriteria) Degenerate() bool {
	return len(c.Companies) == 0 && len(c.RoleKeywords) == 0
}

// GeneratedVariantCount is the number of diversified variants the AI
// generator is contracted to return. The fallback strategy returns one.
const GeneratedVariantCount = 5

// CriteriaSource identifies which extraction strategy produced a batch.
type CriteriaSource int

const (
	// SourceGenerator marks a batch produced by the AI-backed generator.
	SourceGenerator CriteriaSource = iota + 1
	// SourceFallback marks a batch produced by deterministic pattern detection.
	SourceFallback
)

// String returns a short label for logs.
func (s CriteriaSource) String() string {
	switch s {
	case SourceGenerator:
		return "generator"
	case SourceFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// CriteriaBatch is an ordered sequence of criteria variants produced by one
// extraction strategy run. The first variant is the primary and the only one
// executed by default; the rest preserve the generator contract.
type CriteriaBatch struct {
	Variants []SearchCriteria
	Source   CriteriaSource
}

// Primary returns the first variant, or nil for an empty batch.
func (b *CriteriaBatch) Primary() *SearchCriteria {
	if b == nil || len(b.Variants) == 0 {
		return nil
	}
	return &b.Variants[0]
}

// Employment is one entry in a person's work history.
// A zero End marks the engagement as ongoing.
type Employment struct {
	Company string
	Title   string
	Start   time.Time
	End     time.Time
}

// ProfileRecord is an immutable snapshot of a person known to the system.
// Lifecycle belongs to the profile store; the engine only reads them.
type ProfileRecord struct {
	Id             ID
	Name           string
	CurrentCompany string
	CurrentTitle   string
	History        []Employment
	Active         bool   // currently employed anywhere
	Background     string // free-text searchable background
	InsertedAt     time.Time
	UpdatedAt      time.Time
}

// InterviewRecord is a single question/answer exchange from an expert
// interview. Records are immutable once created. Score pointers are nil when
// the score was never recorded; a nil score is excluded from aggregate means.
type InterviewRecord struct {
	Id          ID
	MeetingId   ID // groups records into one interview transcript
	ExpertId    ID
	ExpertName  string
	Question    string
	Answer      string
	Credibility *float64 // 0-10
	Consensus   *float64 // 0-10
	Completion  *float64 // 0-1
	Timestamp   time.Time
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// ProfileMatch is a profile returned from ranked search with its score.
type ProfileMatch struct {
	Record *ProfileRecord
	Score  float64
}

// Transcript is the set of interview records sharing one meeting identifier,
// with aggregate quality statistics over that set.
type Transcript struct {
	MeetingId ID
	Records   []*InterviewRecord
	Stats     TranscriptStats
}

// TranscriptStats holds aggregate quality statistics for a record set.
// Means are nil when no record in the set carries the corresponding score.
type TranscriptStats struct {
	MeanCredibility *float64
	MeanConsensus   *float64
	MeanCompletion  *float64
	RecordCount     int
}
