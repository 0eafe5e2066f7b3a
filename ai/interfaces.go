package ai

import "context"

// CriteriaGenerator turns a free-form people-search query into diversified
// structured search criteria. Implementations must be thread-safe for
// concurrent use.
type CriteriaGenerator interface {
	// GenerateCriteria analyzes a query (plus optional explicit company and
	// title hints) and returns exactly five diversified criteria variants,
	// ordered best-guess first. Only companies and roles present or
	// unambiguously implied in the query may appear.
	// Returns an error if the model call fails or the output does not
	// conform to the contract; callers are expected to fall back.
	GenerateCriteria(ctx context.Context, query, explicitCompany, explicitTitle string) ([]GeneratedCriteria, error)
}

// TopicExpander expands a free-text interview topic into related search terms.
// Implementations must be thread-safe for concurrent use.
type TopicExpander interface {
	// ExpandTopic returns 5-10 synonyms and related concepts for the topic,
	// suitable for substring matching against short interview text fields.
	// Returns an error if expansion fails; callers degrade to deterministic
	// reduction.
	ExpandTopic(ctx context.Context, topic string) ([]string, error)
}

// Synthesizer produces a cross-record findings narrative from a filtered
// interview record set. Implementations must be thread-safe for concurrent use.
type Synthesizer interface {
	// Synthesize returns free text covering key findings, consensus,
	// disagreements, a credibility assessment, and decision-relevant
	// implications. Returns an error if the model call fails; callers
	// return the structured records without synthesis.
	Synthesize(ctx context.Context, req SynthesisRequest) (string, error)
}

// GeneratedCriteria is one criteria variant as produced by a generator,
// before conversion to the domain model.
type GeneratedCriteria struct {
	// Companies holds company names, possibly including deliberate name
	// variants of the same organization (legal suffixes, shortened forms).
	Companies []string

	// RoleKeywords holds role, title, and seniority strings.
	RoleKeywords []string

	// EmploymentStatus is "current", "former", or "any".
	EmploymentStatus string

	// Reasoning is a free-text justification. Diagnostic only.
	Reasoning string
}

// SynthesisExchange is one question/answer pair passed into a synthesis prompt.
type SynthesisExchange struct {
	ExpertName  string
	Question    string
	Answer      string
	Credibility *float64
	Consensus   *float64
}

// SynthesisRequest carries a capped record set and its aggregate statistics
// into a synthesis call.
type SynthesisRequest struct {
	Topic           string
	Exchanges       []SynthesisExchange
	MeanCredibility *float64
	MeanConsensus   *float64
	MeanCompletion  *float64
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages generator, expander, and
// synthesizer instances, ensuring they share configuration and resources.
type Provider interface {
	// CriteriaGenerator returns the criteria generation service.
	// The returned CriteriaGenerator is safe for concurrent use.
	CriteriaGenerator() CriteriaGenerator

	// TopicExpander returns the topic expansion service.
	// The returned TopicExpander is safe for concurrent use.
	TopicExpander() TopicExpander

	// Synthesizer returns the findings synthesis service.
	// The returned Synthesizer is safe for concurrent use.
	Synthesizer() Synthesizer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
