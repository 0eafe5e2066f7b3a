package retrieve

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/candorlabs/expertscope/core"
	"github.com/candorlabs/expertscope/criteria"
	"github.com/candorlabs/expertscope/storage"
	"github.com/candorlabs/expertscope/topic"
)

// Retriever orchestrates criteria extraction, topic normalization, and
// ranked retrieval against the profile and interview stores.
type Retriever struct {
	profiles   storage.ProfileRepository
	interviews storage.InterviewRepository
	extractor  *criteria.Extractor
	normalizer *topic.Normalizer
	logger     *slog.Logger

	companyDedup       bool
	variantFallthrough bool
}

// ExpertResults pairs the interpreted criteria with the ranked matches so
// callers can show why a result set looks the way it does.
type ExpertResults struct {
	Criteria *core.CriteriaBatch
	Matches  []*core.ProfileMatch
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithCompanyDedup enables case-insensitive deduplication of criteria
// companies before searching. Off by default: duplicate mentions keep
// their additive effect on match scores.
func WithCompanyDedup(enabled bool) Option {
	return func(r *Retriever) error {
		r.companyDedup = enabled
		return nil
	}
}

// WithVariantFallthrough enables trying the remaining criteria variants,
// in order, when the primary variant matches nothing. Off by default.
func WithVariantFallthrough(enabled bool) Option {
	return func(r *Retriever) error {
		r.variantFallthrough = enabled
		return nil
	}
}

// NewRetriever creates a new retriever.
func NewRetriever(
	profiles storage.ProfileRepository,
	interviews storage.InterviewRepository,
	extractor *criteria.Extractor,
	normalizer *topic.Normalizer,
	opts ...Option,
) (*Retriever, error) {
	if profiles == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if interviews == nil {
		return nil, ErrInterviewRepositoryRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if normalizer == nil {
		return nil, ErrNormalizerRequired
	}

	r := &Retriever{
		profiles:   profiles,
		interviews: interviews,
		extractor:  extractor,
		normalizer: normalizer,
		logger:     slog.Default().With("component", "retriever"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// SearchExperts interprets the query and returns ranked profile matches.
// Interpretation degradation is invisible here; a storage failure is
// returned wrapped in ErrStoreFailure. An empty match list is a valid
// result, not an error.
func (r *Retriever) SearchExperts(ctx context.Context, query, explicitCompany, explicitTitle string, limit int) (*ExpertResults, error) {
	return r.SearchExpertsWithMonitor(ctx, query, explicitCompany, explicitTitle, limit, nil)
}

// SearchExpertsWithMonitor runs an expert search with monitoring callbacks
// at each stage of the pipeline.
func (r *Retriever) SearchExpertsWithMonitor(ctx context.Context, query, explicitCompany, explicitTitle string, limit int, monitor RetrievalMonitor) (*ExpertResults, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query)

	batch, err := r.extractor.Extract(ctx, query, explicitCompany, explicitTitle)
	if err != nil {
		return nil, err
	}
	monitor.AfterCriteriaExtraction(batch)

	primary := batch.Primary()
	if primary == nil || primary.Degenerate() {
		return nil, core.ErrDegenerateCriteria
	}

	matches, err := r.searchVariant(ctx, 0, primary, limit, monitor)
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 && r.variantFallthrough {
		for i := 1; i < len(batch.Variants); i++ {
			variant := &batch.Variants[i]
			if variant.Degenerate() {
				continue
			}
			matches, err = r.searchVariant(ctx, i, variant, limit, monitor)
			if err != nil {
				return nil, err
			}
			if len(matches) > 0 {
				r.logger.Debug("variant fallthrough matched", "variant", i, "query", query)
				break
			}
		}
	}

	monitor.Finish(matches)
	return &ExpertResults{
		Criteria: batch,
		Matches:  matches,
	}, nil
}

func (r *Retriever) searchVariant(ctx context.Context, index int, variant *core.SearchCriteria, limit int, monitor RetrievalMonitor) ([]*core.ProfileMatch, error) {
	monitor.BeforeVariant(index, variant)

	companies := variant.Companies
	if r.companyDedup {
		companies = dedupFold(companies)
	}

	matches, err := r.profiles.SearchRanked(ctx, companies, variant.RoleKeywords, variant.EmploymentStatus, limit)
	if err != nil {
		r.logger.Error("profile search failed", "variant", index, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}
	monitor.AfterVariant(index, matches)
	return matches, nil
}

// SearchInterviews normalizes the topic and returns matching interview
// records, newest first. A storage failure is returned wrapped in
// ErrStoreFailure.
func (r *Retriever) SearchInterviews(ctx context.Context, rawTopic string, filter storage.InterviewFilter, limit int) ([]*core.InterviewRecord, error) {
	normalized := r.normalizer.Normalize(ctx, rawTopic)
	if normalized == "" {
		return nil, ErrEmptyTopic
	}

	records, err := r.interviews.SearchTopic(ctx, normalized, filter, limit)
	if err != nil {
		r.logger.Error("interview search failed", "topic", normalized, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}
	return records, nil
}

// dedupFold removes case-insensitive duplicates, preserving first-seen order
// and casing.
func dedupFold(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, v)
	}
	return result
}
