package criteria

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/candorlabs/expertscope/ai"
	"github.com/candorlabs/expertscope/core"
)

// Extractor turns a raw people-search query into a batch of structured
// criteria variants. The AI-backed generator is the primary strategy; the
// deterministic rule table takes over silently whenever the generator is
// absent or fails. Degraded mode is never an error visible to the caller.
type Extractor struct {
	generator ai.CriteriaGenerator // nil means fallback-only
	logger    *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// NewExtractor creates an extractor. A nil generator is valid and means the
// deterministic fallback handles every query.
func NewExtractor(generator ai.CriteriaGenerator, opts ...Option) *Extractor {
	e := &Extractor{
		generator: generator,
		logger:    slog.Default().With("component", "criteria-extractor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract converts a query (plus optional explicit company/title filters)
// into an ordered criteria batch. The AI path yields exactly five variants;
// the fallback yields one. Generator failures are logged and absorbed - the
// only error Extract returns is an empty query, rejected before any external
// call.
func (e *Extractor) Extract(ctx context.Context, query, explicitCompany, explicitTitle string) (*core.CriteriaBatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if e.generator != nil {
		batch, err := e.generate(ctx, query, explicitCompany, explicitTitle)
		if err == nil {
			return batch, nil
		}
		e.logger.Warn("criteria generation failed, using fallback",
			"query", query,
			"err", err)
	}

	return e.fallback(query, explicitCompany, explicitTitle), nil
}

// generate runs the AI strategy and converts its output to the domain model.
// The five-variant contract is enforced here as well as in the generator: a
// short batch or a degenerate primary is treated as malformed output.
func (e *Extractor) generate(ctx context.Context, query, explicitCompany, explicitTitle string) (*core.CriteriaBatch, error) {
	generated, err := e.generator.GenerateCriteria(ctx, query, explicitCompany, explicitTitle)
	if err != nil {
		return nil, err
	}
	if len(generated) != core.GeneratedVariantCount {
		return nil, fmt.Errorf("expected %d variants, got %d", core.GeneratedVariantCount, len(generated))
	}

	variants := make([]core.SearchCriteria, 0, len(generated))
	for _, g := range generated {
		variants = append(variants, core.SearchCriteria{
			Companies:        applyHint(g.Companies, explicitCompany),
			RoleKeywords:     applyHint(g.RoleKeywords, explicitTitle),
			EmploymentStatus: core.ParseEmploymentStatus(g.EmploymentStatus),
			Reasoning:        g.Reasoning,
		})
	}

	if variants[0].Degenerate() {
		return nil, core.ErrDegenerateCriteria
	}

	return &core.CriteriaBatch{
		Variants: variants,
		Source:   core.SourceGenerator,
	}, nil
}

// fallback derives a single-variant batch from the prioritized rule table,
// with the default tokenizer as the terminal rule. Always succeeds.
func (e *Extractor) fallback(query, explicitCompany, explicitTitle string) *core.CriteriaBatch {
	q := newQueryText(query)

	var companies, roles []string
	for _, r := range fallbackRules {
		if r.match(q) {
			companies = r.companies(q)
			roles = r.roles
			e.logger.Debug("fallback rule matched", "rule", r.name, "query", query)
			break
		}
	}
	if companies == nil && roles == nil {
		companies, roles = defaultTokenize(query)
	}

	variant := core.SearchCriteria{
		Companies:        applyHint(companies, explicitCompany),
		RoleKeywords:     applyHint(roles, explicitTitle),
		EmploymentStatus: detectEmploymentStatus(q),
		Reasoning:        "deterministic pattern detection",
	}

	return &core.CriteriaBatch{
		Variants: []core.SearchCriteria{variant},
		Source:   core.SourceFallback,
	}
}

// detectEmploymentStatus derives the status independently of the rule table:
// "former"/"ex-" wins over "current" when both appear.
func detectEmploymentStatus(q *queryText) core.EmploymentStatus {
	if q.containsToken("former") || strings.Contains(q.lower, "ex-") {
		return core.EmploymentFormer
	}
	if q.containsToken("current") || q.containsToken("currently") {
		return core.EmploymentCurrent
	}
	return core.EmploymentAny
}

// defaultTokenize is the terminal fallback path: capitalized tokens become
// company candidates, role-lexicon hits become role keywords, and the broad
// seniority list steps in when both come up empty.
func defaultTokenize(query string) (companies, roles []string) {
	seenRoles := make(map[string]bool)
	for _, word := range strings.Fields(query) {
		cleaned := strings.Trim(word, ".,!?;:'\"-()[]{}")
		if cleaned == "" {
			continue
		}
		lower := strings.ToLower(cleaned)
		if queryStopWords[lower] || statusWords[lower] {
			continue
		}
		if canonical, ok := roleLexicon[lower]; ok {
			if !seenRoles[canonical] {
				seenRoles[canonical] = true
				roles = append(roles, canonical)
			}
			continue
		}
		if isCapitalized(cleaned) {
			companies = append(companies, cleaned)
		}
	}

	if len(companies) == 0 && len(roles) == 0 {
		roles = append(roles, broadSeniorityRoles...)
	}
	return companies, roles
}

func isCapitalized(word string) bool {
	return word[0] >= 'A' && word[0] <= 'Z'
}

// applyHint prepends an explicit filter value unless it is already present
// (case-insensitive).
func applyHint(values []string, hint string) []string {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return values
	}
	for _, v := range values {
		if strings.EqualFold(v, hint) {
			return values
		}
	}
	return append([]string{hint}, values...)
}
