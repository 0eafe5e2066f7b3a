package mock

import (
	"context"
	"strings"

	"github.com/candorlabs/expertscope/ai"
)

// MockCriteriaGenerator is a test double for ai.CriteriaGenerator.
// It allows custom behavior injection via function fields.
type MockCriteriaGenerator struct {
	// GenerateCriteriaFunc is called by GenerateCriteria if set.
	// If nil, uses a default deterministic five-variant expansion.
	GenerateCriteriaFunc func(ctx context.Context, query, explicitCompany, explicitTitle string) ([]ai.GeneratedCriteria, error)

	callCount int
}

// NewMockCriteriaGenerator creates a mock generator with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockCriteriaGenerator() *MockCriteriaGenerator {
	return &MockCriteriaGenerator{}
}

// GenerateCriteria produces five deterministic variants derived from the
// capitalized tokens of the query. Default behavior only; inject
// GenerateCriteriaFunc for anything else.
func (m *MockCriteriaGenerator) GenerateCriteria(ctx context.Context, query, explicitCompany, explicitTitle string) ([]ai.GeneratedCriteria, error) {
	m.callCount++

	if m.GenerateCriteriaFunc != nil {
		return m.GenerateCriteriaFunc(ctx, query, explicitCompany, explicitTitle)
	}

	companies := []string{}
	if explicitCompany != "" {
		companies = append(companies, explicitCompany)
	}
	for _, word := range strings.Fields(query) {
		trimmed := strings.Trim(word, ".,!?;:\"'()[]{}")
		if trimmed != "" && trimmed[0] >= 'A' && trimmed[0] <= 'Z' {
			companies = append(companies, trimmed)
		}
	}
	roles := []string{"VP", "Director"}
	if explicitTitle != "" {
		roles = append([]string{explicitTitle}, roles...)
	}

	variants := make([]ai.GeneratedCriteria, 5)
	for i := range variants {
		variants[i] = ai.GeneratedCriteria{
			Companies:        companies,
			RoleKeywords:     roles,
			EmploymentStatus: "any",
			Reasoning:        "mock variant",
		}
	}
	return variants, nil
}

// CallCount returns the number of times GenerateCriteria was called.
func (m *MockCriteriaGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockCriteriaGenerator) Reset() {
	m.callCount = 0
	m.GenerateCriteriaFunc = nil
}
