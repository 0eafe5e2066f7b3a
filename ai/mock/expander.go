package mock

import (
	"context"
	"strings"

	"github.com/candorlabs/expertscope/ai"
)

// MockTopicExpander is a test double for ai.TopicExpander.
// It allows custom behavior injection via function fields.
type MockTopicExpander struct {
	// ExpandTopicFunc is called by ExpandTopic if set.
	// If nil, echoes the topic's words back as terms.
	ExpandTopicFunc func(ctx context.Context, topic string) ([]string, error)

	callCount int
}

// NewMockTopicExpander creates a mock expander with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockTopicExpander() *MockTopicExpander {
	return &MockTopicExpander{}
}

// ExpandTopic returns the topic plus its individual words, capped at ten terms.
func (m *MockTopicExpander) ExpandTopic(ctx context.Context, topic string) ([]string, error) {
	m.callCount++

	if m.ExpandTopicFunc != nil {
		return m.ExpandTopicFunc(ctx, topic)
	}

	terms := []string{strings.TrimSpace(topic)}
	for _, word := range strings.Fields(topic) {
		if len(terms) == 10 {
			break
		}
		if len(word) > 3 {
			terms = append(terms, strings.ToLower(word))
		}
	}
	return terms, nil
}

// CallCount returns the number of times ExpandTopic was called.
func (m *MockTopicExpander) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockTopicExpander) Reset() {
	m.callCount = 0
	m.ExpandTopicFunc = nil
}

var _ ai.TopicExpander = (*MockTopicExpander)(nil)
