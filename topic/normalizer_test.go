package topic

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/candorlabs/expertscope/ai/mock"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_LongTopicReduced(t *testing.T) {
	n := NewNormalizer(nil)

	raw := "What do customers think about Adobe Photoshop pricing and subscription value compared to Capture One over the last two years"
	got := n.Normalize(context.Background(), raw)

	tokens := strings.Fields(got)
	assert.LessOrEqual(t, len(tokens), 4)
	for _, tok := range tokens {
		lower := strings.ToLower(tok)
		assert.NotContains(t, []string{"what", "about", "the"}, lower)
	}
	assert.Equal(t, "Adobe Photoshop pricing subscription", got)
}

func TestNormalize_ShortTopicUntouched(t *testing.T) {
	n := NewNormalizer(nil)

	got := n.Normalize(context.Background(), "vendor consolidation")
	assert.Equal(t, "vendor consolidation", got)
}

func TestNormalize_Idempotent(t *testing.T) {
	n := NewNormalizer(nil)
	ctx := context.Background()

	inputs := []string{
		"vendor consolidation",
		"cloud migration risks",
		"pricing",
		"ERP",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			once := n.Normalize(ctx, in)
			twice := n.Normalize(ctx, once)
			assert.Equal(t, once, twice)
		})
	}
}

func TestNormalize_ParentheticalsStripped(t *testing.T) {
	n := NewNormalizer(nil)

	raw := "How are enterprises approaching vendor consolidation (especially in the mid-market segment) for infrastructure software"
	got := n.Normalize(context.Background(), raw)
	assert.NotContains(t, got, "mid-market")
	assert.Contains(t, got, "vendor")
}

func TestNormalize_SynonymClusters(t *testing.T) {
	n := NewNormalizer(nil)

	t.Run("vendor cluster", func(t *testing.T) {
		got := n.Normalize(context.Background(), "vend")
		assert.Equal(t, "vend procurement sourcing supplier", got)
	})

	t.Run("budget cluster", func(t *testing.T) {
		got := n.Normalize(context.Background(), "budg")
		assert.Equal(t, "budg spending investment cost", got)
	})

	t.Run("no cluster match keeps short input", func(t *testing.T) {
		got := n.Normalize(context.Background(), "ERP")
		assert.Equal(t, "ERP", got)
	})
}

func TestNormalize_NeverEmpty(t *testing.T) {
	n := NewNormalizer(nil)

	t.Run("quotes-only input returns raw", func(t *testing.T) {
		got := n.Normalize(context.Background(), `"';\`)
		assert.NotEmpty(t, got)
	})

	t.Run("blank input returns blank", func(t *testing.T) {
		got := n.Normalize(context.Background(), "   ")
		assert.Empty(t, got)
	})
}

func TestNormalize_ExpanderPath(t *testing.T) {
	exp := mock.NewMockTopicExpander()
	exp.ExpandTopicFunc = func(ctx context.Context, topic string) ([]string, error) {
		return []string{"procurement", "sourcing", "supplier management"}, nil
	}
	n := NewNormalizer(exp)

	got := n.Normalize(context.Background(), "vendor consolidation strategies")
	assert.Equal(t, "procurement sourcing supplier management", got)
	assert.Equal(t, 1, exp.CallCount())
}

func TestNormalize_ExpanderFailureFallsBack(t *testing.T) {
	exp := mock.NewMockTopicExpander()
	exp.ExpandTopicFunc = func(ctx context.Context, topic string) ([]string, error) {
		return nil, errors.New("model unavailable")
	}
	n := NewNormalizer(exp)

	got := n.Normalize(context.Background(), "vendor consolidation")
	assert.Equal(t, "vendor consolidation", got)
	// Expansion is attempted exactly once.
	assert.Equal(t, 1, exp.CallCount())
}

func TestNormalize_ExpansionSanitized(t *testing.T) {
	exp := mock.NewMockTopicExpander()
	exp.ExpandTopicFunc = func(ctx context.Context, topic string) ([]string, error) {
		return []string{`pro"cure'ment`, "sourcing;"}, nil
	}
	n := NewNormalizer(exp)

	got := n.Normalize(context.Background(), "vendor spend")
	assert.Equal(t, "procurement sourcing", got)
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "strips all four characters", input: `a"b'c;d\e`, want: "abcde"},
		{name: "clean input unchanged", input: "vendor consolidation", want: "vendor consolidation"},
		{name: "only forbidden characters", input: `"';\`, want: ""},
		{name: "whitespace trimmed", input: "  topic  ", want: "topic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			assert.Equal(t, tt.want, got)
			for _, forbidden := range []string{`"`, "'", ";", `\`} {
				assert.NotContains(t, got, forbidden)
			}
		})
	}
}
