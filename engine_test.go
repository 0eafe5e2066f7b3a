package expertscope

import (
	"context"
	"testing"
	"time"

	"github.com/candorlabs/expertscope/ai/mock"
	"github.com/candorlabs/expertscope/core"
	"github.com/candorlabs/expertscope/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, opts ...EngineOption) *Engine {
	t.Helper()

	opts = append(opts, WithInMemory())
	engine, err := NewEngine("", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestEngine_EndToEnd(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	pipeline, err := engine.NewLoadPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	now := time.Now().UTC().Truncate(time.Microsecond)
	loaded, err := pipeline.LoadProfiles(ctx, []*core.ProfileRecord{
		{
			Name:           "Dana Whitfield",
			CurrentCompany: "Snowflake",
			History: []core.Employment{
				{Company: "Google", Title: "VP Engineering", Start: now.AddDate(-7, 0, 0), End: now.AddDate(-2, 0, 0)},
			},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, loaded)

	loaded, err = pipeline.LoadInterviews(ctx, []*core.InterviewRecord{
		{
			MeetingId:   core.ID(1),
			ExpertName:  "Dana Whitfield",
			Question:    "How is vendor consolidation going?",
			Answer:      "Slowly.",
			Credibility: func() *float64 { v := 8.0; return &v }(),
			Timestamp:   now,
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, loaded)

	retriever, err := engine.NewRetriever()
	require.NoError(t, err)

	// Deterministic expert search: no AI provider is configured.
	results, err := retriever.SearchExperts(ctx, "former Google VPs", "", "", 10)
	require.NoError(t, err)
	require.Len(t, results.Matches, 1)
	assert.Equal(t, "Dana Whitfield", results.Matches[0].Record.Name)
	assert.Equal(t, core.SourceFallback, results.Criteria.Source)

	records, err := retriever.SearchInterviews(ctx, "vendor consolidation", storage.InterviewFilter{}, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	aggregator := engine.NewAggregator()
	summary, err := aggregator.Summarize(ctx, "vendor consolidation", records)
	require.NoError(t, err)
	assert.Len(t, summary.Transcripts, 1)
	assert.Empty(t, summary.Synthesis)
	require.NotNil(t, summary.Stats.MeanCredibility)
	assert.InDelta(t, 8.0, *summary.Stats.MeanCredibility, 1e-9)
}

func TestEngine_WithInjectedProvider(t *testing.T) {
	gen := mock.NewMockCriteriaGenerator()
	provider := mock.NewMockProviderWithServices(gen, mock.NewMockTopicExpander(), mock.NewMockSynthesizer())
	engine := newTestEngine(t, WithProvider(provider))
	ctx := context.Background()

	_, err := engine.ProfileRepository().AddProfiles(ctx, &core.ProfileRecord{
		Name:           "Marcus Oyelaran",
		CurrentCompany: "Stripe",
		CurrentTitle:   "Director of Product",
		Active:         true,
	})
	require.NoError(t, err)

	retriever, err := engine.NewRetriever()
	require.NoError(t, err)

	results, err := retriever.SearchExperts(ctx, "Stripe directors", "", "", 10)
	require.NoError(t, err)
	assert.Equal(t, core.SourceGenerator, results.Criteria.Source)
	assert.NotEmpty(t, results.Matches)
	assert.Equal(t, 1, gen.CallCount())
}

func TestEngine_Accessors(t *testing.T) {
	engine := newTestEngine(t)

	assert.NotNil(t, engine.ProfileRepository())
	assert.NotNil(t, engine.InterviewRepository())
	assert.NotNil(t, engine.Notifier())
}
