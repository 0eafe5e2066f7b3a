package aggregate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/candorlabs/expertscope/ai"
	"github.com/candorlabs/expertscope/ai/mock"
	"github.com/candorlabs/expertscope/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(v float64) *float64 { return &v }

func record(meeting core.ID, expert string, credibility, consensus *float64) *core.InterviewRecord {
	return &core.InterviewRecord{
		MeetingId:   meeting,
		ExpertName:  expert,
		Question:    "What changed this year?",
		Answer:      "Budgets tightened.",
		Credibility: credibility,
		Consensus:   consensus,
		Timestamp:   time.Now().UTC(),
	}
}

func TestComputeStats_NilExcludedMeans(t *testing.T) {
	records := []*core.InterviewRecord{
		record(1, "A", score(9), score(3)),
		record(1, "B", score(7), nil),
		record(1, "C", nil, nil),
	}

	stats := ComputeStats(records)
	require.NotNil(t, stats.MeanCredibility)
	assert.InDelta(t, 8.0, *stats.MeanCredibility, 1e-9)
	require.NotNil(t, stats.MeanConsensus)
	assert.InDelta(t, 3.0, *stats.MeanConsensus, 1e-9)
	assert.Nil(t, stats.MeanCompletion)
	assert.Equal(t, 3, stats.RecordCount)
}

func TestComputeStats_AllNil(t *testing.T) {
	records := []*core.InterviewRecord{
		record(1, "A", nil, nil),
		record(1, "B", nil, nil),
	}

	stats := ComputeStats(records)
	assert.Nil(t, stats.MeanCredibility)
	assert.Nil(t, stats.MeanConsensus)
	assert.Nil(t, stats.MeanCompletion)
	assert.Equal(t, 2, stats.RecordCount)
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)
	assert.Equal(t, 0, stats.RecordCount)
	assert.Nil(t, stats.MeanCredibility)
}

func TestGroupByMeeting(t *testing.T) {
	records := []*core.InterviewRecord{
		record(2, "A", score(9), nil),
		record(1, "B", score(7), nil),
		record(2, "C", score(5), nil),
	}

	transcripts := GroupByMeeting(records)
	require.Len(t, transcripts, 2)

	// Meeting order follows first appearance in the input.
	assert.Equal(t, core.ID(2), transcripts[0].MeetingId)
	require.Len(t, transcripts[0].Records, 2)
	assert.Equal(t, "A", transcripts[0].Records[0].ExpertName)
	assert.Equal(t, "C", transcripts[0].Records[1].ExpertName)

	assert.Equal(t, core.ID(1), transcripts[1].MeetingId)
	require.Len(t, transcripts[1].Records, 1)

	// Per-transcript stats cover only that meeting's records.
	require.NotNil(t, transcripts[0].Stats.MeanCredibility)
	assert.InDelta(t, 7.0, *transcripts[0].Stats.MeanCredibility, 1e-9)
	require.NotNil(t, transcripts[1].Stats.MeanCredibility)
	assert.InDelta(t, 7.0, *transcripts[1].Stats.MeanCredibility, 1e-9)
}

func TestSummarize_NoSynthesizer(t *testing.T) {
	a := NewAggregator(nil)

	records := []*core.InterviewRecord{record(1, "A", score(9), nil)}
	summary, err := a.Summarize(context.Background(), "pricing", records)
	require.NoError(t, err)

	assert.Empty(t, summary.Synthesis)
	assert.Len(t, summary.Transcripts, 1)
	assert.Equal(t, 1, summary.Stats.RecordCount)
}

func TestSummarize_WithSynthesizer(t *testing.T) {
	syn := mock.NewMockSynthesizer()
	syn.SynthesizeFunc = func(ctx context.Context, req ai.SynthesisRequest) (string, error) {
		assert.Equal(t, "pricing", req.Topic)
		require.Len(t, req.Exchanges, 2)
		require.NotNil(t, req.MeanCredibility)
		return "Experts agree pricing pressure is rising.", nil
	}
	a := NewAggregator(syn)

	records := []*core.InterviewRecord{
		record(1, "A", score(9), nil),
		record(2, "B", score(7), nil),
	}
	summary, err := a.Summarize(context.Background(), "pricing", records)
	require.NoError(t, err)
	assert.Equal(t, "Experts agree pricing pressure is rising.", summary.Synthesis)
	assert.Equal(t, 1, syn.CallCount())
}

func TestSummarize_SynthesisFailureAbsorbed(t *testing.T) {
	syn := mock.NewMockSynthesizer()
	syn.SynthesizeFunc = func(ctx context.Context, req ai.SynthesisRequest) (string, error) {
		return "", errors.New("model unavailable")
	}
	a := NewAggregator(syn)

	records := []*core.InterviewRecord{record(1, "A", score(9), nil)}
	summary, err := a.Summarize(context.Background(), "pricing", records)
	require.NoError(t, err)
	assert.Empty(t, summary.Synthesis)
	assert.Len(t, summary.Transcripts, 1)
	// One attempt, no retry.
	assert.Equal(t, 1, syn.CallCount())
}

func TestSummarize_SynthesisCap(t *testing.T) {
	syn := mock.NewMockSynthesizer()
	var got int
	syn.SynthesizeFunc = func(ctx context.Context, req ai.SynthesisRequest) (string, error) {
		got = len(req.Exchanges)
		return "capped", nil
	}
	a := NewAggregator(syn, WithSynthesisCap(3))

	records := make([]*core.InterviewRecord, 10)
	for i := range records {
		records[i] = record(core.ID(i%2+1), "Expert", score(5), nil)
	}
	summary, err := a.Summarize(context.Background(), "pricing", records)
	require.NoError(t, err)
	assert.Equal(t, "capped", summary.Synthesis)
	assert.Equal(t, 3, got)
	// Stats still cover every record, not just the capped prompt input.
	assert.Equal(t, 10, summary.Stats.RecordCount)
}

func TestSummarize_EmptyRecords(t *testing.T) {
	syn := mock.NewMockSynthesizer()
	a := NewAggregator(syn)

	summary, err := a.Summarize(context.Background(), "pricing", nil)
	require.NoError(t, err)
	assert.Empty(t, summary.Synthesis)
	assert.Empty(t, summary.Transcripts)
	// No records means no synthesis call at all.
	assert.Equal(t, 0, syn.CallCount())
}
