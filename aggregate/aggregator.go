package aggregate

import (
	"context"
	"log/slog"

	"github.com/candorlabs/expertscope/ai"
	"github.com/candorlabs/expertscope/core"
)

// defaultSynthesisCap bounds how many interview records feed the synthesis
// prompt. Prompt size grows linearly with records; beyond this the marginal
// exchange adds cost, not signal.
const defaultSynthesisCap = 40

// Aggregator groups interview records into per-meeting transcripts, computes
// score statistics, and optionally synthesizes a narrative summary.
type Aggregator struct {
	synthesizer  ai.Synthesizer // nil means no synthesis
	logger       *slog.Logger
	synthesisCap int
}

// Summary is the aggregated view of an interview search result set.
type Summary struct {
	Topic       string
	Transcripts []*core.Transcript
	Stats       core.TranscriptStats
	// Synthesis is empty when no synthesizer is configured or synthesis
	// failed. The transcripts and stats above are always populated.
	Synthesis string
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
	}
}

// WithSynthesisCap overrides the maximum number of records passed to the
// synthesizer. Values below one restore the default.
func WithSynthesisCap(cap int) Option {
	return func(a *Aggregator) {
		if cap < 1 {
			cap = defaultSynthesisCap
		}
		a.synthesisCap = cap
	}
}

// NewAggregator creates an aggregator. A nil synthesizer is valid and means
// summaries carry transcripts and statistics only.
func NewAggregator(synthesizer ai.Synthesizer, opts ...Option) *Aggregator {
	a := &Aggregator{
		synthesizer:  synthesizer,
		logger:       slog.Default().With("component", "aggregator"),
		synthesisCap: defaultSynthesisCap,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GroupByMeeting splits records into per-meeting transcripts, preserving the
// input order of meetings and of records within each meeting. Each transcript
// carries its own score statistics.
func GroupByMeeting(records []*core.InterviewRecord) []*core.Transcript {
	var transcripts []*core.Transcript
	byMeeting := make(map[core.ID]*core.Transcript)

	for _, record := range records {
		if record == nil {
			continue
		}
		transcript, ok := byMeeting[record.MeetingId]
		if !ok {
			transcript = &core.Transcript{MeetingId: record.MeetingId}
			byMeeting[record.MeetingId] = transcript
			transcripts = append(transcripts, transcript)
		}
		transcript.Records = append(transcript.Records, record)
	}

	for _, transcript := range transcripts {
		transcript.Stats = ComputeStats(transcript.Records)
	}
	return transcripts
}

// ComputeStats computes mean credibility, consensus, and completion over the
// records. Records missing a score are excluded from that score's mean, not
// counted as zero; a mean over no scores is nil.
func ComputeStats(records []*core.InterviewRecord) core.TranscriptStats {
	stats := core.TranscriptStats{RecordCount: len(records)}

	var credSum, consSum, complSum float64
	var credN, consN, complN int
	for _, record := range records {
		if record == nil {
			continue
		}
		if record.Credibility != nil {
			credSum += *record.Credibility
			credN++
		}
		if record.Consensus != nil {
			consSum += *record.Consensus
			consN++
		}
		if record.Completion != nil {
			complSum += *record.Completion
			complN++
		}
	}

	if credN > 0 {
		mean := credSum / float64(credN)
		stats.MeanCredibility = &mean
	}
	if consN > 0 {
		mean := consSum / float64(consN)
		stats.MeanConsensus = &mean
	}
	if complN > 0 {
		mean := complSum / float64(complN)
		stats.MeanCompletion = &mean
	}
	return stats
}

// Summarize aggregates the records for a topic. Synthesis failures are
// logged and absorbed: the summary comes back without a narrative and with
// a nil error. Transcripts and statistics never depend on the synthesizer.
func (a *Aggregator) Summarize(ctx context.Context, topic string, records []*core.InterviewRecord) (*Summary, error) {
	summary := &Summary{
		Topic:       topic,
		Transcripts: GroupByMeeting(records),
		Stats:       ComputeStats(records),
	}

	if a.synthesizer == nil || len(records) == 0 {
		return summary, nil
	}

	capped := records
	if len(capped) > a.synthesisCap {
		capped = capped[:a.synthesisCap]
	}

	req := ai.SynthesisRequest{
		Topic:           topic,
		Exchanges:       make([]ai.SynthesisExchange, 0, len(capped)),
		MeanCredibility: summary.Stats.MeanCredibility,
		MeanConsensus:   summary.Stats.MeanConsensus,
		MeanCompletion:  summary.Stats.MeanCompletion,
	}
	for _, record := range capped {
		if record == nil {
			continue
		}
		req.Exchanges = append(req.Exchanges, ai.SynthesisExchange{
			ExpertName:  record.ExpertName,
			Question:    record.Question,
			Answer:      record.Answer,
			Credibility: record.Credibility,
			Consensus:   record.Consensus,
		})
	}

	synthesis, err := a.synthesizer.Synthesize(ctx, req)
	if err != nil {
		a.logger.Warn("synthesis failed, returning records without narrative",
			"topic", topic,
			"err", err)
		return summary, nil
	}
	summary.Synthesis = synthesis
	return summary, nil
}
