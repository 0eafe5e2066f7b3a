// Copyright 2025 Candor Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/candorlabs/expertscope/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const synthesisMaxTokens = 1536

// Synthesizer implements ai.Synthesizer using OpenAI-compatible chat APIs.
type Synthesizer struct {
	client llms.Model
	logger *slog.Logger
}

func newSynthesizer(config *ai.Config) (*Synthesizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(tokenOrNone(config.Token)),
		openai.WithModel(config.SynthesisModel),
	)
	if err != nil {
		return nil, err
	}

	return &Synthesizer{
		client: client,
		logger: slog.Default().With("component", "openai-synthesizer"),
	}, nil
}

// NewSynthesizer creates a new findings synthesizer using the provided
// configuration.
//
// Returns ai.Synthesizer interface to enforce abstraction.
func NewSynthesizer(config *ai.Config) (ai.Synthesizer, error) {
	return newSynthesizer(config)
}

// Synthesize renders the record set into a structured prompt and returns the
// raw model text. Called once; failures are returned so the caller can
// degrade to structured records without synthesis.
func (s *Synthesizer) Synthesize(ctx context.Context, req ai.SynthesisRequest) (string, error) {
	if len(req.Exchanges) == 0 {
		return "", fmt.Errorf("no exchanges to synthesize")
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(synthesisPromptTemplate),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(renderSynthesisInput(req)),
			},
		},
	}

	response, err := s.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.3),
		llms.WithMaxTokens(synthesisMaxTokens))
	if err != nil {
		s.logger.Warn("synthesis call failed", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		return "", fmt.Errorf("no choices returned from model")
	}

	text := strings.TrimSpace(response.Choices[0].Content)
	if text == "" {
		return "", fmt.Errorf("synthesis returned empty text")
	}
	return text, nil
}

// renderSynthesisInput formats exchanges and aggregate statistics for the
// synthesis prompt.
func renderSynthesisInput(req ai.SynthesisRequest) string {
	var b strings.Builder

	if req.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n\n", req.Topic)
	}

	b.WriteString("Aggregate statistics:\n")
	writeStat(&b, "mean credibility", req.MeanCredibility)
	writeStat(&b, "mean consensus", req.MeanConsensus)
	writeStat(&b, "mean completion", req.MeanCompletion)
	fmt.Fprintf(&b, "- exchanges: %d\n\n", len(req.Exchanges))

	for i, ex := range req.Exchanges {
		fmt.Fprintf(&b, "Exchange %d", i+1)
		if ex.ExpertName != "" {
			fmt.Fprintf(&b, " (expert: %s", ex.ExpertName)
			if ex.Credibility != nil {
				fmt.Fprintf(&b, ", credibility %.1f", *ex.Credibility)
			}
			if ex.Consensus != nil {
				fmt.Fprintf(&b, ", consensus %.1f", *ex.Consensus)
			}
			b.WriteString(")")
		}
		fmt.Fprintf(&b, "\nQ: %s\nA: %s\n\n", ex.Question, ex.Answer)
	}

	return strings.TrimSpace(b.String())
}

func writeStat(b *strings.Builder, name string, value *float64) {
	if value == nil {
		fmt.Fprintf(b, "- %s: not recorded\n", name)
		return
	}
	fmt.Fprintf(b, "- %s: %.2f\n", name, *value)
}
