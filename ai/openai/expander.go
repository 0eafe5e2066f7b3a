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

const expansionMaxTokens = 256

// TopicExpander implements ai.TopicExpander using OpenAI-compatible chat APIs.
type TopicExpander struct {
	client llms.Model
	logger *slog.Logger
}

func newTopicExpander(config *ai.Config) (*TopicExpander, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(tokenOrNone(config.Token)),
		openai.WithModel(config.ExpanderModel),
	)
	if err != nil {
		return nil, err
	}

	return &TopicExpander{
		client: client,
		logger: slog.Default().With("component", "openai-expander"),
	}, nil
}

// NewTopicExpander creates a new topic expander using the provided
// configuration.
//
// Returns ai.TopicExpander interface to enforce abstraction.
func NewTopicExpander(config *ai.Config) (ai.TopicExpander, error) {
	return newTopicExpander(config)
}

// ExpandTopic asks the model for related search terms, one per line.
// Called once; failures are returned so the caller can degrade to
// deterministic reduction.
func (e *TopicExpander) ExpandTopic(ctx context.Context, topic string) ([]string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(expansionPromptTemplate),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(topic),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.2),
		llms.WithMaxTokens(expansionMaxTokens))
	if err != nil {
		e.logger.Warn("topic expansion call failed", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		return nil, fmt.Errorf("no choices returned from model")
	}

	terms := parseTermLines(response.Choices[0].Content)
	if len(terms) == 0 {
		return nil, fmt.Errorf("expansion returned no terms")
	}
	return terms, nil
}

// parseTermLines splits a line-per-term response, dropping bullets, numbering
// and empty lines.
func parseTermLines(raw string) []string {
	lines := strings.Split(stripFences(raw), "\n")
	terms := make([]string, 0, len(lines))
	for _, line := range lines {
		term := strings.TrimSpace(line)
		term = strings.TrimLeft(term, "-*0123456789. ")
		if term == "" {
			continue
		}
		terms = append(terms, term)
		if len(terms) == 10 {
			break
		}
	}
	return terms
}
