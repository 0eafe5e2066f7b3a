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
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/candorlabs/expertscope/ai"
	"github.com/candorlabs/expertscope/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const generationMaxTokens = 2048

// CriteriaGenerator implements ai.CriteriaGenerator using OpenAI-compatible
// chat APIs.
type CriteriaGenerator struct {
	client llms.Model
	logger *slog.Logger
}

// variant is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type variant struct {
	Companies        []string `json:"companies"`
	RoleKeywords     []string `json:"role_keywords"`
	EmploymentStatus string   `json:"employment_status"`
	Reasoning        string   `json:"reasoning"`
}

// variantList is the wrapper structure for the LLM's JSON response.
type variantList struct {
	Variants []variant `json:"variants"`
}

// newCriteriaGenerator is an internal constructor that returns the concrete
// type. Used by Provider to manage the instance.
func newCriteriaGenerator(config *ai.Config) (*CriteriaGenerator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(tokenOrNone(config.Token)),
		openai.WithModel(config.GeneratorModel),
	)
	if err != nil {
		return nil, err
	}

	return &CriteriaGenerator{
		client: client,
		logger: slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewCriteriaGenerator creates a new criteria generator using the provided
// configuration.
//
// Returns ai.CriteriaGenerator interface to enforce abstraction.
func NewCriteriaGenerator(config *ai.Config) (ai.CriteriaGenerator, error) {
	return newCriteriaGenerator(config)
}

// GenerateCriteria asks the model for exactly five diversified criteria
// variants. The model is called once; any failure (transport, malformed
// output, wrong variant count) is returned to the caller, which is expected
// to fall back to deterministic extraction rather than retry.
func (g *CriteriaGenerator) GenerateCriteria(ctx context.Context, query, explicitCompany, explicitTitle string) ([]ai.GeneratedCriteria, error) {
	userPrompt := buildGenerationInput(query, explicitCompany, explicitTitle)

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(fmt.Sprintf(criteriaPromptTemplate, criteriaResponseSchema)),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPrompt),
			},
		},
	}

	response, err := g.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.0),
		llms.WithJSONMode(),
		llms.WithMaxTokens(generationMaxTokens))
	if err != nil {
		g.logger.Warn("criteria generation call failed", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		return nil, fmt.Errorf("no choices returned from model")
	}

	return parseCriteriaResponse(response.Choices[0].Content)
}

// buildGenerationInput assembles the user message, carrying explicit filter
// hints alongside the free-form query.
func buildGenerationInput(query, explicitCompany, explicitTitle string) string {
	var b strings.Builder
	b.WriteString("Request: ")
	b.WriteString(query)
	if explicitCompany != "" {
		b.WriteString("\nExplicit company filter: ")
		b.WriteString(explicitCompany)
	}
	if explicitTitle != "" {
		b.WriteString("\nExplicit title filter: ")
		b.WriteString(explicitTitle)
	}
	return b.String()
}

// parseCriteriaResponse decodes and validates the model output against the
// five-variant contract.
func parseCriteriaResponse(raw string) ([]ai.GeneratedCriteria, error) {
	text := repairJSON(stripFences(raw))

	var result variantList
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("malformed criteria response: %w", err)
	}

	if len(result.Variants) != core.GeneratedVariantCount {
		return nil, fmt.Errorf("expected %d criteria variants, got %d", core.GeneratedVariantCount, len(result.Variants))
	}

	generated := make([]ai.GeneratedCriteria, 0, len(result.Variants))
	for _, v := range result.Variants {
		generated = append(generated, ai.GeneratedCriteria{
			Companies:        trimAll(v.Companies),
			RoleKeywords:     trimAll(v.RoleKeywords),
			EmploymentStatus: strings.ToLower(strings.TrimSpace(v.EmploymentStatus)),
			Reasoning:        strings.TrimSpace(v.Reasoning),
		})
	}
	return generated, nil
}

func trimAll(values []string) []string {
	trimmed := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			trimmed = append(trimmed, v)
		}
	}
	return trimmed
}
