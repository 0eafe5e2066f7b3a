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

// Package expertscope wires storage, AI services, and the retrieval
// pipeline into a single engine.
package expertscope

import (
	"log/slog"

	"github.com/candorlabs/expertscope/aggregate"
	"github.com/candorlabs/expertscope/ai"
	"github.com/candorlabs/expertscope/ai/openai"
	"github.com/candorlabs/expertscope/criteria"
	"github.com/candorlabs/expertscope/ingest"
	"github.com/candorlabs/expertscope/notify"
	"github.com/candorlabs/expertscope/retrieve"
	"github.com/candorlabs/expertscope/storage"
	"github.com/candorlabs/expertscope/storage/badger"
	"github.com/candorlabs/expertscope/topic"
)

// Engine owns the storage backend, repositories, and the optional AI
// provider, and constructs the pipeline components on top of them.
type Engine struct {
	backend       *badger.Backend
	profileRepo   storage.ProfileRepository
	interviewRepo storage.InterviewRepository
	provider      ai.Provider // nil means deterministic-only operation
	notifier      notify.Notifier
	logger        *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	notifier notify.Notifier
	inMemory bool
}

// WithAIConfig enables AI-backed interpretation and synthesis using an
// OpenAI-compatible service. Without it (or an injected provider) the
// engine runs on deterministic strategies only.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects an AI provider directly, bypassing config-based
// construction. Intended for tests and custom provider implementations.
func WithProvider(provider ai.Provider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithNotifier sets the event notifier.
// Default discards all events.
func WithNotifier(notifier notify.Notifier) EngineOption {
	return func(o *engineOptions) {
		if notifier != nil {
			o.notifier = notifier
		}
	}
}

// WithInMemory uses an in-memory backend, ignoring the file path.
func WithInMemory() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// NewEngine opens the storage backend at filePath and wires the
// repositories and AI services.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		notifier: &notify.NoopNotifier{},
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	profileRepo, err := badger.NewProfileRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	interviewRepo, err := badger.NewInterviewRepository(backend)
	if err != nil {
		profileRepo.Close()
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil && options.aiConfig != nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			interviewRepo.Close()
			profileRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Engine{
		backend:       backend,
		profileRepo:   profileRepo,
		interviewRepo: interviewRepo,
		provider:      provider,
		notifier:      options.notifier,
		logger:        slog.Default(),
	}, nil
}

// Close shuts down the AI provider, repositories, and backend.
func (e *Engine) Close() error {
	if e.provider != nil {
		if err := e.provider.Close(); err != nil {
			e.logger.Error("error closing AI provider", "err", err)
		}
	}

	if err := e.interviewRepo.Close(); err != nil {
		e.logger.Error("error closing interview repository", "err", err)
		return err
	}
	if err := e.profileRepo.Close(); err != nil {
		e.logger.Error("error closing profile repository", "err", err)
		return err
	}

	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// ProfileRepository returns the profile repository.
func (e *Engine) ProfileRepository() storage.ProfileRepository {
	return e.profileRepo
}

// InterviewRepository returns the interview repository.
func (e *Engine) InterviewRepository() storage.InterviewRepository {
	return e.interviewRepo
}

// Notifier returns the configured event notifier.
func (e *Engine) Notifier() notify.Notifier {
	return e.notifier
}

// NewRetriever builds a retriever over the engine's repositories. The
// criteria extractor and topic normalizer use the AI provider when one is
// configured and run deterministic-only otherwise.
func (e *Engine) NewRetriever(opts ...retrieve.Option) (*retrieve.Retriever, error) {
	var generator ai.CriteriaGenerator
	var expander ai.TopicExpander
	if e.provider != nil {
		generator = e.provider.CriteriaGenerator()
		expander = e.provider.TopicExpander()
	}

	extractor := criteria.NewExtractor(generator)
	normalizer := topic.NewNormalizer(expander)
	return retrieve.NewRetriever(e.profileRepo, e.interviewRepo, extractor, normalizer, opts...)
}

// NewAggregator builds a result aggregator. Synthesis is available only
// when an AI provider is configured.
func (e *Engine) NewAggregator(opts ...aggregate.Option) *aggregate.Aggregator {
	var synthesizer ai.Synthesizer
	if e.provider != nil {
		synthesizer = e.provider.Synthesizer()
	}
	return aggregate.NewAggregator(synthesizer, opts...)
}

// NewLoadPipeline builds a load pipeline over the engine's repositories.
func (e *Engine) NewLoadPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(e.profileRepo, e.interviewRepo, opts...)
}
