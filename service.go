// Copyright 2025 Poiesic Systems
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


package assessrec

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/poiesic/assessrec/ai"
	"github.com/poiesic/assessrec/ai/openai"
	"github.com/poiesic/assessrec/core"
	"github.com/poiesic/assessrec/engine"
	"github.com/poiesic/assessrec/index"
	"github.com/poiesic/assessrec/query"
	"github.com/poiesic/assessrec/storage"
	"github.com/poiesic/assessrec/storage/badger"
)

// serviceState is everything a request touches: the loaded records, the
// index built over them (nil in lexical mode), and the engine. Reload
// builds a fresh state aside and swaps the pointer, so in-flight requests
// keep the state they started with.
type serviceState struct {
	records []*core.AssessmentRecord
	index   *index.Flat
	engine  *engine.Engine
}

// Service is the top-level facade: it owns the artifact store, the query
// analyzer, and the currently loaded engine. Whether retrieval is semantic
// or lexical is decided once at construction, from whether an embedder is
// configured, and never changes per request.
type Service struct {
	store      storage.ArtifactStore
	analyzer   *query.Analyzer
	embedder   ai.Embedder
	engineOpts []engine.Option
	state      atomic.Pointer[serviceState]
	logger     *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig   *ai.Config
	embedder   ai.Embedder
	store      storage.ArtifactStore
	engineOpts []engine.Option
}

// WithAIConfig enables semantic retrieval through an OpenAI-compatible
// embedding service. Without this (or WithServiceEmbedder) the service
// runs in lexical fallback mode.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = config
	}
}

// WithServiceEmbedder injects an embedder directly, bypassing the OpenAI
// client construction. Mainly for tests.
func WithServiceEmbedder(embedder ai.Embedder) ServiceOption {
	return func(o *serviceOptions) {
		o.embedder = embedder
	}
}

// WithServiceStore injects an artifact store, bypassing the on-disk badger
// store. Mainly for tests with badger.NewMemoryStore.
func WithServiceStore(store storage.ArtifactStore) ServiceOption {
	return func(o *serviceOptions) {
		o.store = store
	}
}

// WithEngineOptions forwards options to the engine built on each (re)load.
func WithEngineOptions(opts ...engine.Option) ServiceOption {
	return func(o *serviceOptions) {
		o.engineOpts = append(o.engineOpts, opts...)
	}
}

// NewService opens the artifact store at filePath, loads the stored
// artifact, and builds the engine over it. It fails fast: a missing or
// misaligned artifact is a startup error, never a degraded running state.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{}
	for _, opt := range opts {
		opt(options)
	}

	store := options.store
	if store == nil {
		var err error
		store, err = badger.OpenStore(filePath, false)
		if err != nil {
			return nil, err
		}
	}

	embedder := options.embedder
	if embedder == nil && options.aiConfig != nil {
		var err error
		embedder, err = openai.NewEmbedder(options.aiConfig)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	analyzer, err := query.NewAnalyzer()
	if err != nil {
		store.Close()
		return nil, err
	}

	s := &Service{
		store:      store,
		analyzer:   analyzer,
		embedder:   embedder,
		engineOpts: options.engineOpts,
		logger:     slog.Default().With("component", "service"),
	}

	if err := s.Reload(context.Background()); err != nil {
		store.Close()
		return nil, err
	}

	mode := "lexical"
	if embedder != nil {
		mode = "semantic"
	}
	s.logger.Info("service ready", "mode", mode, "records", len(s.state.Load().records))

	return s, nil
}

// Reload reads the artifact from the store, builds a fresh index and engine
// aside, and atomically swaps them in. On error the previous state stays
// live and untouched.
func (s *Service) Reload(ctx context.Context) error {
	artifact, err := s.store.ReadArtifact(ctx)
	if err != nil {
		s.logger.Error("error reading artifact", "err", err)
		return err
	}

	var (
		idx       *index.Flat
		retriever engine.Retriever
	)
	if s.embedder != nil {
		idx, err = index.NewFlat(artifact.Records)
		if err != nil {
			return err
		}
		retriever, err = engine.NewSemanticRetriever(s.embedder, idx)
	} else {
		// Lexical mode scores the raw records; vectors, if present, are unused.
		retriever, err = engine.NewLexicalRetriever(artifact.Records)
	}
	if err != nil {
		return err
	}

	eng, err := engine.New(s.analyzer, retriever, s.engineOpts...)
	if err != nil {
		return err
	}

	s.state.Store(&serviceState{records: artifact.Records, index: idx, engine: eng})
	s.logger.Debug("artifact loaded",
		"model", artifact.Manifest.Model,
		"count", artifact.Manifest.Count,
		"dim", artifact.Manifest.Dim)
	return nil
}

// Recommend runs the recommendation pipeline against the currently loaded
// artifact.
func (s *Service) Recommend(ctx context.Context, rawQuery string, topK int) ([]core.Recommendation, error) {
	return s.state.Load().engine.Recommend(ctx, rawQuery, topK)
}

// Index returns the currently loaded index, or nil in lexical mode.
func (s *Service) Index() *index.Flat {
	return s.state.Load().index
}

// Records returns the currently loaded records in index order.
// Callers must treat the returned slice as read-only.
func (s *Service) Records() []*core.AssessmentRecord {
	return s.state.Load().records
}

// Close closes the artifact store.
func (s *Service) Close() error {
	if err := s.store.Close(); err != nil {
		s.logger.Error("error closing artifact store", "err", err)
		return err
	}
	return nil
}
