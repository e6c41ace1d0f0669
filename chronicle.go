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


package chronicle

import (
	"context"
	"io"
	"log/slog"

	"github.com/poiesic/chronicle/ai"
	"github.com/poiesic/chronicle/ai/ollama"
	"github.com/poiesic/chronicle/ai/openai"
	"github.com/poiesic/chronicle/corpus"
	"github.com/poiesic/chronicle/ingestion"
	"github.com/poiesic/chronicle/reindex"
	"github.com/poiesic/chronicle/search"
	"github.com/poiesic/chronicle/storage"
	"github.com/poiesic/chronicle/storage/badger"
	"github.com/poiesic/chronicle/synthesis"
)

// Archive is the top-level handle over a summarized document corpus. It
// wires the corpus store, the retrieval strategies, the summarization and
// synthesis generators, and the optional embedding vector cache.
type Archive struct {
	corpusPath  string
	store       *corpus.Store
	cache       *corpus.Cache
	aiConfig    *ai.Config
	generator   ai.TextGenerator
	embedder    ai.Embedder
	vectorCache storage.VectorCache
	logger      *slog.Logger
}

// ArchiveOption configures an Archive.
type ArchiveOption func(*archiveOptions)

type archiveOptions struct {
	aiConfig      *ai.Config
	vectorPath    string
	httpGenerator bool
}

// WithAIConfig sets the model configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) ArchiveOption {
	return func(o *archiveOptions) {
		o.aiConfig = config
	}
}

// WithVectorCachePath enables a persistent embedding vector cache at the
// given directory. Without it, semantic search re-embeds summaries per
// query and reindexing is unavailable.
func WithVectorCachePath(path string) ArchiveOption {
	return func(o *archiveOptions) {
		o.vectorPath = path
	}
}

// WithHTTPGenerator selects the OpenAI-compatible HTTP generator instead
// of the default local executable generator.
func WithHTTPGenerator() ArchiveOption {
	return func(o *archiveOptions) {
		o.httpGenerator = true
	}
}

// NewArchive creates an archive over the corpus file at corpusPath.
// The file does not need to exist yet; ingestion creates it.
func NewArchive(corpusPath string, opts ...ArchiveOption) (*Archive, error) {
	options := &archiveOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	if err := options.aiConfig.Validate(); err != nil {
		return nil, err
	}

	store, err := corpus.NewStore()
	if err != nil {
		return nil, err
	}

	var generator ai.TextGenerator
	if options.httpGenerator {
		generator, err = openai.NewGenerator(options.aiConfig)
	} else {
		generator, err = ollama.NewGenerator(options.aiConfig)
	}
	if err != nil {
		return nil, err
	}

	embedder, err := openai.NewEmbedder(options.aiConfig)
	if err != nil {
		return nil, err
	}

	var vectorCache storage.VectorCache
	if options.vectorPath != "" {
		vectorCache, err = badger.OpenVectorCache(options.vectorPath)
		if err != nil {
			return nil, err
		}
	}

	return &Archive{
		corpusPath:  corpusPath,
		store:       store,
		cache:       corpus.NewCache(corpusPath, store.Require),
		aiConfig:    options.aiConfig,
		generator:   generator,
		embedder:    embedder,
		vectorCache: vectorCache,
		logger:      slog.Default(),
	}, nil
}

// Close releases the archive's resources.
func (a *Archive) Close() error {
	if a.vectorCache != nil {
		if err := a.vectorCache.Close(); err != nil {
			a.logger.Error("error closing vector cache", "err", err)
			return err
		}
	}
	return nil
}

// CorpusPath returns the path of the corpus file.
func (a *Archive) CorpusPath() string {
	return a.corpusPath
}

// Store returns the corpus store.
func (a *Archive) Store() *corpus.Store {
	return a.store
}

// NewIngestionPipeline creates an ingestion pipeline whose summarization
// worker has the given retry budget.
func (a *Archive) NewIngestionPipeline(retryBudget int, opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	worker, err := ingestion.NewWorker(a.generator, ingestion.WithRetryBudget(retryBudget))
	if err != nil {
		return nil, err
	}
	return ingestion.NewPipeline(a.store, worker, opts...)
}

// Ingest processes the source documents into the corpus and invalidates
// the in-memory corpus cache.
func (a *Archive) Ingest(ctx context.Context, sources []string, retryBudget int, opts ...ingestion.Option) (*ingestion.Report, error) {
	pipeline, err := a.NewIngestionPipeline(retryBudget, opts...)
	if err != nil {
		return nil, err
	}

	report, err := pipeline.Ingest(ctx, a.corpusPath, sources)
	if err != nil {
		return nil, err
	}

	a.cache.Invalidate()
	return report, nil
}

// NewSearcher creates a searcher over the corpus. The embedder and any
// configured vector cache are wired in so the semantic strategy works out
// of the box.
func (a *Archive) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	base := []search.Option{
		search.WithEmbedder(a.embedder, a.aiConfig.EmbeddingModel),
	}
	if a.vectorCache != nil {
		base = append(base, search.WithVectorCache(a.vectorCache))
	}
	return search.NewSearcher(a.cache, append(base, opts...)...)
}

// Query runs one retrieval with the given strategy.
func (a *Archive) Query(ctx context.Context, mode search.Mode, query string, opts *search.Options) ([]*search.Result, error) {
	searcher, err := a.NewSearcher()
	if err != nil {
		return nil, err
	}
	return searcher.Search(ctx, mode, query, opts)
}

// Ask retrieves with the given strategy and synthesizes a cited answer
// from the ranked results.
func (a *Archive) Ask(ctx context.Context, mode search.Mode, question string, opts *search.Options) (*synthesis.Answer, error) {
	results, err := a.Query(ctx, mode, question, opts)
	if err != nil {
		return nil, err
	}

	synthesizer, err := synthesis.NewSynthesizer(a.generator)
	if err != nil {
		return nil, err
	}
	return synthesizer.Synthesize(ctx, question, results), nil
}

// Reindex rebuilds the vector cache from the corpus. Requires a configured
// vector cache path.
func (a *Archive) Reindex(ctx context.Context, config *reindex.Config, progress io.Writer) (*reindex.Stats, error) {
	refresher, err := reindex.NewRefresher(a.cache, a.embedder, a.vectorCache,
		a.aiConfig.EmbeddingModel, config, progress)
	if err != nil {
		return nil, err
	}
	return refresher.Run(ctx)
}
