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


package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/poiesic/chronicle/core"
	"github.com/poiesic/chronicle/extract"
)

// CorpusStore persists summarized units. Implemented by corpus.Store.
type CorpusStore interface {
	Load(path string) ([]*core.Unit, int, error)
	Merge(existing, incoming []*core.Unit) []*core.Unit
	Save(path string, units []*core.Unit) error
}

// Pipeline orchestrates extraction, chunking, summarization, and the merge
// of new units into the persistent corpus. Chunks are summarized strictly
// in order, one at a time, so generator load stays bounded and unit
// positions match document order.
type Pipeline struct {
	store        CorpusStore
	worker       *Worker
	chunker      *Chunker
	maxChunks    int
	extractorFor func(path string) (extract.TextExtractor, error)
	logger       *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithChunkSize sets the chunk size in words.
// Default is DefaultChunkWords.
func WithChunkSize(words int) Option {
	return func(p *Pipeline) error {
		chunker, err := NewChunker(words)
		if err != nil {
			return err
		}
		p.chunker = chunker
		return nil
	}
}

// WithMaxChunks caps the number of chunks summarized per source, which is
// useful for smoke-testing a large document. Zero or less means no cap.
func WithMaxChunks(max int) Option {
	return func(p *Pipeline) error {
		p.maxChunks = max
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger.With("component", "ingestion-pipeline")
		return nil
	}
}

// withExtractorFor overrides extractor selection. Test hook.
func withExtractorFor(fn func(path string) (extract.TextExtractor, error)) Option {
	return func(p *Pipeline) error {
		p.extractorFor = fn
		return nil
	}
}

// NewPipeline creates an ingestion pipeline over the given store and worker.
func NewPipeline(store CorpusStore, worker *Worker, opts ...Option) (*Pipeline, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if worker == nil {
		return nil, ErrGeneratorRequired
	}

	chunker, err := NewChunker(DefaultChunkWords)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		store:        store,
		worker:       worker,
		chunker:      chunker,
		extractorFor: extract.ForFile,
		logger:       slog.Default().With("component", "ingestion-pipeline"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Report summarizes one ingestion run.
type Report struct {
	SourcesProcessed int
	SourcesSkipped   int
	UnitsAdded       int
	UnitsFailed      int
	TotalUnits       int
}

// ProcessSource extracts, chunks, and summarizes one source document.
// Units are identified by the source's base name, and chunk positions
// follow document order. Every chunk produces a unit, failed or not.
func (p *Pipeline) ProcessSource(ctx context.Context, path string) ([]*core.Unit, error) {
	extractor, err := p.extractorFor(path)
	if err != nil {
		return nil, err
	}

	text, err := extractor.Extract(path)
	if err != nil {
		return nil, err
	}

	chunks := p.chunker.ChunkN(text, p.maxChunks)
	p.logger.Info("chunked source", "source", filepath.Base(path), "chunks", len(chunks))

	sourceID := filepath.Base(path)
	units := make([]*core.Unit, 0, len(chunks))
	for i, chunk := range chunks {
		p.logger.Info("summarizing chunk", "source", sourceID, "position", i, "total", len(chunks))

		outcome := p.worker.Summarize(ctx, chunk)
		unit := core.NewUnit(sourceID, i, chunk)
		unit.Summary = outcome.Summary
		unit.Status = outcome.Status
		unit.Retries = outcome.Retries
		unit.Err = outcome.Err
		units = append(units, unit)

		if err := ctx.Err(); err != nil {
			return units, fmt.Errorf("ingestion interrupted: %w", err)
		}
	}
	return units, nil
}

// RetryFailed re-summarizes every failed unit in place. Each retried unit's
// retry count grows by one regardless of how many attempts the new pass
// consumed, preserving the corpus's historical accounting.
func (p *Pipeline) RetryFailed(ctx context.Context, units []*core.Unit) {
	for _, unit := range units {
		if unit.Status != core.StatusFailed {
			continue
		}

		p.logger.Info("retrying failed chunk", "source", unit.SourceID, "position", unit.Position)
		outcome := p.worker.Summarize(ctx, unit.Text)
		unit.Summary = outcome.Summary
		unit.Status = outcome.Status
		unit.Retries++
		unit.Err = outcome.Err
	}
}

// Ingest processes sourcePaths into the corpus at corpusPath. Missing
// sources and sources whose extraction fails are skipped with a warning;
// the rest of the batch continues. After all sources are processed and
// failed units retried, the results merge into the existing corpus
// (replacing prior units from the same sources) and the corpus is saved.
func (p *Pipeline) Ingest(ctx context.Context, corpusPath string, sourcePaths []string) (*Report, error) {
	existing, skipped, err := p.store.Load(corpusPath)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		p.logger.Warn("existing corpus had malformed entries", "skipped", skipped)
	}

	report := &Report{}
	merged := existing
	for _, path := range sourcePaths {
		if _, err := os.Stat(path); err != nil {
			p.logger.Warn("skipping missing source", "path", path)
			report.SourcesSkipped++
			continue
		}

		units, err := p.ProcessSource(ctx, path)
		if err != nil {
			p.logger.Warn("skipping failed source", "path", path, "err", err)
			report.SourcesSkipped++
			if ctx.Err() != nil {
				break
			}
			continue
		}

		p.RetryFailed(ctx, units)

		for _, unit := range units {
			if unit.Status == core.StatusFailed {
				report.UnitsFailed++
			}
		}
		report.SourcesProcessed++
		report.UnitsAdded += len(units)
		merged = p.store.Merge(merged, units)
	}

	if err := p.store.Save(corpusPath, merged); err != nil {
		return nil, err
	}

	report.TotalUnits = len(merged)
	p.logger.Info("ingestion complete",
		"sources", report.SourcesProcessed,
		"units", report.UnitsAdded,
		"failed", report.UnitsFailed,
		"total", report.TotalUnits)
	return report, nil
}
