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


package reindex

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/chronicle/ai"
	"github.com/poiesic/chronicle/core"
	"github.com/poiesic/chronicle/storage"
)

// UnitSource supplies the corpus to reindex. Implemented by corpus.Cache.
type UnitSource interface {
	Units() ([]*core.Unit, error)
}

// Config holds configuration for a reindexing run.
type Config struct {
	// BatchSize is the number of summaries embedded per call.
	BatchSize int

	// ReportInterval is how often to report progress (number of units).
	ReportInterval int

	// MaxRetries is the maximum number of attempts per embedding call.
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff.
	RetryDelay time.Duration

	// PoolSize is the number of concurrent embedding batches.
	// Zero or less selects half the CPU count, minimum one.
	PoolSize int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      32,
		ReportInterval: 32,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Stats summarizes one reindexing run.
type Stats struct {
	// Total is the number of units eligible for embedding.
	Total int
	// Embedded is the number of vectors freshly computed and cached.
	Embedded int
	// Reused is the number of vectors already present in the cache.
	Reused int
}

// Refresher rebuilds the vector cache from unit summaries.
type Refresher struct {
	source   UnitSource
	embedder ai.Embedder
	cache    storage.VectorCache
	model    string
	config   *Config
	progress io.Writer
	logger   *slog.Logger
}

// NewRefresher creates a refresher.
// progress: where to write progress output (typically os.Stderr)
func NewRefresher(source UnitSource, embedder ai.Embedder, cache storage.VectorCache, model string, config *Config, progress io.Writer) (*Refresher, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if cache == nil {
		return nil, ErrCacheRequired
	}
	if config == nil {
		config = DefaultConfig()
	}

	return &Refresher{
		source:   source,
		embedder: embedder,
		cache:    cache,
		model:    model,
		config:   config,
		progress: progress,
		logger:   slog.Default().With("component", "reindex-refresher"),
	}, nil
}

// Run embeds every successfully summarized unit whose vector is not yet
// cached. Batches fan out over a worker pool; each batch retries with
// backoff before failing the run.
func (r *Refresher) Run(ctx context.Context) (*Stats, error) {
	units, err := r.source.Units()
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}

	var candidates []*core.Unit
	for _, unit := range units {
		if unit.Status == core.StatusSuccess && unit.Summary != "" {
			candidates = append(candidates, unit)
		}
	}

	stats := &Stats{Total: len(candidates)}

	var missing []*core.Unit
	for _, unit := range candidates {
		_, found, err := r.cache.Get(core.VectorKey(r.model, unit.Summary))
		if err != nil {
			return nil, fmt.Errorf("failed to probe vector cache: %w", err)
		}
		if found {
			stats.Reused++
			continue
		}
		missing = append(missing, unit)
	}

	if len(missing) == 0 {
		fmt.Fprintf(r.progress, "Vector cache up to date (%d units, %d cached)\n",
			stats.Total, stats.Reused)
		return stats, nil
	}

	fmt.Fprintf(r.progress, "Reindexing %d of %d units (batch size: %d)\n",
		len(missing), stats.Total, r.config.BatchSize)

	poolSize := r.config.PoolSize
	if poolSize < 1 {
		poolSize = runtime.NumCPU() / 2
		if poolSize < 1 {
			poolSize = 1
		}
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	tracker := NewProgressTracker(r.progress, len(missing), r.config.ReportInterval)
	tracker.Start()

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for start := 0; start < len(missing); start += r.config.BatchSize {
		end := start + r.config.BatchSize
		if end > len(missing) {
			end = len(missing)
		}
		batch := missing[start:end]

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			if err := r.processBatch(ctx, batch); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			mu.Lock()
			stats.Embedded += len(batch)
			mu.Unlock()
			tracker.Increment(len(batch))
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
			break
		}
	}

	wg.Wait()
	tracker.Finish()

	if firstErr != nil {
		return stats, firstErr
	}

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reindexing complete. Embedded %d units in %v (%d reused)\n",
		stats.Embedded, elapsed.Round(time.Second), stats.Reused)
	return stats, nil
}

// processBatch embeds one batch of summaries and caches the normalized
// vectors.
func (r *Refresher) processBatch(ctx context.Context, batch []*core.Unit) error {
	texts := make([]string, len(batch))
	for i, unit := range batch {
		texts[i] = unit.Summary
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = r.embedder.EmbedTexts(ctx, texts)
		return err
	}, r.config.MaxRetries, r.config.RetryDelay)
	if err != nil {
		return fmt.Errorf("failed to embed batch after %d attempts: %w", r.config.MaxRetries, err)
	}

	if len(embeddings) != len(batch) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(batch), len(embeddings))
	}

	for i, unit := range batch {
		vector := storage.NormalizeVector(embeddings[i])
		if err := r.cache.Put(core.VectorKey(r.model, unit.Summary), vector); err != nil {
			return fmt.Errorf("failed to cache vector: %w", err)
		}
	}
	return nil
}
