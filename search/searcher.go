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


package search

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/poiesic/chronicle/ai"
	"github.com/poiesic/chronicle/core"
	"github.com/poiesic/chronicle/storage"
)

// DefaultTopK is the default number of results returned per query.
const DefaultTopK = 5

// Mode selects a retrieval strategy.
type Mode string

const (
	// ModeLexical ranks by distinct query-term containment.
	ModeLexical Mode = "lexical"
	// ModeTemporal is lexical ranking with year-bound filtering.
	ModeTemporal Mode = "temporal"
	// ModeSemantic ranks by embedding cosine similarity.
	ModeSemantic Mode = "semantic"
)

// Result is one ranked unit. Score semantics depend on the strategy:
// a term-match count for lexical and temporal, a cosine similarity for
// semantic. Years is populated only by the temporal strategy.
type Result struct {
	Unit  *core.Unit
	Score float64
	Years []int
}

// Options carries per-query parameters. The zero value means top-K of
// DefaultTopK with no filtering.
type Options struct {
	// TopK is the maximum number of results. Zero or less means DefaultTopK.
	TopK int

	// SourceFilter restricts lexical and temporal results to units whose
	// source name contains this string, case-insensitively. The semantic
	// strategy ignores it.
	SourceFilter string

	// Before excludes units whose summary mentions any year >= Before.
	// Zero disables the bound. Temporal strategy only.
	Before int

	// After excludes units whose summary mentions any year <= After.
	// Zero disables the bound. Temporal strategy only.
	After int
}

// UnitSource supplies the corpus to search. Implemented by corpus.Cache.
type UnitSource interface {
	Units() ([]*core.Unit, error)
}

// Searcher ranks corpus units with interchangeable strategies.
type Searcher struct {
	source   UnitSource
	embedder ai.Embedder
	vectors  storage.VectorCache
	model    string
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithEmbedder enables the semantic strategy. The model name participates
// in vector cache keys so vectors from different models never collide.
func WithEmbedder(embedder ai.Embedder, model string) Option {
	return func(s *Searcher) error {
		s.embedder = embedder
		s.model = model
		return nil
	}
}

// WithVectorCache sets a persistent cache for summary embeddings.
// Without one, the semantic strategy re-embeds every summary per query.
func WithVectorCache(cache storage.VectorCache) Option {
	return func(s *Searcher) error {
		s.vectors = cache
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "searcher")
		return nil
	}
}

// NewSearcher creates a searcher over the given unit source.
func NewSearcher(source UnitSource, opts ...Option) (*Searcher, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}

	s := &Searcher{
		source: source,
		logger: slog.Default().With("component", "searcher"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Search dispatches a query to the strategy selected by mode.
func (s *Searcher) Search(ctx context.Context, mode Mode, query string, opts *Options) ([]*Result, error) {
	switch mode {
	case ModeLexical:
		return s.Keyword(query, opts)
	case ModeTemporal:
		return s.Temporal(query, opts)
	case ModeSemantic:
		return s.Semantic(ctx, query, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// Keyword ranks units by distinct query-term containment in their
// summaries. Units scoring zero are excluded; ties keep corpus order.
func (s *Searcher) Keyword(query string, opts *Options) ([]*Result, error) {
	return s.lexical(query, opts, false)
}

// Temporal ranks like Keyword and additionally extracts years from each
// summary, applying the Before/After bounds from opts. Matched years are
// attached to each result.
func (s *Searcher) Temporal(query string, opts *Options) ([]*Result, error) {
	return s.lexical(query, opts, true)
}

func (s *Searcher) lexical(query string, opts *Options, temporal bool) ([]*Result, error) {
	if opts == nil {
		opts = &Options{}
	}

	units, err := s.source.Units()
	if err != nil {
		return nil, err
	}

	terms := tokenize(query)
	filter := strings.ToLower(opts.SourceFilter)

	var results []*Result
	for _, unit := range units {
		if filter != "" {
			name := strings.ToLower(filepath.Base(unit.SourceID))
			if !strings.Contains(name, filter) {
				continue
			}
		}
		if unit.Summary == "" {
			continue
		}

		score := lexicalScore(terms, unit.Summary)
		if score == 0 {
			continue
		}

		result := &Result{Unit: unit, Score: float64(score)}
		if temporal {
			years := ExtractYears(unit.Summary)
			if excludedByYears(years, opts.Before, opts.After) {
				continue
			}
			result.Years = years
		}
		results = append(results, result)
	}

	s.logger.Debug("lexical search", "terms", len(terms), "hits", len(results))
	return rank(results, opts.TopK), nil
}

// excludedByYears reports whether a unit's years violate the bounds:
// any year >= before, or any year <= after, excludes the unit.
func excludedByYears(years []int, before, after int) bool {
	for _, year := range years {
		if before > 0 && year >= before {
			return true
		}
		if after > 0 && year <= after {
			return true
		}
	}
	return false
}

// Semantic ranks units by cosine similarity between the query embedding
// and each summary embedding. Summary vectors come from the vector cache
// when present; misses are embedded in one batch and written back. Source
// and year filters do not apply.
func (s *Searcher) Semantic(ctx context.Context, query string, opts *Options) ([]*Result, error) {
	if s.embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if opts == nil {
		opts = &Options{}
	}

	units, err := s.source.Units()
	if err != nil {
		return nil, err
	}

	var candidates []*core.Unit
	for _, unit := range units {
		if unit.Summary != "" {
			candidates = append(candidates, unit)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	queryVec, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	queryVec = storage.NormalizeVector(queryVec)

	vectors, err := s.summaryVectors(ctx, candidates)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, 0, len(candidates))
	for i, unit := range candidates {
		results = append(results, &Result{
			Unit:  unit,
			Score: dotProduct(queryVec, vectors[i]),
		})
	}

	s.logger.Debug("semantic search", "candidates", len(candidates))
	return rank(results, opts.TopK), nil
}

// summaryVectors resolves one normalized embedding per candidate, using
// the cache where possible and batching the rest through the embedder.
func (s *Searcher) summaryVectors(ctx context.Context, candidates []*core.Unit) ([][]float32, error) {
	vectors := make([][]float32, len(candidates))

	var missingIdx []int
	var missingTexts []string
	for i, unit := range candidates {
		if s.vectors != nil {
			vec, found, err := s.vectors.Get(s.vectorKey(unit.Summary))
			if err != nil {
				s.logger.Warn("vector cache read failed", "err", err)
			} else if found {
				vectors[i] = vec
				continue
			}
		}
		missingIdx = append(missingIdx, i)
		missingTexts = append(missingTexts, candidates[i].Summary)
	}

	if len(missingTexts) > 0 {
		embedded, err := s.embedder.EmbedTexts(ctx, missingTexts)
		if err != nil {
			return nil, fmt.Errorf("failed to embed summaries: %w", err)
		}
		for j, idx := range missingIdx {
			vec := storage.NormalizeVector(embedded[j])
			vectors[idx] = vec
			if s.vectors != nil {
				if err := s.vectors.Put(s.vectorKey(candidates[idx].Summary), vec); err != nil {
					s.logger.Warn("vector cache write failed", "err", err)
				}
			}
		}
	}

	return vectors, nil
}

// vectorKey addresses a cached vector by (model, summary) content.
func (s *Searcher) vectorKey(summary string) uint64 {
	return core.VectorKey(s.model, summary)
}

// rank sorts results by score descending (stable, so ties keep corpus
// order) and truncates to topK.
func rank(results []*Result, topK int) []*Result {
	if topK <= 0 {
		topK = DefaultTopK
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

// dotProduct is the cosine similarity of two unit-normalized vectors.
func dotProduct(a, b []float32) float64 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	var sum float64
	for i := 0; i < minLen; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
