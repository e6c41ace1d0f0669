package reindex

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/poiesic/chronicle/ai/mock"
	"github.com/poiesic/chronicle/core"
	"github.com/poiesic/chronicle/storage"
	"github.com/poiesic/chronicle/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unitSourceFunc func() ([]*core.Unit, error)

func (f unitSourceFunc) Units() ([]*core.Unit, error) {
	return f()
}

func corpusOf(units ...*core.Unit) UnitSource {
	return unitSourceFunc(func() ([]*core.Unit, error) {
		return units, nil
	})
}

func successUnit(summary string) *core.Unit {
	return &core.Unit{
		ID:       summary,
		SourceID: "history.pdf",
		Summary:  summary,
		Status:   core.StatusSuccess,
	}
}

func memoryCache(t *testing.T) storage.VectorCache {
	t.Helper()
	cache, backend, err := badger.NewMemoryVectorCache()
	require.NoError(t, err)
	t.Cleanup(func() {
		cache.Close()
		backend.Close()
	})
	return cache
}

func testConfig() *Config {
	return &Config{
		BatchSize:      2,
		ReportInterval: 100,
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
		PoolSize:       2,
	}
}

func TestNewRefresher(t *testing.T) {
	cache := memoryCache(t)
	embedder := mock.NewMockEmbedder()
	source := corpusOf()

	t.Run("requires source", func(t *testing.T) {
		_, err := NewRefresher(nil, embedder, cache, "all-minilm", nil, io.Discard)
		assert.ErrorIs(t, err, ErrSourceRequired)
	})

	t.Run("requires embedder", func(t *testing.T) {
		_, err := NewRefresher(source, nil, cache, "all-minilm", nil, io.Discard)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("requires cache", func(t *testing.T) {
		_, err := NewRefresher(source, embedder, nil, "all-minilm", nil, io.Discard)
		assert.ErrorIs(t, err, ErrCacheRequired)
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		refresher, err := NewRefresher(source, embedder, cache, "all-minilm", nil, io.Discard)
		require.NoError(t, err)
		assert.NotNil(t, refresher)
	})
}

func TestRefresherRun(t *testing.T) {
	ctx := context.Background()

	t.Run("embeds and caches all successful units", func(t *testing.T) {
		cache := memoryCache(t)
		source := corpusOf(
			successUnit("first summary"),
			successUnit("second summary"),
			successUnit("third summary"),
			&core.Unit{ID: "failed", SourceID: "history.pdf", Status: core.StatusFailed},
		)

		refresher, err := NewRefresher(source, mock.NewMockEmbedder(), cache, "all-minilm", testConfig(), io.Discard)
		require.NoError(t, err)

		stats, err := refresher.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.Total)
		assert.Equal(t, 3, stats.Embedded)
		assert.Zero(t, stats.Reused)

		vec, found, err := cache.Get(core.VectorKey("all-minilm", "first summary"))
		require.NoError(t, err)
		assert.True(t, found)
		assert.Len(t, vec, 384)
	})

	t.Run("second run reuses cached vectors", func(t *testing.T) {
		cache := memoryCache(t)
		embedder := mock.NewMockEmbedder()
		source := corpusOf(successUnit("one"), successUnit("two"))

		refresher, err := NewRefresher(source, embedder, cache, "all-minilm", testConfig(), io.Discard)
		require.NoError(t, err)

		_, err = refresher.Run(ctx)
		require.NoError(t, err)
		firstCalls := embedder.CallCount()

		stats, err := refresher.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Reused)
		assert.Zero(t, stats.Embedded)
		assert.Equal(t, firstCalls, embedder.CallCount())
	})

	t.Run("embedding failures retry then surface", func(t *testing.T) {
		cache := memoryCache(t)
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, errors.New("embedding service down")
		}
		source := corpusOf(successUnit("one"))

		refresher, err := NewRefresher(source, embedder, cache, "all-minilm", testConfig(), io.Discard)
		require.NoError(t, err)

		_, err = refresher.Run(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "after 2 attempts")
	})

	t.Run("empty corpus is a clean no-op", func(t *testing.T) {
		cache := memoryCache(t)
		refresher, err := NewRefresher(corpusOf(), mock.NewMockEmbedder(), cache, "all-minilm", testConfig(), io.Discard)
		require.NoError(t, err)

		stats, err := refresher.Run(ctx)
		require.NoError(t, err)
		assert.Zero(t, stats.Total)
	})

	t.Run("cached vectors are unit normalized", func(t *testing.T) {
		cache := memoryCache(t)
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return [][]float32{{3, 4}}, nil
		}
		source := corpusOf(successUnit("one"))

		refresher, err := NewRefresher(source, embedder, cache, "all-minilm", testConfig(), io.Discard)
		require.NoError(t, err)

		_, err = refresher.Run(ctx)
		require.NoError(t, err)

		vec, found, err := cache.Get(core.VectorKey("all-minilm", "one"))
		require.NoError(t, err)
		require.True(t, found)
		assert.InDelta(t, 0.6, vec[0], 1e-6)
		assert.InDelta(t, 0.8, vec[1], 1e-6)
	})
}
