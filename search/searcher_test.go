package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/poiesic/chronicle/ai/mock"
	"github.com/poiesic/chronicle/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unitSourceFunc adapts a function to the UnitSource interface.
type unitSourceFunc func() ([]*core.Unit, error)

func (f unitSourceFunc) Units() ([]*core.Unit, error) {
	return f()
}

// mapVectorCache is an in-memory storage.VectorCache for tests.
type mapVectorCache struct {
	vectors map[uint64][]float32
	gets    int
	puts    int
}

func newMapVectorCache() *mapVectorCache {
	return &mapVectorCache{vectors: make(map[uint64][]float32)}
}

func (c *mapVectorCache) Get(key uint64) ([]float32, bool, error) {
	c.gets++
	vec, ok := c.vectors[key]
	return vec, ok, nil
}

func (c *mapVectorCache) Put(key uint64, vector []float32) error {
	c.puts++
	c.vectors[key] = vector
	return nil
}

func (c *mapVectorCache) Close() error {
	return nil
}

func fixedUnits(units ...*core.Unit) UnitSource {
	return unitSourceFunc(func() ([]*core.Unit, error) {
		return units, nil
	})
}

func summaryUnit(source string, position int, summary string) *core.Unit {
	return &core.Unit{
		ID:       fmt.Sprintf("%s-%d", source, position),
		SourceID: source,
		Position: position,
		Summary:  summary,
		Status:   core.StatusSuccess,
	}
}

func TestNewSearcher(t *testing.T) {
	t.Run("requires a source", func(t *testing.T) {
		_, err := NewSearcher(nil)
		assert.ErrorIs(t, err, ErrSourceRequired)
	})
}

func TestKeyword(t *testing.T) {
	units := []*core.Unit{
		summaryUnit("history.pdf", 0, "The mayor of Chicago announced the water tunnel."),
		summaryUnit("history.pdf", 1, "The mayor spoke about bridges."),
		summaryUnit("canal.pdf", 0, "The canal commission met in spring."),
	}
	searcher, err := NewSearcher(fixedUnits(units...))
	require.NoError(t, err)

	t.Run("scores distinct matched terms and excludes zero scores", func(t *testing.T) {
		results, err := searcher.Keyword("mayor chicago", nil)
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.Equal(t, units[0], results[0].Unit)
		assert.Equal(t, 2.0, results[0].Score)
		assert.Equal(t, units[1], results[1].Unit)
		assert.Equal(t, 1.0, results[1].Score)
	})

	t.Run("ties keep corpus order", func(t *testing.T) {
		results, err := searcher.Keyword("mayor", nil)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, 0, results[0].Unit.Position)
		assert.Equal(t, 1, results[1].Unit.Position)
	})

	t.Run("source filter is case-insensitive substring", func(t *testing.T) {
		results, err := searcher.Keyword("the", &Options{SourceFilter: "CANAL"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "canal.pdf", results[0].Unit.SourceID)
	})

	t.Run("top-k truncates", func(t *testing.T) {
		results, err := searcher.Keyword("the", &Options{TopK: 1})
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("units without summaries are skipped", func(t *testing.T) {
		source := fixedUnits(
			&core.Unit{SourceID: "a.pdf", Status: core.StatusFailed},
			summaryUnit("a.pdf", 1, "the mayor"),
		)
		s, err := NewSearcher(source)
		require.NoError(t, err)

		results, err := s.Keyword("mayor", nil)
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("no matches yields empty results", func(t *testing.T) {
		results, err := searcher.Keyword("zeppelin", nil)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestTemporal(t *testing.T) {
	units := []*core.Unit{
		summaryUnit("history.pdf", 0, "The fire of 1871 destroyed the district."),
		summaryUnit("history.pdf", 1, "The 1893 fair drew millions."),
		summaryUnit("history.pdf", 2, "The fair site was later rebuilt."),
	}
	searcher, err := NewSearcher(fixedUnits(units...))
	require.NoError(t, err)

	t.Run("attaches extracted years", func(t *testing.T) {
		results, err := searcher.Temporal("fire", nil)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, []int{1871}, results[0].Years)
	})

	t.Run("before bound excludes years at or above it", func(t *testing.T) {
		results, err := searcher.Temporal("the", &Options{Before: 1871})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, 2, results[0].Unit.Position)

		results, err = searcher.Temporal("the", &Options{Before: 1872})
		require.NoError(t, err)
		require.Len(t, results, 2)
	})

	t.Run("after bound excludes years at or below it", func(t *testing.T) {
		results, err := searcher.Temporal("the", &Options{After: 1871})
		require.NoError(t, err)
		require.Len(t, results, 2)
		for _, result := range results {
			assert.NotEqual(t, 0, result.Unit.Position)
		}
	})

	t.Run("units without years pass both bounds", func(t *testing.T) {
		results, err := searcher.Temporal("fair", &Options{Before: 1800, After: 2000})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, 2, results[0].Unit.Position)
		assert.Empty(t, results[0].Years)
	})
}

func TestSemantic(t *testing.T) {
	ctx := context.Background()

	t.Run("requires an embedder", func(t *testing.T) {
		searcher, err := NewSearcher(fixedUnits())
		require.NoError(t, err)

		_, err = searcher.Semantic(ctx, "query", nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("ranks by cosine similarity descending", func(t *testing.T) {
		units := []*core.Unit{
			summaryUnit("a.pdf", 0, "distant topic"),
			summaryUnit("a.pdf", 1, "close topic"),
		}

		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return []float32{1, 0}, nil
		}
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			vectors := make([][]float32, len(texts))
			for i, text := range texts {
				if text == "close topic" {
					vectors[i] = []float32{0.9, 0.1}
				} else {
					vectors[i] = []float32{0.7, 0.7}
				}
			}
			return vectors, nil
		}

		searcher, err := NewSearcher(fixedUnits(units...), WithEmbedder(embedder, "all-minilm"))
		require.NoError(t, err)

		results, err := searcher.Semantic(ctx, "topic", nil)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "close topic", results[0].Unit.Summary)
		assert.Greater(t, results[0].Score, results[1].Score)
	})

	t.Run("empty corpus yields no results", func(t *testing.T) {
		searcher, err := NewSearcher(fixedUnits(), WithEmbedder(mock.NewMockEmbedder(), "all-minilm"))
		require.NoError(t, err)

		results, err := searcher.Semantic(ctx, "query", nil)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("vector cache avoids re-embedding summaries", func(t *testing.T) {
		units := []*core.Unit{
			summaryUnit("a.pdf", 0, "first summary"),
			summaryUnit("a.pdf", 1, "second summary"),
		}
		cache := newMapVectorCache()
		embedder := mock.NewMockEmbedder()

		searcher, err := NewSearcher(fixedUnits(units...),
			WithEmbedder(embedder, "all-minilm"),
			WithVectorCache(cache))
		require.NoError(t, err)

		_, err = searcher.Semantic(ctx, "query", nil)
		require.NoError(t, err)
		assert.Equal(t, 2, cache.puts)

		batchCalls := embedder.CallCount()
		_, err = searcher.Semantic(ctx, "query", nil)
		require.NoError(t, err)

		// Second query embeds only the query text, not the summaries
		assert.Equal(t, batchCalls+1, embedder.CallCount())
		assert.Equal(t, 2, cache.puts)
	})

	t.Run("cache keys differ per model", func(t *testing.T) {
		units := []*core.Unit{summaryUnit("a.pdf", 0, "shared summary")}
		cache := newMapVectorCache()

		first, err := NewSearcher(fixedUnits(units...),
			WithEmbedder(mock.NewMockEmbedder(), "all-minilm"),
			WithVectorCache(cache))
		require.NoError(t, err)
		second, err := NewSearcher(fixedUnits(units...),
			WithEmbedder(mock.NewMockEmbedder(), "nomic-embed"),
			WithVectorCache(cache))
		require.NoError(t, err)

		_, err = first.Semantic(ctx, "query", nil)
		require.NoError(t, err)
		_, err = second.Semantic(ctx, "query", nil)
		require.NoError(t, err)

		assert.Len(t, cache.vectors, 2)
	})
}

func TestSearchDispatch(t *testing.T) {
	ctx := context.Background()
	searcher, err := NewSearcher(fixedUnits(summaryUnit("a.pdf", 0, "the mayor of 1871")))
	require.NoError(t, err)

	t.Run("dispatches lexical", func(t *testing.T) {
		results, err := searcher.Search(ctx, ModeLexical, "mayor", nil)
		require.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Nil(t, results[0].Years)
	})

	t.Run("dispatches temporal", func(t *testing.T) {
		results, err := searcher.Search(ctx, ModeTemporal, "mayor", nil)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, []int{1871}, results[0].Years)
	})

	t.Run("semantic without embedder errors", func(t *testing.T) {
		_, err := searcher.Search(ctx, ModeSemantic, "mayor", nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("unknown mode errors", func(t *testing.T) {
		_, err := searcher.Search(ctx, Mode("fuzzy"), "mayor", nil)
		assert.ErrorIs(t, err, ErrUnknownMode)
	})
}
