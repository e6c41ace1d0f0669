package chronicle

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/chronicle/ai"
	"github.com/poiesic/chronicle/corpus"
	"github.com/poiesic/chronicle/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArchive(t *testing.T, opts ...ArchiveOption) *Archive {
	t.Helper()
	archive, err := NewArchive(filepath.Join(t.TempDir(), "summary_chunks.json"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		archive.Close()
	})
	return archive
}

func TestNewArchive(t *testing.T) {
	t.Run("creates with defaults", func(t *testing.T) {
		archive := testArchive(t)
		assert.NotNil(t, archive.Store())
		assert.Contains(t, archive.CorpusPath(), "summary_chunks.json")
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		config := ai.NewConfig(ai.WithTimeout(-1 * time.Second))
		_, err := NewArchive("corpus.json", WithAIConfig(config))
		assert.Error(t, err)
	})

	t.Run("opens a vector cache when configured", func(t *testing.T) {
		archive := testArchive(t, WithVectorCachePath(filepath.Join(t.TempDir(), "vectors")))
		assert.NotNil(t, archive.vectorCache)
		assert.NoError(t, archive.Close())
	})

	t.Run("http generator option selects the API backend", func(t *testing.T) {
		archive := testArchive(t, WithHTTPGenerator())
		assert.NotNil(t, archive.generator)
	})
}

func TestArchiveQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("missing corpus surfaces a load error", func(t *testing.T) {
		archive := testArchive(t)
		_, err := archive.Query(ctx, search.ModeLexical, "railway", nil)
		assert.ErrorIs(t, err, corpus.ErrCorpusNotFound)
	})

	t.Run("searches a corpus on disk", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "summary_chunks.json")
		payload := `[
			{"id": "a", "pdf_path": "bridges.pdf", "chunk_position": 0,
			 "chunk_text": "", "summary_text": "The railway bridge opened in 1885.",
			 "status": "success", "retries": 0},
			{"id": "b", "pdf_path": "bridges.pdf", "chunk_position": 1,
			 "chunk_text": "", "summary_text": "Stone masonry was common.",
			 "status": "success", "retries": 0}
		]`
		require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

		archive, err := NewArchive(path)
		require.NoError(t, err)
		defer archive.Close()

		results, err := archive.Query(ctx, search.ModeLexical, "railway", nil)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "a", results[0].Unit.ID)

		results, err = archive.Query(ctx, search.ModeTemporal, "railway", &search.Options{Before: 1885})
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestArchiveIngest(t *testing.T) {
	t.Run("missing sources are skipped without touching the generator", func(t *testing.T) {
		archive := testArchive(t)

		report, err := archive.Ingest(context.Background(), []string{"no-such-file.txt"}, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, report.SourcesSkipped)
		assert.Zero(t, report.SourcesProcessed)
		assert.Zero(t, report.UnitsAdded)
	})
}
