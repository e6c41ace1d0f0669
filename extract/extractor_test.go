package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForFile(t *testing.T) {
	t.Run("selects pdf extractor", func(t *testing.T) {
		ex, err := ForFile("report.pdf")
		require.NoError(t, err)
		assert.IsType(t, &PDFExtractor{}, ex)
	})

	t.Run("extension match is case insensitive", func(t *testing.T) {
		ex, err := ForFile("REPORT.PDF")
		require.NoError(t, err)
		assert.IsType(t, &PDFExtractor{}, ex)
	})

	t.Run("selects plain extractor for txt", func(t *testing.T) {
		ex, err := ForFile("notes.txt")
		require.NoError(t, err)
		assert.IsType(t, &PlainExtractor{}, ex)
	})

	t.Run("selects plain extractor for md", func(t *testing.T) {
		ex, err := ForFile("readme.md")
		require.NoError(t, err)
		assert.IsType(t, &PlainExtractor{}, ex)
	})

	t.Run("rejects unknown extension", func(t *testing.T) {
		_, err := ForFile("archive.zip")
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}

func TestPlainExtractor(t *testing.T) {
	t.Run("reads file content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("the fire began on a Sunday"), 0o644))

		text, err := NewPlainExtractor().Extract(path)
		require.NoError(t, err)
		assert.Equal(t, "the fire began on a Sunday", text)
	})

	t.Run("whitespace-only file reports no text", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "blank.txt")
		require.NoError(t, os.WriteFile(path, []byte("  \n\t\n"), 0o644))

		_, err := NewPlainExtractor().Extract(path)
		assert.ErrorIs(t, err, ErrNoText)
	})

	t.Run("missing file returns error", func(t *testing.T) {
		_, err := NewPlainExtractor().Extract(filepath.Join(t.TempDir(), "absent.txt"))
		assert.Error(t, err)
	})
}

func TestPDFExtractor(t *testing.T) {
	t.Run("malformed pdf returns error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bogus.pdf")
		require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o644))

		_, err := NewPDFExtractor().Extract(path)
		assert.Error(t, err)
	})

	t.Run("missing file returns error", func(t *testing.T) {
		_, err := NewPDFExtractor().Extract(filepath.Join(t.TempDir(), "absent.pdf"))
		assert.Error(t, err)
	})
}
