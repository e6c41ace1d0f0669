package extract

import (
	"fmt"
	"os"
	"strings"
)

// PlainExtractor implements TextExtractor for files that are already text.
type PlainExtractor struct{}

// NewPlainExtractor creates an extractor for plain-text files.
func NewPlainExtractor() *PlainExtractor {
	return &PlainExtractor{}
}

// Extract reads the file verbatim.
func (e *PlainExtractor) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("%w: %s", ErrNoText, path)
	}
	return string(data), nil
}
