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


package extract

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor implements TextExtractor for PDF documents.
type PDFExtractor struct {
	logger *slog.Logger
}

// NewPDFExtractor creates a PDF text extractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{
		logger: slog.Default().With("component", "pdf-extractor"),
	}
}

// Extract reads all pages of the PDF at path and concatenates their text.
// Malformed or encrypted files produce errors; a readable file with no
// textual content reports ErrNoText.
func (e *PDFExtractor) Extract(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	defer f.Close()

	body, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text from %s: %w", path, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", fmt.Errorf("failed to buffer pdf text from %s: %w", path, err)
	}

	text := buf.String()
	if strings.TrimSpace(text) == "" {
		e.logger.Warn("pdf contains no extractable text", "path", path)
		return "", fmt.Errorf("%w: %s", ErrNoText, path)
	}

	e.logger.Debug("extracted pdf text", "path", path, "bytes", len(text))
	return text, nil
}
