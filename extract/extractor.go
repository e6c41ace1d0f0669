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
	"fmt"
	"path/filepath"
	"strings"
)

// TextExtractor converts a document on disk into plain text.
type TextExtractor interface {
	// Extract reads the file at path and returns its textual content.
	// An empty result is reported as an error wrapping ErrNoText.
	Extract(path string) (string, error)
}

// ForFile returns the extractor that handles the file's extension.
// PDF files use PDFExtractor; .txt and .md files use PlainExtractor.
func ForFile(path string) (TextExtractor, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return NewPDFExtractor(), nil
	case ".txt", ".md":
		return NewPlainExtractor(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
