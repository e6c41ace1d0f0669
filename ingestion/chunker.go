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

import "strings"

// DefaultChunkWords is the default chunk size in words.
const DefaultChunkWords = 250

// Chunker splits document text into fixed-size word windows.
// Splitting is purely whitespace-based, so the same input always produces
// the same chunk boundaries.
type Chunker struct {
	maxWords int
}

// NewChunker creates a chunker with the given chunk size in words.
func NewChunker(maxWords int) (*Chunker, error) {
	if maxWords < 1 {
		return nil, ErrInvalidChunkSize
	}
	return &Chunker{maxWords: maxWords}, nil
}

// Chunk splits text into chunks of at most maxWords whitespace-separated
// words, joined back with single spaces. The final chunk holds the
// remainder and may be shorter. Empty or whitespace-only input yields nil.
func (c *Chunker) Chunk(text string) []string {
	return c.ChunkN(text, 0)
}

// ChunkN behaves like Chunk but returns at most maxChunks chunks.
// A maxChunks value of zero or less means no limit.
func (c *Chunker) ChunkN(text string, maxChunks int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	for start := 0; start < len(words); start += c.maxWords {
		end := start + c.maxWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}

	if maxChunks > 0 && len(chunks) > maxChunks {
		chunks = chunks[:maxChunks]
	}
	return chunks
}
