package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
	"github.com/google/uuid"
)

// PreviewLength is the number of bytes of chunk text persisted as a preview.
const PreviewLength = 300

// Status describes the outcome of summarizing a Unit.
type Status string

const (
	// StatusSuccess indicates the summarizer produced output for the Unit.
	StatusSuccess Status = "success"
	// StatusFailed indicates every summarization attempt failed.
	StatusFailed Status = "failed"
)

// Unit is one summarized text segment of a source document. It is the atomic
// persisted record of the corpus file; the JSON field names are the wire
// contract and must stay backward compatible with existing corpus files.
type Unit struct {
	ID          string `json:"id"`
	SourceID    string `json:"pdf_path"`
	Position    int    `json:"chunk_position"`
	Text        string `json:"chunk_text"`
	Summary     string `json:"summary_text"`
	Status      Status `json:"status"`
	Retries     int    `json:"retries"`
	Err         string `json:"error,omitempty"`
	TextPreview string `json:"text_preview,omitempty"`
}

// NewUnit creates a Unit for a chunk of a source document.
// The ID is assigned at creation and never changes; summary fields are
// populated later by the summarization worker.
func NewUnit(sourceID string, position int, text string) *Unit {
	return &Unit{
		ID:          uuid.NewString(),
		SourceID:    sourceID,
		Position:    position,
		Text:        text,
		TextPreview: Preview(text),
	}
}

// Preview returns the leading PreviewLength bytes of text.
func Preview(text string) string {
	if len(text) <= PreviewLength {
		return text
	}
	return text[:PreviewLength]
}

// ContentKey generates a deterministic 64-bit key from text content using
// BLAKE2b hashing. Identical content always produces the identical key; it is
// used to address cached embedding vectors by (model, summary) content.
func ContentKey(text string) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// VectorKey addresses a cached embedding vector by embedding model and
// summary content. The NUL separator keeps distinct (model, summary) pairs
// from colliding through concatenation.
func VectorKey(model, summary string) uint64 {
	return ContentKey(model + "\x00" + summary)
}
