// Package extract converts source documents into plain text for ingestion.
//
// The package defines the TextExtractor interface and provides two
// implementations: PDFExtractor for PDF files and PlainExtractor for
// already-textual files. ForFile selects an extractor by file extension.
//
// Extraction is fallible: encrypted, malformed, or image-only documents
// produce errors or empty text, and callers decide how to proceed. An empty
// extraction result is reported as ErrNoText so callers can skip the source
// without treating it as a hard failure.
package extract
