// Package ingestion turns source documents into summarized corpus units.
//
// The pipeline runs in four stages: text extraction, word-count chunking,
// summarization through an ai.TextGenerator, and a merge into the persistent
// corpus. Chunking is deterministic so repeated ingestion of the same
// document yields identical chunk boundaries. Summarization is resilient:
// each chunk gets a bounded number of attempts, and chunks that exhaust
// their attempts are recorded as failed units rather than aborting the run.
//
// A second pass retries failed units before the corpus is saved, so
// transient generator outages heal within a single ingestion run.
package ingestion
