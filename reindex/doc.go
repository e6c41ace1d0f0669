// Package reindex rebuilds the embedding vector cache from the corpus.
//
// Reindexing runs after a corpus change or an embedding model switch:
// every successfully summarized unit gets a fresh summary embedding,
// computed in batches fanned out over a worker pool, normalized, and
// written to the vector cache. Embedding calls retry with exponential
// backoff, and progress is reported as batches complete.
package reindex
