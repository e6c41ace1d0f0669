// Package corpus persists summarized units as a JSON document on disk.
//
// The on-disk format is a single indented JSON array of units. Two legacy
// shapes are also accepted on read: a top-level object with a "summaries"
// key holding the array, and arrays containing malformed entries, which are
// skipped and counted rather than failing the load.
//
// Merging is replace-by-source: re-ingesting a document drops every
// existing unit from the same source before appending the new ones, so a
// source's units never duplicate across runs. Saves are atomic via a
// temp-file rename, so readers never observe a partially written corpus.
package corpus
