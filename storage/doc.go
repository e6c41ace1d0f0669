// Package storage defines persistence interfaces and binary serialization
// for cached embedding vectors.
//
// The corpus itself lives in a JSON file owned by the corpus package; this
// package covers the embedding vector cache, which is pure derived data.
// Vectors are addressed by a 64-bit content key over (model, summary text),
// so a summary re-generated with identical content reuses its cached
// vector, and any content change naturally misses.
//
// The interfaces here are implemented by the badger subpackage. Vector
// bytes use the MUS format: a varint element count followed by raw float32
// values.
package storage
