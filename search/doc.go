// Package search ranks corpus units against free-text queries.
//
// Three strategies share one result shape:
//
//   - Lexical: counts distinct query terms appearing as substrings of each
//     unit's lowercased summary, with an optional case-insensitive source
//     filter. Units scoring zero are excluded.
//   - Temporal: lexical scoring plus year extraction from summaries, with
//     optional before/after bounds that exclude units mentioning years
//     outside the requested range.
//   - Semantic: cosine similarity between the query embedding and each
//     summary embedding. Summary vectors are served from a persistent
//     vector cache when one is configured; misses are embedded in a batch
//     and written back.
//
// All strategies are linear scans over the corpus, sorted descending by
// score with ties keeping corpus order, truncated to top-K.
package search
