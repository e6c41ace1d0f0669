// Package synthesis composes a cited answer paragraph from ranked search
// results.
//
// Each distinct (source, position) pair among the ranked results receives a
// citation number in first-seen order. The numbered summaries are handed to
// the text generator in a single prompt that restricts the answer to the
// supplied facts and preserves the inline [n] markers.
//
// Synthesis never retries: the prompt is large and slow, so a timeout or
// process failure degrades to an explicit diagnostic string in the answer
// text. The reference table is always returned, failure or not, so callers
// can fall back to showing raw citations.
package synthesis
