// Package overlap aligns two subtitle documents by maximizing temporal
// overlap of their sentence frames.
//
// The aligner walks both documents left to right, choosing at each step the
// block merge that minimizes non-shared time. Around it sits the best-anchor
// search: lexical anchor pairs near the document edges propose linear time
// transforms, each candidate is re-aligned, and the configuration with the
// best non-empty/empty ratio wins. When no configuration reaches a usable
// ratio an external fallback aligner can take over.
package overlap
