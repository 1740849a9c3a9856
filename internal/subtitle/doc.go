// Package subtitle reads time-stamped subtitle documents and derives
// per-sentence time frames.
//
// Two input forms are supported: SRT (blank-line delimited blocks) and a
// tokenized XML form where <s> elements contain <w> tokens interleaved with
// <time> markers. The readers track a document-wide character position for
// every token they emit; the interpolator uses those positions to place
// sentence start and end times between sparsely occurring markers.
package subtitle
