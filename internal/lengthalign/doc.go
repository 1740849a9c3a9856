// Package lengthalign projects a time-stamped template onto a flat
// translation text.
//
// The translation is fragmented on clause punctuation, then a Gale-Church
// style dynamic program over cumulative character lengths assigns up to four
// fragments to each template frame. Sentence-end and line-length priors bias
// the block shapes toward presentable subtitles; a final wrapping pass
// breaks overlong lines at punctuation.
package lengthalign
