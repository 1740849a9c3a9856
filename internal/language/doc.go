// Package language provides unified language code normalization.
//
// Dictionary files are keyed by ISO 639-3 pairs (e.g. "eng-ger"), so every
// conversion from user-supplied codes to alpha-3 form is
// consolidated here to avoid duplication across the aligner and the
// dictionary loader.
package language
