// Package dictcache compiles dictionary text files into a local SQLite
// cache.
//
// Bilingual lexicons run to hundreds of thousands of lines; parsing them on
// every invocation dominates startup for short alignments. The cache keys
// compiled entries by source path and mtime, so repeated runs load from the
// database and a changed file triggers a recompile. A file lock serializes
// compilation when two runs race on the same cache directory.
//
// The cache is best-effort: any failure falls back to direct parsing with a
// warning, never a fatal error.
package dictcache
