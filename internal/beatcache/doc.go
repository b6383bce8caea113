// Package beatcache persists beat analysis results between runs.
//
// Neural inference over a long source file is by far the slowest step of the
// pipeline, and editors re-run marker passes constantly while iterating on a
// cut. The cache keys detected events by source file identity (path, size,
// mtime), engine, and analysis window, so an unchanged file analyzed the same
// way is never decoded twice. Storage is a SQLite database guarded by a file
// lock so concurrent CLI invocations do not race on the same cache.
package beatcache
