// Package bench drives a buffer.Buffer through a synthetic network workload
// and reports how often it had to grow or compact.
//
// Each iteration writes one chunk through the zero-copy WritableSlice and
// HasWritten path, prepends a big-endian length header when the prependable
// region allows it, then drains a fraction of the readable bytes. Chunk
// sizes are jittered with a seeded generator so runs are reproducible.
package bench
