// Package slimfilter implements a static approximate-membership filter
// built once from a set of 64-bit hashed keys and queried many times
// with a small, tunable false-positive rate.
//
// Unlike a Bloom or Xor filter, SlimFilter is organized around
// sorted-prefix segmentation: keys are grouped into 64-key segments, a
// small partition-key bitmap routes a query to its segment, and a
// suffix bitmap confirms membership within it. Both bitmaps are
// bit-packed arrays of variable-width words, so a query touches only a
// handful of 64-bit cells.
//
// Build a filter with Builder, then query the result with Contains.
// A built filter is immutable and safe for concurrent readers; there
// is no update, deletion, or resize after Build.
package slimfilter
