package slimfilter

import "errors"

var (
	// ErrEmptyInput is returned by Build when no keys were ever added.
	ErrEmptyInput = errors.New("slimfilter: build called with no keys")

	// ErrSuffixOverflow is returned by Build when the chosen word_bits
	// (n_pow + fp_pow) exceeds 63, the widest suffix a 64-bit key can
	// support.
	ErrSuffixOverflow = errors.New("slimfilter: word_bits exceeds 63 bits")

	// ErrInvariantViolation is returned by Build if the computed
	// partitions sequence turns out not to be strictly ascending.
	// Reaching this means the partition-key-width sizing math has a
	// bug; it is not a caller-triggerable condition.
	ErrInvariantViolation = errors.New("slimfilter: partition keys not strictly ascending")
)
