package slimfilter

import (
	"fmt"
	"sort"
)

const segmentSize = 64

// Builder accumulates a set of 64-bit keys and, once, produces an
// immutable SlimFilter sized for a target false-positive exponent. It
// is a synchronous, single-use pipeline: add keys, then Build. A
// Builder is not safe for concurrent use and is not meant to be
// shared.
type Builder struct {
	keys map[uint64]struct{}
}

// Option configures a Builder at construction time.
type Option func(*builderOptions)

type builderOptions struct {
	capacityHint int
}

// WithCapacityHint pre-sizes the builder's internal key set for n
// expected keys. Purely a performance hint — it does not change the
// built filter.
func WithCapacityHint(n int) Option {
	return func(o *builderOptions) {
		o.capacityHint = n
	}
}

// New creates an empty Builder.
func New(opts ...Option) *Builder {
	options := &builderOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return &Builder{
		keys: make(map[uint64]struct{}, options.capacityHint),
	}
}

// AddKeys inserts each key into the builder's key set; the set is
// unordered and is sorted once, in Build. Duplicates coalesce silently. AddKeys may be called repeatedly before Build.
func (b *Builder) AddKeys(keys []uint64) {
	for _, k := range keys {
		b.keys[k] = struct{}{}
	}
}

// Build consumes the accumulated keys and produces an immutable
// SlimFilter sized so that the expected false-positive rate is
// bounded above by 2^-falsePositivePow for keys drawn uniformly from
// the 64-bit key space. Typical values of falsePositivePow are in
// [4, 16].
//
// Build returns ErrEmptyInput if no keys were ever added, and
// ErrSuffixOverflow if the input cardinality and falsePositivePow
// together require a key width wider than 63 bits.
func (b *Builder) Build(falsePositivePow int) (*SlimFilter, error) {
	n := uint64(len(b.keys))
	if n == 0 {
		return nil, ErrEmptyInput
	}

	sorted := make([]uint64, 0, n)
	for k := range b.keys {
		sorted = append(sorted, k)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	nPow := ceilLog2(n)
	wordBits := nPow + uint64(falsePositivePow)
	if wordBits > 63 {
		return nil, fmt.Errorf("%w: n_pow=%d fp_pow=%d word_bits=%d", ErrSuffixOverflow, nPow, falsePositivePow, wordBits)
	}

	segs := cutSegments(wordBits, sorted)

	suffixBits := maxBigSuffixBits(segs)
	suffixes := buildSuffixes(segs, suffixBits, wordBits)

	partitionKeyBits := sizePartitionKeyBits(segs, wordBits, len(segs))
	partitions, err := buildPartitions(segs, partitionKeyBits)
	if err != nil {
		return nil, err
	}

	return &SlimFilter{
		wordBits:         wordBits,
		partitionKeyBits: partitionKeyBits,
		partitions:       partitions,
		suffixBits:       suffixBits,
		suffixes:         suffixes,
		numSegments:      uint64(len(segs)),
	}, nil
}

// cutSegments walks the sorted keys in order, grouping them into
// segments of up to 64 keys each. The last, possibly short, group is
// padded by newSegment.
func cutSegments(wordBits uint64, sorted []uint64) []segment {
	segs := make([]segment, 0, (len(sorted)+segmentSize-1)/segmentSize)
	for i := 0; i < len(sorted); i += segmentSize {
		end := i + segmentSize
		if end > len(sorted) {
			end = len(sorted)
		}
		segs = append(segs, newSegment(wordBits, sorted[i:end]))
	}
	return segs
}

// maxBigSuffixBits is the widest big-suffix across all segments,
// forced up to 1 if every segment degenerates to an all-identical
// top-bits window.
func maxBigSuffixBits(segs []segment) uint64 {
	var maxBits uint64
	for _, s := range segs {
		if b := s.bigSuffixBits(); b > maxBits {
			maxBits = b
		}
	}
	if maxBits == 0 {
		maxBits = 1
	}
	return maxBits
}

// buildSuffixes emits one suffix per key, segmentSize entries per
// segment, each suffixBits wide.
func buildSuffixes(segs []segment, suffixBits, wordBits uint64) *packedBitmap {
	suffixes := newPackedBitmap(uint64(len(segs))*segmentSize, suffixBits)
	mask := uint64(1)<<suffixBits - 1
	for _, s := range segs {
		for j := 0; j < segmentSize; j++ {
			suffixes.pushWord((s.keys[j] >> (64 - wordBits)) & mask)
		}
	}
	return suffixes
}

// sizePartitionKeyBits chooses a partition-key width wide enough to keep
// every segment's last-key partition key strictly greater than the
// previous segment's, by scanning every adjacent pair of boundary keys
// (first and last key of each segment, in segment order): the width is
// one more than the longest shared-prefix-plus-one of any pair, capped
// at wordBits per pair. This is not necessarily the smallest width that
// keeps the partition keys ascending.
func sizePartitionKeyBits(segs []segment, wordBits uint64, numSegments int) uint64 {
	if numSegments <= 1 {
		return 0
	}

	boundaries := make([]uint64, 0, numSegments*2)
	for _, s := range segs {
		boundaries = append(boundaries, s.keys[0], s.keys[63])
	}

	var maxLen uint64
	for i := 1; i < len(boundaries); i++ {
		cp := leadingZeros64(boundaries[i-1] ^ boundaries[i])
		pkLen := cp + 1
		if pkLen > wordBits {
			pkLen = wordBits
		}
		if pkLen > maxLen {
			maxLen = pkLen
		}
	}
	return maxLen + 1
}

// buildPartitions emits one partition key per segment — the top
// partitionKeyBits of that segment's last key — and asserts the
// resulting sequence is strictly ascending. When partitionKeyBits is 0
// (a single segment), partition search is short-circuited entirely and
// no partitions bitmap is built at all.
func buildPartitions(segs []segment, partitionKeyBits uint64) (*packedBitmap, error) {
	if partitionKeyBits == 0 {
		return nil, nil
	}

	partitions := newPackedBitmap(uint64(len(segs)), partitionKeyBits)
	var prev uint64
	for i, s := range segs {
		pk := s.keys[63] >> (64 - partitionKeyBits)
		if i > 0 && pk <= prev {
			return nil, fmt.Errorf("%w: segment %d (prev=%d, got=%d)", ErrInvariantViolation, i, prev, pk)
		}
		partitions.pushWord(pk)
		prev = pk
	}
	return partitions, nil
}
