package slimfilter

// Filter answers approximate-membership queries over a fixed set of
// 64-bit keys chosen at build time. Contains is pure, total, and
// deterministic; it never returns an error.
type Filter interface {
	Contains(key uint64) bool
}

// FilterBuilder accumulates keys and produces an immutable Filter.
//
// Builder (builder.go) implements this contract with a concrete *SlimFilter
// return type rather than the Filter interface, so callers that need
// it get a concrete, inspectable value without a type assertion.
// FilterBuilder documents the shape; it is not asserted against Builder.
type FilterBuilder interface {
	AddKeys(keys []uint64)
	Build(falsePositivePow int) (Filter, error)
}

var _ Filter = (*SlimFilter)(nil)
