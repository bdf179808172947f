package segtree

// Policy defines the value type D and update type L of a tree and how they
// combine. Implementations must be stateless and pure.
//
// Combine must be associative, it need not be commutative: the tree always
// combines left before right. Apply must be associative over successive
// applications, and is given the length of the segment the value covers.
// Policies that do not care about length may ignore it.
type Policy[D, L any] interface {
	// QueryDefault is the identity of Combine.
	QueryDefault() D
	// SegmentDefault is the value of an untouched segment of length positions.
	SegmentDefault(length uint64) D
	Combine(left, right D) D
	Apply(value D, lazy L, length uint64) D
}

// LazyPolicy is required for trees created WithRangeUpdates.
type LazyPolicy[D, L any] interface {
	Policy[D, L]

	// LazyDefault marks "no pending update". Applying it must be a no-op.
	LazyDefault() L
	// MergeLazy returns the single update equivalent to applying older and
	// then newer. For overwrite style updates the newer one wins.
	MergeLazy(older, newer L) L
}
