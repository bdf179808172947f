package segtree

import "math/bits"

func BitLength(num uint64) int {
	return bits.Len64(num)
}

// Log2Uint64 efficiently computes log base 2 of num
func Log2Uint64(num uint64) uint64 {
	return uint64(bits.Len64(num) - 1)
}

// Height returns the number of levels in the partition of n positions. A
// single position is one level, the partition is otherwise ceil(log2 n) + 1
// levels deep because the midpoint split never leaves a side larger than the
// next power of two down.
func Height(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	return uint64(BitLength(n-1)) + 1
}

// UpdateNodeBound returns the most nodes a single update can create in a tree
// over n positions. Each level holds at most two partially covered nodes,
// and each of those may create itself and both of its children.
func UpdateNodeBound(n uint64) uint64 {
	return 4 * Height(n)
}
