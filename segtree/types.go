package segtree

import (
	"errors"

	"golang.org/x/exp/constraints"
)

// Index is the integral type used to address positions in [0, N-1]. It is
// signed so that the suffix search sentinel (l - 1) is representable for l = 0.
type Index interface {
	constraints.Signed
}

// NodeRef is an arena record index.
type NodeRef uint32

// NoRef marks an absent (never materialized) subtree.
const NoRef = ^NodeRef(0)

// Version is an index into the version table.
type Version uint32

var (
	ErrInvalidSize             = errors.New("segtree: size must be positive and representable by the index type")
	ErrInvalidRange            = errors.New("segtree: range invalid")
	ErrRangeUpdateRequiresLazy = errors.New("segtree: range updates require WithRangeUpdates")
	ErrPolicyMisconfigured     = errors.New("segtree: policy misconfigured")
	ErrUnknownVersion          = errors.New("segtree: unknown version")
	ErrArenaExhausted          = errors.New("segtree: arena exhausted")

	ErrSnapshotBadFormat     = errors.New("segtree: snapshot format invalid")
	ErrSnapshotBadRef        = errors.New("segtree: snapshot node reference invalid")
	ErrSnapshotShapeMismatch = errors.New("segtree: snapshot shape does not fit the index type")
)

func midpoint[I Index](tl, tr I) I {
	return tl + (tr-tl)/2
}

// span returns the number of positions in [tl, tr]
func span[I Index](tl, tr I) uint64 {
	return uint64(tr-tl) + 1
}
