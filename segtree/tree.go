package segtree

import (
	"fmt"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/dustin/go-humanize"
)

// Tree is a dynamic, optionally persistent, segment tree over [0, N-1].
//
// It is not go routine safe.
type Tree[I Index, D any, L comparable] struct {
	n      I
	policy Policy[D, L]
	// lazy is nil unless the tree was created WithRangeUpdates
	lazy        LazyPolicy[D, L]
	lazyDefault L
	persistent  bool

	arena    *Arena[D, L]
	versions *VersionTable

	log logger.Logger
}

// New creates a tree over [0, n-1] in which every position holds the
// policy's default. Version 0 has no materialized nodes.
func New[I Index, D any, L comparable](n I, policy Policy[D, L], opts ...Option) (*Tree[I, D, L], error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n=%d", ErrInvalidSize, n)
	}
	t, err := newTree(n, policy, NewOptions(opts...))
	if err != nil {
		return nil, err
	}
	t.versions = NewVersionTable(NoRef)
	return t, nil
}

// NewFromSlice creates a tree over [0, len(values)-1] whose version 0 is
// fully built from values.
func NewFromSlice[I Index, D any, L comparable](values []D, policy Policy[D, L], opts ...Option) (*Tree[I, D, L], error) {
	n := I(len(values))
	if n <= 0 || int(n) != len(values) {
		return nil, fmt.Errorf("%w: len=%d", ErrInvalidSize, len(values))
	}
	t, err := newTree(n, policy, NewOptions(opts...))
	if err != nil {
		return nil, err
	}
	t.arena.Reserve(2*len(values) - 1)
	t.versions = NewVersionTable(t.build(values, 0, n-1))

	t.debugf("segtree: built n=%d nodes=%d", n, t.arena.Len())
	return t, nil
}

func newTree[I Index, D any, L comparable](n I, policy Policy[D, L], o Options) (*Tree[I, D, L], error) {
	if policy == nil {
		return nil, fmt.Errorf("%w: nil policy", ErrPolicyMisconfigured)
	}
	t := &Tree[I, D, L]{
		n:          n,
		policy:     policy,
		persistent: o.persistent,
		arena:      NewArena[D, L](o.reserve),
		log:        o.log,
	}
	if o.rangeUpdates {
		lp, ok := policy.(LazyPolicy[D, L])
		if !ok {
			return nil, fmt.Errorf("%w: range updates need LazyDefault and MergeLazy (%T)", ErrPolicyMisconfigured, policy)
		}
		t.lazy = lp
		t.lazyDefault = lp.LazyDefault()
	}
	return t, nil
}

func (t *Tree[I, D, L]) build(values []D, tl, tr I) NodeRef {
	if tl == tr {
		return t.arena.Allocate(values[tl], t.lazyDefault)
	}
	x := t.arena.Allocate(t.policy.QueryDefault(), t.lazyDefault)
	m := midpoint(tl, tr)
	left := t.build(values, tl, m)
	right := t.build(values, m+1, tr)

	n := t.arena.at(x)
	n.Left, n.Right = left, right
	n.Value = t.policy.Combine(t.arena.nodes[left].Value, t.arena.nodes[right].Value)
	return x
}

// Size returns N, the number of positions covered.
func (t *Tree[I, D, L]) Size() I { return t.n }

func (t *Tree[I, D, L]) RangeUpdates() bool { return t.lazy != nil }
func (t *Tree[I, D, L]) Persistent() bool   { return t.persistent }

// Latest returns the id of the latest version
func (t *Tree[I, D, L]) Latest() Version { return t.versions.Latest() }

// Versions returns the number of versions recorded
func (t *Tree[I, D, L]) Versions() int { return t.versions.Len() }

// Root returns the root reference of version v
func (t *Tree[I, D, L]) Root(v Version) (NodeRef, error) {
	return t.versions.Root(v)
}

// Arena exposes the node store for inspection. Callers must not retain nodes
// across updates expecting them to reflect later versions.
func (t *Tree[I, D, L]) Arena() *Arena[D, L] { return t.arena }

// Reserve pre-sizes the arena to hold capacity nodes. It has no behavioral
// effect.
func (t *Tree[I, D, L]) Reserve(capacity int) {
	t.arena.Reserve(capacity)
}

// ReserveForUpdates pre-sizes the arena for the worst case node growth of
// count further updates.
func (t *Tree[I, D, L]) ReserveForUpdates(count int) {
	if count <= 0 {
		return
	}
	bound := UpdateNodeBound(uint64(t.n))
	t.arena.Reserve(t.arena.Len() + count*int(bound))
}

// Revert records version v as the new latest version, and returns its id.
// Subsequent updates apply to it. In persistent mode they never affect v.
func (t *Tree[I, D, L]) Revert(v Version) (Version, error) {
	root, err := t.versions.Root(v)
	if err != nil {
		return 0, err
	}
	latest := t.versions.Push(root)
	t.debugf("segtree: reverted to version %d as version %d", v, latest)
	return latest, nil
}

type Stats struct {
	Size     uint64
	Height   uint64
	Nodes    int
	Capacity int
	Versions int
}

func (s Stats) String() string {
	return fmt.Sprintf("size=%s height=%d nodes=%s (cap %s) versions=%s",
		humanize.Comma(int64(s.Size)), s.Height,
		humanize.Comma(int64(s.Nodes)), humanize.Comma(int64(s.Capacity)),
		humanize.Comma(int64(s.Versions)))
}

func (t *Tree[I, D, L]) Stats() Stats {
	return Stats{
		Size:     uint64(t.n),
		Height:   Height(uint64(t.n)),
		Nodes:    t.arena.Len(),
		Capacity: t.arena.Cap(),
		Versions: t.versions.Len(),
	}
}

func (t *Tree[I, D, L]) checkIndex(i I) error {
	if i < 0 || i >= t.n {
		return fmt.Errorf("%w: index %d not within [0, %d]", ErrInvalidRange, i, t.n-1)
	}
	return nil
}

func (t *Tree[I, D, L]) checkRange(l, r I) error {
	if l > r {
		return fmt.Errorf("%w: l=%d > r=%d", ErrInvalidRange, l, r)
	}
	if err := t.checkIndex(l); err != nil {
		return err
	}
	return t.checkIndex(r)
}

func (t *Tree[I, D, L]) debugf(format string, args ...any) {
	if t.log == nil {
		return
	}
	t.log.Debugf(format, args...)
}
