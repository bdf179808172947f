package segtreetesting

import (
	"github.com/forestrie/go-segtree/segtree"
)

// Oracle is a naive model of a versioned tree: every version is a fully
// materialized array and every operation is a linear scan. It is driven by
// the same policy as the tree it checks, applying each update position by
// position.
type Oracle[D any, L any] struct {
	policy   segtree.Policy[D, L]
	versions [][]D
}

// NewOracle models a tree of n untouched positions.
func NewOracle[D any, L any](n int, policy segtree.Policy[D, L]) *Oracle[D, L] {
	values := make([]D, n)
	for i := range values {
		values[i] = policy.SegmentDefault(1)
	}
	return &Oracle[D, L]{policy: policy, versions: [][]D{values}}
}

func NewOracleFromSlice[D any, L any](values []D, policy segtree.Policy[D, L]) *Oracle[D, L] {
	return &Oracle[D, L]{policy: policy, versions: [][]D{append([]D(nil), values...)}}
}

func (o *Oracle[D, L]) Latest() int { return len(o.versions) - 1 }

// Values returns a copy of the positions of version ver
func (o *Oracle[D, L]) Values(ver int) []D {
	return append([]D(nil), o.versions[ver]...)
}

// Update mirrors Tree.Update, an empty range is still recorded.
func (o *Oracle[D, L]) Update(l, r int, v L, publish bool) {
	next := o.Values(o.Latest())
	for i := l; i <= r; i++ {
		next[i] = o.policy.Apply(next[i], v, 1)
	}
	if publish {
		o.versions = append(o.versions, next)
		return
	}
	o.versions[o.Latest()] = next
}

func (o *Oracle[D, L]) Revert(ver int) int {
	o.versions = append(o.versions, o.Values(ver))
	return o.Latest()
}

func (o *Oracle[D, L]) Query(ver, l, r int) D {
	values := o.versions[ver]
	agg := values[l]
	for i := l + 1; i <= r; i++ {
		agg = o.policy.Combine(agg, values[i])
	}
	return agg
}

func (o *Oracle[D, L]) SearchPrefix(ver, l, r int, f func(D) bool) int {
	values := o.versions[ver]
	agg := o.policy.QueryDefault()
	for i := l; i <= r; i++ {
		agg = o.policy.Combine(agg, values[i])
		if f(agg) {
			return i
		}
	}
	return r + 1
}

func (o *Oracle[D, L]) SearchSuffix(ver, l, r int, f func(D) bool) int {
	values := o.versions[ver]
	agg := o.policy.QueryDefault()
	for i := r; i >= l; i-- {
		agg = o.policy.Combine(values[i], agg)
		if f(agg) {
			return i
		}
	}
	return l - 1
}
