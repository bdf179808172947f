package segtree

// Predicate is a monotonic test of an accumulated aggregate: once it holds
// for some accumulation, it holds for every longer one.
type Predicate[D any] func(D) bool

// SearchPrefix returns the smallest i in [l, r] such that f(query(l, i))
// holds in the latest version, or r + 1 if there is none.
func (t *Tree[I, D, L]) SearchPrefix(l, r I, f Predicate[D]) (I, error) {
	return t.SearchPrefixVersion(t.versions.Latest(), l, r, f)
}

// SearchSuffix returns the largest i in [l, r] such that f(query(i, r))
// holds in the latest version, or l - 1 if there is none.
func (t *Tree[I, D, L]) SearchSuffix(l, r I, f Predicate[D]) (I, error) {
	return t.SearchSuffixVersion(t.versions.Latest(), l, r, f)
}

// SearchPrefixVersion is SearchPrefix against version ver. Like queries,
// searches never write to the arena; absent subtrees are descended virtually.
func (t *Tree[I, D, L]) SearchPrefixVersion(ver Version, l, r I, f Predicate[D]) (I, error) {
	root, err := t.versions.Root(ver)
	if err != nil {
		return r + 1, err
	}
	if err := t.checkRange(l, r); err != nil {
		return r + 1, err
	}
	agg := t.policy.QueryDefault()
	if i, ok := t.searchPrefix(root, 0, t.n-1, l, r, t.lazyDefault, &agg, f); ok {
		return i, nil
	}
	return r + 1, nil
}

// SearchSuffixVersion is SearchSuffix against version ver.
func (t *Tree[I, D, L]) SearchSuffixVersion(ver Version, l, r I, f Predicate[D]) (I, error) {
	root, err := t.versions.Root(ver)
	if err != nil {
		return l - 1, err
	}
	if err := t.checkRange(l, r); err != nil {
		return l - 1, err
	}
	agg := t.policy.QueryDefault()
	if i, ok := t.searchSuffix(root, 0, t.n-1, l, r, t.lazyDefault, &agg, f); ok {
		return i, nil
	}
	return l - 1, nil
}

// searchPrefix accumulates, left to right, the values of the fully covered
// segments into agg until f holds, then descends into the segment that made it
// hold.
func (t *Tree[I, D, L]) searchPrefix(
	ref NodeRef, tl, tr, l, r I, inherited L, agg *D, f Predicate[D]) (I, bool) {

	if r < tl || tr < l {
		return 0, false
	}
	if l <= tl && tr <= r {
		v := t.policy.Combine(*agg, t.settle(t.valueOf(ref, tl, tr), inherited, span(tl, tr)))
		if !f(v) {
			*agg = v
			return 0, false
		}
		if tl == tr {
			return tl, true
		}
	}

	left, right, down := t.children(ref, inherited)
	m := midpoint(tl, tr)
	if i, ok := t.searchPrefix(left, tl, m, l, r, down, agg, f); ok {
		return i, true
	}
	return t.searchPrefix(right, m+1, tr, l, r, down, agg, f)
}

// searchSuffix is the mirror of searchPrefix. The accumulation is combined on
// the right of each new segment so non-commutative policies see positions in
// index order.
func (t *Tree[I, D, L]) searchSuffix(
	ref NodeRef, tl, tr, l, r I, inherited L, agg *D, f Predicate[D]) (I, bool) {

	if r < tl || tr < l {
		return 0, false
	}
	if l <= tl && tr <= r {
		v := t.policy.Combine(t.settle(t.valueOf(ref, tl, tr), inherited, span(tl, tr)), *agg)
		if !f(v) {
			*agg = v
			return 0, false
		}
		if tl == tr {
			return tl, true
		}
	}

	left, right, down := t.children(ref, inherited)
	m := midpoint(tl, tr)
	if i, ok := t.searchSuffix(right, m+1, tr, l, r, down, agg, f); ok {
		return i, true
	}
	return t.searchSuffix(left, tl, m, l, r, down, agg, f)
}

// children returns the child references of ref and the update pending for
// them. The children of an absent node are absent.
func (t *Tree[I, D, L]) children(ref NodeRef, inherited L) (NodeRef, NodeRef, L) {
	if ref == NoRef {
		return NoRef, NoRef, inherited
	}
	n := t.arena.nodes[ref]
	return n.Left, n.Right, t.compose(n.Lazy, inherited)
}
