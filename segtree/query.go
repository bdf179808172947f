package segtree

// Query returns the aggregate of [l, r] in the latest version.
func (t *Tree[I, D, L]) Query(l, r I) (D, error) {
	return t.QueryVersion(t.versions.Latest(), l, r)
}

// QueryVersion returns the aggregate of [l, r] in version ver.
//
// Queries never write to the arena. Pending lazy values are carried down the
// recursion and applied to the values read.
func (t *Tree[I, D, L]) QueryVersion(ver Version, l, r I) (D, error) {
	root, err := t.versions.Root(ver)
	if err != nil {
		return t.policy.QueryDefault(), err
	}
	if err := t.checkRange(l, r); err != nil {
		return t.policy.QueryDefault(), err
	}
	return t.query(root, 0, t.n-1, l, r, t.lazyDefault), nil
}

// query requires [l, r] to overlap [tl, tr]. inherited is the update pending
// from the ancestors of ref, not yet reflected in its stored value.
func (t *Tree[I, D, L]) query(ref NodeRef, tl, tr, l, r I, inherited L) D {
	if ref == NoRef {
		lo, hi := max(l, tl), min(r, tr)
		return t.settle(t.policy.SegmentDefault(span(lo, hi)), inherited, span(lo, hi))
	}
	n := t.arena.nodes[ref]
	if l <= tl && tr <= r {
		return t.settle(n.Value, inherited, span(tl, tr))
	}

	down := t.compose(n.Lazy, inherited)
	m := midpoint(tl, tr)
	switch {
	case r <= m:
		return t.query(n.Left, tl, m, l, r, down)
	case m < l:
		return t.query(n.Right, m+1, tr, l, r, down)
	}
	return t.policy.Combine(
		t.query(n.Left, tl, m, l, r, down),
		t.query(n.Right, m+1, tr, l, r, down))
}

// settle applies a pending update to a value read from a segment of length
// positions.
func (t *Tree[I, D, L]) settle(value D, pending L, length uint64) D {
	if pending == t.lazyDefault {
		return value
	}
	return t.policy.Apply(value, pending, length)
}

// compose returns the update pending for the children of a node whose own
// pending update is own, and whose ancestors have inherited pending on top.
func (t *Tree[I, D, L]) compose(own, inherited L) L {
	switch {
	case own == t.lazyDefault:
		return inherited
	case inherited == t.lazyDefault:
		return own
	}
	return t.lazy.MergeLazy(own, inherited)
}
