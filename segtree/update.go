package segtree

import "fmt"

// Update applies v to every position in [l, r] of the latest version.
//
// If publish is true the result is recorded as a new version, otherwise it
// replaces the latest version. An update with l > r changes nothing, but is
// still recorded, so that every publishing call produces exactly one version.
//
// Range updates (l != r) require WithRangeUpdates.
func (t *Tree[I, D, L]) Update(l, r I, v L, publish bool) error {
	if err := t.checkIndex(l); err != nil {
		return err
	}
	if err := t.checkIndex(r); err != nil {
		return err
	}
	root := t.versions.LatestRoot()
	if l <= r {
		if l != r && t.lazy == nil {
			return fmt.Errorf("%w: [%d, %d]", ErrRangeUpdateRequiresLazy, l, r)
		}
		// Everything below the fence predates this call. In persistent mode
		// it may be reachable from a recorded version and must not be written.
		fence := NodeRef(t.arena.Len())
		root = t.update(root, 0, t.n-1, l, r, v, fence)
	}

	ver := t.versions.Record(root, publish)
	if publish {
		t.debugf("segtree: published version %d root=%d nodes=%d", ver, root, t.arena.Len())
	}
	return nil
}

// UpdateAt applies v to position i of the latest version.
func (t *Tree[I, D, L]) UpdateAt(i I, v L, publish bool) error {
	return t.Update(i, i, v, publish)
}

func (t *Tree[I, D, L]) update(ref NodeRef, tl, tr, l, r I, v L, fence NodeRef) NodeRef {
	x := t.writable(ref, tl, tr, fence)
	if l <= tl && tr <= r {
		t.apply(x, tl, tr, v)
		return x
	}
	t.propagate(x, tl, tr, fence)

	m := midpoint(tl, tr)
	if l <= m {
		left := t.update(t.arena.nodes[x].Left, tl, m, l, r, v, fence)
		t.arena.nodes[x].Left = left
	}
	if m < r {
		right := t.update(t.arena.nodes[x].Right, m+1, tr, l, r, v, fence)
		t.arena.nodes[x].Right = right
	}
	t.pull(x, tl, m, tr)
	return x
}

// writable returns a node covering [tl, tr] that may be written in place:
// ref itself, a fresh default node for an absent subtree, or (persistent
// mode) a clone of a node that predates the fence.
func (t *Tree[I, D, L]) writable(ref NodeRef, tl, tr I, fence NodeRef) NodeRef {
	if ref == NoRef {
		return t.arena.Allocate(t.policy.SegmentDefault(span(tl, tr)), t.lazyDefault)
	}
	if t.persistent && ref < fence {
		return t.arena.Clone(ref)
	}
	return ref
}

func (t *Tree[I, D, L]) apply(x NodeRef, tl, tr I, v L) {
	n := t.arena.at(x)
	n.Value = t.policy.Apply(n.Value, v, span(tl, tr))
	// leaves have no children to push to
	if t.lazy != nil && tl != tr {
		n.Lazy = t.lazy.MergeLazy(n.Lazy, v)
	}
}

// propagate pushes the pending lazy of x down to its children and clears it.
func (t *Tree[I, D, L]) propagate(x NodeRef, tl, tr I, fence NodeRef) {
	if t.lazy == nil {
		return
	}
	pending := t.arena.nodes[x].Lazy
	if pending == t.lazyDefault {
		return
	}
	m := midpoint(tl, tr)
	left := t.writable(t.arena.nodes[x].Left, tl, m, fence)
	right := t.writable(t.arena.nodes[x].Right, m+1, tr, fence)

	n := t.arena.at(x)
	n.Left, n.Right, n.Lazy = left, right, t.lazyDefault

	t.apply(left, tl, m, pending)
	t.apply(right, m+1, tr, pending)
}

// pull recomputes the value of x from its children.
func (t *Tree[I, D, L]) pull(x NodeRef, tl, m, tr I) {
	n := t.arena.at(x)
	n.Value = t.policy.Combine(t.valueOf(n.Left, tl, m), t.valueOf(n.Right, m+1, tr))
}

// valueOf returns the stored value of ref, or the default for an absent
// subtree covering [tl, tr].
func (t *Tree[I, D, L]) valueOf(ref NodeRef, tl, tr I) D {
	if ref == NoRef {
		return t.policy.SegmentDefault(span(tl, tr))
	}
	return t.arena.nodes[ref].Value
}
