package segtree

/*

# Versioned range aggregation trees

This package provides a segment tree over the implicit index domain [0, N-1]
which is materialized on demand, supports point and range updates, range
aggregate queries, binary search over a monotonic predicate of the running
aggregate, and (optionally) persistence across versions.

The value and update algebra is supplied by the caller as a Policy. The tree
never interprets the values it stores, it only combines them.

## The implicit partition

The tree never materializes the full partition of [0, N-1]. Every node
covers a range [tl, tr] and splits it at m = tl + (tr-tl)/2

	                 [0,4]
	               /       \
	          [0,2]         [3,4]
	         /     \        /    \
	      [0,1]    [2,2] [3,3]  [4,4]
	      /   \
	  [0,0]   [1,1]

A node that has never been touched is absent (NoRef). An absent node covering
k positions has the value Policy.SegmentDefault(k). So a tree over 10^18
positions costs nothing until it is written to, and each write materializes
at most O(log N) nodes.

## Arena & NodeRef

Nodes live in an append-only Arena and refer to their children by NodeRef,
the index of the child record in the arena. Nothing is ever removed from the
arena, so a NodeRef, once handed out, is valid for the lifetime of the tree.
This is what makes persistence cheap: a version is just a root NodeRef.

## Lazy (range update) mode

With WithRangeUpdates an update covering a whole node is applied to that node
and recorded as a pending lazy value for its children. The pending value is
pushed down, and cleared, before either child is written. The policy must
then implement LazyPolicy, as pending values need MergeLazy to stack and
LazyDefault to mark "nothing pending".

Without it only point updates are supported: the positions under a fully
covered interior node can not be recovered from its aggregate.

## Persistent mode

With WithPersistence every update call first records the arena length, the
fence. Any node below the fence is considered published and is cloned before
it is written, and the parent is redirected to the clone. Nodes created
during the call are at or above the fence and are written in place. The
result is that every version in the VersionTable remains exactly as it was
when it was recorded.

	version 0:   a               version 1:   a'
	            / \                          / \
	           b   c            (shared) -> b   c'
	                                             \
	                                              e'

## Reads are pure

Queries and searches never allocate or mutate. Pending lazy values met during
a read are carried down the recursion (merged with any pending value of the
nodes below) and applied to the values read, rather than being pushed down
into the arena. Absent subtrees are descended virtually. Reads against a
published version therefore never clone, and reads are safe to repeat
against any version.

## Version table

Each update either publishes a new version (the new root is appended to the
table) or replaces the latest version in place. Updates always apply to the
latest version. Revert appends an existing version's root, which makes that
version the base of the next updates; in persistent mode the reverted-from
versions are not affected by those updates.

## Concurrency

A Tree is not go routine safe. It assumes exclusive access by a single caller.

*/
