package segtree

import "fmt"

// VersionTable records the root of every version. Version ids are positions
// in the table, the last entry is the latest version.
type VersionTable struct {
	roots []NodeRef
}

// NewVersionTable creates a table whose version 0 is root.
func NewVersionTable(root NodeRef) *VersionTable {
	return &VersionTable{roots: []NodeRef{root}}
}

func (vt *VersionTable) Len() int { return len(vt.roots) }

func (vt *VersionTable) Latest() Version {
	return Version(len(vt.roots) - 1)
}

func (vt *VersionTable) LatestRoot() NodeRef {
	return vt.roots[len(vt.roots)-1]
}

// Root returns the root of version v
func (vt *VersionTable) Root(v Version) (NodeRef, error) {
	if int(v) >= len(vt.roots) {
		return NoRef, fmt.Errorf("%w: %d (latest is %d)", ErrUnknownVersion, v, vt.Latest())
	}
	return vt.roots[v], nil
}

// Push appends root as the new latest version.
func (vt *VersionTable) Push(root NodeRef) Version {
	vt.roots = append(vt.roots, root)
	return vt.Latest()
}

// Replace overwrites the root of the latest version.
func (vt *VersionTable) Replace(root NodeRef) Version {
	vt.roots[len(vt.roots)-1] = root
	return vt.Latest()
}

// Record pushes root when publish is true, and replaces the latest otherwise.
func (vt *VersionTable) Record(root NodeRef, publish bool) Version {
	if publish {
		return vt.Push(root)
	}
	return vt.Replace(root)
}

// Roots returns a copy of every version root, in version order.
func (vt *VersionTable) Roots() []NodeRef {
	return append([]NodeRef(nil), vt.roots...)
}
