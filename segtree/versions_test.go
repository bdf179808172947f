package segtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionTable(t *testing.T) {
	vt := NewVersionTable(NoRef)
	require.Equal(t, 1, vt.Len())
	require.Equal(t, Version(0), vt.Latest())

	assert.Equal(t, Version(1), vt.Record(4, true))
	assert.Equal(t, Version(1), vt.Record(5, false))
	assert.Equal(t, Version(2), vt.Push(7))

	root, err := vt.Root(1)
	require.NoError(t, err)
	assert.Equal(t, NodeRef(5), root)
	assert.Equal(t, NodeRef(7), vt.LatestRoot())

	_, err = vt.Root(3)
	require.ErrorIs(t, err, ErrUnknownVersion)

	roots := vt.Roots()
	assert.Equal(t, []NodeRef{NoRef, 5, 7}, roots)
	roots[0] = 1
	root, _ = vt.Root(0)
	assert.Equal(t, NoRef, root, "Roots must return a copy")
}
