package segtree_test

import (
	"testing"

	"github.com/forestrie/go-segtree/aggregate"
	"github.com/forestrie/go-segtree/segtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryRejects(t *testing.T) {
	tree, err := segtree.New[int, int64, int64](8, aggregate.SumAdd[int64]{})
	require.NoError(t, err)

	tests := []struct {
		name string
		ver  segtree.Version
		l, r int
		err  error
	}{
		{"l > r", 0, 5, 4, segtree.ErrInvalidRange},
		{"negative l", 0, -1, 4, segtree.ErrInvalidRange},
		{"r past the end", 0, 0, 8, segtree.ErrInvalidRange},
		{"unknown version", 1, 0, 7, segtree.ErrUnknownVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tree.QueryVersion(tt.ver, tt.l, tt.r)
			require.ErrorIs(t, err, tt.err)
			assert.Equal(t, int64(0), v)
		})
	}
}

// TestQueryIsPure checks reads against pending updates and absent subtrees
// never add arena records.
func TestQueryIsPure(t *testing.T) {
	tree, err := segtree.New[int, int64, int64](1000, aggregate.MinAdd[int64]{Fill: 10, Inf: 1 << 62},
		segtree.WithRangeUpdates(), segtree.WithPersistence())
	require.NoError(t, err)

	require.NoError(t, tree.Update(0, 999, 5, true))   // root only, pending for everything
	require.NoError(t, tree.Update(100, 899, 1, true)) // partial
	require.NoError(t, tree.Update(450, 450, -20, true))
	nodes := tree.Arena().Len()

	tests := []struct {
		ver  segtree.Version
		l, r int
		want int64
	}{
		{0, 0, 999, 10},
		{1, 0, 999, 15},
		{1, 17, 17, 15},
		{2, 0, 99, 15},
		{2, 100, 899, 16},
		{2, 0, 999, 15},
		{3, 440, 460, -4},
		{3, 451, 899, 16},
		{3, 900, 999, 15},
	}
	for _, tt := range tests {
		v, err := tree.QueryVersion(tt.ver, tt.l, tt.r)
		require.NoError(t, err)
		assert.Equal(t, tt.want, v, "version %d [%d, %d]", tt.ver, tt.l, tt.r)

		_, err = tree.SearchPrefixVersion(tt.ver, tt.l, tt.r, func(v int64) bool { return v < 0 })
		require.NoError(t, err)
		_, err = tree.SearchSuffixVersion(tt.ver, tt.l, tt.r, func(v int64) bool { return v < 0 })
		require.NoError(t, err)
	}
	assert.Equal(t, nodes, tree.Arena().Len())
}

func TestQueryMaxAdd(t *testing.T) {
	tree, err := segtree.NewFromSlice[int32, int64, int64]([]int64{4, -2, 9, 0, 3, 3, 1},
		aggregate.MaxAdd[int64]{NegInf: -1 << 62}, segtree.WithRangeUpdates())
	require.NoError(t, err)

	require.NoError(t, tree.Update(3, 6, 7, false))

	for _, tt := range []struct {
		l, r int32
		want int64
	}{
		{0, 6, 10},
		{0, 2, 9},
		{3, 3, 7},
		{5, 6, 10},
	} {
		v, err := tree.Query(tt.l, tt.r)
		require.NoError(t, err)
		assert.Equal(t, tt.want, v)
	}
}
