package segtree

import (
	"testing"
)

func TestLog2Uint64(t *testing.T) {
	type args struct {
		num uint64
	}
	tests := []struct {
		name string
		args args
		want uint64
	}{
		{"1 -> 0", args{1}, 0},
		{"2 -> 1", args{2}, 1},
		{"3 -> 1", args{3}, 1},
		{"4 -> 2", args{4}, 2},
		{"17 -> 4", args{17}, 4},
		{"32 -> 5", args{32}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Log2Uint64(tt.args.num); got != tt.want {
				t.Errorf("Log2Uint64() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHeight(t *testing.T) {
	type args struct {
		n uint64
	}
	tests := []struct {
		name string
		args args
		want uint64
	}{
		{"single position is a lone leaf", args{1}, 1},
		{"2 positions, root and 2 leaves", args{2}, 2},
		{"3 positions split 2|1", args{3}, 3},
		{"4 positions, perfect", args{4}, 3},
		{"5 positions split 3|2, the 3 splits 2|1", args{5}, 4},
		{"8 positions, perfect", args{8}, 4},
		{"9 positions needs one more level", args{9}, 5},
		{"2^62", args{1 << 62}, 63},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Height(tt.args.n); got != tt.want {
				t.Errorf("Height() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestHeightMatchesPartition walks the midpoint partition to check Height
// agrees with the depth the tree actually reaches.
func TestHeightMatchesPartition(t *testing.T) {
	var depth func(tl, tr int64) uint64
	depth = func(tl, tr int64) uint64 {
		if tl == tr {
			return 1
		}
		m := midpoint(tl, tr)
		return 1 + max(depth(tl, m), depth(m+1, tr))
	}
	for n := int64(1); n <= 130; n++ {
		if got, want := Height(uint64(n)), depth(0, n-1); got != want {
			t.Errorf("Height(%d) = %d, partition depth %d", n, got, want)
		}
	}
}

func TestUpdateNodeBound(t *testing.T) {
	if got := UpdateNodeBound(5); got != 16 {
		t.Errorf("UpdateNodeBound(5) = %v, want 16", got)
	}
}
