// Package aggregate provides ready made segtree policies over numbers.
//
// Each policy has a Fill, the value of every position that has never been
// updated.
package aggregate

import (
	"github.com/forestrie/go-segtree/segtree"
	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

var (
	_ segtree.LazyPolicy[int64, int64]         = SumAdd[int64]{}
	_ segtree.LazyPolicy[int64, Assign[int64]] = SumAssign[int64]{}
	_ segtree.LazyPolicy[int64, int64]         = MinAdd[int64]{}
	_ segtree.LazyPolicy[int64, int64]         = MaxAdd[int64]{}
	_ segtree.Policy[int64, int64]             = SumSet[int64]{}
)

// SumAdd adds to ranges and sums ranges.
type SumAdd[T Number] struct {
	Fill T
}

func (p SumAdd[T]) QueryDefault() T                { return 0 }
func (p SumAdd[T]) SegmentDefault(length uint64) T { return p.Fill * T(length) }
func (p SumAdd[T]) Combine(left, right T) T        { return left + right }
func (p SumAdd[T]) Apply(value, delta T, length uint64) T {
	return value + delta*T(length)
}
func (p SumAdd[T]) LazyDefault() T             { return 0 }
func (p SumAdd[T]) MergeLazy(older, newer T) T { return older + newer }

// Assign is an overwrite update. The zero Assign assigns nothing.
type Assign[T Number] struct {
	Set   bool `cbor:"1,keyasint"`
	Value T    `cbor:"2,keyasint"`
}

func To[T Number](value T) Assign[T] {
	return Assign[T]{Set: true, Value: value}
}

// SumAssign assigns ranges and sums ranges.
type SumAssign[T Number] struct {
	Fill T
}

func (p SumAssign[T]) QueryDefault() T                { return 0 }
func (p SumAssign[T]) SegmentDefault(length uint64) T { return p.Fill * T(length) }
func (p SumAssign[T]) Combine(left, right T) T        { return left + right }
func (p SumAssign[T]) Apply(value T, a Assign[T], length uint64) T {
	if !a.Set {
		return value
	}
	return a.Value * T(length)
}
func (p SumAssign[T]) LazyDefault() Assign[T] { return Assign[T]{} }

// MergeLazy lets the newer assignment win.
func (p SumAssign[T]) MergeLazy(older, newer Assign[T]) Assign[T] {
	if newer.Set {
		return newer
	}
	return older
}

// MinAdd adds to ranges and takes the minimum of ranges. Inf must compare
// greater than or equal to every value the tree will hold.
type MinAdd[T Number] struct {
	Fill T
	Inf  T
}

func (p MinAdd[T]) QueryDefault() T                  { return p.Inf }
func (p MinAdd[T]) SegmentDefault(uint64) T          { return p.Fill }
func (p MinAdd[T]) Combine(left, right T) T          { return min(left, right) }
func (p MinAdd[T]) Apply(value, delta T, _ uint64) T { return value + delta }
func (p MinAdd[T]) LazyDefault() T                   { return 0 }
func (p MinAdd[T]) MergeLazy(older, newer T) T       { return older + newer }

// MaxAdd adds to ranges and takes the maximum of ranges. NegInf must compare
// less than or equal to every value the tree will hold.
type MaxAdd[T Number] struct {
	Fill   T
	NegInf T
}

func (p MaxAdd[T]) QueryDefault() T                  { return p.NegInf }
func (p MaxAdd[T]) SegmentDefault(uint64) T          { return p.Fill }
func (p MaxAdd[T]) Combine(left, right T) T          { return max(left, right) }
func (p MaxAdd[T]) Apply(value, delta T, _ uint64) T { return value + delta }
func (p MaxAdd[T]) LazyDefault() T                   { return 0 }
func (p MaxAdd[T]) MergeLazy(older, newer T) T       { return older + newer }

// SumSet assigns single positions and sums ranges. It has no lazy form, so it
// only serves trees without range updates.
type SumSet[T Number] struct {
	Fill T
}

func (p SumSet[T]) QueryDefault() T                { return 0 }
func (p SumSet[T]) SegmentDefault(length uint64) T { return p.Fill * T(length) }
func (p SumSet[T]) Combine(left, right T) T        { return left + right }
func (p SumSet[T]) Apply(_ T, value T, _ uint64) T { return value }
