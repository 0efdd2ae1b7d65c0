// Package uniqview provides a read-only view over a slice that skips consecutive duplicates.
//
// This file contains View, which holds the subranges computed by PartitionFunc.
package uniqview

import (
	"iter"
	"slices"
)

// View yields the elements of a source slice with consecutive duplicates collapsed to their first
// occurrence, without copying or modifying the source.
//
// A View borrows the backing array of the slice it was created from. The caller must not modify
// that array while the View or any of its iterators are in use.
// Only adjacent elements are compared: for unsorted input the same value may appear more than once.
// A View is immutable after construction and may be read from multiple goroutines.
type View[T any] struct {
	data   []T
	slices []Slice
}

// New creates a View over data comparing elements with ==.
func New[T comparable](data []T) *View[T] {
	return &View[T]{data: data, slices: Partition(data)}
}

// NewFunc creates a View over data comparing adjacent elements with eq.
func NewFunc[T any](data []T, eq func(a, b T) bool) *View[T] {
	return &View[T]{data: data, slices: PartitionFunc(data, eq)}
}

// NewOwned is like New but views a private copy of data, so the caller may modify data afterwards.
func NewOwned[T comparable](data []T) *View[T] {
	return New(slices.Clone(data))
}

// Empty reports whether the view yields no elements.
func (v *View[T]) Empty() bool {
	return len(v.slices) == 0
}

// Len returns the number of elements the view yields.
// It runs in time proportional to the number of subranges, not the number of elements.
func (v *View[T]) Len() int {
	n := 0
	for _, s := range v.slices {
		n += s.Len()
	}
	return n
}

// NumSlices returns the number of subranges the view walks.
func (v *View[T]) NumSlices() int {
	return len(v.slices)
}

// Slices returns an iter.Seq over the subranges of the source, in order.
func (v *View[T]) Slices() iter.Seq[Slice] {
	return slices.Values(v.slices)
}

// All returns an iter.Seq that yields the collapsed elements in source order.
func (v *View[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, s := range v.slices {
			for _, e := range v.data[s.Begin:s.End] {
				if !yield(e) {
					return
				}
			}
		}
	}
}

// Indexed returns an iter.Seq2 that yields the source index and the value of each collapsed element.
// The index of a collapsed run is the index of its first element.
func (v *View[T]) Indexed() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for _, s := range v.slices {
			for i := s.Begin; i < s.End; i++ {
				if !yield(i, v.data[i]) {
					return
				}
			}
		}
	}
}

// AppendTo appends the collapsed elements to dst and returns the extended slice.
func (v *View[T]) AppendTo(dst []T) []T {
	dst = slices.Grow(dst, v.Len())
	for _, s := range v.slices {
		dst = append(dst, v.data[s.Begin:s.End]...)
	}
	return dst
}
