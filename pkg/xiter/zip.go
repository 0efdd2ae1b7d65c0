// Package xiter provides adapters for Go 1.23+ iter.Seq used by the uniqview harness.
//
// This file contains Zip-related adapters and Equal.
package xiter

import (
	"iter"
)

// Zipped holds a pair of values and their presence flags.
type Zipped[T, U any] struct {
	V1  T
	OK1 bool
	V2  U
	OK2 bool
}

// Zip yields pairs of elements from seqT and seqU until either sequence is exhausted.
func Zip[T, U any](seqT iter.Seq[T], seqU iter.Seq[U]) iter.Seq[Zipped[T, U]] {
	return func(yield func(Zipped[T, U]) bool) {
		for z := range ZipLongest(seqT, seqU) {
			if !z.OK1 || !z.OK2 || !yield(z) {
				return
			}
		}
	}
}

// ZipLongest yields pairs of elements from seqT and seqU until both sequences are exhausted.
// Values missing from the shorter sequence are zero and their OK flag is false.
func ZipLongest[T, U any](seqT iter.Seq[T], seqU iter.Seq[U]) iter.Seq[Zipped[T, U]] {
	return func(yield func(Zipped[T, U]) bool) {
		tNext, tStop := iter.Pull(seqT)
		defer tStop()
		uNext, uStop := iter.Pull(seqU)
		defer uStop()
		for {
			t, okT := tNext()
			u, okU := uNext()
			if !okT && !okU {
				return
			}
			if !yield(Zipped[T, U]{V1: t, OK1: okT, V2: u, OK2: okU}) {
				return
			}
		}
	}
}

// Equal reports whether seqA and seqB yield the same elements in the same order.
// pos is the position of the first difference, or the common length if they are equal.
func Equal[T comparable](seqA, seqB iter.Seq[T]) (equal bool, pos int) {
	for z := range ZipLongest(seqA, seqB) {
		if z.OK1 != z.OK2 || z.V1 != z.V2 {
			return false, pos
		}
		pos++
	}
	return true, pos
}
