// Package xiter provides adapters for Go 1.23+ iter.Seq used by the uniqview harness.
//
// This file contains Compact, which collapses consecutive duplicates of a sequence.
package xiter

import "iter"

// Compact returns a new iter.Seq[T] that yields the first element of every run of equal (==),
// consecutive elements in seq. Equal values that are not adjacent are yielded again.
func Compact[T comparable](seq iter.Seq[T]) iter.Seq[T] {
	return CompactFunc(seq, func(a, b T) bool { return a == b })
}

// CompactFunc is like Compact but uses eq to compare each element with the first element of its run.
func CompactFunc[T any](seq iter.Seq[T], eq func(a, b T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		var first T
		started := false
		for v := range seq {
			if started && eq(first, v) {
				continue
			}
			first, started = v, true
			if !yield(v) {
				return
			}
		}
	}
}
