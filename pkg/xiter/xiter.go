// Package xiter provides adapters for Go 1.23+ iter.Seq used by the uniqview harness.
//
// This file contains the basic constructors and transformers: SeqOf, Map, Filter and Concat.
package xiter

import "iter"

// SeqOf returns an iter.Seq[T] that yields all the given values in order.
func SeqOf[T any](vals ...T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range vals {
			if !yield(v) {
				return
			}
		}
	}
}

// Map returns a new iter.Seq[U] that yields f(v) for each v in seq.
func Map[T, U any](seq iter.Seq[T], f func(T) U) iter.Seq[U] {
	return func(yield func(U) bool) {
		for v := range seq {
			if !yield(f(v)) {
				return
			}
		}
	}
}

// Filter returns a new iter.Seq[T] that yields only the elements of seq for which pred returns true.
func Filter[T any](seq iter.Seq[T], pred func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if pred(v) && !yield(v) {
				return
			}
		}
	}
}

// Concat returns an iter.Seq[T] that yields the elements of each seq in turn.
func Concat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for v := range seq {
				if !yield(v) {
					return
				}
			}
		}
	}
}
