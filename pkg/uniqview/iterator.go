// Package uniqview provides a read-only view over a slice that skips consecutive duplicates.
//
// This file contains Iterator, a cursor that walks the subranges of a View as one sequence.
package uniqview

// Iterator is a cursor over the elements of a View.
// The zero Iterator is done. Iterators are values: copying one yields an independent cursor.
type Iterator[T any] struct {
	view  *View[T]
	slice int // index into view.slices
	pos   int // index into view.data
}

// Begin returns an Iterator positioned at the first element of the view, or End() if the view is empty.
func (v *View[T]) Begin() Iterator[T] {
	if len(v.slices) == 0 {
		return v.End()
	}
	return Iterator[T]{view: v, slice: 0, pos: v.slices[0].Begin}
}

// End returns the terminal Iterator of the view.
func (v *View[T]) End() Iterator[T] {
	if len(v.slices) == 0 {
		return Iterator[T]{view: v}
	}
	return Iterator[T]{view: v, slice: len(v.slices), pos: v.slices[len(v.slices)-1].End}
}

// Done reports whether it is past the last element.
func (it Iterator[T]) Done() bool {
	return it.view == nil || it.slice >= len(it.view.slices)
}

// Next advances it to the next element. Past the end of a subrange it moves to the start of the
// next one, or to End() after the last one. Next on a done Iterator does nothing.
func (it *Iterator[T]) Next() {
	if it.Done() {
		return
	}
	it.pos++
	if it.pos < it.view.slices[it.slice].End {
		return
	}
	it.slice++
	if it.slice < len(it.view.slices) {
		it.pos = it.view.slices[it.slice].Begin
	}
}

// Value returns the element at the current position. it must not be done.
func (it Iterator[T]) Value() T {
	return it.view.data[it.pos]
}

// Ptr returns a pointer into the source slice at the current position. it must not be done.
// The element must not be modified through the pointer.
func (it Iterator[T]) Ptr() *T {
	return &it.view.data[it.pos]
}

// Index returns the source index of the current position.
func (it Iterator[T]) Index() int {
	return it.pos
}

// Equal reports whether it and other belong to the same View and point at the same position.
func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it == other
}
