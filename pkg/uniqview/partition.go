// Package uniqview provides a read-only view over a slice that skips consecutive duplicates.
//
// This file contains the partitioner, which splits the source into the subranges the view walks.
package uniqview

// Slice is a half-open range [Begin, End) of indices into the source slice. Begin < End always holds.
type Slice struct {
	Begin int
	End   int
}

// Len returns the number of source elements covered by s.
func (s Slice) Len() int {
	return s.End - s.Begin
}

// Partition returns the subranges of data whose concatenation equals data with runs of equal,
// adjacent elements collapsed to their first element.
// Adjacent elements that differ from their neighbors share one wide Slice; every run of equal
// elements ends the current Slice right after its first element.
func Partition[T comparable](data []T) []Slice {
	return PartitionFunc(data, func(a, b T) bool { return a == b })
}

// PartitionFunc is like Partition but uses eq to compare adjacent elements.
// eq is called as eq(anchor, next) where anchor is the first element of the current run.
func PartitionFunc[T any](data []T, eq func(a, b T) bool) []Slice {
	if len(data) == 0 {
		return nil
	}

	var out []Slice
	slice := Slice{Begin: 0, End: 1}
	inUniqueRange := true
	first := 0
	for i := 1; i < len(data); i++ {
		if !eq(data[first], data[i]) {
			first = i
			if !inUniqueRange {
				slice.Begin = i
				inUniqueRange = true
			}
			slice.End = i + 1
			continue
		}
		if inUniqueRange {
			// slice already ends right after the first element of this run.
			out = append(out, slice)
			inUniqueRange = false
		}
	}

	if inUniqueRange {
		slice.End = len(data)
		out = append(out, slice)
	}
	return out
}
