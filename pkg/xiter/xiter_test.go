package xiter

import (
	"slices"
	"testing"

	"gotest.tools/v3/assert"
)

func TestSeqOf(t *testing.T) {
	assert.DeepEqual(t, slices.Collect(SeqOf(1, 2, 3, 4)), []int{1, 2, 3, 4})
	assert.DeepEqual(t, slices.Collect(SeqOf("a", "b", "c")), []string{"a", "b", "c"})
	assert.Equal(t, len(slices.Collect(SeqOf[int]())), 0)
}

func TestMap_IntToString(t *testing.T) {
	mapped := Map(SeqOf(1, 2, 3), func(n int) string { return string(rune('A' + n - 1)) })
	assert.DeepEqual(t, slices.Collect(mapped), []string{"A", "B", "C"})
}

func TestMap_Empty(t *testing.T) {
	got := slices.Collect(Map(SeqOf[int](), func(_ int) string { return "x" }))
	assert.Equal(t, len(got), 0)
}

func TestFilter(t *testing.T) {
	isEven := func(n int) bool { return n%2 == 0 }
	assert.DeepEqual(t, slices.Collect(Filter(SeqOf(1, 2, 3, 4, 5, 6), isEven)), []int{2, 4, 6})
	assert.Equal(t, len(slices.Collect(Filter(SeqOf(1, 3, 5), isEven))), 0)
	assert.Equal(t, len(slices.Collect(Filter(SeqOf[int](), isEven))), 0)
}

func TestFilter_StopsEarly(t *testing.T) {
	var got []int
	for v := range Filter(SeqOf(1, 2, 3, 4), func(int) bool { return true }) {
		got = append(got, v)
		if v == 2 {
			break
		}
	}
	assert.DeepEqual(t, got, []int{1, 2})
}

func TestConcat(t *testing.T) {
	seq := Concat(SeqOf(1, 2), SeqOf[int](), SeqOf(3))
	assert.DeepEqual(t, slices.Collect(seq), []int{1, 2, 3})
	assert.Equal(t, len(slices.Collect(Concat[int]())), 0)
}

func TestConcat_StopsEarly(t *testing.T) {
	var got []int
	for v := range Concat(SeqOf(1), SeqOf(2, 3), SeqOf(4)) {
		got = append(got, v)
		if v == 3 {
			break
		}
	}
	assert.DeepEqual(t, got, []int{1, 2, 3})
}
