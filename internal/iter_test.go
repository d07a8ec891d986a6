package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeqConcat(t *testing.T) {
	assert := assert.New(t)

	seq := IterSeqConcat(slices.Values([]int{1, 2}), slices.Values([]int{}), slices.Values([]int{3}))
	assert.Equal([]int{1, 2, 3}, slices.Collect(seq))

	var first []int
	for v := range seq {
		first = append(first, v)
		if v == 2 {
			break
		}
	}
	assert.Equal([]int{1, 2}, first)
}

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	seq := IterSeq2Concat(slices.All([]string{"a"}), slices.All([]string{"b", "c"}))
	got := map[string]int{}
	for n, s := range seq {
		got[s] = n
	}
	assert.Equal(map[string]int{"a": 0, "b": 0, "c": 1}, got)
	assert.Len(slices.Collect(maps.Keys(got)), 3)
}

func TestSortedUnique(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]string{"RX", "RY", "RZ"}, SortedUnique(slices.Values([]string{"RZ", "RX", "RZ", "RY", "RX"})))
	assert.Empty(SortedUnique(slices.Values([]string{})))
}
