package internal

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// IterSeqConcat concatenates multiple iterators into a single iterator sequence.
func IterSeqConcat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for val := range seq {
				if !yield(val) {
					return
				}
			}
		}
	}
}

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, val := range seq {
				if !yield(key, val) {
					return
				}
			}
		}
	}
}

// SortedUnique collects the distinct values of a sequence in ascending order.
func SortedUnique[T cmp.Ordered](seq iter.Seq[T]) []T {
	seen := map[T]struct{}{}
	for val := range seq {
		seen[val] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}
