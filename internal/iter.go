package internal

import (
	"iter"
)

// Concat2 concatenates multiple dual-value iterators into a single sequence.
func Concat2[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
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

// Prefix renames every key of seq to prefix + sep + key.
func Prefix[V any](prefix string, sep string, seq iter.Seq2[string, V]) iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for key, val := range seq {
			if !yield(prefix+sep+key, val) {
				return
			}
		}
	}
}
