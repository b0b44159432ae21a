// Package sortedints provides operations on ascending sequences of ints:
// sorting, searching and ordered merging.
package sortedints

import (
	"slices"
)

// MergeSort sorts xs in ascending order. The sort is stable
// and allocates a single scratch buffer of len(xs)/2 values.
// The complexity is O(n log n) where n = len(xs).
func MergeSort(xs []int) {
	if len(xs) < 2 {
		return
	}
	mergeSort(xs, make([]int, len(xs)/2))
}

func mergeSort(xs, buf []int) {
	if len(xs) < 2 {
		return
	}
	mid := len(xs) / 2
	mergeSort(xs[:mid], buf)
	mergeSort(xs[mid:], buf)
	if xs[mid-1] <= xs[mid] {
		return
	}
	// Move the left half out of the way and merge
	// back into xs; the right half never overtakes k.
	left := buf[:mid]
	copy(left, xs[:mid])
	i, j, k := 0, mid, 0
	for i < len(left) && j < len(xs) {
		if xs[j] < left[i] {
			xs[k] = xs[j]
			j++
		} else {
			xs[k] = left[i]
			i++
		}
		k++
	}
	copy(xs[k:], left[i:])
}

// Contains reports whether x is present in sorted,
// which must be in ascending order.
// The complexity is O(log n) where n = len(sorted).
func Contains(sorted []int, x int) bool {
	_, found := slices.BinarySearch(sorted, x)
	return found
}

// IsSorted reports whether xs is strictly increasing.
func IsSorted(xs []int) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i-1] >= xs[i] {
			return false
		}
	}
	return true
}
