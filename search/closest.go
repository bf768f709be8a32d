// Package search implements nearest-neighbor lookups over sorted arrays,
// used by the dynamic weighted graph's edge-weight functions to pick the
// sample closest to a requested time.
package search

import (
	"github.com/dabke-research/sumgraph/pkg/apperror"
)

// ClosestIndexValue finds the array element nearest to target via divide
// and conquer over the sorted input: split on the midpoint, recurse into
// whichever half target falls in, and compare neighbors at the boundary.
// Returns CodeEmptyArray for an empty array.
func ClosestIndexValue(array []float64, target float64) (int, float64, error) {
	if len(array) == 0 {
		return 0, 0, apperror.New(apperror.CodeEmptyArray, "cannot search an empty array")
	}
	idx := closest(array, 0, len(array)-1, target)
	return idx, array[idx], nil
}

func closest(array []float64, lo, hi int, target float64) int {
	if lo == hi {
		return lo
	}
	mid := (lo + hi) / 2
	if array[mid] == target {
		return mid
	}
	if target < array[mid] {
		if mid == lo {
			return mid
		}
		left := closest(array, lo, mid-1, target)
		return nearerIndex(array, left, mid, target)
	}
	right := closest(array, mid+1, hi, target)
	return nearerIndex(array, mid, right, target)
}

func nearerIndex(array []float64, a, b int, target float64) int {
	da := absFloat(array[a] - target)
	db := absFloat(array[b] - target)
	if da <= db {
		return a
	}
	return b
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
