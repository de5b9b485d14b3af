// Package simplify holds the selection helpers used to turn a retention
// percentage into a removal threshold.
package simplify

import "github.com/pkg/errors"

// FindValueByRank returns the value that would sit at 1-indexed rank in an
// ascending sort of arr. The elements of arr are reordered.
//
// Uses Wirth's selection, see http://ndevilla.free.fr/median/median/src/wirth.c
func FindValueByRank(arr []float64, rank int) (float64, error) {
	n := len(arr)
	if n == 0 || rank < 1 || rank > n {
		return 0, errors.Errorf("invalid rank %d for %d values", rank, n)
	}

	k := rank - 1
	l, m := 0, n-1
	for l < m {
		val := arr[k]
		i, j := l, m
		for {
			for arr[i] < val {
				i++
			}
			for val < arr[j] {
				j--
			}
			if i <= j {
				arr[i], arr[j] = arr[j], arr[i]
				i++
				j--
			}
			if i > j {
				break
			}
		}
		if j < k {
			l = i
		}
		if k < i {
			m = j
		}
	}
	return arr[k], nil
}

// RankForPct returns the 1-indexed ascending rank of the removal threshold
// that keeps a fraction pct of n removable values.
func RankForPct(pct float64, n int) int {
	k := int((1 - pct) * float64(n))
	if k >= n {
		k = n - 1
	}
	return k + 1
}
