package stats

import (
	"errors"
	"sort"
)

// ErrNoValues indicates a quantile was requested over an empty list.
var ErrNoValues = errors.New("stats: no values")

// Quantile returns the p-th percentile (p in percent, e.g. 25 or 75) of
// values under the fixed rank = p·(n+1)/100 linear-interpolation rule:
//
//  1. Sort a copy of the values ascending.
//  2. rank = p·(n+1)/100, 1-based; clamp to [1, n].
//  3. With k = ⌊rank⌋ and f = rank-k, interpolate x[k] + f·(x[k+1]-x[k]).
//
// The variance-prior bound is defined in terms of this exact rule; do not
// substitute another quantile convention.
func Quantile(values []float64, p float64) (float64, error) {
	n := len(values)
	if n == 0 {
		return 0, ErrNoValues
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := p * float64(n+1) / 100
	if rank <= 1 {
		return sorted[0], nil
	}
	if rank >= float64(n) {
		return sorted[n-1], nil
	}
	k := int(rank) // 1-based lower index
	f := rank - float64(k)
	return sorted[k-1] + f*(sorted[k]-sorted[k-1]), nil
}

// IQR returns the interquartile range Quantile(75) - Quantile(25).
func IQR(values []float64) (float64, error) {
	q1, err := Quantile(values, 25)
	if err != nil {
		return 0, err
	}
	q3, err := Quantile(values, 75)
	if err != nil {
		return 0, err
	}
	return q3 - q1, nil
}
