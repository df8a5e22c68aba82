package stats

import "math"

// DerSimonianLaird pools independent per-study estimates of one effect into
// a random-effects summary estimate.
//
// Steps:
//  1. Inverse-variance (fixed-effect) weights w_i = 1/SE_i².
//  2. Cochran's Q = Σ w_i (x_i - x̄_FE)² where x̄_FE is the fixed-effect mean.
//  3. Between-study variance τ² = max(0, (Q - (k-1)) / (Σw - Σw²/Σw)).
//  4. Random-effects weights w*_i = 1/(SE_i² + τ²); pooled mean is their
//     weighted average, pooled SE is sqrt(1/Σw*).
//
// A single estimate pools to itself with τ² = 0. Returns ErrNoEstimates for
// an empty input.
func DerSimonianLaird(estimates []Estimate) (Estimate, float64, error) {
	k := len(estimates)
	if k == 0 {
		return Estimate{}, 0, ErrNoEstimates
	}
	if k == 1 {
		return estimates[0], 0, nil
	}

	// 1. Fixed-effect weights and weighted mean.
	var sumW, sumW2, sumWX float64
	for _, e := range estimates {
		w := 1 / (e.SE * e.SE)
		sumW += w
		sumW2 += w * w
		sumWX += w * e.Point
	}
	fixedMean := sumWX / sumW

	// 2. Cochran's Q.
	var q float64
	for _, e := range estimates {
		w := 1 / (e.SE * e.SE)
		d := e.Point - fixedMean
		q += w * d * d
	}

	// 3. DerSimonian-Laird between-study variance.
	tau2 := (q - float64(k-1)) / (sumW - sumW2/sumW)
	if tau2 < 0 {
		tau2 = 0
	}

	// 4. Random-effects pooling.
	var sumWS, sumWSX float64
	for _, e := range estimates {
		w := 1 / (e.SE*e.SE + tau2)
		sumWS += w
		sumWSX += w * e.Point
	}
	return Estimate{Point: sumWSX / sumWS, SE: math.Sqrt(1 / sumWS)}, tau2, nil
}
