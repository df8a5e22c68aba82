package stats

import "math"

// RunningMoments accumulates a streaming mean and standard deviation using
// Welford's recurrence, so posterior summaries stay O(1) in memory no matter
// how many sweeps are recorded. The zero value is ready to use.
type RunningMoments struct {
	n    int64
	mean float64
	m2   float64 // sum of squared deviations from the running mean
}

// Add records one observation.
func (r *RunningMoments) Add(x float64) {
	r.n++
	d := x - r.mean
	r.mean += d / float64(r.n)
	r.m2 += d * (x - r.mean)
}

// Count returns the number of recorded observations.
func (r *RunningMoments) Count() int64 { return r.n }

// Mean returns the running mean, or 0 before any observation.
func (r *RunningMoments) Mean() float64 { return r.mean }

// StdDev returns the unbiased (n-1) sample standard deviation.
// It is 0 until at least two observations are recorded.
func (r *RunningMoments) StdDev() float64 {
	if r.n < 2 {
		return 0
	}
	return math.Sqrt(r.m2 / float64(r.n-1))
}
