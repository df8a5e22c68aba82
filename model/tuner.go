package model

import "math"

// tuner tracks per-element acceptance counts for one latent vector and
// nudges its proposal scales between batches during burn-in.
type tuner struct {
	vec      *latentVector
	accepted []int
	proposed []int
}

func newTuner(vec *latentVector) *tuner {
	return &tuner{
		vec:      vec,
		accepted: make([]int, len(vec.vals)),
		proposed: make([]int, len(vec.vals)),
	}
}

// observe records the outcome of one proposal on element i.
func (t *tuner) observe(i int, accepted bool) {
	t.proposed[i]++
	if accepted {
		t.accepted[i]++
	}
}

// adjust ends one adaptation batch: every element's log-scale moves by
// ±step toward the target acceptance rate, with step = tuneStep0·tuneDecay^batch
// shrinking exponentially across batches, then the counters reset.
// Scales of a fixed vector are never touched.
func (t *tuner) adjust(batch int) {
	if t.vec.fixed {
		return
	}
	step := tuneStep0 * math.Pow(tuneDecay, float64(batch))
	up := math.Exp(step)
	down := math.Exp(-step)
	for i := range t.vec.scales {
		if t.proposed[i] == 0 {
			continue
		}
		rate := float64(t.accepted[i]) / float64(t.proposed[i])
		if rate > targetAcceptance {
			t.vec.scales[i] *= up
		} else {
			t.vec.scales[i] *= down
		}
		t.accepted[i] = 0
		t.proposed[i] = 0
	}
}
