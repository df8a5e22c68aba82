package stats

import (
	"errors"
	"math"
)

// Sentinel errors for descriptive computations.
var (
	// ErrBadCounts indicates a log-odds computation with a non-positive
	// sample size or responders outside [0, sampleSize].
	ErrBadCounts = errors.New("stats: responders must lie in [0, sampleSize], sampleSize > 0")

	// ErrNoEstimates indicates pooling was requested over an empty list.
	ErrNoEstimates = errors.New("stats: no estimates to pool")
)

// Estimate is a point estimate with its standard error.
type Estimate struct {
	Point float64 // point estimate
	SE    float64 // standard error of the point estimate
}

// LogOdds returns ln(r / (n - r)) for r responders out of n.
// With corrected, the 0.5 continuity correction is applied to both the
// numerator and the denominator, keeping the estimate finite at r = 0 and
// r = n.
func LogOdds(responders, sampleSize int, corrected bool) (float64, error) {
	if sampleSize <= 0 || responders < 0 || responders > sampleSize {
		return 0, ErrBadCounts
	}
	c := 0.0
	if corrected {
		c = 0.5
	}
	r := float64(responders)
	n := float64(sampleSize)
	return math.Log((r + c) / (n - r + c)), nil
}

// LogOddsSE returns the large-sample standard error of the log-odds,
// sqrt(1/(r+c) + 1/(n-r+c)) with c the continuity correction.
func LogOddsSE(responders, sampleSize int, corrected bool) (float64, error) {
	if sampleSize <= 0 || responders < 0 || responders > sampleSize {
		return 0, ErrBadCounts
	}
	c := 0.0
	if corrected {
		c = 0.5
	}
	r := float64(responders)
	n := float64(sampleSize)
	return math.Sqrt(1/(r+c) + 1/(n-r+c)), nil
}

// LogOddsRatio returns the log odds ratio of arm 1 relative to arm 0, with
// the four-term standard error sqrt(Σ 1/(count+c)). Orientation matches the
// toolkit's baseline→subject convention: arm 0 is the baseline.
func LogOddsRatio(r0, n0, r1, n1 int, corrected bool) (Estimate, error) {
	l0, err := LogOdds(r0, n0, corrected)
	if err != nil {
		return Estimate{}, err
	}
	l1, err := LogOdds(r1, n1, corrected)
	if err != nil {
		return Estimate{}, err
	}
	c := 0.0
	if corrected {
		c = 0.5
	}
	se := math.Sqrt(1/(float64(r0)+c) + 1/(float64(n0-r0)+c) +
		1/(float64(r1)+c) + 1/(float64(n1-r1)+c))
	return Estimate{Point: l1 - l0, SE: se}, nil
}

// MeanDifference returns the difference of two independent means
// (subject minus baseline) with SE = sqrt(se0² + se1²).
func MeanDifference(mean0, se0, mean1, se1 float64) Estimate {
	return Estimate{
		Point: mean1 - mean0,
		SE:    math.Sqrt(se0*se0 + se1*se1),
	}
}
