// Package model assembles the hierarchical Bayesian meta-analysis model
// over a parameterized evidence network and samples it with an adaptive
// random-walk Metropolis scheme.
//
// Model structure
//
// Each study s has a baseline effect mu[s]; each of its non-baseline
// treatments contributes one random effect delta[j] for the baseline→
// treatment comparison. Observed data bind to mu + delta: dichotomous
// responders follow Binomial(sampleSize, logistic(mu+delta)), continuous
// means follow Normal(mu+delta, reported SE). Each delta follows
// Normal(d, sigma) where d is the integer linear combination of basic and
// (in the inconsistency variant) inconsistency parameters given by the
// study comparison's decomposition. Vague Normal(0, √1000) priors cover mu
// and the basic parameters; sigma and the inconsistency deviation sigmaw
// take Uniform priors on [ε, bound] with bound twice the interquartile
// range of the transformed outcome values. Under the consistency variant
// the inconsistency vector and sigmaw are pinned at exactly zero and never
// updated.
//
// Life cycle
//
//	NotStarted → Constructing → BurnIn → Simulating → Ready
//
// Run performs all phases in one blocking call on the calling goroutine and
// reports start/progress/finish events through an optional callback. During
// burn-in every proposal scale is tuned in fixed batches of 100 sweeps
// toward a 0.44 acceptance rate with an exponentially decaying step;
// adaptation freezes when burn-in ends. During simulation every sweep
// records all reported scalars — basic parameters, inconsistency factors,
// sigma, sigmaw and every derived treatment-pair effect — into streaming
// Welford accumulators. Iteration counts must be strictly positive
// multiples of the batch size and may only be changed before Run.
//
// One Model owns its state exclusively; nothing is shared, so independent
// chains are simply independent Model values with distinct seeds.
package model
