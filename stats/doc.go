// Package stats provides the descriptive-statistics primitives used across
// the meta-analysis toolkit:
//
//   - log-odds and log-odds-ratio point estimates with optional 0.5
//     continuity correction and their standard errors
//   - mean differences for continuous outcomes
//   - DerSimonian–Laird random-effects pooling of per-study estimates
//   - RunningMoments, a streaming (Welford) mean/standard-deviation
//     accumulator with O(1) memory per tracked scalar
//   - Quantile/IQR using the fixed rank = p·(n+1)/100 linear-interpolation
//     rule; the variance-prior bound depends on this exact definition, so no
//     alternative quantile convention may be substituted
//
// All functions are pure and deterministic; nothing in this package holds
// hidden state beyond the explicit RunningMoments accumulator.
package stats
