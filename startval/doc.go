// Package startval generates starting values for the sampler directly from
// the observed data, so chains begin near the region the posterior actually
// occupies instead of at arbitrary constants.
//
// A Generator answers four questions:
//
//   - TreatmentEffect — the absolute effect of one arm of one study
//     (corrected log-odds for rate data, the reported mean for continuous);
//   - RelativeEffect — the within-study effect of subject versus base;
//   - PooledEffect — the DerSimonian–Laird pooling of that relative effect
//     over every study reporting both treatments;
//   - StandardDeviation — a heterogeneity starting value derived from the
//     pooled standard errors across all directly-compared pairs.
//
// Deterministic generators return point estimates; generators constructed
// with WithRand perturb each value by scale·SE gaussian noise, which is how
// multiple over-dispersed chains obtain distinct starting points.
//
// New dispatches on the network's data type once; the variant-specific
// constructors NewDichotomous and NewContinuous reject a network of the
// wrong type with network.ErrWrongDataType.
package startval
