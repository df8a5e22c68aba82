// Package netmeta is a Bayesian network meta-analysis (NMA) toolkit:
// it synthesizes clinical studies, each comparing a subset of treatments,
// into joint posterior estimates of relative treatment effects across the
// whole evidence network.
//
// What netmeta provides:
//
//   - network/  — the evidence data model: treatments, studies, dichotomous
//     and continuous measurements, an immutable Network and its builder,
//     plus a YAML codec for study data
//   - stats/    — descriptive primitives: log-odds (ratios) with continuity
//     correction, DerSimonian–Laird pooling, streaming moments, quantiles
//   - basis/    — the comparison graph over treatments, deterministic
//     spanning-tree selection and fundamental-cycle extraction
//   - param/    — the parameterization engine: basic (tree-edge) and
//     inconsistency (cycle) parameters, integer linear decompositions of
//     relative effects, and the study-baseline assignment search
//   - model/    — model assembly and the adaptive Metropolis sampler:
//     burn-in with proposal tuning, a fixed simulation phase, and posterior
//     mean/standard-deviation estimates with effect queries
//   - startval/ — data-driven starting values for the sampler
//
// Why netmeta?
//
//   - Deterministic – identical input networks yield identical bases,
//     decompositions and (seeded) chains on every run
//   - Explicit – sentinel errors, no hidden global state, immutable inputs
//   - Complete – consistency and inconsistency model variants, both
//     dichotomous (event count) and continuous (mean ± SE) outcomes
//
// A minimal session:
//
//	net, _ := network.ParseYAML(data)
//	m, _ := model.New(net, model.WithSeed(42))
//	_ = m.Run(nil)
//	est, _ := m.RelativeEffect("A", "B")
//
// The cmd/netmeta command wraps the same flow behind a CLI.
package netmeta
