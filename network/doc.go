// Package network defines the evidence data model for network meta-analysis:
// treatments, studies, measurements, and the immutable Network that the rest
// of the toolkit consumes.
//
// Model:
//
//   - Treatment — an opaque identifier with a total (lexicographic) order,
//     used everywhere for deterministic iteration and tie-breaking.
//   - Measurement — a tagged variant: dichotomous (responder count out of a
//     sample size) or continuous (mean with a known standard error). All
//     measurements in one Network share the same variant (DataType).
//   - Study — an identifier plus one Measurement per included Treatment;
//     every study compares at least two treatments.
//   - Network — a validated, immutable set of studies together with the
//     derived sorted set of all treatments appearing in them.
//
// Construction goes through Builder, which accumulates studies and performs
// all validation in one explicit Build step; no partially-constructed
// Network is ever observable. ParseYAML/EncodeYAML round-trip the study
// data through the YAML format consumed by cmd/netmeta.
//
// Errors:
//
//	ErrEmptyStudyID   — a study was added with an empty identifier.
//	ErrDuplicateStudy — two studies share one identifier.
//	ErrTooFewArms     — a study includes fewer than two treatments.
//	ErrEmptyTreatment — a measurement was keyed by the empty treatment.
//	ErrWrongDataType  — a measurement's variant differs from the network's.
//	ErrNoStudies      — Build was called with no studies added.
//	ErrNoMeasurement  — a study has no measurement for a requested treatment.
package network
