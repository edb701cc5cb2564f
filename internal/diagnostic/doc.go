// Package diagnostic provides structured errors, warnings and notes produced
// while validating a mapping catalog.
//
// Key capabilities:
//   - Per-mapper and per-field locations
//   - "did you mean" suggestions for unknown names
//   - Aggregation of several validation passes via Merge
package diagnostic
