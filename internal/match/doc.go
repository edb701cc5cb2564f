// Package match provides name normalization, Levenshtein distance calculation
// and candidate ranking for names used in mapping catalogs and source lookups.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - RankCandidates: ranks known names against an unknown one
//   - Suggest: "did you mean" lists for diagnostics
package match
