// Package match ranks declared names by similarity to a name that was not
// found, for "did you mean" hints in diagnostics.
//
// Key functions:
//   - Normalize: folds an identifier to lowercase words without separators
//   - Levenshtein: computes edit distance between strings
//   - Rank: orders candidate names by similarity
//   - Closest: the best candidates above MinScore
package match
