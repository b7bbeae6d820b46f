// Package match ranks known operator names by similarity to a name that could
// not be found, to produce "did you mean" suggestions.
//
// Key functions:
//   - NormalizeOperator: folds an operator name for fuzzy comparison
//   - Levenshtein: computes edit distance between strings
//   - RankCandidates: rank registry names against an unknown one
package match
