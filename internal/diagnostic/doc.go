// Package diagnostic provides structured errors and warnings collected while
// loading and resolving backend declarations.
//
// Key capabilities:
//   - Unknown operator reports with ranked "did you mean" suggestions
//   - Source locations (file:line) for declaration entries
//   - Combining every error into one error value so a run reports all problems at once
package diagnostic
