// Package diagnostic provides structured errors and warnings for jsderive.
//
// Key capabilities:
//   - Coded classifier failures (enum-like, union-like, unsupported fields)
//   - Source positions for every diagnostic
//   - Colourised terminal output
package diagnostic
