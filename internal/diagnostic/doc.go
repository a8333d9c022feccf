// Package diagnostic provides structured, positioned errors and warnings
// for the shallow-debug CLI.
//
// Key capabilities:
//   - Malformed declaration reports with file:line:col
//   - Per-file summaries of the types an implementation was generated for
//   - A combined error for non-zero exit codes
package diagnostic
