// Package errors provides structured, actionable error messages for Verso.
//
// Each error has a unique code (e.g., "E001") that maps to a short message,
// a detailed explanation, and a suggestion. Categories group errors by the
// subsystem that raised them:
//   - routing: page tree and guard resolution errors
//   - protocol: wire protocol errors (invalid frames, connection issues)
//   - config: verso.json errors
//   - cli: command-line usage errors
//
// # Usage
//
//	err := errors.New("E101").
//	    WithDetail("pattern \"users/{id\" has an unclosed brace").
//	    WithSuggestion("Close the brace: users/{id}")
package errors
