// Package server provides the server-side runtime for Verso's
// server-driven navigation: per-connection sessions, the navigator that
// bridges sessions to the routing engine, a session manager, and the
// WebSocket endpoint the thin client talks to.
//
// # Sessions
//
// A Session is the per-connection state container. For this excerpt of the
// framework it holds the two URLs the routing engine reads (the app's base
// URL and the active page URL), a general-purpose data store that guards
// can consult, and the WebSocket connection frames are written to.
//
// The routing engine never mutates a session. Committing a navigation
// (moving the active page URL) is the Navigator's job, and happens only
// after resolution succeeds.
//
// # Navigation flow
//
//	client frame → Endpoint → Navigator.Navigate
//	  → routing.MakeAbsolute
//	  → middleware chain
//	  → routing.CheckPageGuards
//	  → commit active URL, emit nav_push/nav_replace/nav_external
//
// Each navigation resolves independently; the page tree is immutable and
// shared, so concurrent navigations from different sessions are safe.
package server
