package server

import "net/url"

// NewMockSession creates a detached session for tests: no connection, no
// manager, frames dropped on the floor. Panics on an invalid base URL so
// test setup failures are loud.
func NewMockSession(base string) *Session {
	u, err := url.Parse(base)
	if err != nil {
		panic("server: invalid mock session base URL: " + err.Error())
	}
	if !u.IsAbs() {
		panic("server: mock session base URL must be absolute: " + base)
	}
	return newSession(u, nil)
}
