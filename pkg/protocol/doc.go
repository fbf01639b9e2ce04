// Package protocol defines the wire frames exchanged between the Verso
// server and the thin client over WebSocket.
//
// The navigation protocol is deliberately small. The client sends a
// navigate frame; the server answers with exactly one of nav_push,
// nav_replace, nav_external, or error:
//
//	client → {"type":"navigate","url":"/projects/3","replace":false}
//	server → {"type":"nav_push","url":"http://app.test/projects/3"}
//
// Frames are JSON. A binary patch protocol for component updates is out of
// scope for this excerpt of the framework.
package protocol
