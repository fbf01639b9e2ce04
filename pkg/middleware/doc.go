// Package middleware provides navigation middleware for Verso apps:
// Prometheus metrics and OpenTelemetry tracing around every navigation
// resolution.
//
//	app, err := verso.New(verso.Config{
//	    Pages: pages,
//	    Middleware: []server.Middleware{
//	        middleware.Prometheus(middleware.WithNamespace("myapp")),
//	        middleware.OpenTelemetry(),
//	    },
//	})
package middleware
