package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/verso-ui/verso/pkg/server"
)

// Default tracer name for Verso applications.
const defaultTracerName = "verso"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "verso").
	TracerName string

	// IncludeSessionID includes the session ID in spans.
	// Enabled by default.
	IncludeSessionID bool

	// Filter determines which navigations to trace.
	// Return true to trace, false to skip. If nil, everything is traced.
	Filter func(ctx *server.NavContext) bool

	// AttributeExtractor extracts custom attributes from the navigation
	// context. Called after resolution, so ctx.Result is populated.
	AttributeExtractor func(ctx *server.NavContext) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeSessionID enables/disables including the session ID in spans.
func WithIncludeSessionID(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeSessionID = include
	}
}

// WithNavigationFilter sets a filter function for navigations.
func WithNavigationFilter(filter func(ctx *server.NavContext) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ctx *server.NavContext) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// defaultOTelConfig returns the default OpenTelemetry configuration.
func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:       defaultTracerName,
		IncludeSessionID: true,
	}
}

// OpenTelemetry creates middleware that traces every navigation.
//
// The middleware:
//   - Creates a span per navigation named "verso.navigate"
//   - Records the raw target, resolved URL, and terminal outcome
//   - Records guard errors and redirect loops as span errors
//
// The tracer uses the global OpenTelemetry tracer provider. Configure it
// in your main() before starting the server:
//
//	tp := sdktrace.NewTracerProvider(
//	    sdktrace.WithBatcher(exporter),
//	)
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) server.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	config.tracer = otel.Tracer(config.TracerName)

	return server.MiddlewareFunc(func(ctx *server.NavContext, next func() error) error {
		if config.Filter != nil && !config.Filter(ctx) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("verso.target", ctx.Target),
			attribute.String("verso.url", ctx.URL.String()),
		}
		if config.IncludeSessionID && ctx.Session != nil {
			attrs = append(attrs, attribute.String("verso.session_id", ctx.Session.ID))
		}

		parent := context.Background()
		if ctx.Session != nil {
			parent = ctx.Session.Context()
		}
		_, span := config.tracer.Start(
			parent,
			"verso.navigate",
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		err := next()

		if ctx.Result != nil {
			span.SetAttributes(
				attribute.String("verso.outcome", ctx.Result.Outcome.String()),
				attribute.String("verso.final_url", ctx.Result.URL.String()),
			)
		}
		if config.AttributeExtractor != nil {
			span.SetAttributes(config.AttributeExtractor(ctx)...)
		}

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return err
	})
}
