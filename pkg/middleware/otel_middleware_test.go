package middleware

import (
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"

	"github.com/verso-ui/verso/pkg/server"
)

func TestOpenTelemetryMiddleware_RunsAndPropagatesResult(t *testing.T) {
	ctx := navContextForTest("/projects/3")

	var extracted bool
	mw := OpenTelemetry(
		WithTracerName("verso-test"),
		WithAttributeExtractor(func(*server.NavContext) []attribute.KeyValue {
			extracted = true
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	)

	called := false
	err := mw.Handle(ctx, func() error {
		called = true
		ctx.Result = &server.NavigateResult{
			URL:     ctx.URL,
			Outcome: server.NavMatched,
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("expected middleware to call next")
	}
	if !extracted {
		t.Fatal("expected attribute extractor to run")
	}
	if ctx.Result == nil || ctx.Result.Outcome != server.NavMatched {
		t.Fatal("expected result set by next to survive the middleware")
	}
}

func TestOpenTelemetryMiddleware_ErrorPropagates(t *testing.T) {
	ctx := navContextForTest("/members")

	mw := OpenTelemetry()
	wantErr := errors.New("guard failure")
	err := mw.Handle(ctx, func() error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected error to propagate, got %v", err)
	}
}

func TestOpenTelemetryMiddleware_FilterSkipsTracing(t *testing.T) {
	ctx := navContextForTest("/health")

	mw := OpenTelemetry(
		WithNavigationFilter(func(c *server.NavContext) bool {
			return c.Target != "/health"
		}),
	)

	called := false
	err := mw.Handle(ctx, func() error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("expected filtered navigation to still run next")
	}
}
