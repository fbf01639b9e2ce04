package integration_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/verso-ui/verso"
)

func buildNothing(verso.Params) any { return nil }

func testApp(t *testing.T) *verso.App {
	t.Helper()
	app, err := verso.New(verso.Config{
		BaseURL: "http://app.test",
		Pages: []verso.Node{
			&verso.Page{Name: "Home", Segment: "", Build: buildNothing},
			&verso.Page{Name: "Dashboard", Segment: "dashboard", Build: buildNothing},
			&verso.Page{
				Name:    "Admin",
				Segment: "admin",
				Build:   buildNothing,
				Guard: func(verso.GuardContext) verso.GuardResult {
					return verso.RedirectTo("/")
				},
			},
			&verso.Redirect{Segment: "old-dashboard", Target: "/dashboard"},
		},
	})
	if err != nil {
		t.Fatalf("verso.New() error: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

// TestChiRouterIntegration mounts the app behind a chi router next to
// plain API routes, the way a host application would.
func TestChiRouterIntegration(t *testing.T) {
	app := testApp(t)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Mount("/", app)

	t.Run("API health endpoint", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/health", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
		if rec.Body.String() != "OK" {
			t.Errorf("expected OK, got %s", rec.Body.String())
		}
	})

	t.Run("page route resolves through the app", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/dashboard", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `data-url="http://app.test/dashboard"`) {
			t.Errorf("shell missing resolved URL:\n%s", rec.Body.String())
		}
	})

	t.Run("guard redirect surfaces as HTTP 302", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusFound {
			t.Fatalf("expected status 302, got %d", rec.Code)
		}
		if got := rec.Header().Get("Location"); got != "http://app.test/" {
			t.Errorf("Location = %q, want http://app.test/", got)
		}
	})

	t.Run("declared redirect surfaces as HTTP 302", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/old-dashboard", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusFound {
			t.Fatalf("expected status 302, got %d", rec.Code)
		}
		if got := rec.Header().Get("Location"); got != "http://app.test/dashboard" {
			t.Errorf("Location = %q, want http://app.test/dashboard", got)
		}
	})

	t.Run("chi middleware executes before the app", func(t *testing.T) {
		middlewareExecuted := false

		trackingRouter := chi.NewRouter()
		trackingRouter.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				middlewareExecuted = true
				next.ServeHTTP(w, r)
			})
		})
		trackingRouter.Mount("/", app)

		req := httptest.NewRequest("GET", "/dashboard", nil)
		rec := httptest.NewRecorder()
		trackingRouter.ServeHTTP(rec, req)

		if !middlewareExecuted {
			t.Error("expected middleware to execute before the app")
		}
	})
}

// TestStdlibMuxIntegration mounts the app on a plain ServeMux.
func TestStdlibMuxIntegration(t *testing.T) {
	app := testApp(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("api"))
	})
	mux.Handle("/", app)

	t.Run("API route works", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/test", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Body.String() != "api" {
			t.Errorf("expected api, got %s", rec.Body.String())
		}
	})

	t.Run("unknown page answers 404", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/nope", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", rec.Code)
		}
	})
}
