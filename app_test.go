package verso

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func buildNothing(Params) any { return nil }

func demoPages() []Node {
	return []Node{
		&Page{Name: "Home", Segment: "", Build: buildNothing},
		&Page{Name: "Page 1", Segment: "page-1", Build: buildNothing},
		&Page{
			Name:    "Members",
			Segment: "members",
			Build:   buildNothing,
			Guard: func(GuardContext) GuardResult {
				return RedirectTo("/login")
			},
		},
		&Page{Name: "Login", Segment: "login", Build: buildNothing},
		&Page{
			Name:    "Out",
			Segment: "out",
			Build:   buildNothing,
			Guard: func(GuardContext) GuardResult {
				return RedirectTo("http://elsewhere.example/")
			},
		},
		&Redirect{Segment: "cycle-a", Target: "/cycle-b"},
		&Redirect{Segment: "cycle-b", Target: "/cycle-a"},
		&Redirect{Segment: "old-page-1", Target: "/page-1"},
	}
}

func demoApp(t *testing.T) *App {
	t.Helper()
	app, err := New(Config{
		BaseURL: "http://app.test",
		Pages:   demoPages(),
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

func get(t *testing.T, app *App, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{BaseURL: "relative/path", Pages: demoPages()}); err == nil {
		t.Error("expected error for relative base URL")
	}
	if _, err := New(Config{BaseURL: "http://app.test", Pages: []Node{
		&Page{Name: "Bad", Segment: "a//b", Build: buildNothing},
	}}); err == nil {
		t.Error("expected error for invalid segment pattern")
	}
}

func TestApp_MatchedPageServesShell(t *testing.T) {
	app := demoApp(t)

	rec := get(t, app, "/page-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `data-url="http://app.test/page-1"`) {
		t.Errorf("shell missing resolved URL:\n%s", body)
	}
	if !strings.Contains(string(body), WebSocketPath) {
		t.Error("shell missing websocket path")
	}
	if !strings.Contains(string(body), "<title>Page 1</title>") {
		t.Error("shell missing page title")
	}
}

func TestApp_GuardRedirectAnswers302(t *testing.T) {
	app := demoApp(t)

	rec := get(t, app, "/members")
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "http://app.test/login" {
		t.Errorf("Location = %q, want http://app.test/login", got)
	}
}

func TestApp_DeclaredRedirectAnswers302(t *testing.T) {
	app := demoApp(t)

	rec := get(t, app, "/old-page-1?q=1")
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "http://app.test/page-1?q=1" {
		t.Errorf("Location = %q, want query preserved", got)
	}
}

func TestApp_ExternalTargetAnswers302(t *testing.T) {
	app := demoApp(t)

	rec := get(t, app, "/out")
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "http://elsewhere.example/" {
		t.Errorf("Location = %q, want external URL", got)
	}
}

func TestApp_NotFoundAnswers404(t *testing.T) {
	app := demoApp(t)

	rec := get(t, app, "/no-such-page")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestApp_RedirectLoopAnswers500(t *testing.T) {
	app := demoApp(t)

	rec := get(t, app, "/cycle-a")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestApp_MethodNotAllowed(t *testing.T) {
	app := demoApp(t)

	req := httptest.NewRequest(http.MethodPost, "/page-1", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestApp_UnknownInternalPath(t *testing.T) {
	app := demoApp(t)

	rec := get(t, app, "/_verso/other")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestApp_EphemeralSessionsAreRemoved(t *testing.T) {
	app := demoApp(t)

	get(t, app, "/page-1")
	get(t, app, "/members")
	if got := app.Manager().Count(); got != 0 {
		t.Errorf("live sessions after initial loads = %d, want 0", got)
	}
}
