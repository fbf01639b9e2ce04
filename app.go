package verso

import (
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/verso-ui/verso/pkg/routing"
	"github.com/verso-ui/verso/pkg/server"
)

// WebSocketPath is where the thin client connects for live navigation.
const WebSocketPath = "/_verso/ws"

// =============================================================================
// Config
// =============================================================================

// Config configures a Verso application.
type Config struct {
	// BaseURL is the absolute URL the app is mounted at. Required.
	BaseURL string

	// Pages declares the page tree. Required.
	Pages []Node

	// Middleware wraps every navigation resolution, outermost first.
	Middleware []Middleware

	// MaxSessions caps concurrent sessions (default server.DefaultMaxSessions).
	MaxSessions int

	// MetricsNamespace enables Prometheus metrics when non-empty.
	MetricsNamespace string

	// Logger is used by the app and its sessions (default slog.Default()).
	Logger *slog.Logger
}

// =============================================================================
// App
// =============================================================================

// App is the main Verso application entry point. It wraps the page tree,
// session manager, and WebSocket endpoint into a single http.Handler.
//
//	app, err := verso.New(verso.Config{
//	    BaseURL: "http://localhost:8080",
//	    Pages:   pages,
//	})
//	http.ListenAndServe(":8080", app)
//
// GET requests resolve the URL through the full guard and redirect chain:
// a match renders the client shell, a rewritten URL answers with a 302 to
// its final location, and an external target 302s off-origin. The shell
// then connects to WebSocketPath for all further navigation.
type App struct {
	tree     *routing.Tree
	manager  *server.Manager
	endpoint *server.Endpoint

	baseURL *url.URL
	config  Config
	logger  *slog.Logger
}

// New creates a new Verso application with the given configuration.
func New(cfg Config) (*App, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("verso: invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if !base.IsAbs() || base.Host == "" {
		return nil, fmt.Errorf("verso: base URL %q must be absolute", cfg.BaseURL)
	}

	tree, err := routing.NewTree(cfg.Pages...)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var metrics *server.Metrics
	if cfg.MetricsNamespace != "" {
		metrics = server.NewMetrics(server.MetricsConfig{Namespace: cfg.MetricsNamespace})
	}

	manager, err := server.NewManager(server.ManagerConfig{
		BaseURL:     base,
		MaxSessions: cfg.MaxSessions,
		Logger:      logger,
		Metrics:     metrics,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		tree:     tree,
		manager:  manager,
		endpoint: server.NewEndpoint(manager, tree, cfg.Middleware, metrics, logger),
		baseURL:  base,
		config:   cfg,
		logger:   logger,
	}, nil
}

// Tree returns the compiled page tree.
func (a *App) Tree() *routing.Tree {
	return a.tree
}

// Manager returns the app's session manager.
func (a *App) Manager() *server.Manager {
	return a.manager
}

// Close shuts down all live sessions.
func (a *App) Close() {
	a.manager.CloseAll()
}

// =============================================================================
// http.Handler Implementation
// =============================================================================

// ServeHTTP implements http.Handler. WebSocket connections go to the
// endpoint; everything else resolves as an initial page load.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/_verso/") {
		if r.URL.Path == WebSocketPath {
			a.endpoint.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
		return
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	a.serveInitialLoad(w, r)
}

// serveInitialLoad resolves the requested URL with an ephemeral session and
// answers with the shell, a redirect, or an error page.
func (a *App) serveInitialLoad(w http.ResponseWriter, r *http.Request) {
	sess, err := a.manager.Create()
	if err != nil {
		a.logger.Warn("initial load rejected", "error", err)
		http.Error(w, "too many sessions", http.StatusServiceUnavailable)
		return
	}
	defer a.manager.Remove(sess.ID)

	requested := a.requestURL(r)
	nav := server.NewNavigator(sess, a.tree, a.config.Middleware, nil)
	result, err := nav.Navigate(requested.String())
	if err != nil {
		if errors.Is(err, routing.ErrRedirectLoop) {
			a.logger.Warn("redirect loop on initial load", "url", requested)
			http.Error(w, "redirect loop", http.StatusInternalServerError)
			return
		}
		a.logger.Error("initial load failed", "url", requested, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	switch result.Outcome {
	case server.NavExternal:
		http.Redirect(w, r, result.URL.String(), http.StatusFound)

	case server.NavMatched:
		if result.URL.String() != requested.String() {
			http.Redirect(w, r, result.URL.String(), http.StatusFound)
			return
		}
		a.writeShell(w, result)

	case server.NavNotFound:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintf(w, "<!doctype html><title>Not found</title><h1>404</h1><p>%s</p>\n",
			html.EscapeString(result.URL.Path))

	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// requestURL reconstructs the absolute URL the client asked for, on the
// app's own origin.
func (a *App) requestURL(r *http.Request) *url.URL {
	u := *r.URL
	u.Scheme = a.baseURL.Scheme
	u.Host = a.baseURL.Host
	return &u
}

// writeShell emits the minimal client shell for a matched page. The shell
// carries the resolved URL and connects back over WebSocketPath.
func (a *App) writeShell(w http.ResponseWriter, result *server.NavigateResult) {
	title := "Verso"
	if n := len(result.Matches); n > 0 && result.Matches[n-1].Page != nil {
		title = result.Matches[n-1].Page.Name
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!doctype html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body>
<div id="verso-root" data-url="%s" data-ws="%s"></div>
</body>
</html>
`, html.EscapeString(title), html.EscapeString(result.URL.String()), WebSocketPath)
}
