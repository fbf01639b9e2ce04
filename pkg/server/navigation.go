package server

import (
	"errors"
	"net/url"
	"time"

	"github.com/verso-ui/verso/pkg/protocol"
	"github.com/verso-ui/verso/pkg/routing"
)

// NavOutcome classifies the terminal state of a navigation.
type NavOutcome int

const (
	// NavMatched means a declared page chain became active.
	NavMatched NavOutcome = iota

	// NavNotFound means no declared page matched; the URL still commits
	// so the host app can render its not-found fallback there.
	NavNotFound

	// NavExternal means the target lives on a foreign origin; the client
	// is told to do a full page load and nothing commits.
	NavExternal

	// NavCycle means guards and redirects chased each other in a loop.
	NavCycle
)

// String returns the outcome label used in logs and metrics.
func (o NavOutcome) String() string {
	switch o {
	case NavMatched:
		return "matched"
	case NavNotFound:
		return "not_found"
	case NavExternal:
		return "external"
	case NavCycle:
		return "cycle"
	default:
		return "unknown"
	}
}

// NavigateResult is the outcome of one navigation.
type NavigateResult struct {
	// URL is the final absolute URL after guards and redirects.
	URL *url.URL

	// Matches is the active page chain, nil for NavNotFound/NavExternal.
	Matches []routing.PageMatch

	// Outcome classifies the terminal state.
	Outcome NavOutcome

	// Frame is the protocol frame describing the navigation to the
	// client.
	Frame *protocol.Frame

	// Duration is how long resolution took, guards included.
	Duration time.Duration
}

// NavContext is what navigation middleware gets to see and decorate.
type NavContext struct {
	// Session is the navigating session.
	Session *Session

	// Target is the raw navigation target as requested.
	Target string

	// URL is the absolute input URL the resolver starts from.
	URL *url.URL

	// Result is populated once the inner resolution has run. Middleware
	// reads it after calling next.
	Result *NavigateResult
}

// Middleware wraps navigation resolution. Implementations must call next
// exactly once unless they intend to cancel the navigation.
type Middleware interface {
	Handle(ctx *NavContext, next func() error) error
}

// MiddlewareFunc adapts a function to Middleware.
type MiddlewareFunc func(ctx *NavContext, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(ctx *NavContext, next func() error) error {
	return f(ctx, next)
}

// NavigateOption configures a single Navigate call.
type NavigateOption func(*navigateConfig)

type navigateConfig struct {
	replace bool
}

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(c *navigateConfig) { c.replace = true }
}

// Navigator resolves navigation requests for one session against the
// app's page tree.
type Navigator struct {
	session    *Session
	tree       *routing.Tree
	middleware []Middleware
	metrics    *Metrics
}

// NewNavigator creates a navigator for a session.
func NewNavigator(session *Session, tree *routing.Tree, middleware []Middleware, metrics *Metrics) *Navigator {
	return &Navigator{
		session:    session,
		tree:       tree,
		middleware: middleware,
		metrics:    metrics,
	}
}

// Navigate resolves target and, when resolution succeeds, commits the
// session's active page URL and returns the frame to send to the client.
//
// The target may be relative ("../settings"), root-relative ("/projects"),
// or absolute. A guard error aborts the navigation and propagates; a
// redirect loop yields a NavCycle result alongside routing.ErrRedirectLoop.
func (n *Navigator) Navigate(target string, opts ...NavigateOption) (*NavigateResult, error) {
	var cfg navigateConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	abs, err := routing.MakeAbsolute(n.session, target)
	if err != nil {
		return nil, err
	}

	ctx := &NavContext{
		Session: n.session,
		Target:  target,
		URL:     abs,
	}

	start := time.Now()
	err = runMiddleware(ctx, n.middleware, func() error {
		result, err := n.resolve(abs, cfg.replace)
		ctx.Result = result
		return err
	})
	if ctx.Result != nil {
		ctx.Result.Duration = time.Since(start)
		n.metrics.RecordNavigation(ctx.Result.Outcome, ctx.Result.Duration)
	}
	if err != nil {
		return ctx.Result, err
	}
	return ctx.Result, nil
}

// resolve runs the routing engine and classifies its answer.
func (n *Navigator) resolve(abs *url.URL, replace bool) (*NavigateResult, error) {
	matches, final, err := routing.CheckPageGuards(n.session, n.tree, abs)
	if err != nil {
		if errors.Is(err, routing.ErrRedirectLoop) {
			n.session.logger.Warn("navigation aborted: redirect loop",
				"session", n.session.ID,
				"url", abs.String(),
			)
			return &NavigateResult{URL: final, Outcome: NavCycle}, err
		}
		return nil, err
	}

	result := &NavigateResult{URL: final, Matches: matches}

	if !sameOrigin(n.session.BaseURL(), final) {
		result.Outcome = NavExternal
		result.Frame = protocol.NewNavExternalFrame(final.String())
		return result, nil
	}

	if matches == nil {
		result.Outcome = NavNotFound
	} else {
		result.Outcome = NavMatched
	}

	// The resolution chain may have rewritten the URL; replace instead of
	// push so history does not collect intermediate entries.
	if final.String() != abs.String() {
		replace = true
	}

	n.session.SetActivePageURL(final)
	if replace {
		result.Frame = protocol.NewNavReplaceFrame(final.String())
	} else {
		result.Frame = protocol.NewNavPushFrame(final.String())
	}
	return result, nil
}

// runMiddleware executes the chain outermost-first around core.
func runMiddleware(ctx *NavContext, chain []Middleware, core func() error) error {
	var run func(i int) error
	run = func(i int) error {
		if i >= len(chain) {
			return core()
		}
		return chain[i].Handle(ctx, func() error { return run(i + 1) })
	}
	return run(0)
}

// sameOrigin reports whether two URLs share scheme and host.
func sameOrigin(a, b *url.URL) bool {
	return a.Scheme == b.Scheme && a.Host == b.Host
}
