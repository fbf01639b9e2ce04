// Package verso provides the public API for the Verso routing framework.
//
// This is the recommended import for most applications:
//
//	import "github.com/verso-ui/verso"
//
// Usage:
//
//	pages := []verso.Node{
//	    &verso.Page{Name: "Home", Segment: "", Build: buildHome},
//	    &verso.Page{Name: "Projects", Segment: "projects", Build: buildProjects},
//	}
//	app, err := verso.New(verso.Config{BaseURL: "http://localhost:8080", Pages: pages})
//	http.ListenAndServe(":8080", app)
package verso

import (
	"net/url"

	"github.com/verso-ui/verso/pkg/routing"
	"github.com/verso-ui/verso/pkg/server"
)

// =============================================================================
// Page tree (re-export from pkg/routing)
// =============================================================================

// Node is a declared entry in the page tree, either a *Page or a *Redirect.
type Node = routing.Node

// Page declares a page at a URL segment pattern.
type Page = routing.Page

// Redirect declares an unconditional redirect at a URL segment pattern.
type Redirect = routing.Redirect

// Tree is a compiled page tree.
type Tree = routing.Tree

// PageMatch is one element of a resolved page chain.
type PageMatch = routing.PageMatch

// Params holds coerced path parameter values.
type Params = routing.Params

// Builder constructs a page's component from its path parameters.
type Builder = routing.Builder

// ParamType declares the coercion applied to a path parameter.
type ParamType = routing.ParamType

const (
	ParamString = routing.ParamString
	ParamInt    = routing.ParamInt
	ParamFloat  = routing.ParamFloat
)

// NewTree compiles declared pages into a matchable tree.
var NewTree = routing.NewTree

// MustNewTree is NewTree that panics on invalid declarations.
var MustNewTree = routing.MustNewTree

// =============================================================================
// Guards (re-export from pkg/routing)
// =============================================================================

// Guard decides whether a session may see a page.
type Guard = routing.Guard

// GuardContext is what a guard gets to inspect.
type GuardContext = routing.GuardContext

// GuardResult is a guard's verdict.
type GuardResult = routing.GuardResult

// Stay lets the navigation proceed to the guarded page.
var Stay = routing.Stay

// RedirectTo sends the navigation to another URL.
var RedirectTo = routing.RedirectTo

// Fail aborts the navigation with an error.
var Fail = routing.Fail

// ErrRedirectLoop is returned when guards and redirects form a cycle.
var ErrRedirectLoop = routing.ErrRedirectLoop

// =============================================================================
// Resolution (re-export from pkg/routing)
// =============================================================================

// MakeAbsolute resolves a possibly relative URL against a session.
func MakeAbsolute(sess routing.Session, relative string) (*url.URL, error) {
	return routing.MakeAbsolute(sess, relative)
}

// CheckPageGuards runs the full guard and redirect resolution for a URL.
func CheckPageGuards(sess routing.Session, tree *Tree, u *url.URL) ([]PageMatch, *url.URL, error) {
	return routing.CheckPageGuards(sess, tree, u)
}

// =============================================================================
// Server types (re-export from pkg/server)
// =============================================================================

// Session is a connected client and its navigation state.
type Session = server.Session

// Navigator resolves navigation requests for one session.
type Navigator = server.Navigator

// NavigateResult is the outcome of one navigation.
type NavigateResult = server.NavigateResult

// NavOutcome classifies the terminal state of a navigation.
type NavOutcome = server.NavOutcome

const (
	NavMatched  = server.NavMatched
	NavNotFound = server.NavNotFound
	NavExternal = server.NavExternal
	NavCycle    = server.NavCycle
)

// Middleware wraps navigation resolution.
type Middleware = server.Middleware

// MiddlewareFunc adapts a function to Middleware.
type MiddlewareFunc = server.MiddlewareFunc

// WithReplace replaces the current history entry instead of pushing.
var WithReplace = server.WithReplace
