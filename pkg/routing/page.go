package routing

import (
	"fmt"
	"net/url"
)

// Session is the part of the host session the routing engine reads. It is
// passed in explicitly; the engine never reaches for ambient state and
// never mutates the session.
type Session interface {
	// BaseURL returns the absolute URL the app is mounted at.
	BaseURL() *url.URL

	// ActivePageURL returns the absolute URL of the currently displayed
	// page. Relative navigation resolves against it.
	ActivePageURL() *url.URL
}

// ParamType declares how a placeholder capture is coerced before it is
// handed to a page's build factory.
type ParamType int

const (
	// ParamString passes the raw segment through unchanged.
	ParamString ParamType = iota

	// ParamInt coerces the segment with strconv.Atoi.
	ParamInt

	// ParamFloat coerces the segment with strconv.ParseFloat.
	ParamFloat
)

// String returns the declaration name of the type.
func (t ParamType) String() string {
	switch t {
	case ParamInt:
		return "int"
	case ParamFloat:
		return "float"
	default:
		return "string"
	}
}

// Builder creates the component for a matched page. The routing engine
// validates and coerces the params but never calls the builder itself;
// that is the rendering layer's job.
type Builder func(params Params) any

// GuardContext is what a guard gets to look at when vetting a navigation.
type GuardContext struct {
	// Session is the session attempting the navigation.
	Session Session

	// URL is the candidate absolute URL.
	URL *url.URL

	// Matches is the page chain the candidate URL matched.
	Matches []PageMatch
}

// GuardResult is the tagged outcome of a guard: stay, redirect, or fail.
type GuardResult struct {
	target   string
	err      error
	redirect bool
}

// Stay lets the navigation through unchanged.
func Stay() GuardResult { return GuardResult{} }

// RedirectTo diverts the navigation to target. The target may be relative
// (resolved against the matched URL) or absolute.
func RedirectTo(target string) GuardResult {
	return GuardResult{target: target, redirect: true}
}

// Fail aborts the navigation with err. The error propagates to the caller
// of the resolution; the engine does not swallow it.
func Fail(err error) GuardResult { return GuardResult{err: err} }

// Guard vets a navigation before its page becomes active. Guards must be
// side-effect safe: a navigation abandoned mid-resolution is not rolled
// back.
type Guard func(ctx GuardContext) GuardResult

// Node is a declared entry in a page tree: a Page or a Redirect.
type Node interface {
	segment() string
}

// Page declares a routable page.
type Page struct {
	// Name is the display name, used for titles and diagnostics.
	Name string

	// Segment is the URL segment pattern. See Pattern for the syntax.
	Segment string

	// Build creates the page component. Opaque to routing.
	Build Builder

	// Guard, if set, vets every navigation that resolves to this page.
	Guard Guard

	// Children are nested pages matched against the remaining path.
	// Order matters: earlier children win ties.
	Children []Node

	// ParamTypes declares the coercion type per placeholder name.
	// Placeholders not listed default to ParamString.
	ParamTypes map[string]ParamType
}

func (p Page) segment() string { return p.Segment }

// Redirect declares a URL segment that unconditionally diverts to Target.
// It behaves like a leaf page whose guard always redirects.
type Redirect struct {
	// Segment is the URL segment pattern to match.
	Segment string

	// Target is the redirect destination, relative or absolute.
	Target string
}

func (r Redirect) segment() string { return r.Segment }

// Tree is an immutable hierarchy of declared pages and redirects. Safe for
// concurrent reads.
type Tree struct {
	roots []*treeNode
}

// treeNode is a compiled tree entry. Exactly one of page and redirect is
// set.
type treeNode struct {
	page     *Page
	redirect *Redirect
	pattern  *Pattern
	children []*treeNode
}

// NewTree compiles a page tree from its declaration. Every segment pattern
// is validated here so matching can never fail on a malformed pattern.
func NewTree(nodes ...Node) (*Tree, error) {
	roots, err := compileNodes(nodes)
	if err != nil {
		return nil, err
	}
	return &Tree{roots: roots}, nil
}

// MustNewTree is NewTree that panics on error. For static declarations.
func MustNewTree(nodes ...Node) *Tree {
	t, err := NewTree(nodes...)
	if err != nil {
		panic(err)
	}
	return t
}

func compileNodes(nodes []Node) ([]*treeNode, error) {
	compiled := make([]*treeNode, 0, len(nodes))

	for _, n := range nodes {
		// Declarations may be written as values or pointers.
		switch v := n.(type) {
		case *Page:
			n = *v
		case *Redirect:
			n = *v
		}

		pattern, err := CompilePattern(n.segment())
		if err != nil {
			return nil, err
		}

		switch decl := n.(type) {
		case Page:
			if err := checkParamTypes(decl, pattern); err != nil {
				return nil, err
			}
			children, err := compileNodes(decl.Children)
			if err != nil {
				return nil, err
			}
			page := decl
			compiled = append(compiled, &treeNode{
				page:     &page,
				pattern:  pattern,
				children: children,
			})

		case Redirect:
			if decl.Target == "" {
				return nil, fmt.Errorf("routing: redirect %q has no target", decl.Segment)
			}
			redirect := decl
			compiled = append(compiled, &treeNode{
				redirect: &redirect,
				pattern:  pattern,
			})

		default:
			return nil, fmt.Errorf("routing: unknown node type %T", n)
		}
	}

	return compiled, nil
}

// checkParamTypes rejects declared types for placeholders the pattern does
// not have. Catching the typo at construction beats silently ignoring it.
func checkParamTypes(p Page, pattern *Pattern) error {
	if len(p.ParamTypes) == 0 {
		return nil
	}
	declared := make(map[string]bool, len(pattern.ParamNames()))
	for _, name := range pattern.ParamNames() {
		declared[name] = true
	}
	for name := range p.ParamTypes {
		if !declared[name] {
			return fmt.Errorf("routing: page %q declares a type for unknown placeholder %q", p.Name, name)
		}
	}
	return nil
}
