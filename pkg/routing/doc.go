// Package routing implements Verso's navigation engine: a declarative tree
// of pages and redirects, URL normalization, typed path-parameter
// extraction, and guard-based redirect resolution.
//
// The engine is deliberately small and side-effect free. It never mutates
// the session, never touches the network, and never invokes a page's build
// factory; it only decides which page chain a URL resolves to and what the
// final URL is after guards and redirects have had their say.
//
// # Page Trees
//
// A tree is declared once at startup and is immutable afterwards:
//
//	tree, err := routing.NewTree(
//	    routing.Page{Name: "Home", Segment: "", Build: buildHome},
//	    routing.Page{
//	        Name:    "Project",
//	        Segment: "projects/{id}",
//	        Build:   buildProject,
//	        ParamTypes: map[string]routing.ParamType{"id": routing.ParamInt},
//	        Children: []routing.Node{
//	            routing.Page{Name: "Settings", Segment: "settings", Build: buildSettings},
//	        },
//	    },
//	    routing.Redirect{Segment: "old-projects", Target: "projects"},
//	)
//
// # Resolution
//
// Navigation starts from an absolute URL and runs to a fixed point:
//
//	abs, err := routing.MakeAbsolute(sess, "../projects/3")
//	matches, final, err := routing.CheckPageGuards(sess, tree, abs)
//
// A nil match chain with a nil error means the URL is external to the app
// or names no declared page; the caller decides how to render that. A
// routing.ErrRedirectLoop error means guards and redirects chased each
// other in a cycle.
package routing
