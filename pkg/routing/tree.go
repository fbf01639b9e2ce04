package routing

import "strings"

// PageMatch is one entry of a matched page chain: the declared node plus
// the typed path parameters its pattern extracted. Exactly one of Page and
// Redirect is non-nil.
type PageMatch struct {
	Page     *Page
	Redirect *Redirect
	Params   Params
}

// Match resolves a path against the tree.
//
// The path is the URL path with the app's mount path already stripped;
// leading and trailing slashes are ignored. On success the full ancestor
// chain is returned, root first. nil means no declared page matches.
//
// Candidates at each level are tried in declaration order. Literal
// segments compare case-sensitively. A candidate whose captures fail
// coercion to its declared parameter types is skipped and the next
// candidate is tried; only total failure across all candidates makes the
// subtree a dead end.
func (t *Tree) Match(path string) []PageMatch {
	return matchNodes(t.roots, strings.Trim(path, "/"), nil)
}

func matchNodes(nodes []*treeNode, path string, chain []PageMatch) []PageMatch {
	for _, n := range nodes {
		ok, raw, rest := n.pattern.Match(path)
		if !ok {
			continue
		}

		var types map[string]ParamType
		if n.page != nil {
			types = n.page.ParamTypes
		}
		params, ok := coerceParams(raw, types)
		if !ok {
			continue
		}

		// Clamp capacity so sibling candidates never share backing arrays.
		next := append(chain[:len(chain):len(chain)], PageMatch{
			Page:     n.page,
			Redirect: n.redirect,
			Params:   params,
		})

		if rest == "" {
			return next
		}
		if found := matchNodes(n.children, rest, next); found != nil {
			return found
		}
	}
	return nil
}
