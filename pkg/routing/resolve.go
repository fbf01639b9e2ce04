package routing

import (
	"errors"
	"net/url"
)

// ErrRedirectLoop is returned by CheckPageGuards when guards and redirects
// chase each other in a cycle. The URL returned alongside it is the first
// URL that was about to be visited a second time.
var ErrRedirectLoop = errors.New("routing: redirect loop detected")

// CheckPageGuards resolves a navigation to its final URL and page chain.
//
// Starting from the absolute URL u, it repeatedly matches the URL against
// the tree and applies redirects and guards until the result is stable:
//
//   - A URL on a foreign origin terminates immediately with a nil chain
//     and the URL unchanged. No guard runs for foreign origins.
//   - A URL that matches no declared page terminates with a nil chain and
//     the URL unchanged; the host app decides how to render the miss.
//   - A matched redirect, or a matched guard answering RedirectTo,
//     produces the next candidate URL and the loop continues. Relative
//     targets resolve against the URL that matched, and inherit its query
//     and fragment unless they carry their own.
//   - A matched page whose guard answers Stay (or that has no guard)
//     terminates successfully with the chain and the final URL.
//   - A guard answering Fail aborts with that error.
//
// Every URL visited in one resolution is remembered; producing one of them
// again terminates with ErrRedirectLoop rather than looping forever.
//
// Resolution is synchronous and read-only. Guards run one at a time, each
// awaited to completion before the next step.
func CheckPageGuards(sess Session, tree *Tree, u *url.URL) ([]PageMatch, *url.URL, error) {
	visited := make(map[string]bool)
	current := u

	for {
		if !sameOrigin(sess.BaseURL(), current) {
			return nil, current, nil
		}

		path, ok := pathUnderMount(sess.BaseURL(), current)
		if !ok {
			return nil, current, nil
		}

		matches := tree.Match(path)
		if matches == nil {
			return nil, current, nil
		}

		visited[current.String()] = true

		var target string
		last := matches[len(matches)-1]
		switch {
		case last.Redirect != nil:
			target = last.Redirect.Target

		case last.Page.Guard != nil:
			result := last.Page.Guard(GuardContext{
				Session: sess,
				URL:     current,
				Matches: matches,
			})
			if result.err != nil {
				return nil, current, result.err
			}
			if !result.redirect {
				return matches, current, nil
			}
			target = result.target

		default:
			return matches, current, nil
		}

		next, err := resolveRedirectTarget(sess, current, target)
		if err != nil {
			return nil, current, err
		}
		if visited[next.String()] {
			return nil, next, ErrRedirectLoop
		}
		current = next
	}
}

// resolveRedirectTarget turns a redirect/guard target into the next
// absolute candidate URL. Relative targets resolve against the matched
// URL, not the navigation's original URL, and inherit its query and
// fragment when they declare none of their own.
func resolveRedirectTarget(sess Session, matched *url.URL, target string) (*url.URL, error) {
	parsed, err := url.Parse(target)
	if err != nil {
		return nil, err
	}

	var next *url.URL
	switch {
	case parsed.IsAbs():
		next = parsed
	case parsed.Host != "":
		parsed.Scheme = sess.BaseURL().Scheme
		next = parsed
	case len(target) > 0 && target[0] == '/':
		base := sess.BaseURL()
		next = &url.URL{
			Scheme:   base.Scheme,
			Host:     base.Host,
			Path:     joinMountPath(base.Path, parsed.Path),
			RawQuery: parsed.RawQuery,
			Fragment: parsed.Fragment,
		}
	default:
		next = matched.ResolveReference(parsed)
	}

	if parsed.RawQuery == "" {
		next.RawQuery = matched.RawQuery
	}
	if parsed.Fragment == "" {
		next.Fragment = matched.Fragment
	}
	return next, nil
}
