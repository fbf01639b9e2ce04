package routing

import (
	"fmt"
	"net/url"
	"strings"
)

// MakeAbsolute resolves a possibly-relative URL string against the
// session's base URL and active page URL.
//
//   - An absolute URL (scheme and host present) is returned unchanged,
//     query and fragment included. Cross-origin targets pass through.
//   - The empty string resolves to the active page URL: a no-op
//     navigation.
//   - A root-relative URL ("/projects") resolves against the base URL
//     including its mount path: with the app mounted at
//     http://unit.test/foo, "/projects" becomes
//     http://unit.test/foo/projects.
//   - Anything else resolves against the active page URL with standard
//     RFC 3986 relative-reference semantics ("." and ".." collapse,
//     trailing segment replacement).
//
// Pure computation: no network, no session mutation.
func MakeAbsolute(sess Session, relative string) (*url.URL, error) {
	if relative == "" {
		return cloneURL(sess.ActivePageURL()), nil
	}

	u, err := url.Parse(relative)
	if err != nil {
		return nil, fmt.Errorf("routing: invalid URL %q: %w", relative, err)
	}

	if u.IsAbs() {
		return u, nil
	}

	// Protocol-relative ("//host/path"): adopt the base scheme.
	if u.Host != "" {
		u.Scheme = sess.BaseURL().Scheme
		return u, nil
	}

	if strings.HasPrefix(relative, "/") {
		base := sess.BaseURL()
		return &url.URL{
			Scheme:   base.Scheme,
			Host:     base.Host,
			Path:     joinMountPath(base.Path, u.Path),
			RawQuery: u.RawQuery,
			Fragment: u.Fragment,
		}, nil
	}

	return sess.ActivePageURL().ResolveReference(u), nil
}

// joinMountPath appends a root-relative path to the app's mount path.
func joinMountPath(mount, path string) string {
	mount = strings.TrimSuffix(mount, "/")
	if mount == "" {
		return path
	}
	return mount + path
}

// sameOrigin reports whether two URLs share scheme and host.
func sameOrigin(a, b *url.URL) bool {
	return a.Scheme == b.Scheme && a.Host == b.Host
}

// pathUnderMount strips the base URL's mount path from an absolute URL's
// path. The second return is false when the path is not under the mount
// point at all.
func pathUnderMount(base, u *url.URL) (string, bool) {
	mount := strings.Trim(base.Path, "/")
	path := strings.Trim(u.Path, "/")

	if mount == "" {
		return path, true
	}
	if path == mount {
		return "", true
	}
	if strings.HasPrefix(path, mount+"/") {
		return path[len(mount)+1:], true
	}
	return "", false
}

func cloneURL(u *url.URL) *url.URL {
	c := *u
	if u.User != nil {
		user := *u.User
		c.User = &user
	}
	return &c
}
