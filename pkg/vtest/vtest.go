package vtest

import (
	"net/url"
	"testing"

	"github.com/verso-ui/verso/pkg/routing"
	"github.com/verso-ui/verso/pkg/server"
)

// DefaultBaseURL is where builder sessions are mounted unless overridden.
const DefaultBaseURL = "http://unit.test"

// SessionBuilder allows fluent construction of test sessions.
type SessionBuilder struct {
	baseURL    string
	activePage string
	data       map[string]any
}

// NewSession creates a new session builder for testing.
//
// Example:
//
//	sess := vtest.NewSession().
//	    WithBaseURL("http://unit.test/app").
//	    WithData("user", "ada").
//	    Build()
func NewSession() *SessionBuilder {
	return &SessionBuilder{
		baseURL: DefaultBaseURL,
		data:    make(map[string]any),
	}
}

// WithBaseURL mounts the session at the given absolute URL.
func (b *SessionBuilder) WithBaseURL(base string) *SessionBuilder {
	b.baseURL = base
	return b
}

// WithActivePage sets the session's active page URL. Relative values are
// resolved against the base URL when the session is built.
func (b *SessionBuilder) WithActivePage(page string) *SessionBuilder {
	b.activePage = page
	return b
}

// WithData injects arbitrary data into the session.
//
// Example:
//
//	sess := vtest.NewSession().WithData("user", "ada").Build()
func (b *SessionBuilder) WithData(key string, val any) *SessionBuilder {
	b.data[key] = val
	return b
}

// Build returns the final session for use in tests. Panics on an invalid
// base or active page URL so setup failures are loud.
func (b *SessionBuilder) Build() *server.Session {
	sess := server.NewMockSession(b.baseURL)
	if b.activePage != "" {
		active, err := routing.MakeAbsolute(sess, b.activePage)
		if err != nil {
			panic("vtest: invalid active page URL: " + err.Error())
		}
		sess.SetActivePageURL(active)
	}
	for k, v := range b.data {
		sess.Set(k, v)
	}
	return sess
}

// Navigate resolves target against tree for sess and fails the test on an
// unexpected error. Redirect loops are not unexpected; assert on the result
// outcome instead.
//
// Example:
//
//	result := vtest.Navigate(t, tree, sess, "/members")
//	vtest.ExpectOutcome(t, result, server.NavMatched)
func Navigate(t *testing.T, tree *routing.Tree, sess *server.Session, target string) *server.NavigateResult {
	t.Helper()
	nav := server.NewNavigator(sess, tree, nil, nil)
	result, err := nav.Navigate(target)
	if err != nil && result == nil {
		t.Fatalf("Navigate(%q) error: %v", target, err)
	}
	return result
}

// ExpectOutcome asserts the terminal state of a navigation.
func ExpectOutcome(t *testing.T, result *server.NavigateResult, want server.NavOutcome) {
	t.Helper()
	if result == nil {
		t.Fatalf("expected outcome %v, got nil result", want)
	}
	if result.Outcome != want {
		t.Errorf("outcome = %v, want %v (final URL %s)", result.Outcome, want, result.URL)
	}
}

// ExpectURL asserts the final URL of a navigation. A relative want is
// compared by path only; an absolute want is compared as a full URL.
func ExpectURL(t *testing.T, result *server.NavigateResult, want string) {
	t.Helper()
	if result == nil || result.URL == nil {
		t.Fatalf("expected final URL %q, got nil result", want)
	}
	u, err := url.Parse(want)
	if err != nil {
		t.Fatalf("ExpectURL: bad want URL %q: %v", want, err)
	}
	if u.IsAbs() {
		if got := result.URL.String(); got != want {
			t.Errorf("final URL = %q, want %q", got, want)
		}
		return
	}
	if got := result.URL.Path; got != u.Path {
		t.Errorf("final URL path = %q, want %q", got, u.Path)
	}
}

// ExpectPage asserts that the last match of the chain is the named page.
func ExpectPage(t *testing.T, result *server.NavigateResult, name string) {
	t.Helper()
	if result == nil || len(result.Matches) == 0 {
		t.Fatalf("expected page %q, got no matches", name)
	}
	last := result.Matches[len(result.Matches)-1]
	if last.Page == nil {
		t.Fatalf("expected page %q, got a redirect match", name)
	}
	if last.Page.Name != name {
		t.Errorf("active page = %q, want %q", last.Page.Name, name)
	}
}
