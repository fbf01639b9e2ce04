// Package vtest provides testing helpers for Verso routing and navigation.
//
// The vtest package reduces boilerplate when testing guards and page trees
// by providing a fluent session builder and navigation assertions.
//
// # Quick Start
//
//	func TestMembersRequiresLogin(t *testing.T) {
//	    sess := vtest.NewSession().Build()
//	    result := vtest.Navigate(t, tree, sess, "/members")
//	    vtest.ExpectURL(t, result, "/login")
//	}
//
// # Fluent Session Builder
//
// The session builder allows chaining multiple setup operations:
//
//	sess := vtest.NewSession().
//	    WithBaseURL("http://unit.test/app").
//	    WithActivePage("/projects/3").
//	    WithData("user", "ada").
//	    Build()
//
// # Navigation Assertions
//
// Assert on the terminal state of a navigation:
//
//	result := vtest.Navigate(t, tree, sess, "/old-page")
//	vtest.ExpectOutcome(t, result, server.NavMatched)
//	vtest.ExpectURL(t, result, "/page-1")
package vtest
