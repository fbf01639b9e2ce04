package server

import (
	"net/url"
	"testing"
)

func TestManagerRequiresAbsoluteBaseURL(t *testing.T) {
	if _, err := NewManager(ManagerConfig{}); err == nil {
		t.Error("NewManager without base URL succeeded")
	}

	rel, _ := url.Parse("/just/a/path")
	if _, err := NewManager(ManagerConfig{BaseURL: rel}); err == nil {
		t.Error("NewManager with relative base URL succeeded")
	}
}

func TestManagerLifecycle(t *testing.T) {
	base, _ := url.Parse("http://app.test")
	m, err := NewManager(ManagerConfig{BaseURL: base})
	if err != nil {
		t.Fatal(err)
	}

	s, err := m.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.Count() != 1 {
		t.Errorf("Count = %d, want 1", m.Count())
	}
	if got := m.Get(s.ID); got != s {
		t.Error("Get did not return the created session")
	}

	m.Remove(s.ID)
	if m.Count() != 0 {
		t.Errorf("Count after Remove = %d, want 0", m.Count())
	}
	if !s.IsClosed() {
		t.Error("removed session was not closed")
	}

	// Unknown IDs are a no-op.
	m.Remove("nope")
}

func TestManagerSessionLimit(t *testing.T) {
	base, _ := url.Parse("http://app.test")
	m, err := NewManager(ManagerConfig{BaseURL: base, MaxSessions: 2})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.Create(); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Create(); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Create(); err == nil {
		t.Error("Create beyond MaxSessions succeeded")
	}
}

func TestManagerCloseAll(t *testing.T) {
	base, _ := url.Parse("http://app.test")
	m, err := NewManager(ManagerConfig{BaseURL: base})
	if err != nil {
		t.Fatal(err)
	}

	var sessions []*Session
	for i := 0; i < 3; i++ {
		s, err := m.Create()
		if err != nil {
			t.Fatal(err)
		}
		sessions = append(sessions, s)
	}

	m.CloseAll()
	if m.Count() != 0 {
		t.Errorf("Count after CloseAll = %d, want 0", m.Count())
	}
	for _, s := range sessions {
		if !s.IsClosed() {
			t.Errorf("session %s not closed", s.ID)
		}
	}
}
