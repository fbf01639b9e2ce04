package server

import (
	"net/url"
	"testing"
)

func TestSessionDataStore(t *testing.T) {
	sess := testSession(t)

	if got := sess.Get("missing"); got != nil {
		t.Errorf("Get(missing) = %v, want nil", got)
	}

	sess.Set("user", "ada")
	sess.Set("count", 3)

	if got := sess.GetString("user"); got != "ada" {
		t.Errorf("GetString(user) = %q", got)
	}
	if got := sess.GetString("count"); got != "" {
		t.Errorf("GetString(count) = %q, want \"\" for non-string", got)
	}

	sess.Delete("user")
	if got := sess.Get("user"); got != nil {
		t.Errorf("Get after Delete = %v, want nil", got)
	}
}

func TestSessionCloseIdempotent(t *testing.T) {
	sess := testSession(t)

	if sess.IsClosed() {
		t.Fatal("new session reports closed")
	}

	sess.Close()
	sess.Close() // must not panic

	if !sess.IsClosed() {
		t.Error("closed session reports open")
	}
	select {
	case <-sess.Done():
	default:
		t.Error("Done() not closed after Close()")
	}
}

func TestSessionSendFrameWithoutConn(t *testing.T) {
	sess := testSession(t)

	// Detached sessions drop frames instead of failing; vtest and SSR
	// sessions depend on this.
	if err := sess.SendFrame(nil); err == nil {
		// nil frame is an encode error, that one must surface
		t.Error("SendFrame(nil) succeeded, expected encode error")
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	base, _ := url.Parse("http://app.test")
	m, err := NewManager(ManagerConfig{BaseURL: base})
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s, err := m.Create()
		if err != nil {
			t.Fatal(err)
		}
		if seen[s.ID] {
			t.Fatalf("duplicate session ID %q", s.ID)
		}
		seen[s.ID] = true
	}
}
