package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/verso-ui/verso/pkg/protocol"
)

// Session represents a single client connection and its navigation state.
// It implements routing.Session.
type Session struct {
	// Identity
	ID         string
	CreatedAt  time.Time
	lastActive atomic.Int64 // unix nanos

	// URLs read by the routing engine. baseURL is fixed at creation;
	// activePageURL moves when a navigation commits.
	baseURL       *url.URL
	activePageURL *url.URL
	urlMu         sync.RWMutex

	// Connection. nil for sessions that are not attached to a socket
	// (tests, SSR).
	conn    *websocket.Conn
	writeMu sync.Mutex

	// Lifecycle
	closed atomic.Bool
	done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc

	// General-purpose session data, available to guards and handlers.
	data   map[string]any
	dataMu sync.RWMutex

	logger *slog.Logger
}

// newSession creates a session mounted at base. The active page URL starts
// at the base URL.
func newSession(base *url.URL, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:            generateSessionID(),
		CreatedAt:     time.Now(),
		baseURL:       base,
		activePageURL: base,
		done:          make(chan struct{}),
		ctx:           ctx,
		cancel:        cancel,
		data:          make(map[string]any),
		logger:        logger,
	}
	s.Touch()
	return s
}

// generateSessionID returns a cryptographically random session ID.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("server: cannot read random bytes: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// BaseURL returns the absolute URL the app is mounted at.
func (s *Session) BaseURL() *url.URL {
	return s.baseURL
}

// ActivePageURL returns the URL of the currently displayed page.
func (s *Session) ActivePageURL() *url.URL {
	s.urlMu.RLock()
	defer s.urlMu.RUnlock()
	return s.activePageURL
}

// SetActivePageURL moves the session to a new page URL. The Navigator
// calls this after resolution succeeds; the routing engine itself never
// does.
func (s *Session) SetActivePageURL(u *url.URL) {
	s.urlMu.Lock()
	s.activePageURL = u
	s.urlMu.Unlock()
}

// Attach binds the session to a WebSocket connection.
func (s *Session) Attach(conn *websocket.Conn) {
	s.writeMu.Lock()
	s.conn = conn
	s.writeMu.Unlock()
}

// SendFrame writes a protocol frame to the client. A session without a
// connection drops frames silently; tests and SSR sessions rely on that.
func (s *Session) SendFrame(f *protocol.Frame) error {
	data, err := protocol.Encode(f)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.conn == nil || s.closed.Load() {
		return nil
	}
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Get returns a session data value, or nil.
func (s *Session) Get(key string) any {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	return s.data[key]
}

// GetString returns a session data value as a string, or "".
func (s *Session) GetString(key string) string {
	v, _ := s.Get(key).(string)
	return v
}

// Set stores a session data value.
func (s *Session) Set(key string, value any) {
	s.dataMu.Lock()
	s.data[key] = value
	s.dataMu.Unlock()
}

// Delete removes a session data value.
func (s *Session) Delete(key string) {
	s.dataMu.Lock()
	delete(s.data, key)
	s.dataMu.Unlock()
}

// Touch records client activity.
func (s *Session) Touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

// LastActive returns the time of the last recorded client activity.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// Close shuts the session down. Idempotent.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	close(s.done)
	s.cancel()

	s.writeMu.Lock()
	conn := s.conn
	s.conn = nil
	s.writeMu.Unlock()

	if conn != nil {
		conn.Close()
	}
}

// IsClosed reports whether the session has been shut down.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Done returns a channel closed when the session shuts down.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Context returns a context canceled when the session shuts down.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Logger returns the session's logger.
func (s *Session) Logger() *slog.Logger {
	return s.logger
}
