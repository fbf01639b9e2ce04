package server

import (
	"fmt"
	"log/slog"
	"net/url"
	"sync"
)

// DefaultMaxSessions caps live sessions when the manager is configured
// with no explicit limit.
const DefaultMaxSessions = 10000

// Manager owns all live sessions of one app.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	baseURL     *url.URL
	maxSessions int
	logger      *slog.Logger
	metrics     *Metrics
}

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	// BaseURL is the absolute URL the app is mounted at. Required.
	BaseURL *url.URL

	// MaxSessions caps concurrent sessions (default DefaultMaxSessions).
	MaxSessions int

	// Logger is handed to new sessions (default slog.Default()).
	Logger *slog.Logger

	// Metrics records session lifecycle, optional.
	Metrics *Metrics
}

// NewManager creates a session manager.
func NewManager(cfg ManagerConfig) (*Manager, error) {
	if cfg.BaseURL == nil {
		return nil, fmt.Errorf("server: manager needs a base URL")
	}
	if !cfg.BaseURL.IsAbs() {
		return nil, fmt.Errorf("server: base URL %q is not absolute", cfg.BaseURL)
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Manager{
		sessions:    make(map[string]*Session),
		baseURL:     cfg.BaseURL,
		maxSessions: cfg.MaxSessions,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
	}, nil
}

// Create registers a new session mounted at the app's base URL.
func (m *Manager) Create() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= m.maxSessions {
		return nil, fmt.Errorf("server: session limit of %d reached", m.maxSessions)
	}

	s := newSession(m.baseURL, m.logger)
	m.sessions[s.ID] = s
	m.metrics.RecordSessionCreate()

	m.logger.Debug("session created", "session", s.ID, "active", len(m.sessions))
	return s, nil
}

// Get returns a session by ID, or nil.
func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Remove closes a session and forgets it. Safe to call for unknown IDs.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return
	}
	s.Close()
	m.metrics.RecordSessionClose()
	m.logger.Debug("session removed", "session", id)
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// BaseURL returns the app's mount URL.
func (m *Manager) BaseURL() *url.URL {
	return m.baseURL
}

// CloseAll shuts down every session. Used on server shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
		m.metrics.RecordSessionClose()
	}
}
