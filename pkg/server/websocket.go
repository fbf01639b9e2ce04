package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/verso-ui/verso/pkg/protocol"
	"github.com/verso-ui/verso/pkg/routing"
)

const (
	// readTimeout is the deadline for a single client frame; the client
	// pings well inside it.
	readTimeout = 60 * time.Second

	// writeTimeout bounds a single frame write.
	writeTimeout = 10 * time.Second
)

// Endpoint is the WebSocket endpoint the thin client connects to. Each
// connection gets a session and a navigator; navigate frames from the
// client run through the navigator and the resulting nav frame is written
// back.
type Endpoint struct {
	manager    *Manager
	tree       *routing.Tree
	middleware []Middleware
	metrics    *Metrics
	logger     *slog.Logger

	upgrader websocket.Upgrader
}

// NewEndpoint creates the WebSocket endpoint.
func NewEndpoint(manager *Manager, tree *routing.Tree, middleware []Middleware, metrics *Metrics, logger *slog.Logger) *Endpoint {
	if logger == nil {
		logger = slog.Default()
	}
	return &Endpoint{
		manager:    manager,
		tree:       tree,
		middleware: middleware,
		metrics:    metrics,
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

// ServeHTTP implements http.Handler.
func (e *Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := e.upgrader.Upgrade(w, r, nil)
	if err != nil {
		e.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	sess, err := e.manager.Create()
	if err != nil {
		e.logger.Warn("session rejected", "error", err)
		conn.Close()
		return
	}
	sess.Attach(conn)
	defer e.manager.Remove(sess.ID)

	nav := NewNavigator(sess, e.tree, e.middleware, e.metrics)
	e.readLoop(sess, nav, conn)
}

// readLoop consumes client frames until the connection dies.
func (e *Endpoint) readLoop(sess *Session, nav *Navigator, conn *websocket.Conn) {
	for {
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				e.logger.Error("read error", "session", sess.ID, "error", err)
			}
			return
		}
		sess.Touch()

		frame, err := protocol.Decode(msg)
		if err != nil {
			e.logger.Warn("bad frame", "session", sess.ID, "error", err)
			sess.SendFrame(protocol.NewErrorFrame("bad_frame", "malformed frame"))
			continue
		}

		switch frame.Type {
		case protocol.FrameNavigate:
			e.handleNavigate(sess, nav, frame)
		default:
			e.logger.Warn("unexpected frame type", "session", sess.ID, "type", frame.Type)
		}
	}
}

// handleNavigate runs one navigation and reports the outcome to the
// client.
func (e *Endpoint) handleNavigate(sess *Session, nav *Navigator, frame *protocol.Frame) {
	var opts []NavigateOption
	if frame.Replace {
		opts = append(opts, WithReplace())
	}

	result, err := nav.Navigate(frame.URL, opts...)
	if err != nil {
		if errors.Is(err, routing.ErrRedirectLoop) {
			sess.SendFrame(protocol.NewErrorFrame("redirect_loop", "navigation redirect loop"))
			return
		}
		e.logger.Error("navigation failed", "session", sess.ID, "target", frame.URL, "error", err)
		sess.SendFrame(protocol.NewErrorFrame("navigation_failed", "navigation failed"))
		return
	}

	if result.Frame != nil {
		if err := sess.SendFrame(result.Frame); err != nil {
			e.logger.Error("write error", "session", sess.ID, "error", err)
		}
	}
}
