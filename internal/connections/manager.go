// Package connections tracks live widget WebSocket connections so each
// session holds at most one chat stream at a time.
package connections

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// TimeoutConfig holds the keepalive timeout settings for chat connections.
type TimeoutConfig struct {
	PongWait   time.Duration
	PingPeriod time.Duration
	WriteWait  time.Duration
}

// DefaultTimeouts provides sensible default timeout values
var DefaultTimeouts = TimeoutConfig{
	PongWait:   30 * time.Second,
	PingPeriod: 27 * time.Second, // (PongWait * 9) / 10
	WriteWait:  10 * time.Second,
}

// Manager maps each live connection to the session that opened it.
type Manager struct {
	mu       sync.Mutex
	sessions map[*websocket.Conn]string
	active   map[string]*websocket.Conn
	timeouts TimeoutConfig
}

// NewManager creates a new connection manager with the specified timeouts
func NewManager(timeouts TimeoutConfig) *Manager {
	return &Manager{
		sessions: make(map[*websocket.Conn]string),
		active:   make(map[string]*websocket.Conn),
		timeouts: timeouts,
	}
}

// Add registers conn for sessionID. It reports false when the session
// already has a live connection, in which case conn is not registered.
func (m *Manager) Add(conn *websocket.Conn, sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.active[sessionID]; taken {
		return false
	}
	m.sessions[conn] = sessionID
	m.active[sessionID] = conn
	return true
}

// Remove drops conn and frees its session for a new connection.
func (m *Manager) Remove(conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sessionID, ok := m.sessions[conn]
	if !ok {
		return
	}
	delete(m.sessions, conn)
	if m.active[sessionID] == conn {
		delete(m.active, sessionID)
	}
}

// Count returns the number of live connections.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// GetTimeouts returns the current timeout configuration
func (m *Manager) GetTimeouts() TimeoutConfig {
	return m.timeouts
}
