package history

import (
	"sync"

	"hostel-agent/web/types"

	"github.com/google/uuid"
)

// Manager holds per-session conversation history in memory. Turns are
// append-only; only the explicit clear action empties a session. History
// lives for the process lifetime only.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID][]types.ChatMessage
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[uuid.UUID][]types.ChatMessage)}
}

// Append adds one turn to the end of a session's history.
func (m *Manager) Append(sessionID uuid.UUID, msg types.ChatMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = append(m.sessions[sessionID], msg)
}

// Get returns a copy of the session's turns in append order. A session with
// no history yields an empty, non-nil slice.
func (m *Manager) Get(sessionID uuid.UUID) []types.ChatMessage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msgs := m.sessions[sessionID]
	out := make([]types.ChatMessage, len(msgs))
	copy(out, msgs)
	return out
}

// Reset drops all turns for a session.
func (m *Manager) Reset(sessionID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}
