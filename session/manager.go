package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// Manager holds all live sessions. Everything is in memory; removing a
// session (or ending the process) discards its state and history.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &Session{
		ID:         uuid.New().String(),
		CreatedAt:  time.Now(),
		LastActive: time.Now(),
		history:    newHistoryBuf(),
		done:       make(chan struct{}),
	}
	m.sessions[s.ID] = s
	return s
}

func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		list = append(list, s)
	}
	return list
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	close(s.done)
	delete(m.sessions, id)
	return nil
}
