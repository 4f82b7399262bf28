package main

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("game not found")
	ErrSessionLimit    = errors.New("too many games")
)

// SessionStore keeps every running game in memory, keyed by a random id.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*GameController
	limit    int
}

func NewSessionStore(limit int) *SessionStore {
	return &SessionStore{sessions: make(map[string]*GameController), limit: limit}
}

func (s *SessionStore) Create(settings GameSettings, config Config) (*GameController, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.limit > 0 && len(s.sessions) >= s.limit {
		return nil, ErrSessionLimit
	}
	id := uuid.NewString()
	controller := NewGameController(id, settings, config)
	controller.StartGame(settings)
	s.sessions[id] = controller
	activeSessions.Set(float64(len(s.sessions)))
	return controller, nil
}

func (s *SessionStore) Get(id string) (*GameController, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	controller, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return controller, nil
}

func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	activeSessions.Set(float64(len(s.sessions)))
	return nil
}

func (s *SessionStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// TickAll advances every session once and returns the controllers that
// applied a move.
func (s *SessionStore) TickAll() []*GameController {
	s.mu.RLock()
	controllers := make([]*GameController, 0, len(s.sessions))
	for _, controller := range s.sessions {
		controllers = append(controllers, controller)
	}
	s.mu.RUnlock()

	moved := []*GameController{}
	for _, controller := range controllers {
		if controller.Tick() {
			moved = append(moved, controller)
		}
	}
	return moved
}
