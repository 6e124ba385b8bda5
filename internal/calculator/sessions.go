package calculator

import (
	"errors"
	"sync"

	"dotcalc/internal/engine"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many sessions")
)

type session struct {
	mu     sync.Mutex
	engine *engine.Engine
}

// Store keeps one engine per calculator session. Calls against the same
// session are serialised; different sessions proceed independently.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session
	max      int
	opts     []engine.Option
}

// NewStore returns a store holding at most max sessions. opts are applied to
// every engine it creates.
func NewStore(max int, opts ...engine.Option) *Store {
	return &Store{
		sessions: make(map[string]*session),
		max:      max,
		opts:     opts,
	}
}

// Create starts a new session and returns its id and initial state.
func (s *Store) Create() (string, engine.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.max {
		return "", engine.State{}, ErrTooManySessions
	}

	id := uuid.New().String()
	e := engine.New(s.opts...)
	s.sessions[id] = &session{engine: e}

	return id, e.Snapshot(), nil
}

// Do runs fn against the session's engine and returns the resulting state.
func (s *Store) Do(id string, fn func(*engine.Engine)) (engine.State, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return engine.State{}, ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	fn(sess.engine)
	return sess.engine.Snapshot(), nil
}

// Delete drops a session.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
