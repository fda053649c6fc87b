package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jmallard/manifest/internal/pipeline"
)

// store is the in-memory session registry. Sessions are transient working
// state, not durable records; a restart discards them.
type store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	busy     map[uuid.UUID]bool
}

func newStore() *store {
	return &store{
		sessions: make(map[uuid.UUID]*Session),
		busy:     make(map[uuid.UUID]bool),
	}
}

// acquire claims exclusive processing of a session. The intake and submit
// phases run in sequence per session, never concurrently.
func (s *store) acquire(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.busy[id] {
		return nil, ErrBusy
	}

	s.busy[id] = true
	return session, nil
}

func (s *store) release(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.busy, id)
}

func (s *store) create(tenant string, docType pipeline.DocumentType) *Session {
	session := &Session{
		ID:        uuid.New(),
		Tenant:    tenant,
		Type:      docType,
		Items:     []Item{},
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return session
}

func (s *store) find(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

func (s *store) delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}
