package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionCookie is the name of the session cookie issued on login.
const SessionCookie = "ascend_session"

// SessionStore maps opaque session ids to user ids. Lookups for missing or
// expired sessions return (0, nil).
type SessionStore interface {
	Create(ctx context.Context, userID int64) (string, error)
	Get(ctx context.Context, sessionID string) (int64, error)
	Delete(ctx context.Context, sessionID string) error
}

type memorySession struct {
	userID  int64
	expires time.Time
}

// MemoryStore is a process-local SessionStore for single-node deployments
// and tests. Expired entries are dropped lazily on lookup.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	ttl      time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memorySession), ttl: ttl}
}

func (s *MemoryStore) Create(ctx context.Context, userID int64) (string, error) {
	sid := uuid.New().String()
	s.mu.Lock()
	s.sessions[sid] = memorySession{userID: userID, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return sid, nil
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return 0, nil
	}
	if time.Now().After(sess.expires) {
		delete(s.sessions, sessionID)
		return 0, nil
	}
	return sess.userID, nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}
