package memory

import (
	"context"
	"sync"
	"time"

	"github.com/everestcart/storefront-api/internal/domains/users/ports"
)

// SessionStore is an in-memory SessionStore implementation.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]session
	ttl      time.Duration
	now      func() time.Time
}

type session struct {
	userID    int64
	expiresAt time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{sessions: map[string]session{}, ttl: ttl, now: time.Now}
}

func (s *SessionStore) Save(_ context.Context, token string, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = session{userID: userID, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *SessionStore) Lookup(_ context.Context, token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok || !sess.expiresAt.After(s.now()) {
		return 0, ports.ErrSessionNotFound
	}
	return sess.userID, nil
}

func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *SessionStore) PurgeExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var purged int64
	for token, sess := range s.sessions {
		if !sess.expiresAt.After(s.now()) {
			delete(s.sessions, token)
			purged++
		}
	}
	return purged, nil
}

var _ ports.SessionStore = (*SessionStore)(nil)
