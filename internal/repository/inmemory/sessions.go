package inmemory

import (
	"context"
	"sync"
	"time"

	authdomain "fitness-app-go/internal/domain/auth"
)

type SessionStore struct {
	mu    sync.RWMutex
	items map[string]authdomain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{items: make(map[string]authdomain.Session)}
}

func (s *SessionStore) Save(ctx context.Context, session authdomain.Session) error {
	s.mu.Lock()
	s.items[session.TokenHash] = session
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Get(ctx context.Context, tokenHash string) (*authdomain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.items[tokenHash]
	if !ok {
		return nil, authdomain.ErrSessionNotFound
	}
	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, tokenHash string) error {
	s.mu.Lock()
	delete(s.items, tokenHash)
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) DeleteByUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for hash, session := range s.items {
		if session.UserID == userID {
			delete(s.items, hash)
		}
	}
	return nil
}

func (s *SessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for hash, session := range s.items {
		if session.Expired(now) {
			delete(s.items, hash)
			removed++
		}
	}
	return removed, nil
}
