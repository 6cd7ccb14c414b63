package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	userdomain "fitness-app-go/internal/domain/user"
)

const (
	DefaultTTL = 7 * 24 * time.Hour
	tokenBytes = 32
)

type Users interface {
	Authenticate(ctx context.Context, email, password string) (*userdomain.User, error)
	GetProfile(ctx context.Context, userID string) (*userdomain.User, error)
}

type Service struct {
	store Store
	users Users
	ttl   time.Duration
	now   func() time.Time
	// replaceable for tests
	RandTokenFunc func() (string, error)
}

func NewService(store Store, users Users, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		store:         store,
		users:         users,
		ttl:           ttl,
		now:           func() time.Time { return time.Now().UTC() },
		RandTokenFunc: randomToken,
	}
}

// Login checks the credentials and issues a new bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *userdomain.User, error) {
	user, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	token, err := s.Issue(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Issue creates a session for an already authenticated user.
func (s *Service) Issue(ctx context.Context, userID string) (string, error) {
	token, err := s.RandTokenFunc()
	if err != nil {
		return "", err
	}

	now := s.now()
	session := Session{
		TokenHash: HashToken(token),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.store.Save(ctx, session); err != nil {
		return "", err
	}
	return token, nil
}

// Verify resolves a bearer token to its user. Expired sessions are removed.
func (s *Service) Verify(ctx context.Context, token string) (*userdomain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}

	hash := HashToken(token)
	session, err := s.store.Get(ctx, hash)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}

	if session.Expired(s.now()) {
		_ = s.store.Delete(ctx, hash)
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetProfile(ctx, session.UserID)
	if errors.Is(err, userdomain.ErrUserNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	err := s.store.Delete(ctx, HashToken(strings.TrimSpace(token)))
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	return err
}

// RevokeAll signs a user out everywhere, e.g. after a password change.
func (s *Service) RevokeAll(ctx context.Context, userID string) error {
	return s.store.DeleteByUser(ctx, userID)
}

// SweepExpired removes expired sessions when the store needs it. Stores with
// native expiry report zero.
func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	sweeper, ok := s.store.(Sweeper)
	if !ok {
		return 0, nil
	}
	return sweeper.DeleteExpired(ctx, s.now())
}

func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func randomToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
