package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/multierr"

	"fitness-app-go/internal/cli/store"
	"fitness-app-go/pkg/client"
	"fitness-app-go/pkg/logger"
)

const (
	keyToken = "auth.token"
	keyUser  = "auth.user"
)

var ErrSignedOut = errors.New("not signed in")

// KV is the persisted storage behind a Session.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Authenticator is the part of the API client a Session drives.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*client.Session, error)
	Logout(ctx context.Context) error
	SetToken(token string)
}

// Session owns the signed-in user and its token. It is created once at
// start, restored with Load and torn down with SignOut or Expire.
type Session struct {
	store KV
	auth  Authenticator
	log   logger.Logger

	mu    sync.RWMutex
	token string
	user  *client.Profile
}

func NewSession(kv KV, log logger.Logger) *Session {
	return &Session{store: kv, log: log}
}

// Attach binds the API client. It is separate from NewSession because the
// client's unauthorized handler points back at Expire.
func (s *Session) Attach(auth Authenticator) {
	s.auth = auth
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token != "" {
		auth.SetToken(token)
	}
}

// Load restores persisted credentials. A partial or corrupt record is
// cleared and reported as signed out.
func (s *Session) Load(ctx context.Context) (bool, error) {
	token, err := s.store.Get(ctx, keyToken)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	raw, err := s.store.Get(ctx, keyUser)
	var profile client.Profile
	if err == nil {
		err = json.Unmarshal([]byte(raw), &profile)
	}
	if err != nil || profile.ID == "" {
		s.log.Warn("session: discarding incomplete credentials", "error", err)
		return false, s.clearStore(ctx)
	}

	s.set(token, &profile)
	return true, nil
}

func (s *Session) SignIn(ctx context.Context, email, password string) (*client.Profile, error) {
	if s.auth == nil {
		return nil, fmt.Errorf("session: no client attached")
	}
	result, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, result.Token, &result.User); err != nil {
		return nil, err
	}
	s.set(result.Token, &result.User)
	return &result.User, nil
}

// Update replaces the cached profile, e.g. after an edit or a refetch.
func (s *Session) Update(ctx context.Context, profile *client.Profile) error {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token == "" {
		return ErrSignedOut
	}
	if err := s.persist(ctx, token, profile); err != nil {
		return err
	}
	s.set(token, profile)
	return nil
}

// Rotate stores a token issued in exchange for the current one.
func (s *Session) Rotate(ctx context.Context, token string) error {
	user := s.User()
	if user == nil {
		return ErrSignedOut
	}
	if err := s.persist(ctx, token, user); err != nil {
		return err
	}
	s.set(token, user)
	return nil
}

// SignOut revokes the token server side and always clears local state.
func (s *Session) SignOut(ctx context.Context) error {
	var err error
	if s.auth != nil && s.Token() != "" {
		err = s.auth.Logout(ctx)
	}
	s.set("", nil)
	return multierr.Append(err, s.clearStore(ctx))
}

// Expire drops the session without calling the server. It is the client's
// unauthorized handler.
func (s *Session) Expire() {
	s.set("", nil)
	if err := s.clearStore(context.Background()); err != nil {
		s.log.Error("session: clearing expired credentials", "error", err)
	}
}

func (s *Session) SignedIn() bool {
	return s.Token() != ""
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the signed-in profile, or nil.
func (s *Session) User() *client.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	copied := *s.user
	return &copied
}

func (s *Session) set(token string, profile *client.Profile) {
	s.mu.Lock()
	s.token = token
	if profile != nil {
		copied := *profile
		s.user = &copied
	} else {
		s.user = nil
	}
	s.mu.Unlock()
	if s.auth != nil {
		s.auth.SetToken(token)
	}
}

func (s *Session) persist(ctx context.Context, token string, profile *client.Profile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	return multierr.Append(
		s.store.Set(ctx, keyToken, token),
		s.store.Set(ctx, keyUser, string(raw)),
	)
}

func (s *Session) clearStore(ctx context.Context) error {
	return s.store.Delete(ctx, keyToken, keyUser)
}
