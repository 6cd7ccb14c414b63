package cli

import (
	"context"
	"sync"

	"fitness-app-go/pkg/client"
	"fitness-app-go/pkg/logger"
)

type ProfileAPI interface {
	Profile(ctx context.Context) (*client.Profile, error)
	UpdateProfile(ctx context.Context, update client.ProfileUpdate) (*client.Profile, error)
	ChangePassword(ctx context.Context, change client.PasswordChange) (string, error)
}

// ProfileScreen edits the signed-in profile and password.
type ProfileScreen struct {
	api     ProfileAPI
	session *Session
	log     logger.Logger

	mu   sync.Mutex
	busy bool
}

func NewProfileScreen(api ProfileAPI, session *Session, log logger.Logger) *ProfileScreen {
	return &ProfileScreen{api: api, session: session, log: log}
}

// Sync refetches the profile. On failure the cached copy is kept and
// returned.
func (s *ProfileScreen) Sync(ctx context.Context) *client.Profile {
	profile, err := s.api.Profile(ctx)
	if err != nil {
		s.log.Warn("profile: sync failed, keeping cached profile", "error", err)
		return s.session.User()
	}
	if err := s.session.Update(ctx, profile); err != nil {
		s.log.Warn("profile: caching synced profile", "error", err)
	}
	return profile
}

func (s *ProfileScreen) Save(ctx context.Context, update client.ProfileUpdate) (*client.Profile, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	profile, err := s.api.UpdateProfile(ctx, update)
	if err != nil {
		return nil, err
	}
	if err := s.session.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ChangePassword keeps the session alive with the token issued in exchange.
func (s *ProfileScreen) ChangePassword(ctx context.Context, change client.PasswordChange) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	token, err := s.api.ChangePassword(ctx, change)
	if err != nil {
		return err
	}
	return s.session.Rotate(ctx, token)
}

func (s *ProfileScreen) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *ProfileScreen) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	return nil
}

func (s *ProfileScreen) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}
