package inmemory

import (
	"context"
	"strings"
	"sync"

	userdomain "fitness-app-go/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	items map[string]userdomain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{items: make(map[string]userdomain.User)}
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (*userdomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[userID]
	if !ok {
		return nil, userdomain.ErrUserNotFound
	}
	return cloneUser(item), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if strings.EqualFold(item.Email, email) {
			return cloneUser(item), nil
		}
	}
	return nil, userdomain.ErrUserNotFound
}

func (r *UserRepository) Create(ctx context.Context, user *userdomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if user.Email != "" && strings.EqualFold(item.Email, user.Email) {
			return userdomain.ErrEmailTaken
		}
	}
	r.items[user.ID] = *cloneUser(*user)
	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, user *userdomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[user.ID]
	if !ok {
		return userdomain.ErrUserNotFound
	}
	item.Name = user.Name
	item.AvatarURL = user.AvatarURL
	item.HeightCm = user.HeightCm
	item.WeightKg = user.WeightKg
	item.UpdatedAt = user.UpdatedAt
	r.items[user.ID] = *cloneUser(item)
	return nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[userID]
	if !ok {
		return userdomain.ErrUserNotFound
	}
	item.PasswordHash = hash
	r.items[userID] = item
	return nil
}

func (r *UserRepository) EnsureExists(ctx context.Context, user *userdomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[user.ID]; ok {
		return nil
	}
	r.items[user.ID] = *cloneUser(*user)
	return nil
}

func cloneUser(u userdomain.User) *userdomain.User {
	copied := u
	copied.AvatarURL = cloneString(u.AvatarURL)
	copied.HeightCm = cloneFloat(u.HeightCm)
	copied.WeightKg = cloneFloat(u.WeightKg)
	return &copied
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func cloneFloat(value *float64) *float64 {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
