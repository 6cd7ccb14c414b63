package user

import "context"

type Repository interface {
	GetByID(ctx context.Context, userID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error
	UpdateProfile(ctx context.Context, user *User) error
	UpdatePasswordHash(ctx context.Context, userID, hash string) error
	// EnsureExists inserts the user when missing and leaves existing rows alone.
	EnsureExists(ctx context.Context, user *User) error
}

type AvatarStore interface {
	Save(ctx context.Context, userID string, upload AvatarUpload) (string, error)
	Remove(ctx context.Context, url string) error
}
