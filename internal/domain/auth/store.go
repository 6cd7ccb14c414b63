package auth

import (
	"context"
	"time"
)

type Store interface {
	Save(ctx context.Context, session Session) error
	Get(ctx context.Context, tokenHash string) (*Session, error)
	Delete(ctx context.Context, tokenHash string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// Sweeper is implemented by stores that do not expire sessions on their own.
type Sweeper interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
