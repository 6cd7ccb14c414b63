package session

import (
	"context"
	"errors"
	"time"

	domain "fitness-app-go/internal/domain/auth"
	"gorm.io/gorm"
)

type PostgresStore struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, session domain.Session) error {
	return s.db.WithContext(ctx).Create(&session).Error
}

func (s *PostgresStore) Get(ctx context.Context, tokenHash string) (*domain.Session, error) {
	var session domain.Session
	if err := s.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (s *PostgresStore) Delete(ctx context.Context, tokenHash string) error {
	return s.db.WithContext(ctx).Delete(&domain.Session{}, "token_hash = ?", tokenHash).Error
}

func (s *PostgresStore) DeleteByUser(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Delete(&domain.Session{}, "user_id = ?", userID).Error
}

func (s *PostgresStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Delete(&domain.Session{}, "expires_at <= ?", now)
	return result.RowsAffected, result.Error
}
