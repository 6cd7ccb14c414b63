package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domain "fitness-app-go/internal/domain/auth"
	"github.com/go-redis/redis/v8"
)

const (
	sessionKeyPrefix = "fitness-session||"
	userSetKeyPrefix = "fitness-user-sessions||"
)

// RedisStore keeps sessions as JSON values that expire together with the
// session. Each user also gets a set of token hashes so all sessions can be
// revoked at once.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

type storedSession struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *RedisStore) Save(ctx context.Context, session domain.Session) error {
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	payload, err := json.Marshal(storedSession{
		UserID:    session.UserID,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+session.TokenHash, payload, ttl).Err(); err != nil {
		return err
	}

	userKey := userSetKeyPrefix + session.UserID
	if err := s.client.SAdd(ctx, userKey, session.TokenHash).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, userKey, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, tokenHash string) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+tokenHash).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var stored storedSession
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	return &domain.Session{
		TokenHash: tokenHash,
		UserID:    stored.UserID,
		CreatedAt: stored.CreatedAt,
		ExpiresAt: stored.ExpiresAt,
	}, nil
}

func (s *RedisStore) Delete(ctx context.Context, tokenHash string) error {
	session, err := s.Get(ctx, tokenHash)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.client.Del(ctx, sessionKeyPrefix+tokenHash).Err(); err != nil {
		return err
	}
	return s.client.SRem(ctx, userSetKeyPrefix+session.UserID, tokenHash).Err()
}

func (s *RedisStore) DeleteByUser(ctx context.Context, userID string) error {
	userKey := userSetKeyPrefix + userID
	hashes, err := s.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(hashes)+1)
	for _, hash := range hashes {
		keys = append(keys, sessionKeyPrefix+hash)
	}
	keys = append(keys, userKey)
	return s.client.Del(ctx, keys...).Err()
}
