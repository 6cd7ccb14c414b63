package workout

import (
	"time"

	"fitness-app-go/pkg/plan"
)

// Cache keeps the assembled weekly plan per user.
type Cache interface {
	GetWeek(userID string) ([]plan.Entry, bool)
	SetWeek(userID string, entries []plan.Entry, ttl time.Duration)
	DeleteWeek(userID string)
}

type noopCache struct{}

func (noopCache) GetWeek(string) ([]plan.Entry, bool) {
	return nil, false
}

func (noopCache) SetWeek(string, []plan.Entry, time.Duration) {}

func (noopCache) DeleteWeek(string) {}
