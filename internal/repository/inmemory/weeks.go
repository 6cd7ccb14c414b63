package inmemory

import (
	"sync"
	"time"

	"fitness-app-go/pkg/plan"
)

// WeekCache is a TTL map implementing the workout plan cache.
type WeekCache struct {
	mu    sync.RWMutex
	items map[string]weekItem
}

type weekItem struct {
	value     []plan.Entry
	expiresAt time.Time
}

func NewWeekCache() *WeekCache {
	return &WeekCache{
		items: make(map[string]weekItem),
	}
}

func (c *WeekCache) GetWeek(userID string) ([]plan.Entry, bool) {
	now := time.Now()

	c.mu.RLock()
	item, ok := c.items[userID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[userID]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, userID)
		}
		c.mu.Unlock()
		return nil, false
	}

	return copyWeek(item.value), true
}

func (c *WeekCache) SetWeek(userID string, entries []plan.Entry, ttl time.Duration) {
	if ttl <= 0 {
		c.DeleteWeek(userID)
		return
	}

	c.mu.Lock()
	c.items[userID] = weekItem{
		value:     copyWeek(entries),
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *WeekCache) DeleteWeek(userID string) {
	c.mu.Lock()
	delete(c.items, userID)
	c.mu.Unlock()
}

func copyWeek(entries []plan.Entry) []plan.Entry {
	copied := make([]plan.Entry, len(entries))
	for i, entry := range entries {
		copied[i] = entry
		copied[i].Exercises = append([]plan.Exercise(nil), entry.Exercises...)
	}
	return copied
}
