package workout

import (
	"encoding/json"
	"fmt"
	"time"

	"fitness-app-go/pkg/logger"
	"fitness-app-go/pkg/plan"
	"github.com/coocood/freecache"
)

const megabyte = 1024 * 1024

// FreeCache keeps serialized weekly plans in an in-process freecache.
type FreeCache struct {
	cache *freecache.Cache
	log   logger.Logger
}

func NewFreeCache(sizeBytes int, log logger.Logger) *FreeCache {
	if sizeBytes <= 0 {
		sizeBytes = 16 * megabyte
	}
	return &FreeCache{cache: freecache.NewCache(sizeBytes), log: log}
}

func weekKey(userID string) []byte {
	return []byte(fmt.Sprintf("week::%s", userID))
}

func (c *FreeCache) GetWeek(userID string) ([]plan.Entry, bool) {
	raw, err := c.cache.Get(weekKey(userID))
	if err != nil {
		return nil, false
	}

	var entries []plan.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		c.log.Error("cache: decoding week", "user_id", userID, "err", err)
		c.cache.Del(weekKey(userID))
		return nil, false
	}
	return entries, true
}

// SetWeek stores the week for ttl. freecache counts whole seconds and reads 0
// as no expiry, so a ttl under a second only drops the old entry.
func (c *FreeCache) SetWeek(userID string, entries []plan.Entry, ttl time.Duration) {
	seconds := int(ttl / time.Second)
	if seconds <= 0 {
		c.cache.Del(weekKey(userID))
		return
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		c.log.Error("cache: encoding week", "user_id", userID, "err", err)
		return
	}

	if err := c.cache.Set(weekKey(userID), raw, seconds); err != nil {
		c.log.Warn("cache: storing week", "user_id", userID, "err", err)
	}
}

func (c *FreeCache) DeleteWeek(userID string) {
	c.cache.Del(weekKey(userID))
}
