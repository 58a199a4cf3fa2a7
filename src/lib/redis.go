package lib

import (
	"context"
	"cycleparadise/src/types"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "admin_session:"

// NewRedisClient returns nil without error when url is empty; callers
// treat a nil client as "no cache".
func NewRedisClient(url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil, err
	}
	return redis.NewClient(opt), nil
}

// CachedSession is what the auth middleware needs to authorize a request
// without hitting the database.
type CachedSession struct {
	SessionID uuid.UUID       `json:"sid"`
	UserID    uuid.UUID       `json:"uid"`
	Email     string          `json:"email"`
	Role      types.AdminRole `json:"role"`
	ExpiresAt time.Time       `json:"exp"`
}

type SessionCache struct {
	rdb *redis.Client
}

func NewSessionCache(rdb *redis.Client) *SessionCache {
	return &SessionCache{rdb: rdb}
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

func (c *SessionCache) enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *SessionCache) Get(ctx context.Context, id uuid.UUID) (*CachedSession, bool) {
	if !c.enabled() {
		return nil, false
	}
	val, err := c.rdb.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return nil, false
	} else if err != nil {
		log.Printf("[redis] Error retrieving session %s: %s\n", id, err.Error())
		return nil, false
	}
	var s CachedSession
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		log.Printf("[redis] Discarding malformed session %s: %s\n", id, err.Error())
		return nil, false
	}
	return &s, true
}

// Set caches s until its expiry, capped at ttl.
func (c *SessionCache) Set(ctx context.Context, s CachedSession, ttl time.Duration) error {
	if !c.enabled() {
		return nil
	}
	if remaining := time.Until(s.ExpiresAt); remaining < ttl {
		ttl = remaining
	}
	if ttl <= 0 {
		return nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, sessionKey(s.SessionID), string(b), ttl).Err(); err != nil {
		log.Printf("[redis] Failed to set value for key %s: %s\n", sessionKey(s.SessionID), err)
		return err
	}
	return nil
}

func (c *SessionCache) Delete(ctx context.Context, id uuid.UUID) error {
	if !c.enabled() {
		return nil
	}
	return c.rdb.Del(ctx, sessionKey(id)).Err()
}
