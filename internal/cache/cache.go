// Package cache keeps a short-lived redis copy of user records so the
// per-request auth gate does not hit MySQL on every protected call. Entries
// are dropped on update and delete; a miss just falls through to storage.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yafiirfan/backend.movie/internal/entity"
)

type UserCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewUserCache(rdb *redis.Client, ttl time.Duration) *UserCache {
	return &UserCache{rdb: rdb, ttl: ttl}
}

func userKey(id int) string {
	return fmt.Sprintf("user:%d", id)
}

// Get returns the cached user, or nil on a miss.
func (c *UserCache) Get(ctx context.Context, id int) (*entity.User, error) {
	val, err := c.rdb.Get(ctx, userKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	user := &entity.User{}
	if err := json.Unmarshal([]byte(val), user); err != nil {
		return nil, err
	}
	return user, nil
}

// Set stores the user's JSON form. The password hash is excluded from JSON
// serialization, so credentials never enter redis; lookups that verify
// passwords must read storage directly.
func (c *UserCache) Set(ctx context.Context, user *entity.User) error {
	val, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, userKey(user.ID), val, c.ttl).Err()
}

// Delete drops the cached entry so a mutated or removed user is never served
// from the cache.
func (c *UserCache) Delete(ctx context.Context, id int) error {
	return c.rdb.Del(ctx, userKey(id)).Err()
}
