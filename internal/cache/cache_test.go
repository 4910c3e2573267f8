package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yafiirfan/backend.movie/internal/entity"
)

func newTestCache(t *testing.T) *UserCache {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewUserCache(rdb, 5*time.Minute)
}

func TestUserCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	img := "https://img.example/a.png"
	user := &entity.User{ID: 1, Username: "alice", Email: "a@x.com", ImageURL: &img}
	require.NoError(t, c.Set(ctx, user))

	got, err := c.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "a@x.com", got.Email)
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, img, *got.ImageURL)
}

func TestUserCacheMiss(t *testing.T) {
	c := newTestCache(t)

	got, err := c.Get(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserCacheDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, &entity.User{ID: 2, Username: "bob", Email: "b@x.com"}))
	require.NoError(t, c.Delete(ctx, 2))

	got, err := c.Get(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserCacheNeverStoresPasswordHash(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, &entity.User{ID: 3, Username: "carol", Email: "c@x.com", PasswordHash: "$2a$10$digest"}))

	got, err := c.Get(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.PasswordHash)
}
