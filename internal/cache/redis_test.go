package cache

import (
	"context"
	"testing"
	"time"

	"guestbook/internal/model"
	"guestbook/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*RedisEntryCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisEntryCacheWithClient(client, time.Minute), mr
}

func TestRedisEntryCache_GetSetPage(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	t.Run("miss on empty cache", func(t *testing.T) {
		page, err := c.GetPage(ctx, 10, 0)
		assert.ErrorIs(t, err, ErrCacheMiss)
		assert.Nil(t, page)
	})

	t.Run("set then get", func(t *testing.T) {
		want := &repository.PageResult[model.Entry]{
			Items: []model.Entry{
				{ID: "id-1", Name: "Alice", Entry: "hello"},
				{ID: "id-2", Name: "Bob", Entry: "hi"},
			},
			Total: 2,
		}
		require.NoError(t, c.SetPage(ctx, 10, 0, want))

		got, err := c.GetPage(ctx, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, want.Total, got.Total)
		assert.Len(t, got.Items, 2)
		assert.Equal(t, "Alice", got.Items[0].Name)
	})

	t.Run("distinct pages are distinct keys", func(t *testing.T) {
		require.NoError(t, c.SetPage(ctx, 10, 10, &repository.PageResult[model.Entry]{Total: 1}))

		_, err := c.GetPage(ctx, 20, 0)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}

func TestRedisEntryCache_TTL(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetPage(ctx, 10, 0, &repository.PageResult[model.Entry]{Total: 1}))

	// Advance miniredis past the TTL; the page must expire.
	mr.FastForward(2 * time.Minute)

	_, err := c.GetPage(ctx, 10, 0)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisEntryCache_Invalidate(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetPage(ctx, 10, 0, &repository.PageResult[model.Entry]{Total: 1}))
	require.NoError(t, c.SetPage(ctx, 10, 10, &repository.PageResult[model.Entry]{Total: 1}))

	// Keys outside the entries prefix must survive invalidation.
	mr.Set("guestbook:other", "keep")

	require.NoError(t, c.Invalidate(ctx))

	_, err := c.GetPage(ctx, 10, 0)
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = c.GetPage(ctx, 10, 10)
	assert.ErrorIs(t, err, ErrCacheMiss)

	assert.True(t, mr.Exists("guestbook:other"))
}

func TestRedisEntryCache_InvalidateEmpty(t *testing.T) {
	c, _ := setupCache(t)

	assert.NoError(t, c.Invalidate(context.Background()))
}
