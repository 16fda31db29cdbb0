package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Balance string `json:"balance"`
}

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestNilClientIsAlwaysMiss(t *testing.T) {
	var c *Client
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	data, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, data)

	var dst map[string]string
	assert.False(t, c.SetJSONIfGeneration(ctx, "k", 0, map[string]string{"a": "b"}, time.Minute))
	assert.False(t, c.GetJSON(ctx, "k", &dst))
	assert.Zero(t, c.Generation(ctx, "k"))
	c.Invalidate(ctx, "k", time.Minute)
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestCardKey(t *testing.T) {
	assert.Equal(t, "card:owner-1:12345678", CardKey("owner-1", "12345678"))
	assert.Equal(t, "card:owner-1:12345678:gen", GenerationKey(CardKey("owner-1", "12345678")))
}

func TestSetJSONIfGeneration_FillsAndInvalidates(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()
	key := CardKey("owner-1", "12345678")

	gen := c.Generation(ctx, key)
	require.True(t, c.SetJSONIfGeneration(ctx, key, gen, snapshot{Balance: "50.00"}, time.Minute))

	var got snapshot
	require.True(t, c.GetJSON(ctx, key, &got))
	assert.Equal(t, "50.00", got.Balance)
	assert.True(t, mr.TTL(key) > 0)

	c.Invalidate(ctx, key, time.Hour)
	assert.False(t, mr.Exists(key))
	assert.Equal(t, int64(1), c.Generation(ctx, key))
	assert.False(t, c.GetJSON(ctx, key, &got))
}

func TestSetJSONIfGeneration_RefusesFillAfterInvalidation(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()
	key := CardKey("owner-1", "12345678")

	// A reader samples the generation, then a writer invalidates before the
	// reader stores what it loaded.
	gen := c.Generation(ctx, key)
	c.Invalidate(ctx, key, time.Hour)

	assert.False(t, c.SetJSONIfGeneration(ctx, key, gen, snapshot{Balance: "50.00"}, time.Minute))
	assert.False(t, mr.Exists(key))

	// A fresh read after the invalidation may fill again.
	assert.True(t, c.SetJSONIfGeneration(ctx, key, c.Generation(ctx, key), snapshot{Balance: "0.00"}, time.Minute))
	assert.True(t, mr.Exists(key))
}

func TestUnreachableRedisReadsAsMiss(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()
	mr.Close()

	data, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, data)
	assert.False(t, c.SetJSONIfGeneration(ctx, "k", 0, snapshot{}, time.Minute))
	assert.Error(t, c.Ping(ctx))
}
