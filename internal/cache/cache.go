package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
// A nil *Client is a valid, always-missing cache.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// CardKey is the cache key of one owner's card snapshot.
func CardKey(ownerID, cardNumber string) string {
	return fmt.Sprintf("card:%s:%s", ownerID, cardNumber)
}

// Ping reports whether redis is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Get returns value or nil if missing or redis unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors both read as a miss
		return nil, nil
	}
	return res, nil
}

// Set stores value with TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	_ = c.client.Set(ctx, key, value, ttl).Err()
	return nil
}

// GetJSON decodes a cached value into dst and reports whether it was a hit.
func (c *Client) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	data, _ := c.Get(ctx, key)
	if data == nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// GenerationKey is the counter bumped every time key is invalidated.
func GenerationKey(key string) string {
	return key + ":gen"
}

// Generation returns the current invalidation counter of key. Pass it to
// SetJSONIfGeneration after loading the value from the source of truth.
func (c *Client) Generation(ctx context.Context, key string) int64 {
	if c == nil || c.client == nil {
		return 0
	}
	gen, err := c.client.Get(ctx, GenerationKey(key)).Int64()
	if err != nil {
		return 0
	}
	return gen
}

var errGenerationMoved = errors.New("cache generation moved")

// SetJSONIfGeneration stores value only if key was not invalidated since gen
// was read, so a slow reader cannot put back a value a writer removed.
func (c *Client) SetJSONIfGeneration(ctx context.Context, key string, gen int64, value interface{}, ttl time.Duration) bool {
	if c == nil || c.client == nil {
		return false
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return false
	}

	genKey := GenerationKey(key)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return errGenerationMoved
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, ttl)
			return nil
		})
		return err
	}, genKey)
	return err == nil
}

// Invalidate bumps the generation of key and removes it in one MULTI, ignoring
// redis errors. The counter lives for genTTL.
func (c *Client) Invalidate(ctx context.Context, key string, genTTL time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	genKey := GenerationKey(key)
	_, _ = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, genTTL)
		pipe.Del(ctx, key)
		return nil
	})
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
