// internal/cache/redis.go - Redis-backed cache strategy
package cache

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Redis stores entries in a Redis instance. The TTL is strategy-internal
// metadata; the cache contract mandates no expiry.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(addr, password string, db int, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &Redis{client: client, ttl: ttl}, nil
}

func (c *Redis) Close() error {
	return c.client.Close()
}

func (c *Redis) entryKey(key Key) string {
	return fmt.Sprintf("tile:%s:%d:%d:%d", key.Tileset, key.Z, key.X, key.Y)
}

func (c *Redis) Lookup(key Key, consumer func(io.Reader) error) bool {
	data, err := c.client.Get(context.Background(), c.entryKey(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warnf("cache lookup for %s/%d/%d/%d failed: %v", key.Tileset, key.Z, key.X, key.Y, err)
		}
		return false
	}

	if err := consumer(bytes.NewReader(data)); err != nil {
		log.Debugf("cache read for %s/%d/%d/%d: %v", key.Tileset, key.Z, key.X, key.Y, err)
	}
	return true
}

func (c *Redis) Store(key Key, producer func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := producer(&buf); err != nil {
		return err
	}

	if err := c.client.Set(context.Background(), c.entryKey(key), buf.Bytes(), c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}
