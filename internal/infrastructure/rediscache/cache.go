package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"langbot/internal/domain/entities"
	"langbot/internal/ports/output"
)

var _ output.TranslationCache = (*Cache)(nil)

// Cache stores translations in Redis keyed by fingerprint. Reads slide
// the expiration so hot translations stay warm; unreadable entries are
// evicted and reported as misses.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, addr, password string, ttl time.Duration) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	log.Println("✅ Cache Redis connecté.")
	return &Cache{client: client, ttl: ttl}, nil
}

func (c *Cache) Get(ctx context.Context, fingerprint string) (*entities.Translation, bool, error) {
	payload, err := c.client.Get(ctx, fingerprint).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var translation entities.Translation
	if err := json.Unmarshal(payload, &translation); err != nil {
		log.Printf("⚠️ cache: dropping unreadable entry %s: %v", fingerprint, err)
		c.client.Del(ctx, fingerprint)
		return nil, false, nil
	}

	c.client.Expire(ctx, fingerprint, c.ttl)
	return &translation, true, nil
}

func (c *Cache) Put(ctx context.Context, fingerprint string, translation *entities.Translation, ttl time.Duration) error {
	payload, err := json.Marshal(translation)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, fingerprint, payload, ttl).Err(); err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}
