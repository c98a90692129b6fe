package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"soulsig/internal/domain"
)

// ResultCache guarda el último assessment de cada perfil para servir la
// lectura caliente sin tocar Postgres.
type ResultCache interface {
	Store(assessment domain.Assessment, ttl time.Duration) error
	Get(profileID string) (domain.Assessment, bool, error)
	Invalidate(profileID string) error
}

type memoryResultCache struct {
	mu    sync.Mutex
	items map[string]cachedAssessment
}

type cachedAssessment struct {
	assessment domain.Assessment
	expiresAt  time.Time
}

func NewMemoryResultCache() ResultCache {
	return &memoryResultCache{
		items: make(map[string]cachedAssessment),
	}
}

func (c *memoryResultCache) Store(assessment domain.Assessment, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.TrimSpace(assessment.ProfileID) == "" {
		return nil
	}
	c.items[assessment.ProfileID] = cachedAssessment{
		assessment: assessment,
		expiresAt:  time.Now().UTC().Add(ttl),
	}
	return nil
}

func (c *memoryResultCache) Get(profileID string) (domain.Assessment, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.items[profileID]
	if !ok {
		return domain.Assessment{}, false, nil
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(c.items, profileID)
		return domain.Assessment{}, false, nil
	}
	return entry.assessment, true, nil
}

func (c *memoryResultCache) Invalidate(profileID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, profileID)
	return nil
}

type redisResultCache struct {
	client redisResultKV
	prefix string
}

type redisResultKV interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

func NewRedisResultCache(client *redis.Client) ResultCache {
	if client == nil {
		return nil
	}
	return &redisResultCache{
		client: client,
		prefix: "assessment:latest:",
	}
}

func (c *redisResultCache) Store(assessment domain.Assessment, ttl time.Duration) error {
	if strings.TrimSpace(assessment.ProfileID) == "" {
		return nil
	}
	raw, err := json.Marshal(assessment)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	return c.client.Set(ctx, c.prefix+assessment.ProfileID, raw, ttl).Err()
}

func (c *redisResultCache) Get(profileID string) (domain.Assessment, bool, error) {
	if strings.TrimSpace(profileID) == "" {
		return domain.Assessment{}, false, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	raw, err := c.client.Get(ctx, c.prefix+profileID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Assessment{}, false, nil
	}
	if err != nil {
		return domain.Assessment{}, false, err
	}
	var assessment domain.Assessment
	if err := json.Unmarshal(raw, &assessment); err != nil {
		return domain.Assessment{}, false, err
	}
	return assessment, true, nil
}

func (c *redisResultCache) Invalidate(profileID string) error {
	if strings.TrimSpace(profileID) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	return c.client.Del(ctx, c.prefix+profileID).Err()
}
