package refresh

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brvagas/jobhub/internal/jobsource"
)

const (
	// snapshotKey holds the last good job list.
	snapshotKey = "jobhub:jobs:snapshot"
	// SnapshotTTL bounds how stale a served snapshot can get.
	SnapshotTTL = 24 * time.Hour
)

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// Cache is a Redis-backed snapshot of the last successfully fetched job
// list, used to keep serving stale data when the source goes down.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb, ttl: SnapshotTTL}
}

// Store replaces the snapshot.
func (c *Cache) Store(ctx context.Context, jobs []jobsource.Job) error {
	raw, err := json.Marshal(jobs)
	if err != nil {
		return fmt.Errorf("encode job snapshot: %w", err)
	}
	if err := c.rdb.Set(ctx, snapshotKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("store job snapshot: %w", err)
	}
	return nil
}

// Load returns the snapshot, or (nil, nil) when none is stored.
func (c *Cache) Load(ctx context.Context) ([]jobsource.Job, error) {
	raw, err := c.rdb.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load job snapshot: %w", err)
	}
	var jobs []jobsource.Job
	if err := json.Unmarshal(raw, &jobs); err != nil {
		return nil, fmt.Errorf("decode job snapshot: %w", err)
	}
	return jobs, nil
}
