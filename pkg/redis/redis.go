package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/IvanREAL05/control-actividades-sub000/config"
)

// Client wraps the Redis connection used as a per-class snapshot cache.
// The service degrades to direct DB reads when Redis is unavailable.
type Client struct {
	rdb    *goredis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}

	ttl := cfg.SnapshotTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	logger.Info("Redis conectado", zap.String("addr", cfg.Addr), zap.Duration("snapshot_ttl", ttl))

	return &Client{rdb: rdb, ttl: ttl, logger: logger}, nil
}

// ── snapshot cache ──

const snapshotPrefix = "clase:snapshot:"

func snapshotKey(idClase uint) string {
	return fmt.Sprintf("%s%d", snapshotPrefix, idClase)
}

// GetSnapshot returns the cached snapshot JSON for a class, or ("", nil) on miss.
func (c *Client) GetSnapshot(ctx context.Context, idClase uint) (string, error) {
	val, err := c.rdb.Get(ctx, snapshotKey(idClase)).Result()
	if err == goredis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// SetSnapshot caches the snapshot JSON for a class under the configured TTL.
func (c *Client) SetSnapshot(ctx context.Context, idClase uint, data string) error {
	return c.rdb.Set(ctx, snapshotKey(idClase), data, c.ttl).Err()
}

// InvalidateSnapshot drops the cached snapshot after a state change.
func (c *Client) InvalidateSnapshot(ctx context.Context, idClase uint) error {
	return c.rdb.Del(ctx, snapshotKey(idClase)).Err()
}

// ── rate limiting ──

// CheckRateLimit counts a hit against a fixed window and reports whether the
// request is still inside the allowance.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// Close releases the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
