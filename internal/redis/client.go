package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Varun5711/taskflow/internal/logger"
)

type Config struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// Connect dials Redis and verifies the connection with a PING.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	dialTimeout := cfg.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = 5 * time.Second
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}

	return rdb, nil
}

// ConnectOptional is Connect for deployments where Redis only backs optional
// features. It returns nil when no address is configured or the server is
// unreachable.
func ConnectOptional(ctx context.Context, cfg Config, log *logger.Logger) *redis.Client {
	if cfg.Addr == "" {
		log.Info("Redis not configured; rate limiting, auth events and migration lock disabled")
		return nil
	}

	rdb, err := Connect(ctx, cfg)
	if err != nil {
		log.Warn("Redis unavailable, continuing without it: %v", err)
		return nil
	}

	log.Info("Connected to Redis at %s", cfg.Addr)
	return rdb
}

func Stats(rdb *redis.Client) map[string]interface{} {
	stats := rdb.PoolStats()
	return map[string]interface{}{
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
	}
}
