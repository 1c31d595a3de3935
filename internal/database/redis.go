package database

import (
	"context"
	"fmt"
	"time"

	"github.com/AyushPal0/Mental-Wellness/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// ConnectRedis parses a redis:// or rediss:// URL and pings the server.
func ConnectRedis(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"addr": opt.Addr,
		"db":   opt.DB,
		"ping": pong,
	}).Info("Connected to Redis")
	return client, nil
}
