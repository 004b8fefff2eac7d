package db

import (
	"context"

	storage "github.com/sipcircle/sipcircle/pkg/redis"
)

// NewRedis bootstraps the shared Redis client.
func NewRedis(ctx context.Context, addr, password string) (*storage.RedisClient, error) {
	return storage.NewRedis(ctx, addr, password)
}
