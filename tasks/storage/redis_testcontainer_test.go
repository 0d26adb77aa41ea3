//go:build integration

package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedisTestcontainer(t *testing.T) (*RedisStorage, func()) {
	ctx := context.Background()

	prefix := fmt.Sprintf("test_%s_%d:", t.Name(), time.Now().UnixNano())

	redisContainer, err := redis.Run(ctx, "redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("6379/tcp").WithStartupTimeout(30*time.Second),
			wait.ForLog("Ready to accept connections").WithOccurrence(1).WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Skipf("Failed to start Redis testcontainer: %v", err)
	}

	connStr, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		redisContainer.Terminate(ctx)
		t.Fatalf("Failed to get Redis connection string: %v", err)
	}
	redisURL := connStr + "/1"

	var s *RedisStorage
	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		s, err = NewRedisStorage(redisURL, prefix)
		if err == nil {
			break
		}
		t.Logf("Failed to connect to Redis, retrying... (%d/%d): %v", i+1, maxRetries, err)
		time.Sleep(time.Duration(i+1) * 500 * time.Millisecond)
	}
	if s == nil {
		redisContainer.Terminate(ctx)
		t.Fatalf("Failed to create Redis storage after %d retries: %v", maxRetries, err)
	}

	t.Logf("Redis container started at: %s (prefix: %s)", redisURL, prefix)

	cleanup := func() {
		s.Close()
		if terminateErr := redisContainer.Terminate(ctx); terminateErr != nil {
			t.Logf("Failed to terminate container: %v", terminateErr)
		}
	}

	return s, cleanup
}
