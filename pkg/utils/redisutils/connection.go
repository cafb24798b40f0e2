// The redisutils package simplifies recurring operations like connecting to
// and cleaning up Redis.
package redisutils

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// SetupClient initializes a new Redis client for the specified address.
func SetupClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

// SetupTestClient initializes a new Redis client for the test instance.
func SetupTestClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: "localhost:6380",
	})
}

// CleanupRedis cleans up the Redis database between tests to ensure isolation.
func CleanupRedis(client *redis.Client) {
	client.FlushAll(context.Background())
}
