// Package redis keeps short-lived coordination state shared by every running
// instance of the service.
package redis

import (
	"context"
	"fmt"
	"time"

	"eventrent/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

const reminderKeyPrefix = "quote-reminder:"

type keyValueClient interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// ReminderGuard claims one reminder slot per order with SET NX and a TTL. The
// first instance to claim the key sends the reminder; the key expiring opens
// the next slot.
type ReminderGuard struct {
	client keyValueClient
}

// NewClient creates a go-redis client with short timeouts. A slow Redis must
// not stall the reminder job.
//
// Parameters:
//   - addr: host:port of the Redis server
//
// Returns:
//   - *redis.Client: the client; it connects lazily on first use
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// NewReminderGuard creates a guard on top of client.
func NewReminderGuard(client keyValueClient) *ReminderGuard {
	return &ReminderGuard{client: client}
}

// Acquire claims the reminder slot of the order for ttl. It reports false
// without error when another run already holds the slot.
func (g *ReminderGuard) Acquire(ctx context.Context, orderID kernel.UUID, ttl time.Duration) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}
	acquired, err := g.client.SetNX(ctx, ReminderKey(orderID), time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim reminder for order %s: %w", orderID, err)
	}
	return acquired, nil
}

// Release deletes the order's slot. Releasing a slot that has expired or was
// never claimed is not an error.
func (g *ReminderGuard) Release(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := g.client.Del(ctx, ReminderKey(orderID)).Err(); err != nil {
		return fmt.Errorf("release reminder for order %s: %w", orderID, err)
	}
	return nil
}

// ReminderKey is the Redis key holding the order's reminder slot.
func ReminderKey(orderID kernel.UUID) string {
	return reminderKeyPrefix + orderID.String()
}
