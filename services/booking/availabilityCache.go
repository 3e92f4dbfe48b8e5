package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"slotwise/models"

	"github.com/go-redis/redis/v8"
)

// AvailabilityCache holds day availability projections. It is advisory: the
// writer never reads it, and every write invalidates the days it touches.
type AvailabilityCache interface {
	Get(ctx context.Context, employeeID, date string) (*models.DayAvailability, bool)
	Set(ctx context.Context, day *models.DayAvailability) error
	Invalidate(ctx context.Context, employeeID string, dates ...string) error
}

type noopCache struct{}

func (noopCache) Get(context.Context, string, string) (*models.DayAvailability, bool) { return nil, false }
func (noopCache) Set(context.Context, *models.DayAvailability) error                   { return nil }
func (noopCache) Invalidate(context.Context, string, ...string) error                 { return nil }

// RedisAvailabilityCache stores projections as JSON under availability:<employee>:<date>.
type RedisAvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAvailabilityCache returns a redis-backed cache, or a no-op one when client is nil.
func NewAvailabilityCache(client *redis.Client, ttl time.Duration) AvailabilityCache {
	if client == nil || ttl <= 0 {
		return noopCache{}
	}
	return &RedisAvailabilityCache{client: client, ttl: ttl}
}

func availabilityKey(employeeID, date string) string {
	return fmt.Sprintf("availability:%s:%s", employeeID, date)
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, employeeID, date string) (*models.DayAvailability, bool) {
	raw, err := c.client.Get(ctx, availabilityKey(employeeID, date)).Bytes()
	if err != nil {
		return nil, false
	}
	var day models.DayAvailability
	if err := json.Unmarshal(raw, &day); err != nil {
		return nil, false
	}
	return &day, true
}

func (c *RedisAvailabilityCache) Set(ctx context.Context, day *models.DayAvailability) error {
	raw, err := json.Marshal(day)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, availabilityKey(day.EmployeeID, day.Date), raw, c.ttl).Err()
}

func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, employeeID string, dates ...string) error {
	if len(dates) == 0 {
		return nil
	}
	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, availabilityKey(employeeID, d))
	}
	return c.client.Del(ctx, keys...).Err()
}
