package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// ApprovalCacheTTL is how long a driver approval status answer stays cached.
// Clients poll GET /drivers/status on this cadence, so the TTL matches the
// poll interval (DRIVER_STATUS_POLL_SECONDS, default 5s).
func ApprovalCacheTTL() time.Duration {
	if v := os.Getenv("DRIVER_STATUS_POLL_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 5 * time.Second
}

// SetDriverApproval caches a driver's approval status
func SetDriverApproval(ctx context.Context, userID uint, approved bool) error {
	if RedisClient == nil {
		return nil
	}
	key := fmt.Sprintf("driver:approval:%d", userID)
	value := "false"
	if approved {
		value = "true"
	}
	return RedisClient.Set(ctx, key, value, ApprovalCacheTTL()).Err()
}

// GetDriverApproval retrieves a cached approval status. The bool ok result is
// false on a cache miss.
func GetDriverApproval(ctx context.Context, userID uint) (approved, ok bool) {
	if RedisClient == nil {
		return false, false
	}
	key := fmt.Sprintf("driver:approval:%d", userID)
	result, err := RedisClient.Get(ctx, key).Result()
	if err != nil {
		return false, false
	}
	return result == "true", true
}

// InvalidateDriverApproval drops the cached approval status so the next poll
// sees an admin decision immediately.
func InvalidateDriverApproval(ctx context.Context, userID uint) error {
	if RedisClient == nil {
		return nil
	}
	key := fmt.Sprintf("driver:approval:%d", userID)
	return RedisClient.Del(ctx, key).Err()
}

// ClaimPaymentSubmission guards against duplicate payment submissions. It
// returns true if this (booking, amount) pair has not been recorded within
// the TTL. Without Redis configured the guard is a no-op and always claims.
func ClaimPaymentSubmission(ctx context.Context, bookingID uint, amount float64) (bool, error) {
	if RedisClient == nil {
		return true, nil
	}
	key := fmt.Sprintf("payment:submit:%d:%.2f", bookingID, amount)
	return RedisClient.SetNX(ctx, key, "1", 2*time.Minute).Result()
}

// PublishBookingUpdate publishes a booking status change to Redis pub/sub so
// other instances can forward it to their connected WebSocket clients.
func PublishBookingUpdate(ctx context.Context, bookingID uint, status string, data map[string]interface{}) error {
	if RedisClient == nil {
		return nil
	}

	updateData := map[string]interface{}{
		"bookingId": bookingID,
		"status":    status,
		"data":      data,
		"timestamp": time.Now().Unix(),
	}

	jsonData, err := json.Marshal(updateData)
	if err != nil {
		return err
	}

	return RedisClient.Publish(ctx, "booking:updates", jsonData).Err()
}
